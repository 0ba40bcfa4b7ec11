package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sagarghai/growth-tools-api/application/ports/inbound"
	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/channel_utils"
	"github.com/sagarghai/growth-tools-api/domain"
)

type slideshowPipeline struct {
	logger         outbound.LoggerPort
	workerPool     outbound.TaskDispatcher
	workspaces     outbound.WorkspacePort
	promptStreamer inbound.SlidePromptStreamerPort
	frameProducer  inbound.SlideFrameProducerPort
	encoder        outbound.VideoEncoderPort
	videoStore     outbound.VideoStorePort
	width          int
	height         int
}

func NewSlideshowPipeline(
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher,
	workspaces outbound.WorkspacePort,
	promptStreamer inbound.SlidePromptStreamerPort,
	frameProducer inbound.SlideFrameProducerPort,
	encoder outbound.VideoEncoderPort,
	videoStore outbound.VideoStorePort,
	width int,
	height int) inbound.SlideshowPipelinePort {
	return &slideshowPipeline{
		logger:         logger,
		workerPool:     workerPool,
		workspaces:     workspaces,
		promptStreamer: promptStreamer,
		frameProducer:  frameProducer,
		encoder:        encoder,
		videoStore:     videoStore,
		width:          width,
		height:         height,
	}
}

func (s *slideshowPipeline) CreateSlideshow(ctx context.Context, params inbound.SlideshowParams) (*inbound.PipelineResult, error) {
	workspace, err := s.workspaces.Acquire()
	if err != nil {
		s.logger.Error(err, "Failed to acquire workspace")
		return nil, err
	}

	released := false
	defer func() {
		if !released {
			s.workspaces.Release(workspace)
		}
	}()

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	promptsCh, streamerErrCh := s.promptStreamer.Stream(newCtx, params.Slides)
	framesCh, producerErrCh := s.frameProducer.Produce(newCtx, workspace, promptsCh)

	mergedErrCh, err := channel_utils.MergeChannels(s.workerPool, streamerErrCh, producerErrCh)
	if err != nil {
		s.logger.Error(err, "Failed to merge error channels")
		return nil, err
	}

	frames, err := s.collectFrames(newCtx, framesCh, mergedErrCh)
	if err != nil {
		return nil, err
	}

	sort.Sort(domain.FramesAscByOrdinal(frames))

	artifact, err := s.encoder.Encode(newCtx, outbound.EncodeRequest{
		Workspace:  workspace,
		Frames:     frames,
		Width:      s.width,
		Height:     s.height,
		OutputName: fmt.Sprintf("slideshow_%s.mp4", params.RequestID),
	})
	if err != nil {
		s.logger.Error(err, "Failed to encode slideshow")
		return nil, err
	}

	if _, err := s.videoStore.Store(newCtx, fmt.Sprintf("slideshow_%s.mp4", params.RequestID), artifact.FileName); err != nil {
		s.logger.Error(err, "Failed to store slideshow copy")
	}

	s.logger.InfoWithFields("Slideshow created", map[string]interface{}{
		"request_id": params.RequestID,
		"slides":     len(params.Slides),
		"size_bytes": artifact.Size,
	})

	released = true
	return &inbound.PipelineResult{
		Artifact: artifact,
		Cleanup:  func() { s.workspaces.Release(workspace) },
	}, nil
}

func (s *slideshowPipeline) collectFrames(ctx context.Context, framesCh <-chan domain.Frame, errCh <-chan error) ([]domain.Frame, error) {
	frames := make([]domain.Frame, 0)
	for {
		// Checked ahead of the select so an interrupted run never races the
		// closing stage channels into looking like a success.
		if ctx.Err() != nil {
			return nil, interruptError(ctx.Err())
		}

		select {
		case err, ok := <-errCh:
			if ok {
				s.logger.Error(err, "Error in slideshow pipeline")
				return nil, err
			}
			errCh = nil
		case <-ctx.Done():
			return nil, interruptError(ctx.Err())
		case frame, ok := <-framesCh:
			if !ok {
				if errCh != nil {
					// Drain the error channel before declaring success.
					if err, open := <-errCh; open {
						s.logger.Error(err, "Error in slideshow pipeline")
						return nil, err
					}
				}
				return frames, nil
			}
			frames = append(frames, frame)
		}
	}
}

func interruptError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewGenerationTimeout("slideshow generation timed out", err)
	}
	return domain.NewGenerationError("slideshow generation cancelled", "", err)
}
