package services

import (
	"context"
	"fmt"

	"github.com/sagarghai/growth-tools-api/application/ports/inbound"
	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
)

type chatMockupPipeline struct {
	logger      outbound.LoggerPort
	workspaces  outbound.WorkspacePort
	renderer    outbound.ChatFrameRendererPort
	synthesizer outbound.SoundSynthesizerPort
	encoder     outbound.VideoEncoderPort
	videoStore  outbound.VideoStorePort
}

func NewChatMockupPipeline(
	logger outbound.LoggerPort,
	workspaces outbound.WorkspacePort,
	renderer outbound.ChatFrameRendererPort,
	synthesizer outbound.SoundSynthesizerPort,
	encoder outbound.VideoEncoderPort,
	videoStore outbound.VideoStorePort) inbound.ChatMockupPipelinePort {
	return &chatMockupPipeline{
		logger:      logger,
		workspaces:  workspaces,
		renderer:    renderer,
		synthesizer: synthesizer,
		encoder:     encoder,
		videoStore:  videoStore,
	}
}

func (s *chatMockupPipeline) CreateChatMockup(ctx context.Context, params inbound.ChatMockupParams) (*inbound.PipelineResult, error) {
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

	frames, cues, err := s.renderer.RenderSequence(ctx, workspace, params.Messages, params.BotName)
	if err != nil {
		s.logger.Error(err, "Failed to render chat frames")
		return nil, err
	}

	effects, err := s.synthesizer.Synthesize(workspace)
	if err != nil {
		s.logger.Error(err, "Failed to synthesize sound effects")
		return nil, err
	}

	var totalDuration float64
	for _, frame := range frames {
		totalDuration += frame.Duration
	}

	artifact, err := s.encoder.Encode(ctx, outbound.EncodeRequest{
		Workspace: workspace,
		Frames:    frames,
		Audio: &outbound.AudioTrack{
			Effects:  effects,
			Cues:     cues,
			Duration: totalDuration,
		},
		OutputName: fmt.Sprintf("whatsapp_%s.mp4", params.RequestID),
	})
	if err != nil {
		s.logger.Error(err, "Failed to encode chat mockup")
		return nil, err
	}

	if _, err := s.videoStore.Store(ctx, fmt.Sprintf("whatsapp_%s.mp4", params.RequestID), artifact.FileName); err != nil {
		s.logger.Error(err, "Failed to store chat mockup copy")
	}

	s.logger.InfoWithFields("Chat mockup created", map[string]interface{}{
		"request_id": params.RequestID,
		"messages":   len(params.Messages),
		"frames":     len(frames),
		"size_bytes": artifact.Size,
	})

	released = true
	return &inbound.PipelineResult{
		Artifact: artifact,
		Cleanup:  func() { s.workspaces.Release(workspace) },
	}, nil
}
