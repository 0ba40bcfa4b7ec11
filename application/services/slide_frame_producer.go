package services

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sagarghai/growth-tools-api/application/ports/inbound"
	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/domain"
)

type slidePromptStreamer struct {
	workerPool outbound.TaskDispatcher
}

func NewSlidePromptStreamer(workerPool outbound.TaskDispatcher) inbound.SlidePromptStreamerPort {
	return &slidePromptStreamer{workerPool: workerPool}
}

func (s *slidePromptStreamer) Stream(ctx context.Context, prompts []string) (<-chan domain.SlidePrompt, <-chan error) {
	out := make(chan domain.SlidePrompt)
	errCh := make(chan error, 1)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		for i, text := range prompts {
			select {
			case out <- domain.SlidePrompt{Text: text, Ordinal: i}:
			case <-ctx.Done():
				return
			}
		}
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

type slideFrameProducer struct {
	logger         outbound.LoggerPort
	imageGenerator outbound.ImageGeneratorPort
	workerPool     outbound.TaskDispatcher
	maxConcurrent  int
	slideDuration  float64
}

func NewSlideFrameProducer(logger outbound.LoggerPort, imageGenerator outbound.ImageGeneratorPort,
	workerPool outbound.TaskDispatcher, maxConcurrent int, slideDuration float64) inbound.SlideFrameProducerPort {
	return &slideFrameProducer{
		logger:         logger,
		imageGenerator: imageGenerator,
		workerPool:     workerPool,
		maxConcurrent:  maxConcurrent,
		slideDuration:  slideDuration,
	}
}

func (s *slideFrameProducer) Produce(ctx context.Context, workspace domain.Workspace, prompts <-chan domain.SlidePrompt) (<-chan domain.Frame, <-chan error) {
	out := make(chan domain.Frame)
	errCh := make(chan error, 5)

	newCtx, cancel := context.WithCancel(ctx)

	// Upstream calls run concurrently but never more than maxConcurrent at
	// a time, so a long prompt list cannot flood the image API.
	sem := make(chan struct{}, s.maxConcurrent)

	err := s.workerPool.Submit(func() {
		var wg sync.WaitGroup
		aborted := false

	dispatch:
		for p := range prompts {
			select {
			case <-newCtx.Done():
				aborted = true
				break dispatch
			case sem <- struct{}{}:
			}

			wg.Add(1)
			prompt := p
			err := s.workerPool.Submit(func() {
				defer wg.Done()
				defer func() { <-sem }()

				frame, err := s.produceFrame(newCtx, workspace, prompt)
				if err != nil {
					select {
					case errCh <- err:
					case <-newCtx.Done():
					}
					return
				}

				select {
				case out <- frame:
				case <-newCtx.Done():
				}
			})
			if err != nil {
				wg.Done()
				<-sem
				select {
				case errCh <- err:
				case <-newCtx.Done():
				}
				aborted = true
				break dispatch
			}
		}

		// Workers send on out and errCh, so both channels must stay open
		// until every in-flight worker has finished. On an aborted run the
		// cancel unblocks workers whose sends have no reader left.
		if aborted {
			cancel()
		}
		wg.Wait()
		cancel()
		close(errCh)
		close(out)
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (s *slideFrameProducer) produceFrame(ctx context.Context, workspace domain.Workspace, prompt domain.SlidePrompt) (domain.Frame, error) {
	content, err := s.imageGenerator.Generate(ctx, prompt.Text)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to generate slide image", map[string]interface{}{
			"ordinal": prompt.Ordinal,
		})
		return domain.Frame{}, err
	}

	fileName := workspace.Path(fmt.Sprintf("slide_%03d.jpg", prompt.Ordinal))
	if err := os.WriteFile(fileName, content, 0o644); err != nil {
		s.logger.Error(err, "Failed to write slide image")
		return domain.Frame{}, domain.NewGenerationError("failed to write slide image", "", err)
	}

	return domain.Frame{
		FileName: fileName,
		Duration: s.slideDuration,
		Ordinal:  prompt.Ordinal,
	}, nil
}
