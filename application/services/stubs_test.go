package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/domain"
)

type stubImageGenerator struct {
	delays map[string]time.Duration
	failOn string
	err    error
}

func (s *stubImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if delay, ok := s.delays[prompt]; ok {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.failOn != "" && prompt == s.failOn {
		return nil, s.err
	}
	return []byte("img:" + prompt), nil
}

type captureEncoder struct {
	mu       sync.Mutex
	requests []outbound.EncodeRequest
	err      error
}

func (c *captureEncoder) Encode(_ context.Context, req outbound.EncodeRequest) (domain.VideoArtifact, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.err != nil {
		return domain.VideoArtifact{}, c.err
	}

	outputFileName := req.Workspace.Path(req.OutputName)
	if err := os.WriteFile(outputFileName, []byte("mp4"), 0o644); err != nil {
		return domain.VideoArtifact{}, err
	}
	return domain.VideoArtifact{FileName: outputFileName, Size: 3}, nil
}

func (c *captureEncoder) captured() []outbound.EncodeRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]outbound.EncodeRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

type nopVideoStore struct{}

func (nopVideoStore) Store(_ context.Context, name string, _ string) (string, error) {
	return name, nil
}

type stubChatRenderer struct {
	frames []domain.Frame
	cues   []domain.SoundCue
	err    error
}

func (s *stubChatRenderer) RenderSequence(_ context.Context, _ domain.Workspace, _ []domain.ChatMessage, _ string) ([]domain.Frame, []domain.SoundCue, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.frames, s.cues, nil
}

type stubSoundSynthesizer struct{}

func (stubSoundSynthesizer) Synthesize(workspace domain.Workspace) (outbound.SoundEffects, error) {
	return outbound.SoundEffects{
		SendFile:    workspace.Path("send.wav"),
		ReceiveFile: workspace.Path("receive.wav"),
	}, nil
}
