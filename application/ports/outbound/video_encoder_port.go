package outbound

import (
	"context"

	"github.com/sagarghai/growth-tools-api/domain"
)

// AudioTrack describes the sound bed mixed under a chat mockup video.
type AudioTrack struct {
	Effects  SoundEffects
	Cues     []domain.SoundCue
	Duration float64
}

type EncodeRequest struct {
	Workspace  domain.Workspace
	Frames     []domain.Frame
	Audio      *AudioTrack
	Width      int
	Height     int
	OutputName string
}

// VideoEncoderPort concatenates ordered frames into a single MP4.
// Frames must be encoded exactly in the order given.
type VideoEncoderPort interface {
	Encode(ctx context.Context, req EncodeRequest) (domain.VideoArtifact, error)
}
