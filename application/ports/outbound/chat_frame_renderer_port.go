package outbound

import (
	"context"

	"github.com/sagarghai/growth-tools-api/domain"
)

// ChatFrameRendererPort renders a chat conversation into ordered stills
// written to the workspace, plus the sound cues matching each message reveal.
type ChatFrameRendererPort interface {
	RenderSequence(ctx context.Context, workspace domain.Workspace, messages []domain.ChatMessage, botName string) ([]domain.Frame, []domain.SoundCue, error)
}
