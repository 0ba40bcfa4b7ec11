package inbound

import (
	"context"

	"github.com/sagarghai/growth-tools-api/domain"
)

// SlidePromptStreamerPort turns the validated prompt list into a channel
// stage feeding the frame producer.
type SlidePromptStreamerPort interface {
	Stream(ctx context.Context, prompts []string) (<-chan domain.SlidePrompt, <-chan error)
}

// SlideFrameProducerPort generates one image per prompt and writes it into
// the workspace. Production order is unspecified; each frame carries its
// ordinal so the pipeline can restore request order.
type SlideFrameProducerPort interface {
	Produce(ctx context.Context, workspace domain.Workspace, prompts <-chan domain.SlidePrompt) (<-chan domain.Frame, <-chan error)
}
