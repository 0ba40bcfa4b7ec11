package outbound

import "context"

// ImageGeneratorPort synthesizes one image for a text prompt.
type ImageGeneratorPort interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
