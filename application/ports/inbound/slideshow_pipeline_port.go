package inbound

import (
	"context"

	"github.com/sagarghai/growth-tools-api/domain"
)

type SlideshowParams struct {
	RequestID string
	Slides    []string
}

// PipelineResult is a finished video plus the cleanup that releases its
// workspace. Callers must invoke Cleanup after streaming the artifact.
type PipelineResult struct {
	Artifact domain.VideoArtifact
	Cleanup  func()
}

type SlideshowPipelinePort interface {
	CreateSlideshow(ctx context.Context, params SlideshowParams) (*PipelineResult, error)
}
