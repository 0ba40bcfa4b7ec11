package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
)

type localVideoStore struct {
	logger    outbound.LoggerPort
	outputDir string
}

// NewLocalVideoStore keeps finished videos in a local output directory.
func NewLocalVideoStore(outputDir string, logger outbound.LoggerPort) (outbound.VideoStorePort, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &localVideoStore{
		logger:    logger,
		outputDir: outputDir,
	}, nil
}

func (l *localVideoStore) Store(_ context.Context, name string, videoFileName string) (string, error) {
	src, err := os.Open(videoFileName)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			l.logger.Error(closeErr, "Failed to close video file")
		}
	}()

	destFileName := filepath.Join(l.outputDir, name)
	dest, err := os.Create(destFileName)
	if err != nil {
		return "", fmt.Errorf("failed to create stored video file: %w", err)
	}
	defer func() {
		if closeErr := dest.Close(); closeErr != nil {
			l.logger.Error(closeErr, "Failed to close stored video file")
		}
	}()

	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("failed to copy video file: %w", err)
	}

	return destFileName, nil
}
