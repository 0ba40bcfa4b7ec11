package config

import (
	"fmt"
	"os"

	"github.com/sagarghai/growth-tools-api/domain"
)

const (
	defaultPort      = "8001"
	defaultMaxSlides = 10
)

type ServerConfig struct {
	Port         string
	WorkspaceDir string
	MaxSlides    int
}

func GetServerConfig() (*ServerConfig, error) {
	workspaceDir := envOr("WORKSPACE_DIR", os.TempDir())

	maxSlides, err := envIntOr("MAX_SLIDES", defaultMaxSlides)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("MAX_SLIDES must be an integer: %v", err))
	}
	if maxSlides < 1 {
		return nil, domain.NewConfigurationError("MAX_SLIDES must be at least 1")
	}

	return &ServerConfig{
		Port:         envOr("PORT", defaultPort),
		WorkspaceDir: workspaceDir,
		MaxSlides:    maxSlides,
	}, nil
}
