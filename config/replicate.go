package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sagarghai/growth-tools-api/domain"
)

const (
	defaultReplicateAPIURL   = "https://api.replicate.com/v1"
	defaultReplicateModel    = "black-forest-labs/flux-schnell"
	defaultAspectRatio       = "16:9"
	defaultOutputFormat      = "jpg"
	defaultGenerationTimeout = 2 * time.Minute
	defaultPollInterval      = time.Second
	defaultMaxConcurrency    = 3
)

type ReplicateConfig struct {
	ApiUrl         string
	ApiToken       string
	Model          string
	AspectRatio    string
	OutputFormat   string
	Timeout        time.Duration
	PollInterval   time.Duration
	MaxConcurrency int
}

func GetReplicateConfig() (*ReplicateConfig, error) {
	apiToken := os.Getenv("REPLICATE_API_TOKEN")
	if apiToken == "" {
		return nil, domain.NewConfigurationError("REPLICATE_API_TOKEN must be set")
	}

	timeout, err := envDurationOr("REPLICATE_TIMEOUT", defaultGenerationTimeout)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("REPLICATE_TIMEOUT must be a duration: %v", err))
	}

	pollInterval, err := envDurationOr("REPLICATE_POLL_INTERVAL", defaultPollInterval)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("REPLICATE_POLL_INTERVAL must be a duration: %v", err))
	}

	maxConcurrency, err := envIntOr("REPLICATE_MAX_CONCURRENCY", defaultMaxConcurrency)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("REPLICATE_MAX_CONCURRENCY must be an integer: %v", err))
	}
	if maxConcurrency < 1 {
		return nil, domain.NewConfigurationError("REPLICATE_MAX_CONCURRENCY must be at least 1")
	}

	return &ReplicateConfig{
		ApiUrl:         envOr("REPLICATE_API_URL", defaultReplicateAPIURL),
		ApiToken:       apiToken,
		Model:          envOr("REPLICATE_MODEL", defaultReplicateModel),
		AspectRatio:    envOr("REPLICATE_ASPECT_RATIO", defaultAspectRatio),
		OutputFormat:   envOr("REPLICATE_OUTPUT_FORMAT", defaultOutputFormat),
		Timeout:        timeout,
		PollInterval:   pollInterval,
		MaxConcurrency: maxConcurrency,
	}, nil
}
