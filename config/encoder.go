package config

import (
	"fmt"
	"time"

	"github.com/sagarghai/growth-tools-api/domain"
)

const (
	defaultFFmpegPath    = "ffmpeg"
	defaultVideoWidth    = 1920
	defaultVideoHeight   = 1080
	defaultSlideDuration = 3.0
	defaultEncodeTimeout = 2 * time.Minute
)

type EncoderConfig struct {
	FFmpegPath    string
	Width         int
	Height        int
	SlideDuration float64
	Timeout       time.Duration
}

func GetEncoderConfig() (*EncoderConfig, error) {
	width, err := envIntOr("VIDEO_WIDTH", defaultVideoWidth)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("VIDEO_WIDTH must be an integer: %v", err))
	}

	height, err := envIntOr("VIDEO_HEIGHT", defaultVideoHeight)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("VIDEO_HEIGHT must be an integer: %v", err))
	}

	slideDuration, err := envFloatOr("SLIDE_DURATION", defaultSlideDuration)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("SLIDE_DURATION must be a number: %v", err))
	}
	if slideDuration <= 0 {
		return nil, domain.NewConfigurationError("SLIDE_DURATION must be positive")
	}

	timeout, err := envDurationOr("FFMPEG_TIMEOUT", defaultEncodeTimeout)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("FFMPEG_TIMEOUT must be a duration: %v", err))
	}

	return &EncoderConfig{
		FFmpegPath:    envOr("FFMPEG_PATH", defaultFFmpegPath),
		Width:         width,
		Height:        height,
		SlideDuration: slideDuration,
		Timeout:       timeout,
	}, nil
}
