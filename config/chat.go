package config

import (
	"fmt"

	"github.com/sagarghai/growth-tools-api/domain"
)

// Chat mockup geometry and timing. Defaults match an iPhone-style
// WhatsApp conversation in dark theme.
const (
	defaultChatWidth       = 376
	defaultChatHeight      = 812
	defaultTypingDuration  = 2.0
	defaultMessageDuration = 3.0
	defaultMessagePause    = 0.5
	defaultBotName         = "Bot"
)

type ChatConfig struct {
	Width           int
	Height          int
	TypingDuration  float64
	MessageDuration float64
	MessagePause    float64
	DefaultBotName  string
}

func GetChatConfig() (*ChatConfig, error) {
	typingDuration, err := envFloatOr("CHAT_TYPING_DURATION", defaultTypingDuration)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("CHAT_TYPING_DURATION must be a number: %v", err))
	}

	messageDuration, err := envFloatOr("CHAT_MESSAGE_DURATION", defaultMessageDuration)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("CHAT_MESSAGE_DURATION must be a number: %v", err))
	}
	if messageDuration <= 0 {
		return nil, domain.NewConfigurationError("CHAT_MESSAGE_DURATION must be positive")
	}

	messagePause, err := envFloatOr("CHAT_MESSAGE_PAUSE", defaultMessagePause)
	if err != nil {
		return nil, domain.NewConfigurationError(fmt.Sprintf("CHAT_MESSAGE_PAUSE must be a number: %v", err))
	}

	return &ChatConfig{
		Width:           defaultChatWidth,
		Height:          defaultChatHeight,
		TypingDuration:  typingDuration,
		MessageDuration: messageDuration,
		MessagePause:    messagePause,
		DefaultBotName:  envOr("CHAT_BOT_NAME", defaultBotName),
	}, nil
}
