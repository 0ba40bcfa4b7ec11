package dto

import (
	"fmt"
	"strings"

	"github.com/sagarghai/growth-tools-api/domain"
)

type ChatMessageRequest struct {
	Role string `json:"role" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// WhatsappRequest accepts both bot_name and the upstream astrologer_name
// alias for the non-user display name.
type WhatsappRequest struct {
	Messages       []ChatMessageRequest `json:"messages" binding:"required,min=1,dive"`
	BotName        string               `json:"bot_name"`
	AstrologerName string               `json:"astrologer_name"`
}

func (r *WhatsappRequest) Validate() error {
	for i, message := range r.Messages {
		if strings.TrimSpace(message.Text) == "" {
			return domain.NewValidationError(fmt.Sprintf("messages[%d].text must not be empty", i))
		}
		if message.Role != string(domain.UserRole) && message.Role != string(domain.BotRole) {
			return domain.NewValidationError(fmt.Sprintf("messages[%d].role must be %q or %q", i, domain.UserRole, domain.BotRole))
		}
	}
	return nil
}

func (r *WhatsappRequest) ToMessages() []domain.ChatMessage {
	messages := make([]domain.ChatMessage, 0, len(r.Messages))
	for _, message := range r.Messages {
		messages = append(messages, domain.ChatMessage{
			Role: domain.Role(message.Role),
			Text: message.Text,
		})
	}
	return messages
}

// DisplayName picks the configured non-user display name, falling back to
// the given default.
func (r *WhatsappRequest) DisplayName(fallback string) string {
	if r.BotName != "" {
		return r.BotName
	}
	if r.AstrologerName != "" {
		return r.AstrologerName
	}
	return fallback
}
