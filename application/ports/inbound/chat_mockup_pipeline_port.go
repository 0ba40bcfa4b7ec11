package inbound

import (
	"context"

	"github.com/sagarghai/growth-tools-api/domain"
)

type ChatMockupParams struct {
	RequestID string
	Messages  []domain.ChatMessage
	BotName   string
}

type ChatMockupPipelinePort interface {
	CreateChatMockup(ctx context.Context, params ChatMockupParams) (*PipelineResult, error)
}
