package contract

import (
	"context"

	"ai-chat-be/internal/entity"
)

type HistoryRepository interface {
	// Save replaces the chat's entire turn sequence (insert-if-absent).
	Save(ctx context.Context, chatId int64, turns []entity.Turn) error
	// FindByChatId returns (nil, false, nil) when no history row exists.
	FindByChatId(ctx context.Context, chatId int64) ([]entity.Turn, bool, error)
	Delete(ctx context.Context, chatId int64) error
}
