package contract

import (
	"context"

	"ai-chat-be/internal/entity"
)

type ChatRepository interface {
	// Create inserts the chat and fills in its storage-assigned id and
	// creation time.
	Create(ctx context.Context, chat *entity.Chat) error
	Update(ctx context.Context, chat *entity.Chat) error
	// FindById returns nil (no error) when the chat does not exist.
	FindById(ctx context.Context, id int64) (*entity.Chat, error)
	FindAll(ctx context.Context) ([]*entity.Chat, error)
	Delete(ctx context.Context, id int64) error
}
