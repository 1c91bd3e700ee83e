package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToModel(e *entity.Chat) *model.Chat {
	return &model.Chat{
		Id:        e.Id,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) ChatToEntity(mo *model.Chat) *entity.Chat {
	return &entity.Chat{
		Id:        mo.Id,
		Title:     mo.Title,
		CreatedAt: mo.CreatedAt,
	}
}
