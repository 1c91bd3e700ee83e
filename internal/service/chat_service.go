package service

import (
	"context"
	"fmt"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/contract"
)

type IChatService interface {
	// CreateChat inserts a chat and sets its default title ("Chat {id}").
	CreateChat(ctx context.Context) (int64, error)
	// GetChat returns nil when the chat does not exist.
	GetChat(ctx context.Context, id int64) (*dto.ChatResponse, error)
	GetAllChats(ctx context.Context) ([]*dto.ChatResponse, error)
	// DeleteChat removes the chat and its history entry. Idempotent.
	DeleteChat(ctx context.Context, id int64) error
	// GetChatHistory returns the flattened turn sequence, empty when none.
	GetChatHistory(ctx context.Context, id int64) ([]*dto.ChatMessageResponse, error)
	ChatExists(ctx context.Context, id int64) (bool, error)
}

type chatService struct {
	chatRepo    contract.ChatRepository
	historyRepo contract.HistoryRepository
}

func NewChatService(chatRepo contract.ChatRepository, historyRepo contract.HistoryRepository) IChatService {
	return &chatService{
		chatRepo:    chatRepo,
		historyRepo: historyRepo,
	}
}

func (s *chatService) CreateChat(ctx context.Context) (int64, error) {
	// Two independent writes: the id is only known after the insert, so the
	// default title is set with a follow-up update.
	chat := entity.Chat{}
	if err := s.chatRepo.Create(ctx, &chat); err != nil {
		return 0, err
	}

	chat.Title = fmt.Sprintf("Chat %d", chat.Id)
	if err := s.chatRepo.Update(ctx, &chat); err != nil {
		return 0, err
	}

	return chat.Id, nil
}

func (s *chatService) GetChat(ctx context.Context, id int64) (*dto.ChatResponse, error) {
	chat, err := s.chatRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, nil
	}
	return toChatResponse(chat), nil
}

func (s *chatService) GetAllChats(ctx context.Context) ([]*dto.ChatResponse, error) {
	chats, err := s.chatRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatResponse, len(chats))
	for i, chat := range chats {
		result[i] = toChatResponse(chat)
	}
	return result, nil
}

func (s *chatService) DeleteChat(ctx context.Context, id int64) error {
	if err := s.chatRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.historyRepo.Delete(ctx, id)
}

func (s *chatService) GetChatHistory(ctx context.Context, id int64) ([]*dto.ChatMessageResponse, error) {
	turns, found, err := s.historyRepo.FindByChatId(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatMessageResponse, 0)
	if !found {
		return result, nil
	}

	for _, turn := range turns {
		result = append(result, &dto.ChatMessageResponse{
			ChatId:  id,
			Type:    turn.Type,
			Message: turn.Data.Content,
		})
	}
	return result, nil
}

func (s *chatService) ChatExists(ctx context.Context, id int64) (bool, error) {
	chat, err := s.chatRepo.FindById(ctx, id)
	if err != nil {
		return false, err
	}
	return chat != nil, nil
}

func toChatResponse(chat *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:        chat.Id,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt.Unix(),
	}
}
