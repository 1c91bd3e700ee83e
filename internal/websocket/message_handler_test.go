package websocket

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-chat-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	existing map[int64]bool
}

func (s *fakeChatService) CreateChat(context.Context) (int64, error) { return 0, nil }
func (s *fakeChatService) GetChat(context.Context, int64) (*dto.ChatResponse, error) {
	return nil, nil
}
func (s *fakeChatService) GetAllChats(context.Context) ([]*dto.ChatResponse, error) {
	return nil, nil
}
func (s *fakeChatService) DeleteChat(context.Context, int64) error { return nil }
func (s *fakeChatService) GetChatHistory(context.Context, int64) ([]*dto.ChatMessageResponse, error) {
	return nil, nil
}
func (s *fakeChatService) ChatExists(_ context.Context, id int64) (bool, error) {
	return s.existing[id], nil
}

type fakeAssistant struct {
	calls int
	err   error
}

func (a *fakeAssistant) GenerateResponse(_ context.Context, chatId int64, userMessage string) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return fmt.Sprintf("generated for chat %d", chatId), nil
}

func TestChatMessageHandler_NonexistentChat(t *testing.T) {
	hub := NewHub(nopLogger{})
	member := newTestClient()
	hub.Join(member, "5")

	assistant := &fakeAssistant{}
	handler := NewChatMessageHandler(&fakeChatService{existing: map[int64]bool{}}, assistant, hub, nopLogger{})

	handler.HandleChatMessage(context.Background(), dto.ChatMessagePayload{
		ChatId: 5, Type: "human", Message: "anyone there?",
	})

	// Exactly one broadcast: a synthetic ai message naming the chat id.
	// Generation is never attempted.
	require.Len(t, member.Send, 1)
	frame := decodeFrame(t, <-member.Send)
	assert.Equal(t, "ai", frame.Type)
	assert.Equal(t, int64(5), frame.ChatId)
	assert.Contains(t, frame.Message, "id: 5")
	assert.Zero(t, assistant.calls)
}

func TestChatMessageHandler_ExistingChatBroadcastsHumanThenAI(t *testing.T) {
	hub := NewHub(nopLogger{})
	member := newTestClient()
	hub.Join(member, "1")

	assistant := &fakeAssistant{}
	handler := NewChatMessageHandler(&fakeChatService{existing: map[int64]bool{1: true}}, assistant, hub, nopLogger{})

	handler.HandleChatMessage(context.Background(), dto.ChatMessagePayload{
		ChatId: 1, Type: "human", Message: "hello",
	})

	require.Len(t, member.Send, 2)

	first := decodeFrame(t, <-member.Send)
	assert.Equal(t, "human", first.Type)
	assert.Equal(t, "hello", first.Message)

	second := decodeFrame(t, <-member.Send)
	assert.Equal(t, "ai", second.Type)
	assert.Equal(t, "generated for chat 1", second.Message)
}

func TestChatMessageHandler_GenerationFault(t *testing.T) {
	hub := NewHub(nopLogger{})
	member := newTestClient()
	hub.Join(member, "1")

	assistant := &fakeAssistant{err: errors.New("model unavailable")}
	handler := NewChatMessageHandler(&fakeChatService{existing: map[int64]bool{1: true}}, assistant, hub, nopLogger{})

	handler.HandleChatMessage(context.Background(), dto.ChatMessagePayload{
		ChatId: 1, Type: "human", Message: "hello",
	})

	// The human message stays broadcast; no ai reply follows.
	require.Len(t, member.Send, 1)
	frame := decodeFrame(t, <-member.Send)
	assert.Equal(t, "human", frame.Type)
}

func TestChatMessageHandler_InvalidPayloadIgnored(t *testing.T) {
	hub := NewHub(nopLogger{})
	member := newTestClient()
	hub.Join(member, "1")

	assistant := &fakeAssistant{}
	handler := NewChatMessageHandler(&fakeChatService{existing: map[int64]bool{1: true}}, assistant, hub, nopLogger{})

	handler.HandleChatMessage(context.Background(), dto.ChatMessagePayload{ChatId: 1})

	assert.Empty(t, member.Send)
	assert.Zero(t, assistant.calls)
}
