package websocket

import (
	"context"
	"fmt"
	"strconv"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"
)

// ChatMessageHandler implements the room chat flow: validate the chat,
// rebroadcast the user's message, then generate and broadcast the AI reply.
type ChatMessageHandler struct {
	chatService service.IChatService
	assistant   service.IAssistantService
	hub         *Hub
	logger      logger.ILogger
}

var _ MessageHandler = &ChatMessageHandler{}

func NewChatMessageHandler(
	chatService service.IChatService,
	assistant service.IAssistantService,
	hub *Hub,
	log logger.ILogger,
) *ChatMessageHandler {
	return &ChatMessageHandler{
		chatService: chatService,
		assistant:   assistant,
		hub:         hub,
		logger:      log,
	}
}

func (h *ChatMessageHandler) HandleChatMessage(ctx context.Context, msg dto.ChatMessagePayload) {
	if err := serverutils.ValidateRequest(msg); err != nil {
		h.logger.Warn("ChatMessage", "Invalid payload", map[string]interface{}{"error": err.Error()})
		return
	}

	h.logger.Info("ChatMessage", "User message", map[string]interface{}{"chat_id": msg.ChatId, "message": msg.Message})
	room := strconv.FormatInt(msg.ChatId, 10)

	exists, err := h.chatService.ChatExists(ctx, msg.ChatId)
	if err != nil {
		h.logger.Error("ChatMessage", "Chat lookup failed", map[string]interface{}{"chat_id": msg.ChatId, "error": err.Error()})
		return
	}
	if !exists {
		h.logger.Error("ChatMessage", "Chat does not exist", map[string]interface{}{"chat_id": msg.ChatId})
		h.hub.BroadcastToRoom(room, dto.ChatMessagePayload{
			ChatId:  msg.ChatId,
			Type:    entity.TurnTypeAI,
			Message: fmt.Sprintf("This chat (id: %d) does not seem to exist.", msg.ChatId),
		})
		return
	}

	// Rebroadcast the inbound message verbatim before generating.
	h.hub.BroadcastToRoom(room, msg)

	response, err := h.assistant.GenerateResponse(ctx, msg.ChatId, msg.Message)
	if err != nil {
		// The user's message stays broadcast; no AI reply for this turn.
		h.logger.Error("ChatMessage", "Generation failed", map[string]interface{}{"chat_id": msg.ChatId, "error": err.Error()})
		return
	}

	h.hub.BroadcastToRoom(room, dto.ChatMessagePayload{
		ChatId:  msg.ChatId,
		Type:    entity.TurnTypeAI,
		Message: response,
	})
	h.logger.Info("ChatMessage", "Assistant message", map[string]interface{}{"chat_id": msg.ChatId, "message": response})
}
