package bootstrap

import (
	"log"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/implementation"
	"ai-chat-be/internal/service"
	"ai-chat-be/internal/websocket"
	"ai-chat-be/pkg/llm/factory"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// WebSockets
	WebSocketHub   *websocket.Hub
	MessageHandler *websocket.ChatMessageHandler

	// System
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Repositories
	chatRepo := implementation.NewChatRepository(db)
	historyRepo := implementation.NewHistoryRepository(db)

	// LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OpenAIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// Services
	chatService := service.NewChatService(chatRepo, historyRepo)
	assistantService := service.NewAssistantService(historyRepo, llmProvider, sysLogger, service.AssistantOptions{
		HistoryWindow: cfg.Chat.HistoryWindow,
		Temperature:   cfg.Ai.Temperature,
		Timeout:       cfg.Ai.Timeout,
		MaxAttempts:   cfg.Ai.MaxAttempts,
	})

	// WebSocket Hub (isolated log to keep the main log clean)
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	hub := websocket.NewHub(wsLogger)
	go hub.Run()

	messageHandler := websocket.NewChatMessageHandler(chatService, assistantService, hub, wsLogger)

	return &Container{
		ChatController: controller.NewChatController(chatService),
		WebSocketHub:   hub,
		MessageHandler: messageHandler,
		Logger:         sysLogger,
	}
}
