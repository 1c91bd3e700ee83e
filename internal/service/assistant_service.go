package service

import (
	"context"
	"sync"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/pkg/llm"
	"ai-chat-be/pkg/retry"
)

// IAssistantService produces the AI reply for a user message. Each call
// reloads the chat's persisted history, feeds the model a bounded window of
// past exchanges, and persists the full updated sequence afterward.
type IAssistantService interface {
	GenerateResponse(ctx context.Context, chatId int64, userMessage string) (string, error)
}

type AssistantOptions struct {
	// HistoryWindow is the number of past exchanges (human+ai pairs)
	// supplied to the model. The stored history is never trimmed.
	HistoryWindow int
	Temperature   float64
	Timeout       time.Duration
	MaxAttempts   int
}

type assistantService struct {
	historyRepo contract.HistoryRepository
	provider    llm.LLMProvider
	logger      logger.ILogger
	opts        AssistantOptions

	// chatLocks serializes the load-generate-save cycle per chat id so a
	// concurrent submission cannot lose a turn pair to a last-write-wins
	// overwrite.
	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

func NewAssistantService(
	historyRepo contract.HistoryRepository,
	provider llm.LLMProvider,
	log logger.ILogger,
	opts AssistantOptions,
) IAssistantService {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 3
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 2
	}
	return &assistantService{
		historyRepo: historyRepo,
		provider:    provider,
		logger:      log,
		opts:        opts,
		chatLocks:   make(map[int64]*sync.Mutex),
	}
}

func (s *assistantService) lockChat(chatId int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.chatLocks[chatId]
	if !ok {
		l = &sync.Mutex{}
		s.chatLocks[chatId] = l
	}
	return l
}

func (s *assistantService) GenerateResponse(ctx context.Context, chatId int64, userMessage string) (string, error) {
	l := s.lockChat(chatId)
	l.Lock()
	defer l.Unlock()

	turns, _, err := s.historyRepo.FindByChatId(ctx, chatId)
	if err != nil {
		return "", err
	}

	history := s.buildContext(turns, userMessage)
	s.logger.Info("Assistant", "Generating response", map[string]interface{}{
		"chat_id":       chatId,
		"total_turns":   len(turns),
		"context_turns": len(history) - 2, // minus system prompt and user message
	})

	var response string
	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	err = retry.Do(callCtx, retry.Config{MaxAttempts: s.opts.MaxAttempts}, func() error {
		var callErr error
		response, callErr = s.provider.Chat(callCtx, history, llm.WithTemperature(s.opts.Temperature))
		return callErr
	})
	if err != nil {
		return "", err
	}

	// Full-overwrite save of the entire accumulated sequence; only the
	// generation context above is windowed.
	turns = append(turns, entity.NewHumanTurn(userMessage), entity.NewAITurn(response))
	if err := s.historyRepo.Save(ctx, chatId, turns); err != nil {
		return "", err
	}

	return response, nil
}

// buildContext assembles the model request: system prompt, the most recent
// HistoryWindow exchanges, then the new user message.
func (s *assistantService) buildContext(turns []entity.Turn, userMessage string) []llm.Message {
	windowed := turns
	if limit := s.opts.HistoryWindow * 2; len(windowed) > limit {
		windowed = windowed[len(windowed)-limit:]
	}

	history := make([]llm.Message, 0, len(windowed)+2)
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.AssistantSystemPromptV1,
	})
	for _, turn := range windowed {
		role := constant.ChatMessageRoleUser
		if turn.Type == entity.TurnTypeAI {
			role = constant.ChatMessageRoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: turn.Data.Content})
	}
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: userMessage,
	})
	return history
}
