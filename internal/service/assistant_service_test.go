package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
	"ai-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeHistoryRepo struct {
	mu      sync.Mutex
	store   map[int64][]entity.Turn
	saveErr error
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{store: make(map[int64][]entity.Turn)}
}

func (r *fakeHistoryRepo) Save(_ context.Context, chatId int64, turns []entity.Turn) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[chatId] = append([]entity.Turn(nil), turns...)
	return nil
}

func (r *fakeHistoryRepo) FindByChatId(_ context.Context, chatId int64) ([]entity.Turn, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	turns, ok := r.store[chatId]
	if !ok {
		return nil, false, nil
	}
	return append([]entity.Turn(nil), turns...), true, nil
}

func (r *fakeHistoryRepo) Delete(_ context.Context, chatId int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, chatId)
	return nil
}

type fakeProvider struct {
	mu    sync.Mutex
	calls [][]llm.Message
	errs  []error // consumed one per call; nil entries mean success
	delay time.Duration
}

func (p *fakeProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, append([]llm.Message(nil), history...))
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("reply %d", len(p.calls)), nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *fakeProvider) lastCall() []llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[len(p.calls)-1]
}

func TestAssistantService_PersistsFullHistoryButWindowsContext(t *testing.T) {
	repo := newFakeHistoryRepo()
	provider := &fakeProvider{}
	svc := NewAssistantService(repo, provider, nopLogger{}, AssistantOptions{HistoryWindow: 3})
	ctx := context.Background()

	const rounds = 5
	for i := 1; i <= rounds; i++ {
		_, err := svc.GenerateResponse(ctx, 1, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	// The persisted sequence contains every turn pair, never trimmed.
	turns, found, err := repo.FindByChatId(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, turns, rounds*2)
	assert.Equal(t, "question 1", turns[0].Data.Content)
	assert.Equal(t, entity.TurnTypeAI, turns[len(turns)-1].Type)

	// The context of the last call carries at most 3 past exchanges:
	// system prompt + 6 windowed turns + the new user message.
	last := provider.lastCall()
	require.Len(t, last, 1+3*2+1)
	assert.Equal(t, constant.ChatMessageRoleSystem, last[0].Role)
	assert.Equal(t, "question 2", last[1].Content) // oldest windowed turn
	assert.Equal(t, "question 5", last[len(last)-1].Content)
	assert.Equal(t, constant.ChatMessageRoleUser, last[len(last)-1].Role)
}

func TestAssistantService_FirstTurnContext(t *testing.T) {
	repo := newFakeHistoryRepo()
	provider := &fakeProvider{}
	svc := NewAssistantService(repo, provider, nopLogger{}, AssistantOptions{HistoryWindow: 3})

	response, err := svc.GenerateResponse(context.Background(), 1, "hello")
	require.NoError(t, err)
	assert.Equal(t, "reply 1", response)

	last := provider.lastCall()
	require.Len(t, last, 2)
	assert.Equal(t, constant.ChatMessageRoleSystem, last[0].Role)
	assert.Equal(t, "hello", last[1].Content)
}

func TestAssistantService_GenerationFaultSavesNothing(t *testing.T) {
	repo := newFakeHistoryRepo()
	provider := &fakeProvider{errs: []error{errors.New("upstream down"), errors.New("upstream down")}}
	svc := NewAssistantService(repo, provider, nopLogger{}, AssistantOptions{HistoryWindow: 3, MaxAttempts: 2})

	_, err := svc.GenerateResponse(context.Background(), 1, "hello")
	require.Error(t, err)

	_, found, err := repo.FindByChatId(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAssistantService_RetriesOnce(t *testing.T) {
	repo := newFakeHistoryRepo()
	provider := &fakeProvider{errs: []error{errors.New("transient")}}
	svc := NewAssistantService(repo, provider, nopLogger{}, AssistantOptions{HistoryWindow: 3, MaxAttempts: 2})

	response, err := svc.GenerateResponse(context.Background(), 1, "hello")
	require.NoError(t, err)
	assert.Equal(t, "reply 2", response)
	assert.Equal(t, 2, provider.callCount())
}

func TestAssistantService_SaveFaultPropagates(t *testing.T) {
	repo := newFakeHistoryRepo()
	repo.saveErr = errors.New("disk full")
	provider := &fakeProvider{}
	svc := NewAssistantService(repo, provider, nopLogger{}, AssistantOptions{HistoryWindow: 3})

	_, err := svc.GenerateResponse(context.Background(), 1, "hello")
	require.Error(t, err)
}

func TestAssistantService_ConcurrentCallsLoseNoTurns(t *testing.T) {
	repo := newFakeHistoryRepo()
	provider := &fakeProvider{delay: 5 * time.Millisecond}
	svc := NewAssistantService(repo, provider, nopLogger{}, AssistantOptions{HistoryWindow: 3})
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.GenerateResponse(ctx, 1, fmt.Sprintf("question %d", n))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Per-chat serialization means every turn pair survives.
	turns, found, err := repo.FindByChatId(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, turns, callers*2)
}
