package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"proposal-manager/internal/adapter/repository"
	"proposal-manager/internal/domain"
)

// Assistant answers a chat turn given the thread so far and project context.
type Assistant interface {
	Chat(ctx context.Context, messages []domain.Message, projectContext map[string]interface{}) (string, error)
}

type ConversationStore interface {
	GetByProject(ctx context.Context, projectID uuid.UUID) (*domain.Conversation, error)
	Append(ctx context.Context, projectID uuid.UUID, msgs ...domain.Message) (*domain.Conversation, error)
}

// ContextFetcher gathers the project data handed to the assistant as
// grounding.
type ContextFetcher func(ctx context.Context, projectID uuid.UUID) (repository.ProjectContext, error)

type Chat struct {
	conversations ConversationStore
	fetchContext  ContextFetcher
	assistant     Assistant
	log           *zap.Logger
}

func NewChat(conversations ConversationStore, fetchContext ContextFetcher, assistant Assistant, log *zap.Logger) *Chat {
	return &Chat{conversations: conversations, fetchContext: fetchContext, assistant: assistant, log: log}
}

// Send appends the user message to the project thread, asks the assistant,
// and persists both turns. The context fetch is best-effort; the assistant
// still answers without it.
func (c *Chat) Send(ctx context.Context, projectID uuid.UUID, text string) (*domain.Conversation, error) {
	conv, err := c.conversations.GetByProject(ctx, projectID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	userMsg := domain.Message{Role: "user", Content: text, Timestamp: time.Now()}
	var thread []domain.Message
	if conv != nil {
		thread = conv.Messages
	}
	thread = append(thread, userMsg)

	projectContext := map[string]interface{}{}
	if c.fetchContext != nil {
		if pc, err := c.fetchContext(ctx, projectID); err == nil {
			projectContext = pc
		} else {
			c.log.Warn("project context fetch failed", zap.Error(err))
		}
	}

	reply, err := c.assistant.Chat(ctx, thread, projectContext)
	if err != nil {
		return nil, err
	}

	assistantMsg := domain.Message{Role: "assistant", Content: reply, Timestamp: time.Now()}
	return c.conversations.Append(ctx, projectID, userMsg, assistantMsg)
}
