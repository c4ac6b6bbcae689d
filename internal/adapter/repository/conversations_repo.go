package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"proposal-manager/internal/domain"
)

// ConversationsRepo keeps one chat thread per project, messages stored as a
// JSONB array on the row.
type ConversationsRepo struct {
	pool *pgxpool.Pool
}

func NewConversationsRepo(pool *pgxpool.Pool) *ConversationsRepo {
	return &ConversationsRepo{pool: pool}
}

func (r *ConversationsRepo) GetByProject(ctx context.Context, projectID uuid.UUID) (*domain.Conversation, error) {
	var c domain.Conversation
	var msgB []byte
	err := r.pool.QueryRow(ctx, `SELECT id, project_id, coalesce(messages,'[]'), created_at, updated_at
		FROM conversations WHERE project_id=$1`, projectID).
		Scan(&c.ID, &c.ProjectID, &msgB, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(msgB, &c.Messages); err != nil {
		return nil, err
	}
	return &c, nil
}

// Append adds messages to the project's thread, creating it on first use.
func (r *ConversationsRepo) Append(ctx context.Context, projectID uuid.UUID, msgs ...domain.Message) (*domain.Conversation, error) {
	c, err := r.GetByProject(ctx, projectID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	if c == nil {
		c = &domain.Conversation{
			ID:        uuid.New(),
			ProjectID: projectID,
			CreatedAt: now,
		}
	}
	c.Messages = append(c.Messages, msgs...)
	c.UpdatedAt = now

	msgB, err := json.Marshal(c.Messages)
	if err != nil {
		return nil, err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO conversations (id, project_id, messages, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (project_id) DO UPDATE SET messages=EXCLUDED.messages, updated_at=EXCLUDED.updated_at`,
		c.ID, c.ProjectID, msgB, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
