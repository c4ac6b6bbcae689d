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

type ProposalsRepo struct {
	pool *pgxpool.Pool
}

func NewProposalsRepo(pool *pgxpool.Pool) *ProposalsRepo {
	return &ProposalsRepo{pool: pool}
}

const proposalColumns = `id, project_id, version, status, content, coalesce(pdf_url,''), coalesce(created_by,''), created_at, updated_at`

func scanProposal(row pgx.Row) (*domain.Proposal, error) {
	var p domain.Proposal
	var contentB []byte
	err := row.Scan(&p.ID, &p.ProjectID, &p.Version, &p.Status, &contentB, &p.PDFUrl,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentB, &p.Content); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProposalsRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id=$1`, id)
	return scanProposal(row)
}

func (r *ProposalsRepo) GetByProject(ctx context.Context, projectID uuid.UUID) (*domain.Proposal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE project_id=$1`, projectID)
	return scanProposal(row)
}

// SaveGenerated persists freshly generated content for a project: version 1
// on first generation, version+1 with an audit row holding the prior content
// on regeneration. Reads and writes are not guarded against concurrent
// editors; the history row is an audit trail only.
func (r *ProposalsRepo) SaveGenerated(ctx context.Context, projectID uuid.UUID, content map[string]interface{}, actor string) (*domain.Proposal, error) {
	existing, err := r.GetByProject(ctx, projectID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	contentB, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	if existing == nil {
		p := &domain.Proposal{
			ID:        uuid.New(),
			ProjectID: projectID,
			Version:   1,
			Status:    "draft",
			Content:   content,
			CreatedBy: actor,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err := r.pool.Exec(ctx, `INSERT INTO proposals
			(id, project_id, version, status, content, created_by, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,nullif($6,''),$7,$8)`,
			p.ID, p.ProjectID, p.Version, p.Status, contentB, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	if err := r.insertHistory(ctx, existing, "AI regeneration", actor); err != nil {
		return nil, err
	}

	existing.Version++
	existing.Content = content
	existing.UpdatedAt = now
	_, err = r.pool.Exec(ctx, `UPDATE proposals SET content=$2, version=$3, updated_at=$4 WHERE id=$1`,
		existing.ID, contentB, existing.Version, existing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// Save persists a manual edit, recording the prior content in history.
// Last write wins.
func (r *ProposalsRepo) Save(ctx context.Context, id uuid.UUID, content map[string]interface{}, status, actor string) (*domain.Proposal, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.insertHistory(ctx, existing, "Manual edit", actor); err != nil {
		return nil, err
	}

	if content != nil {
		existing.Content = content
	}
	if status != "" {
		existing.Status = status
	}
	existing.UpdatedAt = time.Now()

	contentB, err := json.Marshal(existing.Content)
	if err != nil {
		return nil, err
	}
	_, err = r.pool.Exec(ctx, `UPDATE proposals SET content=$2, status=$3, updated_at=$4 WHERE id=$1`,
		existing.ID, contentB, existing.Status, existing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *ProposalsRepo) insertHistory(ctx context.Context, prior *domain.Proposal, summary, actor string) error {
	contentB, err := json.Marshal(prior.Content)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO proposal_history
		(id, proposal_id, version, content, change_summary, edited_by, edited_at)
		VALUES ($1,$2,$3,$4,$5,nullif($6,''),$7)`,
		uuid.New(), prior.ID, prior.Version, contentB, summary, actor, time.Now())
	return err
}

func (r *ProposalsRepo) History(ctx context.Context, proposalID uuid.UUID) ([]domain.ProposalHistory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, proposal_id, version, content,
		coalesce(change_summary,''), coalesce(edited_by,''), edited_at
		FROM proposal_history WHERE proposal_id=$1 ORDER BY edited_at DESC`, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProposalHistory
	for rows.Next() {
		var h domain.ProposalHistory
		var contentB []byte
		if err := rows.Scan(&h.ID, &h.ProposalID, &h.Version, &contentB, &h.ChangeSummary, &h.EditedBy, &h.EditedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(contentB, &h.Content); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// SetPDFUrl records the latest export location on the proposal row.
func (r *ProposalsRepo) SetPDFUrl(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx, `UPDATE proposals SET pdf_url=$2 WHERE id=$1`, id, url)
	return err
}
