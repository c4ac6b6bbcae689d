package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"proposal-manager/internal/domain"
)

type ResourcesRepo struct {
	pool *pgxpool.Pool
}

func NewResourcesRepo(pool *pgxpool.Pool) *ResourcesRepo {
	return &ResourcesRepo{pool: pool}
}

const resourceColumns = `id, category, name, coalesce(description,''), coalesce(url,''),
	coalesce(meeting_focus,''), coalesce(price,''), coalesce(accessibility,''), is_active, created_at, updated_at`

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var res domain.Resource
	err := row.Scan(&res.ID, &res.Category, &res.Name, &res.Description, &res.URL,
		&res.MeetingFocus, &res.Price, &res.Accessibility, &res.IsActive, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourcesRepo) Create(ctx context.Context, res *domain.Resource) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	res.IsActive = true
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `INSERT INTO resources
		(id, category, name, description, url, meeting_focus, price, accessibility, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,nullif($4,''),nullif($5,''),nullif($6,''),nullif($7,''),nullif($8,''),$9,$10,$11)`,
		res.ID, res.Category, res.Name, res.Description, res.URL,
		res.MeetingFocus, res.Price, res.Accessibility, res.IsActive, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *ResourcesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id=$1`, id)
	return scanResource(row)
}

// List returns resources, optionally filtered by category; pass "" for all.
// Inactive rows are included so the library view can manage them.
func (r *ResourcesRepo) List(ctx context.Context, category string) ([]domain.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM resources`
	args := []interface{}{}
	if category != "" {
		q += ` WHERE category=$1`
		args = append(args, category)
	}
	q += ` ORDER BY category, name`
	return r.queryResources(ctx, q, args...)
}

// ListActive returns the candidate pool for proposal generation.
func (r *ResourcesRepo) ListActive(ctx context.Context) ([]domain.Resource, error) {
	return r.queryResources(ctx, `SELECT `+resourceColumns+` FROM resources WHERE is_active ORDER BY category, name`)
}

func (r *ResourcesRepo) queryResources(ctx context.Context, q string, args ...interface{}) ([]domain.Resource, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *ResourcesRepo) Update(ctx context.Context, res *domain.Resource) error {
	res.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, `UPDATE resources SET
		category=$2, name=$3, description=nullif($4,''), url=nullif($5,''),
		meeting_focus=nullif($6,''), price=nullif($7,''), accessibility=nullif($8,''),
		is_active=$9, updated_at=$10
		WHERE id=$1`,
		res.ID, res.Category, res.Name, res.Description, res.URL,
		res.MeetingFocus, res.Price, res.Accessibility, res.IsActive, res.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-removes a resource from the candidate pool; the row stays
// so existing proposals keep referring to it.
func (r *ResourcesRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resources SET is_active=false, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
