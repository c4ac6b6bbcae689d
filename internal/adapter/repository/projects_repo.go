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

// ErrNotFound distinguishes a missing row from a hard failure; callers map
// it to 404/empty responses rather than 500s.
var ErrNotFound = errors.New("not found")

type ProjectsRepo struct {
	pool *pgxpool.Pool
}

func NewProjectsRepo(pool *pgxpool.Pool) *ProjectsRepo {
	return &ProjectsRepo{pool: pool}
}

const projectColumns = `id, name, coalesce(project_number,''), status, coalesce(project_title,''),
	coalesce(project_type,''), coalesce(start_date,''), coalesce(end_date,''),
	coalesce(estimated_participants,0), coalesce(sponsoring_agency,''), coalesce(subject,''),
	coalesce(project_description,''), coalesce(project_objectives,'{}'), coalesce(created_by,''),
	created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Name, &p.ProjectNumber, &p.Status, &p.ProjectTitle,
		&p.ProjectType, &p.StartDate, &p.EndDate,
		&p.EstimatedParticipants, &p.SponsoringAgency, &p.Subject,
		&p.ProjectDescription, &p.ProjectObjectives, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectsRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusDraft
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `INSERT INTO projects
		(id, name, project_number, status, created_by, created_at, updated_at)
		VALUES ($1,$2,nullif($3,''),$4,nullif($5,''),$6,$7)`,
		p.ID, p.Name, p.ProjectNumber, p.Status, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *ProjectsRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, id)
	return scanProject(row)
}

func (r *ProjectsRepo) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update writes the full editable field set; empty strings clear columns.
func (r *ProjectsRepo) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET
		name=$2, project_number=nullif($3,''), status=$4, project_title=nullif($5,''),
		project_type=nullif($6,''), start_date=nullif($7,''), end_date=nullif($8,''),
		estimated_participants=nullif($9,0), sponsoring_agency=nullif($10,''), subject=nullif($11,''),
		project_description=nullif($12,''), project_objectives=$13, updated_at=$14
		WHERE id=$1`,
		p.ID, p.Name, p.ProjectNumber, p.Status, p.ProjectTitle,
		p.ProjectType, p.StartDate, p.EndDate,
		p.EstimatedParticipants, p.SponsoringAgency, p.Subject,
		p.ProjectDescription, p.ProjectObjectives, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyMetadata fills project columns from document-extracted metadata,
// leaving columns untouched where extraction found nothing.
func (r *ProjectsRepo) ApplyMetadata(ctx context.Context, id uuid.UUID, meta map[string]interface{}) error {
	get := func(key string) interface{} {
		if v, ok := meta[key]; ok {
			return v
		}
		return nil
	}

	_, err := r.pool.Exec(ctx, `UPDATE projects SET
		project_number=coalesce($2,project_number),
		project_type=coalesce($3,project_type),
		start_date=coalesce($4,start_date),
		end_date=coalesce($5,end_date),
		estimated_participants=coalesce($6,estimated_participants),
		subject=coalesce($7,subject),
		project_objectives=coalesce($8,project_objectives),
		updated_at=now()
		WHERE id=$1`,
		id, get("project_number"), get("project_type"), get("start_date"), get("end_date"),
		get("estimated_participants"), get("subject"), toTextArray(get("project_objectives")))
	return err
}

func (r *ProjectsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func toTextArray(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if s, ok := v.([]string); ok {
		return s
	}
	return nil
}
