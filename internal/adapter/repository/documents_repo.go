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

type DocumentsRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentsRepo(pool *pgxpool.Pool) *DocumentsRepo {
	return &DocumentsRepo{pool: pool}
}

// Upsert stores a document, replacing any prior upload of the same type for
// the project (one document per project+type).
func (r *DocumentsRepo) Upsert(ctx context.Context, d *domain.Document) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.UploadedAt = time.Now()

	metaB, err := json.Marshal(d.ExtractedMetadata)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx, `INSERT INTO documents
		(id, project_id, type, file_name, file_url, file_size, extracted_content, extracted_metadata, uploaded_by, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,nullif($9,''),$10)
		ON CONFLICT (project_id, type) DO UPDATE SET
			file_name=EXCLUDED.file_name, file_url=EXCLUDED.file_url, file_size=EXCLUDED.file_size,
			extracted_content=EXCLUDED.extracted_content, extracted_metadata=EXCLUDED.extracted_metadata,
			uploaded_by=EXCLUDED.uploaded_by, uploaded_at=EXCLUDED.uploaded_at
		RETURNING id`,
		d.ID, d.ProjectID, d.Type, d.FileName, d.FileURL, d.FileSize,
		d.ExtractedContent, metaB, d.UploadedBy, d.UploadedAt).Scan(&d.ID)
}

const documentColumns = `id, project_id, type, file_name, file_url, file_size,
	coalesce(extracted_content,''), coalesce(extracted_metadata,'{}'), coalesce(uploaded_by,''), uploaded_at`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	var metaB []byte
	err := row.Scan(&d.ID, &d.ProjectID, &d.Type, &d.FileName, &d.FileURL, &d.FileSize,
		&d.ExtractedContent, &metaB, &d.UploadedBy, &d.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metaB, &d.ExtractedMetadata); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentsRepo) GetByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+documentColumns+` FROM documents WHERE project_id=$1 ORDER BY type`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *DocumentsRepo) GetByProjectAndType(ctx context.Context, projectID uuid.UUID, docType string) (*domain.Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE project_id=$1 AND type=$2`, projectID, docType)
	return scanDocument(row)
}
