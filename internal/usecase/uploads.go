package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"proposal-manager/internal/domain"
	"proposal-manager/pkg/docparse"
)

type DocumentWriter interface {
	Upsert(ctx context.Context, d *domain.Document) error
}

type MetadataApplier interface {
	ApplyMetadata(ctx context.Context, id uuid.UUID, meta map[string]interface{}) error
}

type DocumentStorage interface {
	SaveDocument(projectID, docType, fileName string, data []byte) (string, error)
}

// Uploader handles document ingestion: extract text from the DOCX, parse the
// metadata the proposal pipeline needs, store the file, and push extracted
// fields onto the project row.
type Uploader struct {
	documents DocumentWriter
	projects  MetadataApplier
	storage   DocumentStorage
	log       *zap.Logger
}

func NewUploader(documents DocumentWriter, projects MetadataApplier, storage DocumentStorage, log *zap.Logger) *Uploader {
	return &Uploader{documents: documents, projects: projects, storage: storage, log: log}
}

func (u *Uploader) Upload(ctx context.Context, projectID uuid.UUID, docType, fileName string, data []byte, actor string) (*domain.Document, error) {
	extracted, err := docparse.ExtractDocx(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("extract document: %w", err)
	}

	var meta map[string]interface{}
	switch docType {
	case domain.DocumentTypeProjectData:
		meta = docparse.ParseProjectData(extracted.Text).Map()
	case domain.DocumentTypeBiosObjectives:
		meta = docparse.ParseBiosObjectives(extracted.Text).Map()
	default:
		return nil, fmt.Errorf("unknown document type %q", docType)
	}

	fileURL, err := u.storage.SaveDocument(projectID.String(), docType, fileName, data)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ProjectID:         projectID,
		Type:              docType,
		FileName:          fileName,
		FileURL:           fileURL,
		FileSize:          int64(len(data)),
		ExtractedContent:  extracted.Text,
		ExtractedMetadata: meta,
		UploadedBy:        actor,
	}
	if err := u.documents.Upsert(ctx, doc); err != nil {
		return nil, err
	}

	// Extracted fields flow onto the project row so the UI shows them without
	// a manual copy step. Only project_data carries project columns.
	if docType == domain.DocumentTypeProjectData && len(meta) > 0 {
		if err := u.projects.ApplyMetadata(ctx, projectID, meta); err != nil {
			u.log.Warn("apply metadata failed", zap.String("project_id", projectID.String()), zap.Error(err))
		}
	}
	return doc, nil
}
