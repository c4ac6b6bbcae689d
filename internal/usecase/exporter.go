package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"proposal-manager/internal/domain"
	"proposal-manager/internal/model"
	"proposal-manager/pkg/export"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type ExportStore interface {
	SaveExport(fileName string, data []byte) (string, error)
}

type ProposalReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	SetPDFUrl(ctx context.Context, id uuid.UUID, url string) error
}

const (
	FormatPDF  = "pdf"
	FormatDocx = "docx"
)

type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
	URL         string
}

type Exporter struct {
	projects  ProjectStore
	proposals ProposalReader
	renderer  Renderer
	store     ExportStore
	contact   export.ContactInfo
	log       *zap.Logger
}

func NewExporter(projects ProjectStore, proposals ProposalReader, renderer Renderer, store ExportStore, log *zap.Logger) *Exporter {
	return &Exporter{
		projects:  projects,
		proposals: proposals,
		renderer:  renderer,
		store:     store,
		contact:   export.DefaultContact,
		log:       log,
	}
}

// Export renders a proposal in the requested format and saves the artifact.
// Tombstoned entries never reach the output.
func (e *Exporter) Export(ctx context.Context, proposalID uuid.UUID, format string) (*ExportResult, error) {
	proposal, err := e.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	project, err := e.projects.GetByID(ctx, proposal.ProjectID)
	if err != nil {
		return nil, err
	}

	content, err := contentFromMap(proposal.Content)
	if err != nil {
		return nil, fmt.Errorf("proposal content: %w", err)
	}

	base := fmt.Sprintf("proposal_%s_v%d_%s", proposal.ProjectID, proposal.Version, time.Now().Format("20060102T150405"))

	switch format {
	case FormatDocx:
		data, err := export.BuildDocx(project, content, e.contact)
		if err != nil {
			return nil, err
		}
		fileName := base + ".docx"
		url, err := e.store.SaveExport(fileName, data)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			FileName:    fileName,
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Data:        data,
			URL:         url,
		}, nil

	case FormatPDF:
		html, err := export.RenderHTML(project, content, e.contact)
		if err != nil {
			return nil, err
		}
		data, err := e.renderPDF(ctx, html)
		if err != nil {
			return nil, err
		}
		fileName := base + ".pdf"
		url, err := e.store.SaveExport(fileName, data)
		if err != nil {
			return nil, err
		}
		if err := e.proposals.SetPDFUrl(ctx, proposal.ID, url); err != nil {
			e.log.Warn("record pdf url failed", zap.Error(err))
		}
		return &ExportResult{FileName: fileName, ContentType: "application/pdf", Data: data, URL: url}, nil

	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// renderPDF retries the headless renderer a few times; Chrome startup is
// flaky under load. Output must carry the PDF signature.
func (e *Exporter) renderPDF(ctx context.Context, html string) ([]byte, error) {
	const attempts = 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		data, err := e.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if bytes.HasPrefix(data, []byte("%PDF")) {
				return data, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(data))
		}
		lastErr = err
		e.log.Warn("pdf render attempt failed", zap.Int("attempt", i+1), zap.Error(err))
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("pdf rendering failed after %d attempts: %w", attempts, lastErr)
}

func contentFromMap(m map[string]interface{}) (*model.ProposalContent, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var c model.ProposalContent
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
