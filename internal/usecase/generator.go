package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"proposal-manager/internal/adapter/repository"
	"proposal-manager/internal/domain"
	"proposal-manager/internal/model"
	"proposal-manager/pkg/urlcheck"
)

// ContentGenerator produces a full proposal draft from project inputs.
type ContentGenerator interface {
	GenerateProposal(ctx context.Context, projectData, biosObjectives map[string]interface{}, resources []map[string]interface{}) (*model.ProposalContent, error)
}

// URLChecker verifies a batch of resource links.
type URLChecker interface {
	ValidateURLs(ctx context.Context, urls []string, maxConcurrent int) []urlcheck.Result
}

type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

type DocumentStore interface {
	GetByProjectAndType(ctx context.Context, projectID uuid.UUID, docType string) (*domain.Document, error)
}

type ResourceStore interface {
	ListActive(ctx context.Context) ([]domain.Resource, error)
}

type ProposalStore interface {
	SaveGenerated(ctx context.Context, projectID uuid.UUID, content map[string]interface{}, actor string) (*domain.Proposal, error)
}

// Generator runs the proposal pipeline: gather project inputs, ask the model
// for a draft, verify every resource link and drop the dead ones, then
// persist a new version.
type Generator struct {
	projects  ProjectStore
	documents DocumentStore
	resources ResourceStore
	proposals ProposalStore
	gen       ContentGenerator
	checker   URLChecker
	log       *zap.Logger
}

func NewGenerator(projects ProjectStore, documents DocumentStore, resources ResourceStore,
	proposals ProposalStore, gen ContentGenerator, checker URLChecker, log *zap.Logger) *Generator {
	return &Generator{
		projects:  projects,
		documents: documents,
		resources: resources,
		proposals: proposals,
		gen:       gen,
		checker:   checker,
		log:       log,
	}
}

func (g *Generator) Generate(ctx context.Context, projectID uuid.UUID, actor string) (*domain.Proposal, error) {
	project, err := g.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	projectData := g.documentMetadata(ctx, projectID, domain.DocumentTypeProjectData)
	// Fall back to the project row when no document was uploaded, so a
	// manually filled project can still generate.
	if len(projectData) == 0 {
		projectData = projectAsMetadata(project)
	}
	biosObjectives := g.documentMetadata(ctx, projectID, domain.DocumentTypeBiosObjectives)

	active, err := g.resources.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	content, err := g.gen.GenerateProposal(ctx, projectData, biosObjectives, resourceMaps(active))
	if err != nil {
		return nil, fmt.Errorf("generate proposal: %w", err)
	}

	urls := content.ResourceURLs()
	results := g.checker.ValidateURLs(ctx, urls, urlcheck.DefaultMaxConcurrent)
	invalid := urlcheck.InvalidURLs(results)
	if len(invalid) > 0 {
		g.log.Info("dropping entries with invalid urls",
			zap.Int("checked", len(urls)), zap.Int("invalid", len(invalid)))
		content.DropURLs(invalid)
	}

	contentMap, err := toMap(content)
	if err != nil {
		return nil, err
	}
	return g.proposals.SaveGenerated(ctx, projectID, contentMap, actor)
}

// documentMetadata returns the extracted metadata for a document type, or an
// empty map when the document is missing.
func (g *Generator) documentMetadata(ctx context.Context, projectID uuid.UUID, docType string) map[string]interface{} {
	doc, err := g.documents.GetByProjectAndType(ctx, projectID, docType)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			g.log.Warn("fetch document failed", zap.String("type", docType), zap.Error(err))
		}
		return map[string]interface{}{}
	}
	return doc.ExtractedMetadata
}

func projectAsMetadata(p *domain.Project) map[string]interface{} {
	m := map[string]interface{}{"name": p.Name}
	if p.ProjectNumber != "" {
		m["project_number"] = p.ProjectNumber
	}
	if p.ProjectTitle != "" {
		m["project_title"] = p.ProjectTitle
	}
	if p.ProjectType != "" {
		m["project_type"] = p.ProjectType
	}
	if p.StartDate != "" {
		m["start_date"] = p.StartDate
	}
	if p.EndDate != "" {
		m["end_date"] = p.EndDate
	}
	if p.EstimatedParticipants > 0 {
		m["estimated_participants"] = p.EstimatedParticipants
	}
	if p.Subject != "" {
		m["subject"] = p.Subject
	}
	if p.ProjectDescription != "" {
		m["project_description"] = p.ProjectDescription
	}
	if len(p.ProjectObjectives) > 0 {
		m["project_objectives"] = p.ProjectObjectives
	}
	return m
}

func resourceMaps(resources []domain.Resource) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(resources))
	for _, r := range resources {
		m := map[string]interface{}{
			"id":       r.ID.String(),
			"category": r.Category,
			"name":     r.Name,
		}
		if r.Description != "" {
			m["description"] = r.Description
		}
		if r.URL != "" {
			m["url"] = r.URL
		}
		if r.MeetingFocus != "" {
			m["meeting_focus"] = r.MeetingFocus
		}
		if r.Price != "" {
			m["price"] = r.Price
		}
		if r.Accessibility != "" {
			m["accessibility"] = r.Accessibility
		}
		out = append(out, m)
	}
	return out
}

func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
