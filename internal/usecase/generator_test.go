package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"proposal-manager/internal/adapter/repository"
	"proposal-manager/internal/domain"
	"proposal-manager/internal/model"
	"proposal-manager/pkg/urlcheck"
)

type fakeProjects struct {
	project *domain.Project
}

func (f *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	if f.project == nil || f.project.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.project, nil
}

type fakeDocuments struct {
	docs map[string]*domain.Document
}

func (f *fakeDocuments) GetByProjectAndType(_ context.Context, _ uuid.UUID, docType string) (*domain.Document, error) {
	if d, ok := f.docs[docType]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

type fakeResources struct {
	active []domain.Resource
}

func (f *fakeResources) ListActive(context.Context) ([]domain.Resource, error) {
	return f.active, nil
}

type fakeProposals struct {
	saved   map[string]interface{}
	actor   string
	version int
}

func (f *fakeProposals) SaveGenerated(_ context.Context, projectID uuid.UUID, content map[string]interface{}, actor string) (*domain.Proposal, error) {
	f.saved = content
	f.actor = actor
	f.version++
	return &domain.Proposal{ID: uuid.New(), ProjectID: projectID, Version: f.version, Content: content}, nil
}

type fakeGen struct {
	content     *model.ProposalContent
	err         error
	projectData map[string]interface{}
	bios        map[string]interface{}
	resources   []map[string]interface{}
}

func (f *fakeGen) GenerateProposal(_ context.Context, projectData, bios map[string]interface{}, resources []map[string]interface{}) (*model.ProposalContent, error) {
	f.projectData = projectData
	f.bios = bios
	f.resources = resources
	return f.content, f.err
}

type fakeChecker struct {
	invalid map[string]bool
	checked []string
}

func (f *fakeChecker) ValidateURLs(_ context.Context, urls []string, _ int) []urlcheck.Result {
	f.checked = urls
	out := make([]urlcheck.Result, len(urls))
	for i, u := range urls {
		out[i] = urlcheck.Result{URL: u, IsValid: !f.invalid[u]}
		if f.invalid[u] {
			out[i].Error = "HTTP 404 Not Found"
		}
	}
	return out
}

func generationContent() *model.ProposalContent {
	return &model.ProposalContent{
		WhySanDiego: "Dense civic ecosystem on the border.",
		GovernmentalResources: []model.ResourceItem{
			{Name: "City Hall", URL: "https://www.sandiego.gov", Description: "d", MeetingFocus: "m"},
			{Name: "Dead Office", URL: "https://dead.example.com", Description: "d", MeetingFocus: "m"},
		},
		AcademicResources: []model.ResourceItem{
			{Name: "UCSD", URL: "https://ucsd.edu", Description: "d", MeetingFocus: "m"},
		},
		NonprofitResources: []model.ResourceItem{},
		CulturalActivities: []model.CulturalActivity{
			{Name: "Balboa Park", URL: "https://balboapark.org", Price: "Free", Description: "d", Accessibility: "a"},
		},
	}
}

func newTestGenerator(projects *fakeProjects, docs *fakeDocuments, res *fakeResources,
	props *fakeProposals, gen *fakeGen, checker *fakeChecker) *Generator {
	return NewGenerator(projects, docs, res, props, gen, checker, zap.NewNop())
}

func TestGenerate_DropsInvalidURLEntries(t *testing.T) {
	projectID := uuid.New()
	projects := &fakeProjects{project: &domain.Project{ID: projectID, Name: "Energy Visit"}}
	docs := &fakeDocuments{docs: map[string]*domain.Document{
		domain.DocumentTypeProjectData: {ExtractedMetadata: map[string]interface{}{"subject": "Energy"}},
	}}
	props := &fakeProposals{}
	gen := &fakeGen{content: generationContent()}
	checker := &fakeChecker{invalid: map[string]bool{"https://dead.example.com": true}}

	p, err := newTestGenerator(projects, docs, &fakeResources{}, props, gen, checker).
		Generate(context.Background(), projectID, "editor@example.org")
	require.NoError(t, err)

	// Every URL across categories was checked.
	assert.ElementsMatch(t, []string{
		"https://www.sandiego.gov",
		"https://dead.example.com",
		"https://ucsd.edu",
		"https://balboapark.org",
	}, checker.checked)

	// The entry with the dead URL never reaches storage.
	gov, ok := props.saved["governmental_resources"].([]interface{})
	require.True(t, ok)
	require.Len(t, gov, 1)
	first, ok := gov[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "City Hall", first["name"])

	assert.Equal(t, "editor@example.org", props.actor)
	assert.Equal(t, 1, p.Version)
}

func TestGenerate_FailsClosedOnGenerationError(t *testing.T) {
	projectID := uuid.New()
	projects := &fakeProjects{project: &domain.Project{ID: projectID, Name: "Energy Visit"}}
	props := &fakeProposals{}
	gen := &fakeGen{err: errors.New("schema validation failed")}

	_, err := newTestGenerator(projects, &fakeDocuments{}, &fakeResources{}, props, gen, &fakeChecker{}).
		Generate(context.Background(), projectID, "")
	require.Error(t, err)
	assert.Nil(t, props.saved, "nothing is persisted when generation fails")
}

func TestGenerate_FallsBackToProjectRowWithoutDocument(t *testing.T) {
	projectID := uuid.New()
	projects := &fakeProjects{project: &domain.Project{
		ID: projectID, Name: "Energy Visit", Subject: "Energy Policy", EstimatedParticipants: 10,
	}}
	gen := &fakeGen{content: generationContent()}

	_, err := newTestGenerator(projects, &fakeDocuments{}, &fakeResources{}, &fakeProposals{}, gen, &fakeChecker{}).
		Generate(context.Background(), projectID, "")
	require.NoError(t, err)

	assert.Equal(t, "Energy Visit", gen.projectData["name"])
	assert.Equal(t, "Energy Policy", gen.projectData["subject"])
	assert.Empty(t, gen.bios)
}

func TestGenerate_PassesActiveResourcesAsCandidates(t *testing.T) {
	projectID := uuid.New()
	projects := &fakeProjects{project: &domain.Project{ID: projectID, Name: "Energy Visit"}}
	res := &fakeResources{active: []domain.Resource{
		{ID: uuid.New(), Category: domain.ResourceCategoryAcademic, Name: "UCSD", URL: "https://ucsd.edu"},
	}}
	gen := &fakeGen{content: generationContent()}

	_, err := newTestGenerator(projects, &fakeDocuments{}, res, &fakeProposals{}, gen, &fakeChecker{}).
		Generate(context.Background(), projectID, "")
	require.NoError(t, err)

	require.Len(t, gen.resources, 1)
	assert.Equal(t, "UCSD", gen.resources[0]["name"])
	assert.Equal(t, "academic", gen.resources[0]["category"])
}

func TestGenerate_UnknownProject(t *testing.T) {
	_, err := newTestGenerator(&fakeProjects{}, &fakeDocuments{}, &fakeResources{}, &fakeProposals{}, &fakeGen{}, &fakeChecker{}).
		Generate(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
