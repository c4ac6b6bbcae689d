package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"proposal-manager/internal/domain"
)

type fakeRenderer struct {
	output [][]byte
	calls  int
}

func (f *fakeRenderer) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	out := f.output[f.calls]
	f.calls++
	if out == nil {
		return nil, errors.New("chrome crashed")
	}
	return out, nil
}

type fakeStore struct {
	fileName string
	data     []byte
}

func (f *fakeStore) SaveExport(fileName string, data []byte) (string, error) {
	f.fileName = fileName
	f.data = data
	return "/files/exports/" + fileName, nil
}

type fakeProposalReader struct {
	proposal *domain.Proposal
	pdfURL   string
}

func (f *fakeProposalReader) GetByID(_ context.Context, id uuid.UUID) (*domain.Proposal, error) {
	if f.proposal == nil || f.proposal.ID != id {
		return nil, errors.New("not found")
	}
	return f.proposal, nil
}

func (f *fakeProposalReader) SetPDFUrl(_ context.Context, _ uuid.UUID, url string) error {
	f.pdfURL = url
	return nil
}

func exportFixture(t *testing.T) (*fakeProjects, *fakeProposalReader) {
	t.Helper()
	projectID := uuid.New()
	content, err := toMap(generationContent())
	require.NoError(t, err)
	return &fakeProjects{project: &domain.Project{ID: projectID, Name: "Energy Visit"}},
		&fakeProposalReader{proposal: &domain.Proposal{
			ID: uuid.New(), ProjectID: projectID, Version: 2, Content: content,
		}}
}

func TestExport_PDF(t *testing.T) {
	projects, proposals := exportFixture(t)
	renderer := &fakeRenderer{output: [][]byte{[]byte("%PDF-1.4 fake")}}
	store := &fakeStore{}

	e := NewExporter(projects, proposals, renderer, store, zap.NewNop())
	res, err := e.Export(context.Background(), proposals.proposal.ID, FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, []byte("%PDF-1.4 fake"), res.Data)
	assert.Contains(t, res.FileName, "_v2_")
	assert.Equal(t, "/files/exports/"+res.FileName, proposals.pdfURL)
}

func TestExport_PDFRetriesOnBadOutput(t *testing.T) {
	projects, proposals := exportFixture(t)
	// First attempt errors, second returns junk, third succeeds.
	renderer := &fakeRenderer{output: [][]byte{nil, []byte("<html>"), []byte("%PDF-1.4 ok")}}

	e := NewExporter(projects, proposals, renderer, &fakeStore{}, zap.NewNop())
	res, err := e.Export(context.Background(), proposals.proposal.ID, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, 3, renderer.calls)
	assert.Equal(t, []byte("%PDF-1.4 ok"), res.Data)
}

func TestExport_Docx(t *testing.T) {
	projects, proposals := exportFixture(t)
	store := &fakeStore{}
	renderer := &fakeRenderer{}

	e := NewExporter(projects, proposals, renderer, store, zap.NewNop())
	res, err := e.Export(context.Background(), proposals.proposal.ID, FormatDocx)
	require.NoError(t, err)

	assert.Contains(t, res.FileName, ".docx")
	zr, err := zip.NewReader(bytes.NewReader(res.Data), int64(len(res.Data)))
	require.NoError(t, err)
	assert.NotEmpty(t, zr.File)
	// DOCX export never touches the renderer or the pdf_url column.
	assert.Zero(t, renderer.calls)
	assert.Empty(t, proposals.pdfURL)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	projects, proposals := exportFixture(t)
	e := NewExporter(projects, proposals, &fakeRenderer{}, &fakeStore{}, zap.NewNop())
	_, err := e.Export(context.Background(), proposals.proposal.ID, "xlsx")
	assert.Error(t, err)
}
