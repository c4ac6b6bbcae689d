package docparse

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Project Data Sheet</w:t></w:r></w:p>
<w:p><w:r><w:t>Subject:</w:t></w:r><w:r><w:tab/><w:t>Energy Policy</w:t></w:r></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
</w:body></w:document>`

func TestExtractDocx(t *testing.T) {
	r := buildDocx(t, sampleDocumentXML)
	doc, err := ExtractDocx(r, r.Size())
	require.NoError(t, err)

	assert.Equal(t, "Project Data Sheet\nSubject:\tEnergy Policy\nLine one\nLine two", doc.Text)
	assert.Contains(t, doc.HTML, "<p>Project Data Sheet</p>")
}

func TestExtractDocx_FeedsMetadataParser(t *testing.T) {
	xmlDoc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Project Number: E/VRF-2025-0055</w:t></w:r></w:p>
<w:p><w:r><w:t>Subject: Renewable Energy</w:t></w:r></w:p>
<w:p><w:r><w:t>10 participants, 3/10/2025 to 3/21/2025</w:t></w:r></w:p>
</w:body></w:document>`
	r := buildDocx(t, xmlDoc)
	doc, err := ExtractDocx(r, r.Size())
	require.NoError(t, err)

	meta := ParseProjectData(doc.Text)
	assert.Equal(t, "E/VRF-2025-0055", meta.ProjectNumber)
	assert.Equal(t, "Renewable Energy", meta.Subject)
	assert.Equal(t, 10, meta.EstimatedParticipants)
	assert.Equal(t, "3/10/2025", meta.StartDate)
	assert.Equal(t, "3/21/2025", meta.EndDate)
}

func TestExtractDocx_NotAZip(t *testing.T) {
	r := bytes.NewReader([]byte("plain text, not a zip archive"))
	_, err := ExtractDocx(r, r.Size())
	assert.Error(t, err)
}

func TestExtractDocx_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r := bytes.NewReader(buf.Bytes())
	_, err = ExtractDocx(r, r.Size())
	assert.ErrorIs(t, err, errNoDocumentXML)
}

func TestExtractDocx_IgnoresNonTextElements(t *testing.T) {
	xmlDoc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>Only this text</w:t></w:r></w:p>
</w:body></w:document>`
	r := buildDocx(t, xmlDoc)
	doc, err := ExtractDocx(r, r.Size())
	require.NoError(t, err)
	assert.Equal(t, "Only this text", doc.Text)
}
