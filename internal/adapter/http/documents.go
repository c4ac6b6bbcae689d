package http

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"proposal-manager/internal/domain"
)

// UploadDocument ingests a multipart DOCX upload: form fields project_id and
// type, plus the file itself. Extracted metadata comes back with the document
// so the client can show what was recognized.
func (h *Handler) UploadDocument(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.FormValue("project_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project_id"})
	}

	docType := c.FormValue("type")
	if docType != domain.DocumentTypeProjectData && docType != domain.DocumentTypeBiosObjectives {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must be project_data or bios_objectives"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".docx" && ext != ".doc" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only .docx and .doc files are supported"})
	}

	f, err := fh.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, err)
	}

	doc, err := h.uploader.Upload(c.Context(), projectID, docType, fh.Filename, data, c.FormValue("uploaded_by"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"document":           doc,
		"extracted_metadata": doc.ExtractedMetadata,
	})
}

func (h *Handler) ListProjectDocuments(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return nil
	}
	docs, err := h.documents.GetByProject(c.Context(), projectID)
	if err != nil {
		return h.fail(c, err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return c.JSON(docs)
}
