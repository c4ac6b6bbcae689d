package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"proposal-manager/internal/adapter/repository"
	"proposal-manager/internal/domain"
	"proposal-manager/internal/usecase"
)

// generationTimeout bounds the whole pipeline: the model call, the URL
// batch, and persistence.
const generationTimeout = 120 * time.Second

type generateReq struct {
	ProjectID string `json:"project_id"`
	CreatedBy string `json:"created_by"`
}

func (h *Handler) GenerateProposal(c *fiber.Ctx) error {
	var req generateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project_id"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), generationTimeout)
	defer cancel()

	proposal, err := h.generator.Generate(ctx, projectID, req.CreatedBy)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

func (h *Handler) GetProposal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	p, err := h.proposals.GetByID(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

// GetProjectProposal answers null (200) when the project has no proposal
// yet; absence is a normal state for a fresh project.
func (h *Handler) GetProjectProposal(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return nil
	}
	p, err := h.proposals.GetByProject(c.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(nil)
		}
		return h.fail(c, err)
	}
	return c.JSON(p)
}

type saveProposalReq struct {
	Content  map[string]interface{} `json:"content"`
	Status   string                 `json:"status"`
	EditedBy string                 `json:"edited_by"`
}

func (h *Handler) SaveProposal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req saveProposalReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	p, err := h.proposals.Save(c.Context(), id, req.Content, req.Status, req.EditedBy)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) GetProposalHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	history, err := h.proposals.History(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	if history == nil {
		history = []domain.ProposalHistory{}
	}
	return c.JSON(history)
}

func (h *Handler) ExportProposal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	format := c.Query("format", usecase.FormatPDF)
	if format != usecase.FormatPDF && format != usecase.FormatDocx {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be pdf or docx"})
	}

	result, err := h.exporter.Export(c.Context(), id, format)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.FileName+`"`)
	return c.Send(result.Data)
}
