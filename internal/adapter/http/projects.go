package http

import (
	"github.com/gofiber/fiber/v2"

	"proposal-manager/internal/domain"
)

type projectReq struct {
	Name                  string   `json:"name"`
	ProjectNumber         string   `json:"project_number"`
	Status                string   `json:"status"`
	ProjectTitle          string   `json:"project_title"`
	ProjectType           string   `json:"project_type"`
	StartDate             string   `json:"start_date"`
	EndDate               string   `json:"end_date"`
	EstimatedParticipants int      `json:"estimated_participants"`
	SponsoringAgency      string   `json:"sponsoring_agency"`
	Subject               string   `json:"subject"`
	ProjectDescription    string   `json:"project_description"`
	ProjectObjectives     []string `json:"project_objectives"`
	CreatedBy             string   `json:"created_by"`
}

func (h *Handler) CreateProject(c *fiber.Ctx) error {
	var req projectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	p := &domain.Project{
		Name:          req.Name,
		ProjectNumber: req.ProjectNumber,
		Status:        req.Status,
		CreatedBy:     req.CreatedBy,
	}
	if err := h.projects.Create(c.Context(), p); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *Handler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return c.JSON(projects)
}

func (h *Handler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	p, err := h.projects.GetByID(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	existing, err := h.projects.GetByID(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	var req projectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.ProjectNumber = req.ProjectNumber
	existing.ProjectTitle = req.ProjectTitle
	existing.ProjectType = req.ProjectType
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.EstimatedParticipants = req.EstimatedParticipants
	existing.SponsoringAgency = req.SponsoringAgency
	existing.Subject = req.Subject
	existing.ProjectDescription = req.ProjectDescription
	existing.ProjectObjectives = req.ProjectObjectives

	if err := h.projects.Update(c.Context(), existing); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(existing)
}

func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := h.projects.Delete(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
