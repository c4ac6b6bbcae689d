package http

import (
	"github.com/gofiber/fiber/v2"

	"proposal-manager/internal/domain"
	"proposal-manager/pkg/urlcheck"
)

type resourceReq struct {
	Category      string `json:"category"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	MeetingFocus  string `json:"meeting_focus"`
	Price         string `json:"price"`
	Accessibility string `json:"accessibility"`
	IsActive      *bool  `json:"is_active"`
}

var validCategories = map[string]bool{
	domain.ResourceCategoryGovernmental: true,
	domain.ResourceCategoryAcademic:     true,
	domain.ResourceCategoryNonprofit:    true,
	domain.ResourceCategoryCultural:     true,
}

func (h *Handler) CreateResource(c *fiber.Ctx) error {
	var req resourceReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if !validCategories[req.Category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
	}

	res := &domain.Resource{
		Category:      req.Category,
		Name:          req.Name,
		Description:   req.Description,
		URL:           req.URL,
		MeetingFocus:  req.MeetingFocus,
		Price:         req.Price,
		Accessibility: req.Accessibility,
	}
	if err := h.resources.Create(c.Context(), res); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) ListResources(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != "" && !validCategories[category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
	}
	resources, err := h.resources.List(c.Context(), category)
	if err != nil {
		return h.fail(c, err)
	}
	if resources == nil {
		resources = []domain.Resource{}
	}
	return c.JSON(resources)
}

func (h *Handler) UpdateResource(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	existing, err := h.resources.GetByID(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	var req resourceReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if req.Category != "" {
		if !validCategories[req.Category] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
		existing.Category = req.Category
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.Description = req.Description
	existing.URL = req.URL
	existing.MeetingFocus = req.MeetingFocus
	existing.Price = req.Price
	existing.Accessibility = req.Accessibility
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.resources.Update(c.Context(), existing); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(existing)
}

func (h *Handler) DeactivateResource(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := h.resources.Deactivate(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type validateURLReq struct {
	URL  string   `json:"url"`
	URLs []string `json:"urls"`
}

// ValidateURL checks one URL or a batch; exactly the same checker the
// generation pipeline uses, exposed for the resource library UI.
func (h *Handler) ValidateURL(c *fiber.Ctx) error {
	var req validateURLReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	switch {
	case req.URL != "":
		result := h.validator.ValidateURL(c.Context(), req.URL)
		return c.JSON(result)
	case len(req.URLs) > 0:
		results := h.validator.ValidateURLs(c.Context(), req.URLs, urlcheck.DefaultMaxConcurrent)
		return c.JSON(fiber.Map{"results": results})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url or urls is required"})
	}
}
