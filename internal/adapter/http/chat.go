package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"proposal-manager/internal/adapter/repository"
	"proposal-manager/internal/domain"
)

type chatReq struct {
	ProjectID string `json:"project_id"`
	Message   string `json:"message"`
}

func (h *Handler) Chat(c *fiber.Ctx) error {
	var req chatReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project_id"})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}

	conv, err := h.chat.Send(c.Context(), projectID, req.Message)
	if err != nil {
		return h.fail(c, err)
	}

	reply := ""
	if n := len(conv.Messages); n > 0 {
		reply = conv.Messages[n-1].Content
	}
	return c.JSON(fiber.Map{"reply": reply, "conversation": conv})
}

// GetConversation returns an empty thread rather than 404 for a project that
// has not chatted yet.
func (h *Handler) GetConversation(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return nil
	}
	conv, err := h.conversations.GetByProject(c.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(domain.Conversation{ProjectID: projectID, Messages: []domain.Message{}})
		}
		return h.fail(c, err)
	}
	return c.JSON(conv)
}
