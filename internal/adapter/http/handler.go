package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"proposal-manager/internal/adapter/repository"
	"proposal-manager/internal/usecase"
	"proposal-manager/pkg/urlcheck"
)

type Handler struct {
	projects      *repository.ProjectsRepo
	documents     *repository.DocumentsRepo
	proposals     *repository.ProposalsRepo
	resources     *repository.ResourcesRepo
	conversations *repository.ConversationsRepo

	uploader  *usecase.Uploader
	generator *usecase.Generator
	exporter  *usecase.Exporter
	chat      *usecase.Chat
	validator *urlcheck.Validator

	log *zap.Logger
}

type HandlerDeps struct {
	Projects      *repository.ProjectsRepo
	Documents     *repository.DocumentsRepo
	Proposals     *repository.ProposalsRepo
	Resources     *repository.ResourcesRepo
	Conversations *repository.ConversationsRepo
	Uploader      *usecase.Uploader
	Generator     *usecase.Generator
	Exporter      *usecase.Exporter
	Chat          *usecase.Chat
	Validator     *urlcheck.Validator
	Log           *zap.Logger
}

func NewHandler(d HandlerDeps) *Handler {
	return &Handler{
		projects:      d.Projects,
		documents:     d.Documents,
		proposals:     d.Proposals,
		resources:     d.Resources,
		conversations: d.Conversations,
		uploader:      d.Uploader,
		generator:     d.Generator,
		exporter:      d.Exporter,
		chat:          d.Chat,
		validator:     d.Validator,
		log:           d.Log,
	}
}

// Register mounts all API routes on the app. Static file serving for
// uploads/exports is mounted by the caller, which knows the data dir.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Post("/projects", h.CreateProject)
	api.Get("/projects", h.ListProjects)
	api.Get("/projects/:id", h.GetProject)
	api.Put("/projects/:id", h.UpdateProject)
	api.Delete("/projects/:id", h.DeleteProject)

	api.Post("/documents/upload", h.UploadDocument)
	api.Get("/documents/project/:projectId", h.ListProjectDocuments)

	api.Post("/proposals/generate", h.GenerateProposal)
	api.Get("/proposals/project/:projectId", h.GetProjectProposal)
	api.Get("/proposals/:id", h.GetProposal)
	api.Put("/proposals/:id", h.SaveProposal)
	api.Get("/proposals/:id/history", h.GetProposalHistory)
	api.Get("/proposals/:id/export", h.ExportProposal)

	api.Post("/resources", h.CreateResource)
	api.Get("/resources", h.ListResources)
	api.Put("/resources/:id", h.UpdateResource)
	api.Delete("/resources/:id", h.DeactivateResource)
	api.Post("/resources/validate-url", h.ValidateURL)

	api.Post("/chat", h.Chat)
	api.Get("/conversations/:projectId", h.GetConversation)
}

// parseID reads a UUID path param. On garbage it writes the 400 itself and
// returns the parse error; callers just stop.
func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + param})
		return uuid.Nil, err
	}
	return id, nil
}

// fail maps repository sentinel errors to status codes and logs the rest.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
