package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httpadapter "proposal-manager/internal/adapter/http"
	"proposal-manager/internal/adapter/repository"
	"proposal-manager/internal/infrastructure/migration"
	"proposal-manager/internal/usecase"
	"proposal-manager/pkg/ai"
	"proposal-manager/pkg/infrastructure"
	"proposal-manager/pkg/urlcheck"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infrastructure.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := infrastructure.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	store, err := infrastructure.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("file store init failed", zap.Error(err))
	}
	renderer := infrastructure.NewChromedpRenderer(cfg.ChromePath, cfg.TemplateDir)
	aiClient := ai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, logger)
	validator := urlcheck.New(logger)

	projects := repository.NewProjectsRepo(pool)
	documents := repository.NewDocumentsRepo(pool)
	proposals := repository.NewProposalsRepo(pool)
	resources := repository.NewResourcesRepo(pool)
	conversations := repository.NewConversationsRepo(pool)

	handler := httpadapter.NewHandler(httpadapter.HandlerDeps{
		Projects:      projects,
		Documents:     documents,
		Proposals:     proposals,
		Resources:     resources,
		Conversations: conversations,
		Uploader:      usecase.NewUploader(documents, projects, store, logger),
		Generator:     usecase.NewGenerator(projects, documents, resources, proposals, aiClient, validator, logger),
		Exporter:      usecase.NewExporter(projects, proposals, renderer, store, logger),
		Chat: usecase.NewChat(conversations, func(ctx context.Context, projectID uuid.UUID) (repository.ProjectContext, error) {
			return repository.AggregateProjectContext(ctx, pool, projectID)
		}, aiClient, logger),
		Validator: validator,
		Log:       logger,
	})

	app := fiber.New(fiber.Config{
		BodyLimit:    32 * 1024 * 1024, // document uploads
		ErrorHandler: fiberErrorHandler(logger),
	})
	handler.Register(app)
	app.Static("/files", filepath.Clean(cfg.DataDir))

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}

func fiberErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		if code >= 500 {
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
