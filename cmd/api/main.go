package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"quoteapi/docs"
	"quoteapi/internal/config"
	"quoteapi/internal/database"
	"quoteapi/internal/database/migration"
	handlers "quoteapi/internal/http/handler"
	"quoteapi/internal/http/middleware"
	"quoteapi/internal/llm"
	"quoteapi/internal/logging"
	"quoteapi/internal/otel"
	"quoteapi/internal/repository/postgres"
	"quoteapi/internal/service"
	"quoteapi/internal/storage"
)

// @title Quote Analysis API
// @version 1.0
// @description Upload a home-services quote and get an AI analysis back.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Location(), logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exit", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	openai, err := llm.NewOpenAIClient(cfg.LLM, llm.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init model client: %w", err)
	}
	client, err := llm.Instrument(openai, reg)
	if err != nil {
		return fmt.Errorf("register model metrics: %w", err)
	}

	// The archive (PostgreSQL + MinIO) is optional; analysis works without it.
	var (
		db         *sql.DB
		archiveSvc service.ArchiveService
		archiver   service.Archiver
	)
	if cfg.ArchiveEnabled {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}

		archiveSvc = service.NewArchiveService(objStore, postgres.NewAnalysisPostgres(db))
		archiver = archiveSvc
	}

	analysisSvc := service.NewAnalysisService(client, service.AnalysisOptionsFromConfig(cfg), logger, archiver)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.MaxUploadMB << 20,
		// report mode makes one model call per section
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 10 * time.Minute,
	})

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Analysis: analysisSvc,
		Archive:  archiveSvc,
		Gatherer: reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info("server_start",
			"addr", addr,
			"model", cfg.LLM.Model,
			"archive_enabled", cfg.ArchiveEnabled,
			"max_upload_mb", cfg.MaxUploadMB,
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server_shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}
