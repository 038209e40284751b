package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quoteapi/internal/service"
)

// Deps are the services behind the routes. DB and Archive are nil when the archive is disabled;
// Gatherer is nil when /metrics should not be served.
type Deps struct {
	DB       *sql.DB
	Analysis service.AnalysisService
	Archive  service.ArchiveService
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches every route to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/", Index())
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Post("/analyze", Analyze(d.Analysis))

	if d.Archive != nil {
		api.Get("/analyses", ListAnalyses(d.Archive))
		api.Get("/analyses/:id", GetAnalysis(d.Archive))
		api.Get("/analyses/:id/file", DownloadAnalysisFile(d.Archive))
		api.Delete("/analyses/:id", DeleteAnalysis(d.Archive))
	}
}
