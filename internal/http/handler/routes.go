package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pdfmanager/internal/http/middleware"
	"pdfmanager/internal/service"
)

// RegisterRoutes attaches the document and probe routes to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", ListDocuments(docSvc))
	app.Post("/upload", UploadDocument(docSvc))
	app.Patch("/update/:id", UpdateLabel(docSvc))
	app.Delete("/remove/:id", DeleteDocument(docSvc))
}

// RegisterMetrics exposes the collectors gathered by g in Prometheus text format.
func RegisterMetrics(app *fiber.App, g prometheus.Gatherer) {
	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}
