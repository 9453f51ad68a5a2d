package main

import (
	"context"
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
	"github.com/sirupsen/logrus"

	"pdfmanager/docs"
	"pdfmanager/internal/config"
	"pdfmanager/internal/database"
	"pdfmanager/internal/database/migration"
	handlers "pdfmanager/internal/http/handler"
	"pdfmanager/internal/http/middleware"
	"pdfmanager/internal/logger"
	"pdfmanager/internal/otel"
	"pdfmanager/internal/repository/postgres"
	"pdfmanager/internal/service"
	"pdfmanager/internal/storage"
	"pdfmanager/internal/thumbnail"
	"pdfmanager/internal/worker"
)

const shutdownTimeout = 15 * time.Second

// @title PDF Manager API
// @version 1.0
// @description Upload, list, rename and delete PDF documents with generated thumbnails.
// @BasePath /
func main() {
	cfg := config.Load()
	loc := cfg.Location()

	log := logger.New(os.Stdout, loc)
	logger.SetLevel(log, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("tracing_init_failed")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.WithError(err).Fatal("database migration failed")
		}
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pool, err := worker.NewPool(worker.Config{
		Workers:    cfg.Thumbnail.Workers,
		QueueSize:  cfg.Thumbnail.QueueSize,
		JobTimeout: time.Duration(cfg.Thumbnail.JobTimeoutSec) * time.Second,
	}, log, reg)
	if err != nil {
		log.WithError(err).Fatal("failed to create worker pool")
	}
	pool.Start()

	thumbs := thumbnail.NewQueue(
		thumbnail.NewGenerator(store, thumbnail.NewFitzRenderer(), cfg.Thumbnail),
		pool,
	)
	docSvc := service.NewDocumentService(store, postgres.NewDocumentPostgres(db), thumbs, log)

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		BodyLimit:             cfg.Storage.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, docSvc)
	handlers.RegisterMetrics(app, reg)

	// Swagger UI with dynamic host and scheme, APP_HOST when the request has none
	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = cfg.AppHost
		if host := c.Get("Host"); host != "" {
			docs.SwaggerInfo.Host = host
		}
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.WithFields(logrus.Fields{"addr": addr, "host": cfg.AppHost, "storage": cfg.Storage.Driver}).Info("server_started")
		serverErr <- app.Listen(addr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("server_failed")
		}
	case <-ctx.Done():
		log.Info("shutdown_started")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("http_shutdown_failed")
	}
	if err := pool.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("worker_shutdown_failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Error("tracing_shutdown_failed")
	}
	log.Info("shutdown_complete")
}
