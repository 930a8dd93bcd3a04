package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"issuetracker/docs"
	"issuetracker/internal/config"
	"issuetracker/internal/database"
	"issuetracker/internal/database/migration"
	handlers "issuetracker/internal/http/handler"
	"issuetracker/internal/http/middleware"
	"issuetracker/internal/logger"
	"issuetracker/internal/otel"
	"issuetracker/internal/repository"
	"issuetracker/internal/repository/memory"
	"issuetracker/internal/repository/postgres"
	redisrepo "issuetracker/internal/repository/redis"
	"issuetracker/internal/service"
	"issuetracker/internal/storage"
)

// @title Issue Tracker API
// @version 1.0
// @description Project-scoped issue records: create, filter, update and delete.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	repo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open issue store")
	}

	// Deleted issues are copied to object storage only when MinIO is configured
	var archive storage.Storage
	if cfg.ArchiveEnabled() {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("issue archive enabled")
	}

	issueSvc := service.NewIssueService(repo, archive, log)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		UnescapePath:          true,
		DisableStartupMessage: true,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	// Register global middleware
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, repo, issueSvc)

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

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("backend", cfg.StoreBackend).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := closeStore(); err != nil {
		log.Error().Err(err).Msg("close issue store")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}

// openStore builds the issue repository selected by STORE_BACKEND along with
// a function that releases its connections.
func openStore(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (repository.IssueRepository, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		// Initialize PostgreSQL connection (with pooling via database/sql)
		db, err := database.NewPostgres(cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return postgres.NewIssuePostgres(db), db.Close, nil

	case config.BackendRedis:
		client, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("redis connected")
		return redisrepo.NewIssueRedis(client), client.Close, nil

	case config.BackendMemory:
		log.Warn().Msg("using in-memory issue store; data is lost on restart")
		return memory.NewIssueMemory(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
