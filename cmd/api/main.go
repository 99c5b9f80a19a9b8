package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-queue/internal/api/http"
	"github.com/spec-kit/ticket-queue/internal/api/http/handlers"
	"github.com/spec-kit/ticket-queue/internal/config"
	"github.com/spec-kit/ticket-queue/internal/events"
	"github.com/spec-kit/ticket-queue/internal/observability"
	"github.com/spec-kit/ticket-queue/internal/persistence"
	"github.com/spec-kit/ticket-queue/internal/repository"
	"github.com/spec-kit/ticket-queue/internal/service"
	"github.com/spec-kit/ticket-queue/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	manager := service.NewTicketManager(service.ManagerOptions{
		HistoryCapacity:    cfg.Manager.HistoryCapacity,
		EnforceTransitions: cfg.Manager.EnforceTransitions,
		Dispatcher:         dispatcher,
		Logger:             logger.Named("manager"),
	})

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	subscribers := []worker.HandlerRegistrar{
		service.NewActivityService(dispatcher, logger.Named("activity"), metrics),
	}
	if rdb.Enabled() {
		subscribers = append(subscribers, service.NewSnapshotPublisher(
			dispatcher, manager, rdb.Client, cfg.Redis.SnapshotKey, cfg.Redis.SnapshotTTL(), logger.Named("snapshot")))
	}
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		subscribers = append(subscribers, service.NewAuditRecorder(
			dispatcher, repository.NewActionAuditRepository(pg.Pool), logger.Named("audit")))
	}
	started := worker.StartEventSubscribers(subscribers...)
	logger.Info("event subscribers started", zap.Int("count", started))

	// Subscribers are registered first so the seed reaches the mirrors too.
	if cfg.Manager.SeedSampleData {
		seeded := service.SeedSampleData(ctx, manager)
		logger.Info("sample data loaded", zap.Int("tickets", len(seeded)))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Dependency{
			"postgres": pg,
			"redis":    rdb,
		}),
		Tickets:     handlers.NewTicketsHandler(manager, cfg.Manager.Technicians),
		Queues:      handlers.NewQueuesHandler(manager),
		Actions:     handlers.NewActionsHandler(manager),
		Metrics:     handlers.NewMetricsHandler(manager, metrics),
		Technicians: handlers.NewTechniciansHandler(manager, cfg.Manager.Technicians),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
