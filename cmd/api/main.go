package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usage-telemetry-service/internal/config"
	statsHttp "usage-telemetry-service/internal/stats/adapters/http/fiber"
	statsRepoPg "usage-telemetry-service/internal/stats/adapters/postgres"
	statsRepoRedis "usage-telemetry-service/internal/stats/adapters/redis"
	"usage-telemetry-service/internal/stats/core/ports"
	statsUsecase "usage-telemetry-service/internal/stats/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "usage-telemetry-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid log level %q: %v", cfg.LogLevel, err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Snapshot store backend
	var (
		snapshotStore ports.SnapshotStorePort
		closeStore    func()
	)

	switch cfg.Store.Backend {
	case config.BackendRedis:
		store, err := statsRepoRedis.NewSnapshotStore(cfg.Store.RedisURL, cfg.Store.Name)
		if err != nil {
			log.Fatalf("failed to open redis: %v", err)
		}
		snapshotStore = store
		closeStore = func() { _ = store.Close() }

	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.Store.PostgresDSN)
		if err != nil {
			log.Fatalf("failed to open postgres: %v", err)
		}

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.Ping(); err != nil {
			log.Fatalf("failed to ping postgres: %v", err)
		}

		snapshotStore = statsRepoPg.NewSnapshotStore(statsRepoPg.NewSQLDB(db), cfg.Store.Name)
		closeStore = func() { _ = db.Close() }
	}
	defer closeStore()

	// Aggregator (loads the latest snapshot before serving)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	statsStore, err := statsUsecase.NewStatsStore(loadCtx, snapshotStore, statsUsecase.Options{
		LivenessWindow:  cfg.Stats.LivenessWindow,
		HourlyRetention: cfg.Stats.HourlyRetention,
		DailyRetention:  cfg.Stats.DailyRetention,
	}, logger)
	cancelLoad()
	if err != nil {
		log.Fatalf("failed to init stats store: %v", err)
	}

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	app.Use(fiberrecover.New())
	app.Use(cors.New())
	app.Use(statsHttp.RequestLogger(logger))

	handler := statsHttp.NewStatsHandler(statsStore)
	app.Post("/track", handler.Track)
	app.Get("/stats", handler.Summary)
	app.Get("/stats/detailed", handler.Detailed)
	app.Post("/heartbeat", handler.Heartbeat)
	app.Get("/health", handler.Health)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Everything else gets the route list
	app.Use(statsHttp.NotFound)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.WithError(err).Error("fiber stopped")
		}
	}()

	logger.WithField("addr", cfg.Server.Addr).Info("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.WithError(err).Error("fiber shutdown error")
	}

	logger.Info("server exiting")
}
