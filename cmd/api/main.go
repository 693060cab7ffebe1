package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaxtrackhq/vaxtrack-backend/api/routes"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/adjustments"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/reports"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/shipments"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/vaccines"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/config"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/metrics"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/redis"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/seed"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := dbClient.AutoMigrate(); err != nil {
		logg.Error(context.Background(), "failed to migrate schema", err)
		os.Exit(1)
	}

	if cfg.Seed.Enabled {
		loader, err := seed.NewLoader(dbClient, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to build seed loader", err)
			os.Exit(1)
		}
		if err := loader.Run(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to load seed data", err)
			os.Exit(1)
		}
	}

	// Redis only backs idempotency replay. The API degrades to plain
	// at-least-once semantics without it.
	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Warn(context.Background(), "redis unavailable, idempotency replay disabled")
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	opts := inventory.Options{
		ExpiringWindowDays: cfg.Inventory.ExpiringWindowDays,
		LowStockThreshold:  cfg.Inventory.LowStockThreshold,
	}

	vaccineRepo := vaccines.NewRepository(dbClient.DB())
	adjustmentRepo := adjustments.NewRepository(dbClient.DB())
	shipmentRepo := shipments.NewRepository(dbClient.DB())

	vaccineService, err := vaccines.NewService(vaccineRepo, dbClient, adjustmentRepo, opts)
	if err != nil {
		logg.Error(context.Background(), "failed to create vaccine service", err)
		os.Exit(1)
	}
	adjustmentService, err := adjustments.NewService(adjustmentRepo, vaccineRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create adjustment service", err)
		os.Exit(1)
	}
	shipmentService, err := shipments.NewService(shipmentRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipment service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(vaccineRepo, opts, metrics.NewInventoryMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	reportService, err := reports.NewService(vaccineRepo, opts)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			vaccineService,
			inventoryService,
			adjustmentService,
			shipmentService,
			reportService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "error draining api server", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
