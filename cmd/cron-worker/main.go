package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/adjustments"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/cron"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/vaccines"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/config"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/metrics"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/redis"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/seed"
)

const lockKeyFormat = "vaxtrack:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	// The worker needs redis: without the lock two replicas would both
	// run every cycle.
	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	opts := inventory.Options{
		ExpiringWindowDays: cfg.Inventory.ExpiringWindowDays,
		LowStockThreshold:  cfg.Inventory.LowStockThreshold,
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	alertJob, err := cron.NewInventoryAlertJob(cron.InventoryAlertJobParams{
		Logger:  logg,
		Lots:    vaccines.NewRepository(dbClient.DB()),
		Options: opts,
		Gauges:  metrics.NewInventoryMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory alert job", err)
		os.Exit(1)
	}
	summaryJob, err := cron.NewActivitySummaryJob(cron.ActivitySummaryJobParams{
		Logger: logg,
		Ledger: adjustments.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create activity summary job", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(alertJob, summaryJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
