package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"delivery_admin_echo/internal/config"
	"delivery_admin_echo/internal/logging"
	"delivery_admin_echo/internal/services"
	"delivery_admin_echo/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Database.URL == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	// Initialize Database
	db, err := services.InitDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := services.AutoMigrate(db, logger); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	env := &tasks.Env{DB: db, Logger: logger}
	if cfg.Redis.URL != "" {
		cache, err := services.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, dashboard refresh tasks will fail", zap.Error(err))
		} else {
			defer func() { _ = cache.Close() }()
			env.Dashboard = services.NewCachedDashboard(services.NewOrderDashboard(db, 10), cache, cfg.Redis.SummaryTTL)
		}
	}

	// Initialize Task Registry
	registry := tasks.NewRegistry()
	tasks.DefineTasks(registry)

	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started",
		zap.Duration("interval", cfg.Worker.Interval),
		zap.Strings("tasks", registry.Names()),
	)
	tasks.NewRunner(db, registry, env, logger).Run(ctx, cfg.Worker.Interval)
	logger.Info("worker stopped")
}
