package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"delivery_admin_echo/internal/config"
	"delivery_admin_echo/internal/logging"
	"delivery_admin_echo/internal/server"
	"delivery_admin_echo/internal/services"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := server.Deps{
		Registry: prometheus.NewRegistry(),
		Logger:   logger,
	}
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize Firebase
	authClient, err := services.InitFirebase(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		logger.Warn("firebase initialization failed, auth features will not work until valid credentials are provided", zap.Error(err))
	} else {
		deps.Sessions = authClient
	}

	// Initialize Database
	var db *gorm.DB
	if cfg.Database.URL != "" {
		db, err = services.InitDB(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if cfg.Database.AutoMigrate {
			if err := services.AutoMigrate(db, logger); err != nil {
				logger.Fatal("failed to run database migrations", zap.Error(err))
			}
		}
		deps.Dashboard = services.NewOrderDashboard(db, 10)
		deps.Users = services.NewUserService(db)
	} else {
		logger.Warn("DATABASE_URL not set, serving sample data")
		deps.Dashboard = services.NewStaticDashboard()
		deps.Users = services.NewMemoryUserStore(services.SampleUsers())
	}

	// Initialize Redis
	var cache *services.RedisCache
	if cfg.Redis.URL != "" {
		cache, err = services.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			defer func() { _ = cache.Close() }()
			deps.Dashboard = services.NewCachedDashboard(deps.Dashboard, cache, cfg.Redis.SummaryTTL)
		}
	}

	deps.Ping = func(ctx context.Context) error {
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
		}
		if cache != nil {
			return cache.Ping(ctx)
		}
		return nil
	}

	e := server.New(cfg, deps)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
