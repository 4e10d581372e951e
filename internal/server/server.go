package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"delivery_admin_echo/internal/config"
	"delivery_admin_echo/internal/handlers"
	"delivery_admin_echo/internal/middleware"
	"delivery_admin_echo/internal/router"
	"delivery_admin_echo/internal/services"
)

// Deps are the collaborators the HTTP server is assembled from
type Deps struct {
	Dashboard services.DashboardSource
	Users     services.UserStore
	// Sessions is nil when Firebase is not configured
	Sessions services.SessionProvider
	// Ping checks backing stores for /healthz; nil means always healthy
	Ping     func(ctx context.Context) error
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// New builds the echo instance with every route mounted
func New(cfg config.Config, deps Deps) *echo.Echo {
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(deps.Logger, cfg.Auth.Enabled)

	// Middleware
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomw.Recover())
	e.Use(middleware.NewMetrics(deps.Registry).Middleware())

	// Static file serving
	e.Static("/static", cfg.Server.StaticDir)

	e.GET("/healthz", healthz(deps.Ping, deps.Logger))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	var guard echo.MiddlewareFunc
	if cfg.Auth.Enabled {
		guard = middleware.RequireAuth(deps.Sessions)
	} else {
		deps.Logger.Warn("authentication disabled, dashboard pages are public")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Sessions, cfg)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)
	userHandler := handlers.NewUserHandler(deps.Users)

	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)

	if guard != nil {
		e.POST("/admin", userHandler.StoreAdmin, guard)
	} else {
		e.POST("/admin", userHandler.StoreAdmin)
	}

	nav := handlers.NewNavigator(router.DefaultTable(), guard)
	nav.HandlePublic(router.ViewLogin, authHandler.LoginPage)
	nav.Handle(router.ViewHome, dashboardHandler.Dashboard)
	nav.Handle(router.ViewUserList, userHandler.ListUsers)
	nav.Handle(router.ViewUserDetail, userHandler.UserDetail)
	nav.Handle(router.ViewNewAdmin, userHandler.NewAdminPage)
	nav.Register(e)

	return e
}

// healthz reports readiness; backend errors are logged, never returned
func healthz(ping func(ctx context.Context) error, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Warn("health check failed", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
