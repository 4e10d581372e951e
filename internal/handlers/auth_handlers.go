package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"delivery_admin_echo/internal/config"
	"delivery_admin_echo/internal/middleware"
	"delivery_admin_echo/internal/services"
	"delivery_admin_echo/web/templates/pages"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	sessions      services.SessionProvider
	firebase      config.FirebaseConfig
	sessionMaxAge time.Duration
	secureCookie  bool
}

// NewAuthHandler creates a new AuthHandler; sessions may be nil when Firebase is not configured
func NewAuthHandler(sessions services.SessionProvider, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		sessions:      sessions,
		firebase:      cfg.Firebase,
		sessionMaxAge: cfg.Auth.SessionMaxAge,
		secureCookie:  cfg.IsProduction(),
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(c echo.Context) error {
	props := pages.LoginProps{
		FirebaseAPIKey:     h.firebase.APIKey,
		FirebaseAuthDomain: h.firebase.AuthDomain,
		FirebaseProjectID:  h.firebase.ProjectID,
		Error:              c.QueryParam("error"),
	}
	return render(c, http.StatusOK, pages.Login(props))
}

// HandleLogin verifies the Firebase ID token and creates a session cookie
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	if h.sessions == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "Firebase not initialized",
		})
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Missing authorization header",
		})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid authorization format",
		})
	}

	ctx := c.Request().Context()
	if _, err := h.sessions.VerifyIDToken(ctx, tokenString); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid token",
		})
	}

	cookieValue, err := h.sessions.SessionCookie(ctx, tokenString, h.sessionMaxAge)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create session",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    cookieValue,
		MaxAge:   int(h.sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

// HandleLogout clears the session cookie and returns to the login page
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	c.SetCookie(middleware.ExpiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, "/login")
}
