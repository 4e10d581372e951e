package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery_admin_echo/internal/services"
)

// SessionCookieName is the cookie holding the Firebase session
const SessionCookieName = "session"

// RequireAuth returns a middleware that verifies Firebase session cookies
func RequireAuth(sessions services.SessionProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions == nil {
				return c.Redirect(http.StatusSeeOther, "/login?error=auth_not_configured")
			}

			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			decodedToken, err := sessions.VerifySessionCookie(c.Request().Context(), cookie.Value)
			if err != nil {
				// Invalid session, clear cookie and redirect
				c.SetCookie(ExpiredSessionCookie())
				return c.Redirect(http.StatusSeeOther, "/login?error=session_expired")
			}

			c.Set("userUID", decodedToken.UID)
			if email, ok := decodedToken.Claims["email"].(string); ok {
				c.Set("userEmail", email)
			}
			if name, ok := decodedToken.Claims["name"].(string); ok {
				c.Set("userName", name)
			}

			return next(c)
		}
	}
}

// ExpiredSessionCookie clears the session cookie on the client
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	}
}
