package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery_admin_echo/web/templates/pages"
	"delivery_admin_echo/web/templates/shared"
)

var publicPrefixes = []string{"/login", "/auth", "/static"}

// NewErrorHandler renders HTTP errors as dashboard error pages. When requireSession
// is set, requests without a verified session get the public page so the dashboard
// shell is never shown to anonymous visitors.
func NewErrorHandler(log *zap.Logger, requireSession bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		// already handled upstream, e.g. by the request logger
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		errorTitle := "Internal Server Error"
		errorMessage := ""

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok && msg != "" {
				errorMessage = msg
			}

			switch code {
			case http.StatusNotFound:
				errorTitle = "Page Not Found"
				if errorMessage == "" || errorMessage == http.StatusText(http.StatusNotFound) {
					errorMessage = "The page you're looking for doesn't exist."
				}
			case http.StatusForbidden:
				errorTitle = "Access Denied"
				if errorMessage == "" {
					errorMessage = "You don't have permission to access this resource."
				}
			case http.StatusUnauthorized:
				errorTitle = "Unauthorized"
				if errorMessage == "" {
					errorMessage = "Please log in to continue."
				}
			case http.StatusBadRequest:
				errorTitle = "Bad Request"
				if errorMessage == "" {
					errorMessage = "The request could not be processed."
				}
			case http.StatusMethodNotAllowed:
				errorTitle = "Method Not Allowed"
			}
		}
		if errorMessage == "" || code >= http.StatusInternalServerError {
			errorMessage = "Something went wrong. Please try again later."
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed", zap.Error(err), zap.String("path", c.Request().URL.Path))
		} else {
			log.Debug("request rejected", zap.Int("status", code), zap.Error(err), zap.String("path", c.Request().URL.Path))
		}

		props := pages.ErrorPageProps{
			LayoutProps: shared.LayoutProps{
				Title: errorTitle,
				Breadcrumbs: []shared.Breadcrumb{
					{Title: "Home", URL: "/"},
					{Title: "Error", URL: ""},
				},
				UserEmail: stringFromContext(c, "userEmail"),
				UserUID:   stringFromContext(c, "userUID"),
			},
			ErrorTitle:   errorTitle,
			ErrorMessage: errorMessage,
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(code)
		if c.Request().Method == http.MethodHead {
			return
		}

		page := pages.ErrorPage(props)
		if isPublicPath(c.Request().URL.Path) || (requireSession && props.UserUID == "") {
			page = pages.PublicErrorPage(props)
		}
		if renderErr := page.Render(c.Request().Context(), c.Response()); renderErr != nil {
			log.Error("failed to render error page", zap.Error(renderErr))
			_, _ = c.Response().Write([]byte(errorMessage))
		}
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func stringFromContext(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}
