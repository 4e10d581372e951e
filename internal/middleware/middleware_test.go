package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"delivery_admin_echo/internal/router"
)

type stubSessions struct {
	valid map[string]*auth.Token
}

func (s *stubSessions) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return nil, errors.New("not used")
}

func (s *stubSessions) SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	return "", errors.New("not used")
}

func (s *stubSessions) VerifySessionCookie(ctx context.Context, cookie string) (*auth.Token, error) {
	if tok, ok := s.valid[cookie]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid session")
}

func newGuardedEcho(sessions *stubSessions) *echo.Echo {
	e := echo.New()
	guard := RequireAuth(nil)
	if sessions != nil {
		guard = RequireAuth(sessions)
	}
	e.GET("/private", func(c echo.Context) error {
		return c.String(http.StatusOK, stringFromContext(c, "userEmail"))
	}, guard)
	return e
}

func TestRequireAuth(t *testing.T) {
	sessions := &stubSessions{valid: map[string]*auth.Token{
		"good": {UID: "uid-1", Claims: map[string]interface{}{"email": "ops@example.com"}},
	}}

	tests := []struct {
		name     string
		sessions *stubSessions
		cookie   string
		status   int
		location string
		body     string
	}{
		{name: "no provider", sessions: nil, status: http.StatusSeeOther, location: "/login?error=auth_not_configured"},
		{name: "no cookie", sessions: sessions, status: http.StatusSeeOther, location: "/login"},
		{name: "bad cookie", sessions: sessions, cookie: "forged", status: http.StatusSeeOther, location: "/login?error=session_expired"},
		{name: "valid cookie", sessions: sessions, cookie: "good", status: http.StatusOK, body: "ops@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newGuardedEcho(tt.sessions)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(zap.NewNop(), false)
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})
	e.GET("/bad", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid admin identifier")
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("database exploded")
	})
	e.GET("/login/broken", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError)
	})

	tests := []struct {
		path     string
		status   int
		contains []string
		excludes []string
	}{
		{"/missing", http.StatusNotFound, []string{"Page Not Found", `class="sidebar"`}, nil},
		{"/bad", http.StatusBadRequest, []string{"Bad Request", "Invalid admin identifier"}, nil},
		{"/boom", http.StatusInternalServerError, []string{"Something went wrong"}, []string{"database exploded"}},
		{"/login/broken", http.StatusInternalServerError, []string{"Internal Server Error"}, []string{`class="sidebar"`}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestErrorHandlerHidesShellWithoutSession(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(zap.NewNop(), true)
	e.GET("/anonymous", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})
	e.GET("/signed-in", func(c echo.Context) error {
		c.Set("userUID", "uid-1")
		c.Set("userEmail", "ops@example.com")
		return echo.NewHTTPError(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anonymous", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
	assert.NotContains(t, rec.Body.String(), `class="sidebar"`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signed-in", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="sidebar"`)
	assert.Contains(t, rec.Body.String(), "ops@example.com")
}

func TestMetricsLabelsByView(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/*", func(c echo.Context) error {
		SetRoute(c, router.Match{View: router.ViewUserDetail})
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for _, path := range []string{"/admin/1", "/driver/2", "/healthz"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "user_detail", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/healthz", "204")))

	n, err := testutil.GatherAndCount(reg, "delivery_admin_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
