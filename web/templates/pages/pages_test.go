package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery_admin_echo/internal/models"
	"delivery_admin_echo/internal/services"
	"delivery_admin_echo/web/templates/shared"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestDashboard(t *testing.T) {
	html := render(t, Dashboard(DashboardProps{
		LayoutProps: shared.LayoutProps{Title: "Dashboard", ActiveNav: shared.NavDashboard, UserEmail: "ops@example.com"},
		Widgets: []services.WidgetStat{
			{Kind: services.WidgetOrder, Amount: 100, Diff: 20},
			{Kind: services.WidgetTransaction, Amount: 1234.5, Diff: -5},
			{Kind: "bogus", Amount: 1},
		},
		Rows: []services.SummaryRow{
			{ID: 1000003, Customer: "Joe", Driver: "Lawrence", PlacedAt: time.Date(2012, time.May, 12, 14, 40, 0, 0, time.UTC), Amount: 414.18, PaymentMethod: "card", Status: "Pending"},
		},
	}))

	assert.Contains(t, strings.ToLower(html), "<!doctype html>")
	assert.Contains(t, html, "ORDERS")
	assert.Contains(t, html, "RM 1234.50")
	assert.Contains(t, html, `class="percentage negative"`)
	assert.NotContains(t, html, "bogus")
	assert.Contains(t, html, "14:40 12 May 2012")
	assert.Contains(t, html, `class="status Pending"`)
	assert.Contains(t, html, "ops@example.com")
	assert.Contains(t, html, `class="nav_item active"`)
}

func TestWidgetRoundsDiff(t *testing.T) {
	tests := []struct {
		diff      float64
		want      string
		direction string
	}{
		{diff: (1.0 - 3.0) / 3.0 * 100, want: ">67 %<", direction: "negative"},
		{diff: 100.0 / 3.0, want: ">33 %<", direction: "positive"},
		{diff: -0.2, want: ">0 %<", direction: "positive"},
	}
	for _, tt := range tests {
		html := render(t, shared.Component(shared.Widget(services.WidgetStat{Kind: services.WidgetOrder, Amount: 3, Diff: tt.diff})))
		assert.Contains(t, html, tt.want)
		assert.Contains(t, html, `class="percentage `+tt.direction+`"`)
		assert.NotContains(t, html, "666")
	}
}

func TestUsersListLinksToDetail(t *testing.T) {
	html := render(t, UsersList(UsersListProps{
		LayoutProps: shared.LayoutProps{Title: "Drivers", ActiveNav: shared.NavDriver},
		Heading:     "Drivers",
		BasePath:    "/driver",
		Users:       []models.User{{ID: 7, Name: "Lawrence", Email: "l@example.com"}},
	}))

	assert.Contains(t, html, `href="/driver/7"`)
	assert.NotContains(t, html, "Add New")
}

func TestAdminFormShowsErrors(t *testing.T) {
	html := render(t, AdminForm(AdminFormProps{
		LayoutProps: shared.LayoutProps{Title: "New Admin"},
		Values:      models.User{Name: "Ada", Email: "nope"},
		Errors:      map[string]string{"email": "Email is not a valid address"},
	}))

	assert.Contains(t, html, `action="/admin"`)
	assert.Contains(t, html, `value="Ada"`)
	assert.Contains(t, html, "Email is not a valid address")
}

func TestErrorPages(t *testing.T) {
	props := ErrorPageProps{
		LayoutProps:  shared.LayoutProps{Title: "Page Not Found"},
		ErrorTitle:   "Page Not Found",
		ErrorMessage: "The page you're looking for doesn't exist.",
	}

	inShell := render(t, ErrorPage(props))
	assert.Contains(t, inShell, `class="sidebar"`)
	assert.Contains(t, inShell, "Page Not Found")

	public := render(t, PublicErrorPage(props))
	assert.NotContains(t, public, `class="sidebar"`)
	assert.Contains(t, public, `href="/login"`)
}

func TestLoginMessages(t *testing.T) {
	html := render(t, Login(LoginProps{FirebaseProjectID: "delivery", Error: "auth_not_configured"}))
	assert.Contains(t, html, `data-project-id="delivery"`)
	assert.Contains(t, html, "Sign-in is not configured")
}
