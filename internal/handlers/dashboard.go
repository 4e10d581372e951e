package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery_admin_echo/internal/services"
	"delivery_admin_echo/web/templates/pages"
	"delivery_admin_echo/web/templates/shared"
)

// DashboardHandler handles the home page
type DashboardHandler struct {
	source services.DashboardSource
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(source services.DashboardSource) *DashboardHandler {
	return &DashboardHandler{source: source}
}

// Dashboard renders the widgets and the order summary
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	widgets, err := h.source.FetchWidgets(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load dashboard").SetInternal(err)
	}
	rows, err := h.source.FetchSummary(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load orders").SetInternal(err)
	}

	props := pages.DashboardProps{
		LayoutProps: layoutProps(c, "Dashboard", shared.NavDashboard,
			shared.Breadcrumb{Title: "Home", URL: ""},
		),
		Widgets: widgets,
		Rows:    rows,
	}

	return render(c, http.StatusOK, pages.Dashboard(props))
}
