package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery_admin_echo/internal/middleware"
	"delivery_admin_echo/internal/router"
)

// Navigator serves every page GET through the route table
type Navigator struct {
	table *router.Table
	guard echo.MiddlewareFunc
	views map[router.View]echo.HandlerFunc
}

// NewNavigator creates a Navigator. guard wraps every non-public view; nil disables it.
func NewNavigator(table *router.Table, guard echo.MiddlewareFunc) *Navigator {
	return &Navigator{
		table: table,
		guard: guard,
		views: make(map[router.View]echo.HandlerFunc),
	}
}

// Handle registers the handler for a view that requires a session
func (n *Navigator) Handle(view router.View, h echo.HandlerFunc) {
	if n.guard != nil {
		h = n.guard(h)
	}
	n.views[view] = h
}

// HandlePublic registers the handler for a view anyone can see
func (n *Navigator) HandlePublic(view router.View, h echo.HandlerFunc) {
	n.views[view] = h
}

// Register mounts the navigator as the catch-all GET route
func (n *Navigator) Register(e *echo.Echo) {
	e.GET("/", n.Dispatch)
	e.GET("/*", n.Dispatch)
}

// Dispatch resolves the request path and runs the matching view handler.
// Unmatched paths and views without a handler are 404s.
func (n *Navigator) Dispatch(c echo.Context) error {
	match, err := n.table.Resolve(c.Request().URL.EscapedPath())
	middleware.SetRoute(c, match)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	}

	h, ok := n.views[match.View]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return h(c)
}

// currentRoute returns the match Dispatch stored for this request
func currentRoute(c echo.Context) router.Match {
	m, _ := middleware.RouteFrom(c)
	return m
}
