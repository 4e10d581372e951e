package middleware

import (
	"github.com/labstack/echo/v4"

	"delivery_admin_echo/internal/router"
)

const routeMatchKey = "routeMatch"

// SetRoute records the resolved route on the request
func SetRoute(c echo.Context, m router.Match) {
	c.Set(routeMatchKey, m)
}

// RouteFrom returns the route resolved for this request, if any
func RouteFrom(c echo.Context) (router.Match, bool) {
	m, ok := c.Get(routeMatchKey).(router.Match)
	return m, ok
}
