package handlers

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"delivery_admin_echo/web/templates/shared"
)

// Helper to safely get string from context
func getStringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}

// layoutProps fills the fields every dashboard page shares
func layoutProps(c echo.Context, title, activeNav string, breadcrumbs ...shared.Breadcrumb) shared.LayoutProps {
	return shared.LayoutProps{
		Title:       title,
		ActiveNav:   activeNav,
		Breadcrumbs: breadcrumbs,
		UserEmail:   getStringFromContext(c, "userEmail"),
		UserUID:     getStringFromContext(c, "userUID"),
	}
}

// render writes page as an HTML response with the given status
func render(c echo.Context, status int, page templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return page.Render(c.Request().Context(), c.Response())
}
