package shared

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// NavItem is one sidebar entry. Items without Href have no page yet and render inert.
type NavItem struct {
	Key   string
	Label string
	Href  string
}

// NavSection groups sidebar entries under a title
type NavSection struct {
	Title string
	Items []NavItem
}

// Sidebar navigation keys, matched against LayoutProps.ActiveNav
const (
	NavDashboard = "dashboard"
	NavDriver    = "driver"
	NavCustomer  = "customer"
	NavAdmin     = "admin"
)

// NavSections is the sidebar menu
var NavSections = []NavSection{
	{Title: "Main", Items: []NavItem{
		{Key: NavDashboard, Label: "Dashboard", Href: "/"},
		{Key: "report", Label: "Report"},
		{Key: "order", Label: "Order"},
	}},
	{Title: "Users", Items: []NavItem{
		{Key: NavDriver, Label: "Driver", Href: "/driver"},
		{Key: NavCustomer, Label: "Customer", Href: "/cust"},
		{Key: NavAdmin, Label: "Admin", Href: "/admin"},
	}},
	{Title: "Service", Items: []NavItem{
		{Key: "notification", Label: "Notification"},
	}},
	{Title: "System", Items: []NavItem{
		{Key: "health", Label: "System Health"},
		{Key: "logs", Label: "Logs"},
		{Key: "settings", Label: "Settings"},
	}},
	{Title: "Account", Items: []NavItem{
		{Key: "profile", Label: "Profile"},
	}},
}

// Sidebar renders the navigation menu with the active item highlighted
func Sidebar(active string) g.Node {
	return html.Aside(
		html.Class("sidebar"),
		html.Div(
			html.Class("sidebar_logo"),
			html.A(html.Href("/"), html.Span(html.Class("logo"), g.Text("logo"))),
		),
		html.Hr(),
		html.Div(
			html.Class("sidebar_list"),
			html.Ul(
				g.Map(NavSections, func(s NavSection) g.Node {
					return g.Group{
						html.P(html.Class("title"), g.Text(s.Title)),
						g.Map(s.Items, func(item NavItem) g.Node {
							return navItem(item, item.Key == active)
						}),
					}
				}),
				html.Li(
					html.Form(
						html.Method("post"),
						html.Action("/auth/logout"),
						html.Button(html.Type("submit"), html.Class("link_button"), g.Text("Logout")),
					),
				),
			),
		),
	)
}

func navItem(item NavItem, active bool) g.Node {
	class := "nav_item"
	if active {
		class += " active"
	}
	if item.Href == "" {
		return html.Li(html.Class(class+" disabled"), html.Span(g.Text(item.Label)))
	}
	return html.Li(
		html.Class(class),
		html.A(
			html.Href(item.Href),
			g.If(active, html.Aria("current", "page")),
			html.Span(g.Text(item.Label)),
		),
	)
}
