package pages

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"delivery_admin_echo/internal/services"
	"delivery_admin_echo/web/templates/shared"
)

// DashboardProps feeds the home page
type DashboardProps struct {
	shared.LayoutProps
	Widgets []services.WidgetStat
	Rows    []services.SummaryRow
}

// Dashboard renders the widgets and the latest orders
func Dashboard(props DashboardProps) templ.Component {
	return shared.Component(shared.Layout(props.LayoutProps,
		html.Div(
			html.Class("widgets"),
			g.Map(props.Widgets, shared.Widget),
		),
		html.Div(html.Class("charts")),
		html.Section(
			html.Class("listContainer"),
			html.H2(html.Class("listTitle"), g.Text("Latest Orders")),
			shared.SummaryTable(props.Rows),
		),
	))
}
