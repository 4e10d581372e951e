package shared

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Breadcrumb represents a navigation trail entry; an empty URL marks the current page
type Breadcrumb struct {
	Title string
	URL   string
}

// LayoutProps is the data every authenticated page shares
type LayoutProps struct {
	Title       string
	ActiveNav   string
	Breadcrumbs []Breadcrumb
	UserEmail   string
	UserUID     string
}

func head(title string) g.Node {
	return html.Head(
		html.Meta(html.Charset("utf-8")),
		html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
		html.TitleEl(g.Text(title+" | Delivery Admin")),
		html.Link(html.Rel("stylesheet"), html.Href("/static/css/app.css")),
	)
}

// Layout renders the dashboard shell: sidebar, navbar, breadcrumbs and content
func Layout(props LayoutProps, content ...g.Node) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			head(props.Title),
			html.Body(
				html.Div(
					html.Class("home"),
					Sidebar(props.ActiveNav),
					html.Div(
						html.Class("homeContainer"),
						Navbar(props.UserEmail),
						Breadcrumbs(props.Breadcrumbs),
						html.Main(
							html.Class("content"),
							g.Group(content),
						),
					),
				),
			),
		),
	)
}

// PublicLayout renders a bare page for visitors without a session
func PublicLayout(title string, content ...g.Node) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			head(title),
			html.Body(
				html.Main(
					html.Class("public"),
					g.Group(content),
				),
			),
		),
	)
}

// Navbar shows the signed-in account
func Navbar(userEmail string) g.Node {
	return html.Header(
		html.Class("navbar"),
		html.Span(html.Class("navbar_title"), g.Text("Delivery Admin")),
		g.If(userEmail != "",
			html.Span(html.Class("navbar_user"), g.Text(userEmail)),
		),
	)
}

// Breadcrumbs renders the trail; nothing when empty
func Breadcrumbs(items []Breadcrumb) g.Node {
	if len(items) == 0 {
		return nil
	}
	return html.Nav(
		html.Class("breadcrumbs"),
		html.Aria("label", "Breadcrumb"),
		html.Ol(
			g.Map(items, func(b Breadcrumb) g.Node {
				if b.URL == "" {
					return html.Li(html.Aria("current", "page"), g.Text(b.Title))
				}
				return html.Li(html.A(html.Href(b.URL), g.Text(b.Title)))
			}),
		),
	)
}
