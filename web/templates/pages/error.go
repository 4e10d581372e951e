package pages

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"delivery_admin_echo/web/templates/shared"
)

// ErrorPageProps feeds both error page variants
type ErrorPageProps struct {
	shared.LayoutProps
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}

func errorBody(props ErrorPageProps) g.Node {
	backLink, backText := props.BackLink, props.BackText
	if backLink == "" {
		backLink, backText = "/", "Back to dashboard"
	}
	return html.Section(
		html.Class("error_page"),
		html.H1(g.Text(props.ErrorTitle)),
		html.P(g.Text(props.ErrorMessage)),
		html.A(html.Href(backLink), g.Text(backText)),
	)
}

// ErrorPage renders an error inside the dashboard shell
func ErrorPage(props ErrorPageProps) templ.Component {
	return shared.Component(shared.Layout(props.LayoutProps, errorBody(props)))
}

// PublicErrorPage renders an error without the sidebar, for visitors without a session
func PublicErrorPage(props ErrorPageProps) templ.Component {
	if props.BackLink == "" {
		props.BackLink, props.BackText = "/login", "Go to sign in"
	}
	return shared.Component(shared.PublicLayout(props.Title, errorBody(props)))
}
