package pages

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"delivery_admin_echo/web/templates/shared"
)

// LoginProps carries the Firebase web client settings
type LoginProps struct {
	FirebaseAPIKey     string
	FirebaseAuthDomain string
	FirebaseProjectID  string
	Error              string
}

var loginErrors = map[string]string{
	"auth_not_configured": "Sign-in is not configured on this server.",
	"session_expired":     "Your session has expired. Please sign in again.",
}

// Login renders the sign-in form; login.js exchanges the Firebase ID token for a session
func Login(props LoginProps) templ.Component {
	message := loginErrors[props.Error]
	if message == "" && props.Error != "" {
		message = "Sign-in failed. Please try again."
	}

	return shared.Component(shared.PublicLayout("Login",
		html.Div(
			html.Class("login"),
			html.ID("login"),
			html.Data("api-key", props.FirebaseAPIKey),
			html.Data("auth-domain", props.FirebaseAuthDomain),
			html.Data("project-id", props.FirebaseProjectID),
			html.H1(g.Text("Sign in")),
			g.If(message != "", html.P(html.Class("error"), g.Text(message))),
			html.Form(
				html.ID("login-form"),
				html.Label(html.For("email"), g.Text("Email")),
				html.Input(html.ID("email"), html.Name("email"), html.Type("email"), html.Required()),
				html.Label(html.For("password"), g.Text("Password")),
				html.Input(html.ID("password"), html.Name("password"), html.Type("password"), html.Required()),
				html.Button(html.Type("submit"), g.Text("Sign in")),
			),
			html.P(html.Class("error"), html.ID("login-error"), g.Attr("hidden")),
		),
		html.Script(html.Src("https://www.gstatic.com/firebasejs/10.12.0/firebase-app-compat.js")),
		html.Script(html.Src("https://www.gstatic.com/firebasejs/10.12.0/firebase-auth-compat.js")),
		html.Script(html.Src("/static/js/login.js"), html.Defer()),
	))
}
