package pages

import (
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"delivery_admin_echo/internal/models"
	"delivery_admin_echo/web/templates/shared"
)

// UsersListProps feeds the generic user list shared by admins, drivers and customers
type UsersListProps struct {
	shared.LayoutProps
	Heading   string
	BasePath  string
	CreateURL string
	Users     []models.User
}

// UsersList renders a table of users linking to their detail pages
func UsersList(props UsersListProps) templ.Component {
	return shared.Component(shared.Layout(props.LayoutProps,
		html.Div(
			html.Class("list_header"),
			html.H1(g.Text(props.Heading)),
			g.If(props.CreateURL != "",
				html.A(html.Class("button"), html.Href(props.CreateURL), g.Text("Add New")),
			),
		),
		html.Table(
			html.Class("users"),
			html.THead(
				html.Tr(
					html.Th(g.Text("ID")),
					html.Th(g.Text("Name")),
					html.Th(g.Text("Email")),
					html.Th(g.Text("Phone")),
				),
			),
			html.TBody(
				g.If(len(props.Users) == 0,
					html.Tr(html.Td(g.Attr("colspan", "4"), html.Class("empty"), g.Text("Nothing to show yet"))),
				),
				g.Map(props.Users, func(u models.User) g.Node {
					id := strconv.FormatUint(uint64(u.ID), 10)
					return html.Tr(
						html.Td(g.Text(id)),
						html.Td(html.A(html.Href(props.BasePath+"/"+id), g.Text(u.Name))),
						html.Td(g.Text(u.Email)),
						html.Td(g.Text(u.Phone)),
					)
				}),
			),
		),
	))
}

// UserDetailProps feeds the detail page of one user
type UserDetailProps struct {
	shared.LayoutProps
	KindLabel string
	BasePath  string
	User      models.User
}

// UserDetail renders one user's profile
func UserDetail(props UserDetailProps) templ.Component {
	u := props.User
	return shared.Component(shared.Layout(props.LayoutProps,
		html.Section(
			html.Class("details"),
			html.H1(g.Text(u.Name)),
			html.Dl(
				html.Dt(g.Text("ID")), html.Dd(g.Text(strconv.FormatUint(uint64(u.ID), 10))),
				html.Dt(g.Text("Type")), html.Dd(g.Text(props.KindLabel)),
				html.Dt(g.Text("Email")), html.Dd(g.Text(u.Email)),
				html.Dt(g.Text("Phone")), html.Dd(g.Text(orDash(u.Phone))),
				html.Dt(g.Text("Joined")), html.Dd(g.Text(u.CreatedAt.Format("2 Jan 2006"))),
			),
			html.A(html.Href(props.BasePath), g.Text("Back to list")),
		),
	))
}

// AdminFormProps feeds the new-admin form; Errors maps field names to messages
type AdminFormProps struct {
	shared.LayoutProps
	Values models.User
	Errors map[string]string
}

// AdminForm renders the form posting to /admin
func AdminForm(props AdminFormProps) templ.Component {
	return shared.Component(shared.Layout(props.LayoutProps,
		html.Section(
			html.Class("new"),
			html.H1(g.Text("Add New Admin")),
			g.If(props.Errors["form"] != "", html.P(html.Class("error"), g.Text(props.Errors["form"]))),
			html.Form(
				html.Method("post"),
				html.Action("/admin"),
				formField("name", "Name", "text", props.Values.Name, props.Errors["name"], true),
				formField("email", "Email", "email", props.Values.Email, props.Errors["email"], true),
				formField("phone", "Phone", "tel", props.Values.Phone, props.Errors["phone"], false),
				html.Button(html.Type("submit"), g.Text("Create")),
			),
		),
	))
}

func formField(name, label, inputType, value, errMsg string, required bool) g.Node {
	return html.Div(
		html.Class("formInput"),
		html.Label(html.For(name), g.Text(label)),
		html.Input(
			html.ID(name),
			html.Name(name),
			html.Type(inputType),
			html.Value(value),
			g.If(required, html.Required()),
			g.If(errMsg != "", html.Aria("invalid", "true")),
		),
		g.If(errMsg != "", html.Small(html.Class("error"), g.Text(errMsg))),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
