package shared

import (
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"delivery_admin_echo/internal/services"
)

// SummaryTimeFormat renders the "Time & Date" column, e.g. "14:40 12 May 2012"
const SummaryTimeFormat = "15:04 2 Jan 2006"

var summaryColumns = []string{"ID", "Customer", "Time & Date", "Status", "Driver", "Amount (RM)", "Payment Method"}

// SummaryTable renders the recent orders
func SummaryTable(rows []services.SummaryRow) g.Node {
	return html.Div(
		html.Class("table"),
		html.Table(
			html.THead(
				html.Tr(
					g.Map(summaryColumns, func(c string) g.Node {
						return html.Th(html.Class("tableCell"), g.Text(c))
					}),
				),
			),
			html.TBody(
				g.If(len(rows) == 0,
					html.Tr(html.Td(g.Attr("colspan", strconv.Itoa(len(summaryColumns))), html.Class("empty"), g.Text("No orders yet"))),
				),
				g.Map(rows, summaryRow),
			),
		),
	)
}

func summaryRow(row services.SummaryRow) g.Node {
	driver := row.Driver
	if driver == "" {
		driver = "-"
	}
	return html.Tr(
		html.Th(g.Attr("scope", "row"), g.Text(strconv.FormatUint(uint64(row.ID), 10))),
		html.Td(html.Class("tableCell"), g.Text(row.Customer)),
		html.Td(html.Class("tableCell"), g.Text(row.PlacedAt.Format(SummaryTimeFormat))),
		html.Td(html.Class("tableCell"), html.Span(html.Class("status "+row.Status), g.Text(row.Status))),
		html.Td(html.Class("tableCell"), g.Text(driver)),
		html.Td(html.Class("tableCell"), g.Text(Money(row.Amount))),
		html.Td(html.Class("tableCell"), g.Text(row.PaymentMethod)),
	)
}
