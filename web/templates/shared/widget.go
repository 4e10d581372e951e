package shared

import (
	"fmt"
	"math"
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"delivery_admin_echo/internal/services"
)

// WidgetMeta is the fixed presentation of one widget kind
type WidgetMeta struct {
	Title   string
	IsMoney bool
	Link    string
	LinkURL string
}

var widgetMeta = map[services.WidgetKind]WidgetMeta{
	services.WidgetOrder:       {Title: "ORDERS", Link: "View all orders"},
	services.WidgetTransaction: {Title: "TRANSACTIONS", IsMoney: true, Link: "View all transactions"},
	services.WidgetUser:        {Title: "USERS", Link: "See all users", LinkURL: "/cust"},
	services.WidgetDriver:      {Title: "DRIVERS", Link: "See all drivers", LinkURL: "/driver"},
}

// MetaFor returns the presentation of kind and whether the kind is known
func MetaFor(kind services.WidgetKind) (WidgetMeta, bool) {
	m, ok := widgetMeta[kind]
	return m, ok
}

// Widget renders one counter card; unknown kinds render nothing
func Widget(stat services.WidgetStat) g.Node {
	meta, ok := MetaFor(stat.Kind)
	if !ok {
		return nil
	}

	counter := formatCount(stat.Amount)
	if meta.IsMoney {
		counter = "RM " + Money(stat.Amount)
	}

	diff := math.Round(stat.Diff)
	direction := "positive"
	if diff < 0 {
		direction = "negative"
	}

	var link g.Node = html.Span(html.Class("link"), g.Text(meta.Link))
	if meta.LinkURL != "" {
		link = html.A(html.Class("link"), html.Href(meta.LinkURL), g.Text(meta.Link))
	}

	return html.Div(
		html.Class("widget"),
		html.Data("kind", string(stat.Kind)),
		html.Div(
			html.Class("left"),
			html.Span(html.Class("title"), g.Text(meta.Title)),
			html.Span(html.Class("counter"), g.Text(counter)),
			link,
		),
		html.Div(
			html.Class("right"),
			html.Div(
				html.Class("percentage "+direction),
				g.Textf("%s %%", strconv.FormatFloat(math.Abs(diff), 'f', 0, 64)),
			),
		),
	)
}

// Money formats an amount with two decimals
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func formatCount(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
