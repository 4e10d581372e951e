package services

import (
	"context"
	"time"

	"delivery_admin_echo/internal/models"
)

// sampleRows are placeholder orders shown when no database is configured
var sampleRows = []SummaryRow{
	{ID: 1000003, Customer: "Joe", Driver: "Lawrence", PlacedAt: time.Date(2012, time.May, 12, 14, 40, 0, 0, time.UTC), Amount: 414.18, PaymentMethod: "card", Status: "Pending"},
	{ID: 1000002, Customer: "Bobby Singer", Driver: "John Winchester", PlacedAt: time.Date(2012, time.May, 12, 14, 25, 0, 0, time.UTC), Amount: 12.48, PaymentMethod: "cash", Status: "OnGoing"},
	{ID: 1000001, Customer: "Crowley", Driver: "Michael", PlacedAt: time.Date(2012, time.May, 10, 0, 25, 0, 0, time.UTC), Amount: 666.66, PaymentMethod: "online", Status: "Completed"},
	{ID: 1000000, Customer: "Daniel", Driver: "Richard", PlacedAt: time.Date(2012, time.May, 8, 5, 41, 0, 0, time.UTC), Amount: 592.14, PaymentMethod: "cash", Status: "Canceled"},
}

// sampleUsers seed the in-memory store
var sampleUsers = []models.User{
	{Name: "Dashboard Admin", Email: "admin@example.com", UserType: models.UserTypeAdmin},
	{Name: "Lawrence", Email: "lawrence@example.com", Phone: "+60 12-345 0001", UserType: models.UserTypeDriver},
	{Name: "John Winchester", Email: "john@example.com", Phone: "+60 12-345 0002", UserType: models.UserTypeDriver},
	{Name: "Michael", Email: "michael@example.com", Phone: "+60 12-345 0003", UserType: models.UserTypeDriver},
	{Name: "Richard", Email: "richard@example.com", Phone: "+60 12-345 0004", UserType: models.UserTypeDriver},
	{Name: "Joe", Email: "joe@example.com", UserType: models.UserTypeCustomer},
	{Name: "Bobby Singer", Email: "bobby@example.com", UserType: models.UserTypeCustomer},
	{Name: "Crowley", Email: "crowley@example.com", UserType: models.UserTypeCustomer},
	{Name: "Daniel", Email: "daniel@example.com", UserType: models.UserTypeCustomer},
}

// StaticDashboard serves fixed placeholder values
type StaticDashboard struct{}

// NewStaticDashboard returns the placeholder dashboard source
func NewStaticDashboard() *StaticDashboard {
	return &StaticDashboard{}
}

// FetchSummary implements DashboardSource
func (StaticDashboard) FetchSummary(ctx context.Context) ([]SummaryRow, error) {
	return append([]SummaryRow(nil), sampleRows...), nil
}

// FetchWidgets implements DashboardSource
func (StaticDashboard) FetchWidgets(ctx context.Context) ([]WidgetStat, error) {
	stats := make([]WidgetStat, 0, len(WidgetKinds))
	for _, k := range WidgetKinds {
		stats = append(stats, WidgetStat{Kind: k, Amount: 100, Diff: 20})
	}
	return stats, nil
}

// SampleUsers returns a copy of the placeholder users
func SampleUsers() []models.User {
	return append([]models.User(nil), sampleUsers...)
}
