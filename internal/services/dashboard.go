package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"delivery_admin_echo/internal/models"
)

// WidgetKind selects which dashboard counter a widget shows
type WidgetKind string

const (
	WidgetOrder       WidgetKind = "order"
	WidgetTransaction WidgetKind = "transaction"
	WidgetUser        WidgetKind = "user"
	WidgetDriver      WidgetKind = "driver"
)

// WidgetKinds is the display order on the dashboard
var WidgetKinds = []WidgetKind{WidgetOrder, WidgetTransaction, WidgetUser, WidgetDriver}

// SummaryRow is one line of the recent orders table
type SummaryRow struct {
	ID            uint      `json:"id"`
	Customer      string    `json:"customer"`
	Driver        string    `json:"driver"`
	PlacedAt      time.Time `json:"placed_at"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
}

// WidgetStat is the counter behind one dashboard widget
type WidgetStat struct {
	Kind   WidgetKind `json:"kind"`
	Amount float64    `json:"amount"`
	Diff   float64    `json:"diff"` // percent change against the previous window
}

// DashboardSource feeds the home page
type DashboardSource interface {
	FetchSummary(ctx context.Context) ([]SummaryRow, error)
	FetchWidgets(ctx context.Context) ([]WidgetStat, error)
}

// StatsWindow is the period each widget diff compares against the one before it
const StatsWindow = 7 * 24 * time.Hour

// OrderDashboard reads dashboard data from the orders and users tables
type OrderDashboard struct {
	db    *gorm.DB
	limit int
	now   func() time.Time
}

// NewOrderDashboard returns a source showing the latest limit orders
func NewOrderDashboard(db *gorm.DB, limit int) *OrderDashboard {
	if limit <= 0 {
		limit = 10
	}
	return &OrderDashboard{db: db, limit: limit, now: time.Now}
}

// FetchSummary returns the most recently placed orders
func (s *OrderDashboard) FetchSummary(ctx context.Context) ([]SummaryRow, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Driver").
		Order("placed_at desc").
		Limit(s.limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	rows := make([]SummaryRow, 0, len(orders))
	for _, o := range orders {
		row := SummaryRow{
			ID:            o.ID,
			Customer:      o.Customer.Name,
			PlacedAt:      o.PlacedAt,
			Amount:        o.Amount,
			PaymentMethod: string(o.PaymentMethod),
			Status:        string(o.Status),
		}
		if o.Driver != nil {
			row.Driver = o.Driver.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchWidgets computes the four dashboard counters
func (s *OrderDashboard) FetchWidgets(ctx context.Context) ([]WidgetStat, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	windowStart := now.Add(-StatsWindow)
	prevStart := now.Add(-2 * StatsWindow)

	stats := make([]WidgetStat, 0, len(WidgetKinds))

	orders := func() *gorm.DB { return db.Model(&models.Order{}) }
	total, cur, prev, err := countWindows(orders, "placed_at", windowStart, prevStart)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	stats = append(stats, WidgetStat{Kind: WidgetOrder, Amount: total, Diff: percentChange(cur, prev)})

	completed := func() *gorm.DB {
		return db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted)
	}
	total, cur, prev, err = sumWindows(completed, windowStart, prevStart)
	if err != nil {
		return nil, fmt.Errorf("sum transactions: %w", err)
	}
	stats = append(stats, WidgetStat{Kind: WidgetTransaction, Amount: total, Diff: percentChange(cur, prev)})

	for _, k := range []struct {
		kind     WidgetKind
		userType models.UserType
	}{
		{WidgetUser, models.UserTypeCustomer},
		{WidgetDriver, models.UserTypeDriver},
	} {
		users := func() *gorm.DB { return db.Model(&models.User{}).Where("user_type = ?", k.userType) }
		total, cur, prev, err = countWindows(users, "created_at", windowStart, prevStart)
		if err != nil {
			return nil, fmt.Errorf("count %s users: %w", k.userType, err)
		}
		stats = append(stats, WidgetStat{Kind: k.kind, Amount: total, Diff: percentChange(cur, prev)})
	}

	return stats, nil
}

func countWindows(q func() *gorm.DB, column string, windowStart, prevStart time.Time) (total, cur, prev float64, err error) {
	var n int64
	if err = q().Count(&n).Error; err != nil {
		return
	}
	total = float64(n)
	if err = q().Where(column+" >= ?", windowStart).Count(&n).Error; err != nil {
		return
	}
	cur = float64(n)
	if err = q().Where(column+" >= ? AND "+column+" < ?", prevStart, windowStart).Count(&n).Error; err != nil {
		return
	}
	prev = float64(n)
	return
}

func sumWindows(q func() *gorm.DB, windowStart, prevStart time.Time) (total, cur, prev float64, err error) {
	const sum = "COALESCE(SUM(amount), 0)"
	if err = q().Select(sum).Scan(&total).Error; err != nil {
		return
	}
	if err = q().Where("placed_at >= ?", windowStart).Select(sum).Scan(&cur).Error; err != nil {
		return
	}
	err = q().Where("placed_at >= ? AND placed_at < ?", prevStart, windowStart).Select(sum).Scan(&prev).Error
	return
}

// percentChange is rounded to a whole percent, and 0 when there is no previous
// value to compare against
func percentChange(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return math.Round((cur - prev) / prev * 100)
}

// Dashboard cache keys
const (
	SummaryCacheKey = "dashboard:summary"
	WidgetsCacheKey = "dashboard:widgets"
)

// CachedDashboard serves a DashboardSource through a Cache
type CachedDashboard struct {
	source DashboardSource
	cache  Cache
	ttl    time.Duration
}

// NewCachedDashboard wraps source with cache entries living for ttl
func NewCachedDashboard(source DashboardSource, cache Cache, ttl time.Duration) *CachedDashboard {
	return &CachedDashboard{source: source, cache: cache, ttl: ttl}
}

// FetchSummary implements DashboardSource
func (d *CachedDashboard) FetchSummary(ctx context.Context) ([]SummaryRow, error) {
	return GetOrSet(d.cache, ctx, SummaryCacheKey, d.ttl, func() ([]SummaryRow, error) {
		return d.source.FetchSummary(ctx)
	})
}

// FetchWidgets implements DashboardSource
func (d *CachedDashboard) FetchWidgets(ctx context.Context) ([]WidgetStat, error) {
	return GetOrSet(d.cache, ctx, WidgetsCacheKey, d.ttl, func() ([]WidgetStat, error) {
		return d.source.FetchWidgets(ctx)
	})
}

// Refresh recomputes both entries from the underlying source
func (d *CachedDashboard) Refresh(ctx context.Context) (rows int, err error) {
	summary, err := d.source.FetchSummary(ctx)
	if err != nil {
		return 0, err
	}
	widgets, err := d.source.FetchWidgets(ctx)
	if err != nil {
		return 0, err
	}
	if err := d.cache.Set(ctx, SummaryCacheKey, summary, d.ttl); err != nil {
		return 0, fmt.Errorf("cache summary: %w", err)
	}
	if err := d.cache.Set(ctx, WidgetsCacheKey, widgets, d.ttl); err != nil {
		return 0, fmt.Errorf("cache widgets: %w", err)
	}
	return len(summary), nil
}
