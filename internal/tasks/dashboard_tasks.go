package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"delivery_admin_echo/internal/models"
)

// ErrNoDashboard is returned when the worker runs without a dashboard cache
var ErrNoDashboard = errors.New("dashboard cache not configured")

// DefaultRefreshRule reruns the refresh every five minutes
const DefaultRefreshRule = "FREQ=MINUTELY;INTERVAL=5"

// RefreshDashboardTaskDef recomputes the cached order summary and widget stats
type RefreshDashboardTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *RefreshDashboardTaskDef) TaskID() string {
	return "refresh_dashboard_summary"
}

// CreateTask builds a recurring refresh starting at start
func (t *RefreshDashboardTaskDef) CreateTask(start time.Time, rule string) (*models.ScheduledTask, error) {
	if rule == "" {
		rule = DefaultRefreshRule
	}
	return BuildScheduledTask(t.TaskID(), map[string]interface{}{}, start, &rule, models.ScheduledTaskTypeRecurring, 3)
}

// HandleExecution refreshes the dashboard cache
func (t *RefreshDashboardTaskDef) HandleExecution(ctx context.Context, env *Env, task models.ScheduledTask) (map[string]interface{}, error) {
	if env.Dashboard == nil {
		return nil, ErrNoDashboard
	}

	rows, err := env.Dashboard.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh dashboard: %w", err)
	}
	env.Logger.Info("dashboard cache refreshed", zap.Int("rows", rows))

	return map[string]interface{}{
		"status": "success",
		"rows":   rows,
	}, nil
}

// RefreshDashboardTask is the singleton instance of RefreshDashboardTaskDef
var RefreshDashboardTask = &RefreshDashboardTaskDef{}
