package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"delivery_admin_echo/internal/models"
	"delivery_admin_echo/internal/services"
)

var testNow = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, services.AutoMigrate(db, zap.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context) (int, error) {
	f.calls++
	return 4, f.err
}

func newTestRunner(db *gorm.DB, registry *Registry, dashboard DashboardRefresher) *Runner {
	return NewRunner(db, registry, &Env{Dashboard: dashboard}, zap.NewNop())
}

func createTask(t *testing.T, db *gorm.DB, task *models.ScheduledTask) {
	t.Helper()
	require.NoError(t, db.Create(task).Error)
}

func reload(t *testing.T, db *gorm.DB, id uint) (models.ScheduledTask, []models.ScheduledTaskHistory) {
	t.Helper()
	var task models.ScheduledTask
	require.NoError(t, db.First(&task, id).Error)
	var history []models.ScheduledTaskHistory
	require.NoError(t, db.Where("scheduled_task_id = ?", id).Order("attempt_number").Find(&history).Error)
	return task, history
}

func historyStatuses(history []models.ScheduledTaskHistory) []string {
	out := make([]string, 0, len(history))
	for _, h := range history {
		out = append(out, h.Status)
	}
	return out
}

func TestBuildScheduledTask(t *testing.T) {
	rule := DefaultRefreshRule
	task, err := BuildScheduledTask("log_info", struct {
		Message string `json:"message"`
	}{"hello"}, testNow, &rule, models.ScheduledTaskTypeRecurring, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", task.Arguments["message"])
	assert.Equal(t, models.ScheduledTaskStatusActive, task.Status)
	assert.Equal(t, 1, task.MaxAttempt)

	bad := "FREQ=SOMETIMES"
	tests := []struct {
		name     string
		taskName string
		rule     *string
		taskType models.ScheduledTaskType
	}{
		{"missing name", "", nil, models.ScheduledTaskTypeOneTime},
		{"recurring without rule", "log_info", nil, models.ScheduledTaskTypeRecurring},
		{"unparsable rule", "log_info", &bad, models.ScheduledTaskTypeRecurring},
		{"unknown type", "log_info", nil, "weekly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildScheduledTask(tt.taskName, nil, testNow, tt.rule, tt.taskType, 1)
			assert.ErrorIs(t, err, ErrInvalidTask)
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	DefineTasks(r)

	assert.Equal(t, []string{"log_info", "refresh_dashboard_summary"}, r.Names())
	_, ok := r.Get("send_notification")
	assert.False(t, ok)
}

func TestProcessDueOneTimeTask(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	DefineTasks(r)

	due := &models.ScheduledTask{
		TaskName: "log_info", Arguments: map[string]interface{}{"message": "hi"},
		Due: testNow.Add(-time.Minute), Status: models.ScheduledTaskStatusActive,
		TaskType: models.ScheduledTaskTypeOneTime, MaxAttempt: 1,
	}
	later := &models.ScheduledTask{
		TaskName: "log_info", Due: testNow.Add(time.Hour), Status: models.ScheduledTaskStatusActive,
		TaskType: models.ScheduledTaskTypeOneTime, MaxAttempt: 1,
	}
	createTask(t, db, due)
	createTask(t, db, later)

	n, err := newTestRunner(db, r, nil).ProcessDue(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	task, history := reload(t, db, due.ID)
	assert.Equal(t, models.ScheduledTaskStatusDone, task.Status)
	require.NotNil(t, task.LastRun)
	assert.Equal(t, []string{models.TaskRunSuccess}, historyStatuses(history))
	assert.Equal(t, "hi", history[0].Result["message"])

	untouched, none := reload(t, db, later.ID)
	assert.Equal(t, models.ScheduledTaskStatusActive, untouched.Status)
	assert.Empty(t, none)
}

func TestProcessDueHandlerNotFound(t *testing.T) {
	db := newTestDB(t)
	task := &models.ScheduledTask{
		TaskName: "send_notification", Due: testNow, Status: models.ScheduledTaskStatusActive,
		TaskType: models.ScheduledTaskTypeOneTime, MaxAttempt: 3,
	}
	createTask(t, db, task)

	_, err := newTestRunner(db, NewRegistry(), nil).ProcessDue(context.Background(), testNow)
	require.NoError(t, err)

	got, history := reload(t, db, task.ID)
	assert.Equal(t, models.ScheduledTaskStatusFailure, got.Status)
	assert.Equal(t, []string{models.TaskRunHandlerNotFound}, historyStatuses(history))
}

func TestProcessDueRetriesUntilSuccess(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	calls := 0
	r.Register("flaky", func(ctx context.Context, env *Env, task models.ScheduledTask) (map[string]interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("not yet")
		}
		return map[string]interface{}{"status": "success"}, nil
	})

	task := &models.ScheduledTask{
		TaskName: "flaky", Due: testNow, Status: models.ScheduledTaskStatusActive,
		TaskType: models.ScheduledTaskTypeOneTime, MaxAttempt: 3,
	}
	createTask(t, db, task)

	_, err := newTestRunner(db, r, nil).ProcessDue(context.Background(), testNow)
	require.NoError(t, err)

	got, history := reload(t, db, task.ID)
	assert.Equal(t, 3, calls)
	assert.Equal(t, models.ScheduledTaskStatusDone, got.Status)
	assert.Equal(t, []string{models.TaskRunFailure, models.TaskRunFailure, models.TaskRunSuccess}, historyStatuses(history))
	assert.Equal(t, "not yet", history[0].Result["error"])
}

func TestProcessDueGivesUpAfterMaxAttempt(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	calls := 0
	r.Register("broken", func(ctx context.Context, env *Env, task models.ScheduledTask) (map[string]interface{}, error) {
		calls++
		return nil, errors.New("boom")
	})

	task := &models.ScheduledTask{
		TaskName: "broken", Due: testNow, Status: models.ScheduledTaskStatusActive,
		TaskType: models.ScheduledTaskTypeOneTime, MaxAttempt: 2,
	}
	createTask(t, db, task)

	_, err := newTestRunner(db, r, nil).ProcessDue(context.Background(), testNow)
	require.NoError(t, err)

	got, history := reload(t, db, task.ID)
	assert.Equal(t, 2, calls)
	assert.Equal(t, models.ScheduledTaskStatusFailure, got.Status)
	assert.Len(t, history, 2)
}

func TestProcessDueReschedulesRecurringTask(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	DefineTasks(r)
	refresher := &fakeRefresher{}

	task, err := RefreshDashboardTask.CreateTask(testNow.Add(-time.Minute), "")
	require.NoError(t, err)
	createTask(t, db, task)

	_, err = newTestRunner(db, r, refresher).ProcessDue(context.Background(), testNow)
	require.NoError(t, err)

	got, history := reload(t, db, task.ID)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, models.ScheduledTaskStatusActive, got.Status)
	assert.True(t, got.Due.Equal(testNow.Add(4*time.Minute)), "next due %s", got.Due)
	require.Len(t, history, 1)
	assert.EqualValues(t, 4, history[0].Result["rows"])
}

func TestRefreshDashboardWithoutCache(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	DefineTasks(r)

	task, err := RefreshDashboardTask.CreateTask(testNow, "")
	require.NoError(t, err)
	createTask(t, db, task)

	_, err = newTestRunner(db, r, nil).ProcessDue(context.Background(), testNow)
	require.NoError(t, err)

	got, history := reload(t, db, task.ID)
	assert.Equal(t, models.ScheduledTaskStatusFailure, got.Status)
	assert.Len(t, history, 3)
	assert.Equal(t, ErrNoDashboard.Error(), history[0].Result["error"])
}

func TestProcessDueStopsOnCanceledContext(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	DefineTasks(r)
	createTask(t, db, &models.ScheduledTask{
		TaskName: "log_info", Due: testNow, Status: models.ScheduledTaskStatusActive,
		TaskType: models.ScheduledTaskTypeOneTime, MaxAttempt: 1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := newTestRunner(db, r, nil).ProcessDue(ctx, testNow)
	assert.Error(t, err)
	assert.Zero(t, n)
}
