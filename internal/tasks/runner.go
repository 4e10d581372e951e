package tasks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"delivery_admin_echo/internal/models"
)

// Runner executes due scheduled tasks and records their history
type Runner struct {
	db       *gorm.DB
	registry *Registry
	env      *Env
	log      *zap.Logger
}

// NewRunner creates a Runner. env.DB and env.Logger default to db and log.
func NewRunner(db *gorm.DB, registry *Registry, env *Env, log *zap.Logger) *Runner {
	if env == nil {
		env = &Env{}
	}
	if env.DB == nil {
		env.DB = db
	}
	if env.Logger == nil {
		env.Logger = log
	}
	return &Runner{db: db, registry: registry, env: env, log: log}
}

// ProcessDue runs every active task whose due time is at or before now.
// It returns the number of tasks it picked up.
func (r *Runner) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	var pendingTasks []models.ScheduledTask
	err := r.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, now).
		Order("due").
		Find(&pendingTasks).Error
	if err != nil {
		return 0, fmt.Errorf("fetch pending tasks: %w", err)
	}

	if len(pendingTasks) == 0 {
		r.log.Debug("no pending tasks")
		return 0, nil
	}
	r.log.Info("found pending tasks", zap.Int("count", len(pendingTasks)))

	processed := 0
	for _, task := range pendingTasks {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := r.execute(ctx, task, now); err != nil {
			r.log.Error("failed to record task run", zap.Uint("task_id", task.ID), zap.Error(err))
		}
		processed++
	}
	return processed, nil
}

func (r *Runner) execute(ctx context.Context, task models.ScheduledTask, now time.Time) error {
	logger := r.log.With(zap.Uint("task_id", task.ID), zap.String("task_name", task.TaskName))
	logger.Info("processing task")

	if task.Arguments == nil {
		task.Arguments = make(map[string]interface{})
	}

	handler, found := r.registry.Get(task.TaskName)
	if !found {
		logger.Warn("task handler not found, marking as failure")
		history := models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           now,
			Status:          models.TaskRunHandlerNotFound,
			AttemptNumber:   1,
			Arguments:       task.Arguments,
			Result:          map[string]interface{}{"error": "Handler not found"},
		}
		if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
			return err
		}
		return r.db.WithContext(ctx).Model(&task).Updates(map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		}).Error
	}

	maxAttempt := task.MaxAttempt
	if maxAttempt < 1 {
		maxAttempt = 1
	}

	var lastRun time.Time
	succeeded := false
	for attempt := 1; attempt <= maxAttempt && !succeeded; attempt++ {
		lastRun = time.Now()
		result, err := handler(ctx, r.env, task)
		runtime := time.Since(lastRun)

		status := models.TaskRunSuccess
		if err != nil {
			status = models.TaskRunFailure
			result = map[string]interface{}{"error": err.Error()}
			logger.Warn("task attempt failed", zap.Int("attempt", attempt), zap.Int("max_attempt", maxAttempt), zap.Error(err))
		} else {
			succeeded = true
			logger.Info("task completed", zap.Int("attempt", attempt), zap.Duration("runtime", runtime))
		}

		history := models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           lastRun,
			Runtime:         int(runtime.Milliseconds()),
			Status:          status,
			AttemptNumber:   attempt,
			Arguments:       task.Arguments,
			Result:          result,
		}
		if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
			return err
		}
	}

	updates := map[string]interface{}{
		"last_run": &lastRun,
	}
	switch {
	case !succeeded:
		updates["status"] = models.ScheduledTaskStatusFailure
	case task.TaskType == models.ScheduledTaskTypeRecurring:
		next := task.NextDueAfter(now)
		if next.After(task.Due) {
			updates["status"] = models.ScheduledTaskStatusActive
			updates["due"] = next
		} else {
			updates["status"] = models.ScheduledTaskStatusDone
		}
	default:
		updates["status"] = models.ScheduledTaskStatusDone
	}

	return r.db.WithContext(ctx).Model(&task).Updates(updates).Error
}

// Run calls ProcessDue immediately and then on every tick until ctx is done
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	tick := func() {
		if _, err := r.ProcessDue(ctx, time.Now()); err != nil && ctx.Err() == nil {
			r.log.Error("error processing tasks", zap.Error(err))
		}
	}

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			tick()
		case <-ctx.Done():
			return
		}
	}
}
