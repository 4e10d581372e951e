package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"delivery_admin_echo/internal/models"
)

// ErrInvalidTask reports a scheduled task that cannot be stored
var ErrInvalidTask = errors.New("invalid scheduled task")

// BuildScheduledTask is a helper to build ScheduledTask records generically.
// args is round-tripped through JSON so any struct becomes the stored argument map.
func BuildScheduledTask(taskName string, args interface{}, due time.Time, recurringInterval *string, taskType models.ScheduledTaskType, maxAttempt int) (*models.ScheduledTask, error) {
	if taskName == "" {
		return nil, fmt.Errorf("%w: task name is required", ErrInvalidTask)
	}

	switch taskType {
	case models.ScheduledTaskTypeOneTime:
	case models.ScheduledTaskTypeRecurring:
		if recurringInterval == nil || *recurringInterval == "" {
			return nil, fmt.Errorf("%w: recurring task needs a rule", ErrInvalidTask)
		}
		if _, err := rrule.StrToRRule(*recurringInterval); err != nil {
			return nil, fmt.Errorf("%w: bad rule %q: %v", ErrInvalidTask, *recurringInterval, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown task type %q", ErrInvalidTask, taskType)
	}

	if maxAttempt < 1 {
		maxAttempt = 1
	}

	argsBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}

	var mapArgs map[string]interface{}
	if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into map: %w", err)
	}

	return &models.ScheduledTask{
		TaskName:          taskName,
		Arguments:         mapArgs,
		Due:               due,
		RecurringInterval: recurringInterval,
		Status:            models.ScheduledTaskStatusActive,
		TaskType:          taskType,
		MaxAttempt:        maxAttempt,
	}, nil
}
