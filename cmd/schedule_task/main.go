package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"delivery_admin_echo/internal/config"
	"delivery_admin_echo/internal/logging"
	"delivery_admin_echo/internal/models"
	"delivery_admin_echo/internal/services"
	"delivery_admin_echo/internal/tasks"
)

// dueLayout is accepted alongside RFC 3339 and read in local time
const dueLayout = "2006-01-02 15:04"

const scheduleExample = `  schedule_task --task_name log_info --arguments '{"message":"hi"}' --due "2024-03-04 10:00"
  schedule_task --task_name refresh_dashboard_summary --due now --tasktype recurring --recurring "FREQ=MINUTELY;INTERVAL=5"`

type taskOptions struct {
	TaskName   string
	Arguments  string
	Due        string
	TaskType   string
	Recurring  string
	MaxAttempt int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts taskOptions

	cmd := &cobra.Command{
		Use:          "schedule_task",
		Short:        "Create a scheduled task for the worker",
		Example:      scheduleExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := buildTask(opts, time.Now())
			if err != nil {
				return err
			}
			return createTask(cmd, task)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.TaskName, "task_name", "", "Name of the task (mandatory)")
	f.StringVar(&opts.Arguments, "arguments", "{}", "JSON arguments for the task")
	f.StringVar(&opts.Due, "due", "", `Due date (mandatory, "now", RFC 3339 or 2006-01-02 15:04 local)`)
	f.StringVar(&opts.TaskType, "tasktype", string(models.ScheduledTaskTypeOneTime), "Task type (onetime or recurring)")
	f.StringVar(&opts.Recurring, "recurring", "", "Recurring interval rule (RFC 5545 RRULE)")
	f.IntVar(&opts.MaxAttempt, "max_attempt", 3, "Max attempts")
	_ = cmd.MarkFlagRequired("task_name")
	_ = cmd.MarkFlagRequired("due")

	cmd.AddCommand(newListCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the task names the worker can run",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			registry := tasks.NewRegistry()
			tasks.DefineTasks(registry)
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// buildTask validates opts and turns them into a task record
func buildTask(opts taskOptions, now time.Time) (*models.ScheduledTask, error) {
	registry := tasks.NewRegistry()
	tasks.DefineTasks(registry)
	if _, ok := registry.Get(opts.TaskName); !ok {
		return nil, fmt.Errorf("unknown task %q, known tasks: %v", opts.TaskName, registry.Names())
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(opts.Arguments), &args); err != nil {
		return nil, fmt.Errorf("invalid JSON arguments: %w", err)
	}

	due, err := parseDue(opts.Due, now)
	if err != nil {
		return nil, err
	}

	var recurring *string
	if opts.Recurring != "" {
		recurring = &opts.Recurring
	}

	return tasks.BuildScheduledTask(opts.TaskName, args, due, recurring, models.ScheduledTaskType(opts.TaskType), opts.MaxAttempt)
}

func parseDue(s string, now time.Time) (time.Time, error) {
	if s == "now" {
		return now, nil
	}
	if due, err := time.Parse(time.RFC3339, s); err == nil {
		return due, nil
	}
	due, err := time.ParseInLocation(dueLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, use %q (local), RFC 3339 or now", s, dueLayout)
	}
	return due, nil
}

func createTask(cmd *cobra.Command, task *models.ScheduledTask) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := services.InitDB(cfg.Database.URL, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := db.WithContext(cmd.Context()).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully created task ID: %d\n", task.ID)
	fmt.Fprintf(out, "Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due.Format(time.RFC3339), task.TaskType)
	return nil
}
