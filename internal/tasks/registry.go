package tasks

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"delivery_admin_echo/internal/models"
)

// DashboardRefresher recomputes cached dashboard data
type DashboardRefresher interface {
	Refresh(ctx context.Context) (rows int, err error)
}

// Env carries the dependencies task handlers may use
type Env struct {
	DB        *gorm.DB
	Dashboard DashboardRefresher
	Logger    *zap.Logger
}

// TaskHandler is the function signature for a task handler.
// It returns a result map stored in the run history.
type TaskHandler func(ctx context.Context, env *Env, task models.ScheduledTask) (map[string]interface{}, error)

// Registry stores the mapping of task names to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]TaskHandler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]TaskHandler)}
}

// Register adds a handler for a task name
func (r *Registry) Register(name string, handler TaskHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Get retrieves a handler for a task name
func (r *Registry) Get(name string) (TaskHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// Names lists the registered task names in order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
