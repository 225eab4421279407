package job

import (
	"context"
	"log/slog"
	"time"
)

// ScheduledTask is a periodic unit of work.
// Schedule returns a cron expression (5 fields: min hour day month weekday).
type ScheduledTask interface {
	Name() string
	Schedule() string
	Handle(ctx context.Context) error
}

// config holds scheduler configuration.
type config struct {
	logger  *slog.Logger
	tasks   []ScheduledTask
	timeout time.Duration
}

// Option configures the scheduler.
type Option func(*config)

// WithScheduledTask registers a periodic task.
func WithScheduledTask(task ScheduledTask) Option {
	return func(c *config) {
		c.tasks = append(c.tasks, task)
	}
}

// WithLogger sets the logger for task runs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTimeout bounds every task run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}
