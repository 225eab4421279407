package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/b2bnews/pkg/logger"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule validates a cron expression.
func ParseSchedule(expr string) (cron.Schedule, error) {
	s, err := parser.Parse(expr)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchedule, fmt.Errorf("%q: %w", expr, err))
	}
	return s, nil
}

// Scheduler runs registered tasks on their schedules.
type Scheduler struct {
	cron    *cron.Cron
	tasks   map[string]ScheduledTask
	entries map[cron.EntryID]string
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New validates all schedules and creates a scheduler. Tasks start running after Start.
func New(opts ...Option) (*Scheduler, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		tasks:   make(map[string]ScheduledTask, len(cfg.tasks)),
		entries: make(map[cron.EntryID]string, len(cfg.tasks)),
		logger:  cfg.logger,
		timeout: cfg.timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
	s.cron = cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{s.logger})),
	)

	for _, task := range cfg.tasks {
		name := task.Name()
		if _, ok := s.tasks[name]; ok {
			cancel()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, name)
		}
		schedule, err := ParseSchedule(task.Schedule())
		if err != nil {
			cancel()
			return nil, err
		}
		s.tasks[name] = task
		id := s.cron.Schedule(schedule, cron.FuncJob(func() {
			_ = s.run(s.ctx, task)
		}))
		s.entries[id] = name
	}
	return s, nil
}

// Start begins running tasks on their schedules.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.cron.Start()
	s.logger.Info("job scheduler started", slog.Int("tasks", len(s.tasks)))
	return nil
}

// Stop stops scheduling and waits for running tasks until ctx is done. Tasks that
// are still running then see their context cancelled.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.started = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancel()
		s.logger.Info("job scheduler stopped")
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}

// RunNow runs a registered task once, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	task, ok := s.tasks[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return s.run(ctx, task)
}

// Next returns the next scheduled run of each task, keyed by task name.
// It is empty before Start.
func (s *Scheduler) Next() map[string]time.Time {
	out := make(map[string]time.Time, len(s.tasks))
	for _, e := range s.cron.Entries() {
		if name, ok := s.entries[e.ID]; ok && !e.Next.IsZero() {
			out[name] = e.Next
		}
	}
	return out
}

// Shutdown returns a shutdown function for the scheduler.
func (s *Scheduler) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := s.Stop(ctx); err != nil && !errors.Is(err, ErrNotStarted) {
			return err
		}
		return nil
	}
}

func (s *Scheduler) run(ctx context.Context, task ScheduledTask) (err error) {
	name := task.Name()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job: task %s panicked: %v", name, r)
			s.logger.Error("task panicked",
				slog.String("task", name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	if err = task.Handle(ctx); err != nil {
		s.logger.ErrorContext(ctx, "task failed",
			slog.String("task", name),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return err
	}
	s.logger.InfoContext(ctx, "task completed",
		slog.String("task", name),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
