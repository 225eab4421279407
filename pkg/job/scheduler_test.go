package job_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/pkg/job"
)

type countingTask struct {
	name     string
	schedule string
	calls    atomic.Int32
	err      error
	panics   bool
}

func (t *countingTask) Name() string     { return t.name }
func (t *countingTask) Schedule() string { return t.schedule }

func (t *countingTask) Handle(context.Context) error {
	t.calls.Add(1)
	if t.panics {
		panic("boom")
	}
	return t.err
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid schedule", func(t *testing.T) {
		t.Parallel()
		_, err := job.New(job.WithScheduledTask(&countingTask{name: "a", schedule: "not a cron"}))
		require.ErrorIs(t, err, job.ErrInvalidSchedule)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()
		_, err := job.New(
			job.WithScheduledTask(&countingTask{name: "a", schedule: "@daily"}),
			job.WithScheduledTask(&countingTask{name: "a", schedule: "0 3 * * *"}),
		)
		require.ErrorIs(t, err, job.ErrDuplicateTask)
	})

	t.Run("accepts five-field expressions", func(t *testing.T) {
		t.Parallel()
		s, err := job.New(job.WithScheduledTask(&countingTask{name: "a", schedule: "*/5 * * * *"}))
		require.NoError(t, err)
		require.NotNil(t, s)
	})
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	s, err := job.ParseSchedule("0 3 * * *")
	require.NoError(t, err)
	from := time.Date(2025, 5, 17, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 5, 18, 3, 0, 0, 0, time.UTC), s.Next(from))

	_, err = job.ParseSchedule("0 0 3 * * *")
	require.ErrorIs(t, err, job.ErrInvalidSchedule)
}

func TestRunNow(t *testing.T) {
	t.Parallel()

	ok := &countingTask{name: "ok", schedule: "@daily"}
	failing := &countingTask{name: "failing", schedule: "@daily", err: errors.New("upstream down")}
	panicking := &countingTask{name: "panicking", schedule: "@daily", panics: true}

	s, err := job.New(
		job.WithScheduledTask(ok),
		job.WithScheduledTask(failing),
		job.WithScheduledTask(panicking),
	)
	require.NoError(t, err)

	require.NoError(t, s.RunNow(context.Background(), "ok"))
	assert.Equal(t, int32(1), ok.calls.Load())

	err = s.RunNow(context.Background(), "failing")
	require.EqualError(t, err, "upstream down")

	err = s.RunNow(context.Background(), "panicking")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	err = s.RunNow(context.Background(), "missing")
	require.ErrorIs(t, err, job.ErrUnknownTask)
}

func TestRunNowTimeout(t *testing.T) {
	t.Parallel()

	task := &deadlineTask{}
	s, err := job.New(job.WithScheduledTask(task), job.WithTimeout(time.Minute))
	require.NoError(t, err)

	require.NoError(t, s.RunNow(context.Background(), "deadline"))
	assert.True(t, task.hadDeadline)
}

type deadlineTask struct {
	hadDeadline bool
}

func (*deadlineTask) Name() string     { return "deadline" }
func (*deadlineTask) Schedule() string { return "@hourly" }

func (t *deadlineTask) Handle(ctx context.Context) error {
	_, t.hadDeadline = ctx.Deadline()
	return nil
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	s, err := job.New(job.WithScheduledTask(&countingTask{name: "a", schedule: "@daily"}))
	require.NoError(t, err)

	require.ErrorIs(t, s.Stop(context.Background()), job.ErrNotStarted)
	require.NoError(t, s.Start())
	require.ErrorIs(t, s.Start(), job.ErrAlreadyStarted)

	next := s.Next()
	require.Contains(t, next, "a")
	assert.True(t, next["a"].After(time.Now()))

	require.NoError(t, s.Stop(context.Background()))
	// Shutdown tolerates an already stopped scheduler.
	require.NoError(t, s.Shutdown()(context.Background()))
}
