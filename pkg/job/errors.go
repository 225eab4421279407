package job

import "errors"

// Job errors.
var (
	// ErrUnknownTask is returned when running a task that has not been registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrInvalidSchedule is returned when a task's cron expression cannot be parsed.
	ErrInvalidSchedule = errors.New("job: invalid cron schedule")

	// ErrDuplicateTask is returned when two tasks share a name.
	ErrDuplicateTask = errors.New("job: duplicate task name")

	// ErrAlreadyStarted is returned when attempting to start a scheduler
	// that is already running.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when attempting to stop a scheduler
	// that is not running.
	ErrNotStarted = errors.New("job: not started")
)
