package hook

import (
	"context"
	"time"

	"github.com/flingworks/fling/task"
)

// Hook is the base interface all lifecycle hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// ──────────────────────────────────────────────────
// Create-phase events (submitter's goroutine)
// ──────────────────────────────────────────────────

// TaskSubmitted is called as the first step of Submit, before the run
// phase is scheduled.
type TaskSubmitted interface {
	OnTaskSubmitted(ctx context.Context, t *task.Task) error
}

// TaskScheduled is called after the run phase has been handed to the
// spawner, immediately before Submit returns. It brackets only the
// scheduling action, not the task's execution.
type TaskScheduled interface {
	OnTaskScheduled(ctx context.Context, t *task.Task) error
}

// ──────────────────────────────────────────────────
// Run-phase events (detached run goroutine)
// ──────────────────────────────────────────────────

// RunStarted is called when the run goroutine begins executing a task.
type RunStarted interface {
	OnRunStarted(ctx context.Context, t *task.Task) error
}

// RunSucceeded is called after a run finishes without error.
type RunSucceeded interface {
	OnRunSucceeded(ctx context.Context, t *task.Task, elapsed time.Duration) error
}

// RunFailed is called when a run fails. The error is the one captured
// at the dispatcher boundary, verbatim.
type RunFailed interface {
	OnRunFailed(ctx context.Context, t *task.Task, err error) error
}

// RunEnded is called exactly once per run, after RunSucceeded or
// RunFailed and before the run's dependency scope is released.
type RunEnded interface {
	OnRunEnded(ctx context.Context, t *task.Task, elapsed time.Duration) error
}

// ──────────────────────────────────────────────────
// Other events
// ──────────────────────────────────────────────────

// Shutdown is called during graceful dispatcher shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
