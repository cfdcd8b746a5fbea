package hook

import (
	"context"
	"log/slog"
	"time"

	"github.com/flingworks/fling/task"
)

// Named entry types pair an event implementation with the hook name
// captured at registration time. This avoids type-asserting back to
// Hook inside the emit methods.
type taskSubmittedEntry struct {
	name string
	hook TaskSubmitted
}

type taskScheduledEntry struct {
	name string
	hook TaskScheduled
}

type runStartedEntry struct {
	name string
	hook RunStarted
}

type runSucceededEntry struct {
	name string
	hook RunSucceeded
}

type runFailedEntry struct {
	name string
	hook RunFailed
}

type runEndedEntry struct {
	name string
	hook RunEnded
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered hooks and dispatches lifecycle events to
// them. It type-caches hooks at registration time so emit calls iterate
// only over hooks that implement the relevant event.
//
// Every hook call is guarded: a returned error is logged and discarded,
// and a panicking hook is recovered. Observability code can never
// change a task's outcome or abort its lifecycle.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each lifecycle event.
	taskSubmitted []taskSubmittedEntry
	taskScheduled []taskScheduledEntry
	runStarted    []runStartedEntry
	runSucceeded  []runSucceededEntry
	runFailed     []runFailedEntry
	runEnded      []runEndedEntry
	shutdown      []shutdownEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order. Registration is not
// safe to interleave with emits: the hook set is fixed at startup,
// before the dispatcher accepts submissions.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(TaskSubmitted); ok {
		r.taskSubmitted = append(r.taskSubmitted, taskSubmittedEntry{name, e})
	}
	if e, ok := h.(TaskScheduled); ok {
		r.taskScheduled = append(r.taskScheduled, taskScheduledEntry{name, e})
	}
	if e, ok := h.(RunStarted); ok {
		r.runStarted = append(r.runStarted, runStartedEntry{name, e})
	}
	if e, ok := h.(RunSucceeded); ok {
		r.runSucceeded = append(r.runSucceeded, runSucceededEntry{name, e})
	}
	if e, ok := h.(RunFailed); ok {
		r.runFailed = append(r.runFailed, runFailedEntry{name, e})
	}
	if e, ok := h.(RunEnded); ok {
		r.runEnded = append(r.runEnded, runEndedEntry{name, e})
	}
	if e, ok := h.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitTaskSubmitted notifies all hooks that implement TaskSubmitted.
func (r *Registry) EmitTaskSubmitted(ctx context.Context, t *task.Task) {
	for _, e := range r.taskSubmitted {
		r.guard("OnTaskSubmitted", e.name, func() error {
			return e.hook.OnTaskSubmitted(ctx, t)
		})
	}
}

// EmitTaskScheduled notifies all hooks that implement TaskScheduled.
func (r *Registry) EmitTaskScheduled(ctx context.Context, t *task.Task) {
	for _, e := range r.taskScheduled {
		r.guard("OnTaskScheduled", e.name, func() error {
			return e.hook.OnTaskScheduled(ctx, t)
		})
	}
}

// EmitRunStarted notifies all hooks that implement RunStarted.
func (r *Registry) EmitRunStarted(ctx context.Context, t *task.Task) {
	for _, e := range r.runStarted {
		r.guard("OnRunStarted", e.name, func() error {
			return e.hook.OnRunStarted(ctx, t)
		})
	}
}

// EmitRunSucceeded notifies all hooks that implement RunSucceeded.
func (r *Registry) EmitRunSucceeded(ctx context.Context, t *task.Task, elapsed time.Duration) {
	for _, e := range r.runSucceeded {
		r.guard("OnRunSucceeded", e.name, func() error {
			return e.hook.OnRunSucceeded(ctx, t, elapsed)
		})
	}
}

// EmitRunFailed notifies all hooks that implement RunFailed.
func (r *Registry) EmitRunFailed(ctx context.Context, t *task.Task, runErr error) {
	for _, e := range r.runFailed {
		r.guard("OnRunFailed", e.name, func() error {
			return e.hook.OnRunFailed(ctx, t, runErr)
		})
	}
}

// EmitRunEnded notifies all hooks that implement RunEnded.
func (r *Registry) EmitRunEnded(ctx context.Context, t *task.Task, elapsed time.Duration) {
	for _, e := range r.runEnded {
		r.guard("OnRunEnded", e.name, func() error {
			return e.hook.OnRunEnded(ctx, t, elapsed)
		})
	}
}

// EmitShutdown notifies all hooks that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		r.guard("OnShutdown", e.name, func() error {
			return e.hook.OnShutdown(ctx)
		})
	}
}

// guard runs one hook call, logging a returned error at Warn and
// recovering a panic. Hook failures are never propagated — they must
// not destabilize the lifecycle they observe.
func (r *Registry) guard(event, hookName string, call func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("lifecycle hook panicked",
				slog.String("event", event),
				slog.String("hook", hookName),
				slog.Any("panic", rec),
			)
		}
	}()

	if err := call(); err != nil {
		r.logger.Warn("lifecycle hook error",
			slog.String("event", event),
			slog.String("hook", hookName),
			slog.String("error", err.Error()),
		)
	}
}
