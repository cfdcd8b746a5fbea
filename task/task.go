// Package task defines the task descriptor passed through middleware
// and lifecycle hooks.
//
// A Task is cheap, in-memory, and not persisted: it exists only for the
// duration of one fire-and-forget execution. The ID is the correlation
// token linking the create-phase events (emitted on the submitter's
// goroutine) to the run-phase events (emitted on the detached run
// goroutine).
package task

import (
	"context"
	"maps"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/flingworks/fling/id"
	"github.com/flingworks/fling/scope"
)

// Body is the deferred unit of work. It receives the per-execution
// dependency scope resolved on the run goroutine.
type Body func(ctx context.Context, sc *scope.Scope) error

// Task describes one submitted unit of work.
//
// Name is an opaque label used for correlation and observability; it
// need not be unique. Hooks may attach tags to a task at any point
// before its final lifecycle event closes.
type Task struct {
	ID          id.TaskID
	Name        string
	SubmittedAt time.Time
	Timeout     time.Duration

	// Origin is the span context active at the submission call site.
	// The tracing middleware links the run span to it explicitly, so
	// the correlation survives the asynchronous boundary even without
	// ambient context propagation.
	Origin trace.SpanContext

	mu   sync.Mutex
	tags map[string]any
}

// New creates a task descriptor with a fresh task ID.
func New(name string, opts ...Option) *Task {
	t := &Task{
		ID:          id.NewTaskID(),
		Name:        name,
		SubmittedAt: time.Now().UTC(),
		tags:        make(map[string]any),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetTag attaches a key/value tag to the task. Safe for concurrent use;
// hooks and middleware may tag a task while it is running.
func (t *Task) SetTag(key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tags[key] = value
}

// Tag returns the tag stored under key.
func (t *Task) Tag(key string) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.tags[key]
	return v, ok
}

// Tags returns a copy of the task's tag set.
func (t *Task) Tags() map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.tags)
}
