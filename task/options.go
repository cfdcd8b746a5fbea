package task

import "time"

// Option configures a Task at submission time.
type Option func(*Task)

// WithTimeout sets a per-execution deadline enforced by the timeout
// middleware. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(t *Task) { t.Timeout = d }
}

// WithTag attaches an initial key/value tag to the task.
func WithTag(key string, value any) Option {
	return func(t *Task) { t.tags[key] = value }
}
