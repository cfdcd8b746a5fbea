// Package middleware provides composable middleware for task execution.
// Middleware wraps the task body synchronously and can run logic before
// the next link, after it, or instead of it (short-circuit), and may
// catch and convert errors from further down the chain.
package middleware

import (
	"context"

	"github.com/flingworks/fling/task"
)

// Handler is the terminal function that executes the task body.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the task being executed, and the next handler in the
// chain. Calling next zero times short-circuits the chain; calling it
// more than once runs the wrapped continuation that many times. Neither
// is an error — the chain imposes no cardinality constraint.
type Middleware func(ctx context.Context, t *task.Task, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper and the last is innermost, immediately
// adjacent to the task body.
//
// Example: Chain(logging, recover, timeout) executes as:
//
//	logging → recover → timeout → body
//
// An empty chain degenerates to calling the body directly. Errors from
// the body or any middleware propagate up unchanged unless an outer
// middleware intercepts them.
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, t, prev)
			}
		}
		return h(ctx)
	}
}
