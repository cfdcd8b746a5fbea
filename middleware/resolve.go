package middleware

import (
	"context"

	"github.com/flingworks/fling/scope"
	"github.com/flingworks/fling/task"
)

// FromScope returns middleware resolved from the run's dependency scope.
// The resolve function is called once per run with the scope attached to
// the context, so the returned middleware can close over per-execution
// collaborators. If the resolver returns nil, or no scope is attached,
// the chain proceeds directly to next.
func FromScope(resolve func(sc *scope.Scope) Middleware) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		sc, ok := scope.From(ctx)
		if !ok {
			return next(ctx)
		}
		mw := resolve(sc)
		if mw == nil {
			return next(ctx)
		}
		return mw(ctx, t, next)
	}
}
