// Package middleware provides composable middleware for task execution.
//
// A [Middleware] is a function that wraps a task body. Middleware are
// composed into a chain using [Chain] and applied around each run.
// They are applied right-to-left: the first middleware in the slice is
// the outermost wrapper.
//
//	// logging → recover → body
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Recover(logger))
//
// # Built-in Middleware
//
//   - [Logging] — logs task name, ID, duration, and outcome at each run
//   - [Recover] — catches panics and converts them to errors
//   - [Timeout] — cancels the run context after the task's configured deadline
//   - [Tracing] — wraps execution in an OpenTelemetry span linked to the submit call site
//   - [Metrics] — records per-task duration and outcome counters
//   - [FromScope] — resolves a middleware from the run's dependency scope
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, t *task.Task, next middleware.Handler) error {
//	        // pre-processing
//	        err := next(ctx)
//	        // post-processing
//	        return err
//	    }
//	}
//
// A middleware that never calls next short-circuits the chain: the body
// and all inner middleware are skipped, while everything outer still
// runs its post-next logic.
package middleware
