// Package fling provides a fire-and-forget background task dispatcher
// for Go with a composable middleware pipeline and lifecycle hooks.
//
// Fling is designed as a library, not a service. Import it, configure
// middleware and hooks at startup, and submit ordinary Go functions.
// Submit returns as soon as the run phase is scheduled; the work runs
// on a detached goroutine with its own dependency scope, and its
// outcome is observable only through the registered hooks.
//
// # Quick Start
//
//	d, err := fling.New(
//	    fling.WithLogger(logger),
//	    fling.WithHook(observability.NewMetricsHook()),
//	)
//	if err != nil {
//	    return err
//	}
//
//	err = d.Submit(ctx, "send-welcome-email", func(ctx context.Context, sc *scope.Scope) error {
//	    return mailer.Send(ctx, user)
//	})
//
// # Lifecycle
//
// Each submission moves through six events: TaskSubmitted and
// TaskScheduled fire synchronously on the caller's goroutine before
// Submit returns; RunStarted, then exactly one of RunSucceeded or
// RunFailed, then RunEnded fire on the run goroutine. All events for
// one task carry the same TypeID correlation token.
//
// There are no retries, no persistence, and at-most-once execution:
// a task that fails is visible only to hooks, never to the submitter.
package fling
