// Package tracelog bridges fling lifecycle events to structured logs.
//
// Because submissions are fire-and-forget, the lifecycle log is often
// the only record that a task ran at all. Register the Hook to emit one
// slog record per event, optionally filtered to a subset of actions:
//
//	d, _ := fling.New(
//	    fling.WithHook(tracelog.New(logger,
//	        tracelog.WithActions(tracelog.ActionRunFailed),
//	    )),
//	)
package tracelog
