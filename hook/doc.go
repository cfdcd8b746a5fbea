// Package hook defines the lifecycle hook system for fling.
//
// Hooks observe the six lifecycle events of a fire-and-forget task and
// the dispatcher's shutdown. Each event is a separate interface so a
// hook opts in only to the events it cares about.
//
// # Implementing a Hook
//
//	type MyHook struct{}
//
//	func (h *MyHook) Name() string { return "my-hook" }
//
//	// Opt in to specific events by implementing their interfaces.
//	func (h *MyHook) OnRunFailed(ctx context.Context, t *task.Task, err error) error {
//	    log.Printf("task %s failed: %v", t.Name, err)
//	    return nil
//	}
//
// # Create-phase events (submitter's goroutine, before Submit returns)
//
//   - [TaskSubmitted] — Submit was called; the task has its correlation ID
//   - [TaskScheduled] — the run phase was handed to the spawner
//
// # Run-phase events (detached run goroutine)
//
//   - [RunStarted] — the run goroutine began executing
//   - [RunSucceeded] — the middleware chain and body returned without error
//   - [RunFailed] — an error reached the dispatcher boundary
//   - [RunEnded] — final event of every run, success or failure
//
// # Other events
//
//   - [Shutdown] — the dispatcher is shutting down gracefully
//
// The [Registry] fans out each event to all registered hooks that
// implement the corresponding interface. Hook errors are logged and
// discarded; hook panics are recovered. Because the API is
// fire-and-forget, hooks are the only place a task failure is visible.
package hook
