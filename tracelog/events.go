package tracelog

// Lifecycle actions. Each constant corresponds to one hook event and
// becomes the "action" field of the emitted log record.
const (
	ActionTaskSubmitted = "task.submitted"
	ActionTaskScheduled = "task.scheduled"
	ActionRunStarted    = "run.started"
	ActionRunSucceeded  = "run.succeeded"
	ActionRunFailed     = "run.failed"
	ActionRunEnded      = "run.ended"
)

// AllActions returns every action this hook can emit.
func AllActions() []string {
	return []string{
		ActionTaskSubmitted,
		ActionTaskScheduled,
		ActionRunStarted,
		ActionRunSucceeded,
		ActionRunFailed,
		ActionRunEnded,
	}
}
