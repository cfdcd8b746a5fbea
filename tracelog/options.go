package tracelog

import "log/slog"

// Option configures a Hook.
type Option func(*Hook)

// WithActions restricts the hook to emit only the listed actions.
// By default all six actions are enabled. Unknown actions are silently
// ignored.
//
// Example:
//
//	tracelog.New(logger,
//	    tracelog.WithActions(
//	        tracelog.ActionRunFailed,
//	        tracelog.ActionRunEnded,
//	    ),
//	)
func WithActions(actions ...string) Option {
	return func(h *Hook) {
		h.enabled = make(map[string]bool, len(actions))
		for _, a := range actions {
			h.enabled[a] = true
		}
	}
}

// WithLevel sets the log level used for non-failure actions.
// Failures are always logged at Warn.
func WithLevel(level slog.Level) Option {
	return func(h *Hook) { h.level = level }
}
