package tracelog

import (
	"context"
	"log/slog"
	"time"

	"github.com/flingworks/fling/hook"
	"github.com/flingworks/fling/task"
)

// Compile-time interface checks.
var (
	_ hook.Hook          = (*Hook)(nil)
	_ hook.TaskSubmitted = (*Hook)(nil)
	_ hook.TaskScheduled = (*Hook)(nil)
	_ hook.RunStarted    = (*Hook)(nil)
	_ hook.RunSucceeded  = (*Hook)(nil)
	_ hook.RunFailed     = (*Hook)(nil)
	_ hook.RunEnded      = (*Hook)(nil)
)

// Hook writes one structured log record per lifecycle event. Each
// record carries the action, task name, task ID (correlation token),
// and the task's current tag set; failure records additionally carry
// the captured error.
type Hook struct {
	logger  *slog.Logger
	enabled map[string]bool // nil = all enabled
	level   slog.Level
}

// New creates a Hook that logs through the provided logger.
// A nil logger falls back to slog.Default().
func New(logger *slog.Logger, opts ...Option) *Hook {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hook{
		logger: logger,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements hook.Hook.
func (h *Hook) Name() string { return "tracelog" }

// OnTaskSubmitted implements hook.TaskSubmitted.
func (h *Hook) OnTaskSubmitted(ctx context.Context, t *task.Task) error {
	h.log(ctx, ActionTaskSubmitted, h.level, t, nil)
	return nil
}

// OnTaskScheduled implements hook.TaskScheduled.
func (h *Hook) OnTaskScheduled(ctx context.Context, t *task.Task) error {
	h.log(ctx, ActionTaskScheduled, h.level, t, nil)
	return nil
}

// OnRunStarted implements hook.RunStarted.
func (h *Hook) OnRunStarted(ctx context.Context, t *task.Task) error {
	h.log(ctx, ActionRunStarted, h.level, t, nil)
	return nil
}

// OnRunSucceeded implements hook.RunSucceeded.
func (h *Hook) OnRunSucceeded(ctx context.Context, t *task.Task, elapsed time.Duration) error {
	h.log(ctx, ActionRunSucceeded, h.level, t, nil, slog.Duration("elapsed", elapsed))
	return nil
}

// OnRunFailed implements hook.RunFailed.
func (h *Hook) OnRunFailed(ctx context.Context, t *task.Task, err error) error {
	h.log(ctx, ActionRunFailed, slog.LevelWarn, t, err)
	return nil
}

// OnRunEnded implements hook.RunEnded.
func (h *Hook) OnRunEnded(ctx context.Context, t *task.Task, elapsed time.Duration) error {
	h.log(ctx, ActionRunEnded, h.level, t, nil, slog.Duration("elapsed", elapsed))
	return nil
}

func (h *Hook) log(ctx context.Context, action string, level slog.Level, t *task.Task, err error, extra ...slog.Attr) {
	if h.enabled != nil && !h.enabled[action] {
		return
	}

	attrs := make([]slog.Attr, 0, len(extra)+4)
	attrs = append(attrs,
		slog.String("action", action),
		slog.String("task_name", t.Name),
		slog.String("task_id", t.ID.String()),
	)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	if tags := t.Tags(); len(tags) > 0 {
		attrs = append(attrs, slog.Any("tags", tags))
	}
	attrs = append(attrs, extra...)

	h.logger.LogAttrs(ctx, level, "task lifecycle", attrs...)
}
