package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/flingworks/fling/task"
)

// Logging returns middleware that logs run start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		logger.Info("task run started",
			slog.String("task_name", t.Name),
			slog.String("task_id", t.ID.String()),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("task run failed",
				slog.String("task_name", t.Name),
				slog.String("task_id", t.ID.String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("task run completed",
				slog.String("task_name", t.Name),
				slog.String("task_id", t.ID.String()),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
