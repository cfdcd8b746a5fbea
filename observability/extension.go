package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/flingworks/fling/hook"
	"github.com/flingworks/fling/task"
)

// meterName is the instrumentation scope name for lifecycle metrics.
const meterName = "github.com/flingworks/fling/observability"

// Compile-time interface checks.
var (
	_ hook.Hook          = (*MetricsHook)(nil)
	_ hook.TaskSubmitted = (*MetricsHook)(nil)
	_ hook.RunSucceeded  = (*MetricsHook)(nil)
	_ hook.RunFailed     = (*MetricsHook)(nil)
	_ hook.RunEnded      = (*MetricsHook)(nil)
)

// MetricsHook records system-wide lifecycle metrics via OpenTelemetry.
// Register it as a fling hook to automatically track submission rates,
// success and failure counts, and run durations.
type MetricsHook struct {
	submitted metric.Int64Counter
	succeeded metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewMetricsHook creates a MetricsHook using the global MeterProvider.
// With no global provider configured the instruments are noops.
func NewMetricsHook() *MetricsHook {
	return NewMetricsHookWithMeter(otel.Meter(meterName))
}

// NewMetricsHookWithMeter creates a MetricsHook with the provided meter.
// Use this variant to inject a specific MeterProvider for testing.
func NewMetricsHookWithMeter(meter metric.Meter) *MetricsHook {
	// On error the OTel API returns noop instruments, so the hook
	// degrades gracefully.
	submitted, _ := meter.Int64Counter(
		"fling.task.submitted",
		metric.WithDescription("Total number of task submissions"),
		metric.WithUnit("{task}"),
	)
	succeeded, _ := meter.Int64Counter(
		"fling.task.succeeded",
		metric.WithDescription("Total number of runs that completed without error"),
		metric.WithUnit("{run}"),
	)
	failed, _ := meter.Int64Counter(
		"fling.task.failed",
		metric.WithDescription("Total number of runs that reached the dispatcher boundary with an error"),
		metric.WithUnit("{run}"),
	)
	duration, _ := meter.Float64Histogram(
		"fling.run.duration",
		metric.WithDescription("Run duration in seconds, from RunStarted to RunEnded"),
		metric.WithUnit("s"),
	)

	return &MetricsHook{
		submitted: submitted,
		succeeded: succeeded,
		failed:    failed,
		duration:  duration,
	}
}

// Name implements hook.Hook.
func (m *MetricsHook) Name() string { return "observability-metrics" }

// OnTaskSubmitted implements hook.TaskSubmitted.
func (m *MetricsHook) OnTaskSubmitted(ctx context.Context, t *task.Task) error {
	m.submitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task_name", t.Name),
	))
	return nil
}

// OnRunSucceeded implements hook.RunSucceeded.
func (m *MetricsHook) OnRunSucceeded(ctx context.Context, t *task.Task, _ time.Duration) error {
	m.succeeded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task_name", t.Name),
	))
	return nil
}

// OnRunFailed implements hook.RunFailed.
func (m *MetricsHook) OnRunFailed(ctx context.Context, t *task.Task, _ error) error {
	m.failed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task_name", t.Name),
	))
	return nil
}

// OnRunEnded implements hook.RunEnded.
func (m *MetricsHook) OnRunEnded(ctx context.Context, t *task.Task, elapsed time.Duration) error {
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("task_name", t.Name),
	))
	return nil
}
