package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/flingworks/fling/observability"
	"github.com/flingworks/fling/task"
)

func setupTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return reader, mp
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m := findMetric(rm, name)
	if m == nil {
		t.Fatalf("%s metric not found", name)
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64] data type", name)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetricsHook_CountsSubmissions(t *testing.T) {
	reader, mp := setupTestMeter()
	h := observability.NewMetricsHookWithMeter(mp.Meter("test"))
	ctx := context.Background()

	_ = h.OnTaskSubmitted(ctx, task.New("a"))
	_ = h.OnTaskSubmitted(ctx, task.New("b"))

	rm := collectMetrics(t, reader)
	if got := counterValue(t, rm, "fling.task.submitted"); got != 2 {
		t.Errorf("fling.task.submitted = %d, want 2", got)
	}
}

func TestMetricsHook_CountsOutcomes(t *testing.T) {
	reader, mp := setupTestMeter()
	h := observability.NewMetricsHookWithMeter(mp.Meter("test"))
	ctx := context.Background()

	_ = h.OnRunSucceeded(ctx, task.New("ok"), time.Millisecond)
	_ = h.OnRunFailed(ctx, task.New("bad"), errors.New("boom"))
	_ = h.OnRunFailed(ctx, task.New("bad"), errors.New("boom"))

	rm := collectMetrics(t, reader)
	if got := counterValue(t, rm, "fling.task.succeeded"); got != 1 {
		t.Errorf("fling.task.succeeded = %d, want 1", got)
	}
	if got := counterValue(t, rm, "fling.task.failed"); got != 2 {
		t.Errorf("fling.task.failed = %d, want 2", got)
	}
}

func TestMetricsHook_RecordsDuration(t *testing.T) {
	reader, mp := setupTestMeter()
	h := observability.NewMetricsHookWithMeter(mp.Meter("test"))

	_ = h.OnRunEnded(context.Background(), task.New("timed"), 250*time.Millisecond)

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "fling.run.duration")
	if m == nil {
		t.Fatal("fling.run.duration metric not found")
	}
	hist, ok := m.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("expected Histogram[float64] data type")
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points recorded")
	}
	if hist.DataPoints[0].Count != 1 {
		t.Errorf("count = %d, want 1", hist.DataPoints[0].Count)
	}
	if hist.DataPoints[0].Sum < 0.2 || hist.DataPoints[0].Sum > 0.3 {
		t.Errorf("sum = %v, want ~0.25", hist.DataPoints[0].Sum)
	}
}

func TestMetricsHook_DefaultNoopSafe(t *testing.T) {
	// Without a global provider every instrument is a noop; calls must
	// not panic.
	h := observability.NewMetricsHook()
	ctx := context.Background()

	if err := h.OnTaskSubmitted(ctx, task.New("noop")); err != nil {
		t.Fatalf("OnTaskSubmitted error: %v", err)
	}
	if err := h.OnRunEnded(ctx, task.New("noop"), time.Millisecond); err != nil {
		t.Fatalf("OnRunEnded error: %v", err)
	}
}
