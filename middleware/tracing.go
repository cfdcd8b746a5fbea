package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flingworks/fling/task"
)

// tracerName is the instrumentation scope name for fling tracing.
const tracerName = "github.com/flingworks/fling"

// Tracing returns middleware that wraps each run in an OpenTelemetry span.
// If no TracerProvider is configured globally, the default noop tracer is
// used and this middleware becomes a pass-through with zero overhead.
//
// The run span carries an explicit link to the span that was active at
// the submission call site (Task.Origin), so the create and run phases
// of one task stay correlated across the fire-and-forget boundary.
// Span attributes include: fling.task.id and fling.task.name.
// On error, the span status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		startOpts := []trace.SpanStartOption{
			trace.WithAttributes(
				attribute.String("fling.task.id", t.ID.String()),
				attribute.String("fling.task.name", t.Name),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		}
		if t.Origin.IsValid() {
			startOpts = append(startOpts, trace.WithLinks(trace.Link{SpanContext: t.Origin}))
		}

		ctx, span := tracer.Start(ctx, "fling.task.run", startOpts...)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
