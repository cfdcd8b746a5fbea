package fling

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/flingworks/fling/hook"
	"github.com/flingworks/fling/id"
	"github.com/flingworks/fling/middleware"
	"github.com/flingworks/fling/scope"
	"github.com/flingworks/fling/spawn"
	"github.com/flingworks/fling/task"
)

// instrumentationName is the OTel instrumentation scope for the
// dispatcher's default tracing and metrics middleware.
const instrumentationName = "github.com/flingworks/fling"

// Dispatcher accepts named units of work and runs them on detached
// goroutines, passing each run through the middleware chain and
// emitting lifecycle events along the way.
//
// Create one with New() and functional options. The middleware chain,
// hook set, and scope factory are fixed once New returns; a Dispatcher
// holds no durable state about past or in-flight tasks beyond the
// counter used to drain on Close.
type Dispatcher struct {
	id      id.DispatcherID
	config  Config
	logger  *slog.Logger
	hooks   *hook.Registry
	scopes  scope.Factory
	spawner spawn.Spawner
	chain   middleware.Middleware

	createCallback Callback
	runCallback    Callback

	// Collected by options, registered into hooks by New.
	pendingHooks []hook.Hook
	extraMws     []middleware.Middleware

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New creates a Dispatcher with the given options.
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		id:     id.NewDispatcherID(),
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	d.hooks = hook.NewRegistry(d.logger)
	for _, h := range d.pendingHooks {
		d.hooks.Register(h)
	}
	d.pendingHooks = nil

	if d.scopes == nil {
		d.scopes = scope.FactoryFunc(func(context.Context) (*scope.Scope, error) {
			return scope.New(), nil
		})
	}
	if d.spawner == nil {
		if d.config.MaxConcurrent > 0 {
			d.spawner = spawn.NewBounded(int64(d.config.MaxConcurrent))
		} else {
			d.spawner = spawn.Goroutine{}
		}
	}

	tracingMw := middleware.Tracing()
	if d.tracerProvider != nil {
		tracingMw = middleware.TracingWithTracer(d.tracerProvider.Tracer(instrumentationName))
	}
	metricsMw := middleware.Metrics()
	if d.meterProvider != nil {
		metricsMw = middleware.MetricsWithMeter(d.meterProvider.Meter(instrumentationName))
	}

	// Default stack: recover → tracing → metrics → logging → timeout,
	// then caller-registered middleware, then the body. Built once;
	// immutable afterwards.
	mws := []middleware.Middleware{
		middleware.Recover(d.logger),
		tracingMw,
		metricsMw,
		middleware.Logging(d.logger),
		middleware.Timeout(d.logger),
	}
	mws = append(mws, d.extraMws...)
	d.extraMws = nil
	d.chain = middleware.Chain(mws...)

	return d, nil
}

// ID returns the dispatcher's unique identifier.
func (d *Dispatcher) ID() id.DispatcherID { return d.id }

// Logger returns the dispatcher's logger.
func (d *Dispatcher) Logger() *slog.Logger { return d.logger }

// Config returns a copy of the dispatcher's configuration.
func (d *Dispatcher) Config() Config { return d.config }

// Submit schedules a named unit of work to run on a detached goroutine
// and returns without waiting for it. There is no handle to the run:
// its outcome is observable only through the registered hooks.
//
// Before returning, Submit emits TaskSubmitted and TaskScheduled on the
// caller's goroutine; these bracket the scheduling action only, not the
// task's execution. The run goroutine does not emit RunStarted until
// TaskScheduled has been emitted, so the lifecycle events of one task
// are always causally ordered even though the run is detached.
func (d *Dispatcher) Submit(ctx context.Context, name string, body task.Body, opts ...task.Option) error {
	if body == nil {
		return ErrNilBody
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.wg.Add(1)
	d.mu.Unlock()

	t := task.New(name, opts...)
	// Capture the caller's span context explicitly. The run goroutine
	// starts from a fresh context, so ambient propagation alone would
	// lose the correlation.
	t.Origin = trace.SpanContextFromContext(ctx)

	d.hooks.EmitTaskSubmitted(ctx, t)
	d.invokeCallback(d.createCallback, KindStart, t.Name, nil)

	// The gate holds the run phase back until the create phase has
	// fully closed, keeping TaskScheduled ahead of RunStarted.
	gate := make(chan struct{})
	d.spawner.Go(func() { d.run(t, body, gate) })

	d.hooks.EmitTaskScheduled(ctx, t)
	d.invokeCallback(d.createCallback, KindStop, t.Name, nil)
	close(gate)

	return nil
}

// Close stops accepting submissions and waits for in-flight runs to
// finish. If the caller's context has no deadline, Config's
// ShutdownTimeout applies. The Shutdown hook fires after a clean drain.
// Close is idempotent; concurrent calls all wait.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok && d.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.ShutdownTimeout)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("dispatcher stopped",
			slog.String("dispatcher_id", d.id.String()),
		)
		d.hooks.EmitShutdown(ctx)
		return nil
	case <-ctx.Done():
		d.logger.Warn("dispatcher shutdown timed out with runs in flight",
			slog.String("dispatcher_id", d.id.String()),
		)
		return fmt.Errorf("fling: shutdown: %w", ctx.Err())
	}
}

// run is the detached run phase of one task.
func (d *Dispatcher) run(t *task.Task, body task.Body, gate <-chan struct{}) {
	defer d.wg.Done()
	<-gate

	// The submitter's context (and any per-call resources behind it)
	// may be gone by now; the run starts from a fresh context carrying
	// only the correlation token.
	ctx := WithCorrelation(context.Background(), t.ID)

	d.hooks.EmitRunStarted(ctx, t)
	d.invokeCallback(d.runCallback, KindStart, t.Name, nil)

	start := time.Now()
	var err error
	sc, scopeErr := d.scopes.New(ctx)
	if scopeErr != nil {
		err = fmt.Errorf("fling: acquire scope for task %s: %w", t.Name, scopeErr)
	} else {
		// Released after RunEnded, on every exit path.
		defer d.releaseScope(t, sc)
		ctx = scope.With(ctx, sc)
		err = d.invoke(ctx, t, sc, body)
	}
	elapsed := time.Since(start)

	if err != nil {
		d.invokeCallback(d.runCallback, KindException, t.Name, err)
		d.hooks.EmitRunFailed(ctx, t, err)
	} else {
		d.hooks.EmitRunSucceeded(ctx, t, elapsed)
	}
	d.invokeCallback(d.runCallback, KindStop, t.Name, err)
	d.hooks.EmitRunEnded(ctx, t, elapsed)
}

// invoke runs the middleware chain around the body. It is the terminal
// error boundary: nothing is rethrown past it, and a panic that escapes
// the chain (the recover middleware is part of the default stack, but
// callers can replace the stack) is converted to an error here.
func (d *Dispatcher) invoke(ctx context.Context, t *task.Task, sc *scope.Scope, body task.Body) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("task run panicked",
				slog.String("task_name", t.Name),
				slog.String("task_id", t.ID.String()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			retErr = fmt.Errorf("fling: panic in task %s: %v", t.Name, r)
		}
	}()

	terminal := func(ctx context.Context) error {
		return body(ctx, sc)
	}
	return d.chain(ctx, t, terminal)
}

func (d *Dispatcher) releaseScope(t *task.Task, sc *scope.Scope) {
	if err := sc.Close(); err != nil {
		d.logger.Error("scope release error",
			slog.String("task_name", t.Name),
			slog.String("task_id", t.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// invokeCallback guards one enrichment callback call. A panicking
// callback is recovered and logged; it never aborts the lifecycle.
func (d *Dispatcher) invokeCallback(cb Callback, kind Kind, name string, err error) {
	if cb == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("enrichment callback panicked",
				slog.String("kind", kind.String()),
				slog.String("task_name", name),
				slog.Any("panic", r),
			)
		}
	}()
	cb(kind, name, err)
}
