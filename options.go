package fling

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/flingworks/fling/hook"
	"github.com/flingworks/fling/middleware"
	"github.com/flingworks/fling/scope"
	"github.com/flingworks/fling/spawn"
)

// Option configures a Dispatcher. All configuration happens in New;
// there is no API for mutating middleware or hooks once the dispatcher
// accepts submissions.
type Option func(*Dispatcher) error

// WithConfig replaces the entire configuration.
func WithConfig(cfg Config) Option {
	return func(d *Dispatcher) error {
		d.config = cfg
		return nil
	}
}

// WithLogger sets the structured logger for the dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) error {
		if l == nil {
			return fmt.Errorf("fling: nil logger")
		}
		d.logger = l
		return nil
	}
}

// WithMaxConcurrent caps how many runs execute at once.
func WithMaxConcurrent(n int) Option {
	return func(d *Dispatcher) error {
		if n < 0 {
			return fmt.Errorf("fling: negative max concurrent %d", n)
		}
		d.config.MaxConcurrent = n
		return nil
	}
}

// WithShutdownTimeout sets how long Close waits for in-flight runs.
func WithShutdownTimeout(t time.Duration) Option {
	return func(d *Dispatcher) error {
		d.config.ShutdownTimeout = t
		return nil
	}
}

// WithHook registers a lifecycle hook. Hooks are notified in
// registration order.
func WithHook(h hook.Hook) Option {
	return func(d *Dispatcher) error {
		if h == nil {
			return fmt.Errorf("fling: nil hook")
		}
		d.pendingHooks = append(d.pendingHooks, h)
		return nil
	}
}

// WithMiddleware appends middleware to the chain, inside the default
// stack (recover, tracing, metrics, logging, timeout). The first
// middleware registered is the outermost of the appended ones.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(d *Dispatcher) error {
		d.extraMws = append(d.extraMws, mws...)
		return nil
	}
}

// WithScopeFactory sets the factory used to resolve each run's
// dependency scope. The default factory produces empty scopes.
func WithScopeFactory(f scope.Factory) Option {
	return func(d *Dispatcher) error {
		if f == nil {
			return fmt.Errorf("fling: nil scope factory")
		}
		d.scopes = f
		return nil
	}
}

// WithSpawner sets how run-phase work is detached from the submitter.
// Overrides MaxConcurrent.
func WithSpawner(s spawn.Spawner) Option {
	return func(d *Dispatcher) error {
		if s == nil {
			return fmt.Errorf("fling: nil spawner")
		}
		d.spawner = s
		return nil
	}
}

// WithTracerProvider sets a custom OTel TracerProvider for the default
// tracing middleware. If not set, the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) error {
		d.tracerProvider = tp
		return nil
	}
}

// WithMeterProvider sets a custom OTel MeterProvider for the default
// metrics middleware. If not set, the global provider is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(d *Dispatcher) error {
		d.meterProvider = mp
		return nil
	}
}

// WithCreateCallback sets the enrichment callback invoked around the
// create phase (KindStart before scheduling, KindStop after).
func WithCreateCallback(cb Callback) Option {
	return func(d *Dispatcher) error {
		d.createCallback = cb
		return nil
	}
}

// WithRunCallback sets the enrichment callback invoked around the run
// phase (KindStart, then KindException on failure, then KindStop).
func WithRunCallback(cb Callback) Option {
	return func(d *Dispatcher) error {
		d.runCallback = cb
		return nil
	}
}
