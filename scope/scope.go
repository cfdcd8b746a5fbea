// Package scope provides per-execution dependency scopes.
//
// Every task run gets a fresh Scope resolved from the configured
// Factory, never shared with another concurrent run. Collaborators
// registered in the scope live exactly as long as the run: the
// dispatcher closes the scope after the final lifecycle event fires,
// releasing resources in LIFO order on every exit path.
package scope

import (
	"context"
	"errors"
	"sync"
)

// Factory creates a fresh Scope for one task execution.
//
// The factory is called on the run goroutine, never on the submitter's:
// the submitter's own resource scope may already be torn down by the
// time the run begins.
type Factory interface {
	New(ctx context.Context) (*Scope, error)
}

// FactoryFunc is an adapter to use a plain function as a Factory.
type FactoryFunc func(ctx context.Context) (*Scope, error)

// New implements Factory.
func (f FactoryFunc) New(ctx context.Context) (*Scope, error) { return f(ctx) }

// Scope is a bounded context from which per-execution collaborators are
// resolved. It is safe for concurrent use, although a run typically
// touches it from a single goroutine.
type Scope struct {
	mu      sync.Mutex
	values  map[string]any
	closers []func() error
	closed  bool
}

// New creates an empty Scope.
func New() *Scope {
	return &Scope{values: make(map[string]any)}
}

// Set registers a collaborator under the given key.
func (s *Scope) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the collaborator registered under key.
func (s *Scope) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// OnClose registers a release function to run when the scope closes.
// Release functions run in LIFO order, like defer.
func (s *Scope) OnClose(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, fn)
}

// Close releases the scope. All registered release functions run in
// LIFO order; every one runs even if an earlier one fails, and their
// errors are joined. Close is idempotent.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type ctxKey struct{}

// With attaches a Scope to the context.
func With(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From extracts the Scope from the context.
// Returns false if no scope is attached.
func From(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Scope)
	return s, ok
}
