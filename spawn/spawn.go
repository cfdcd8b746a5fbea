// Package spawn abstracts how the dispatcher detaches run-phase work
// from the submitting goroutine.
//
// A Spawner's Go must return without waiting for fn to run or finish:
// the submitter never blocks on the run phase. Implementations may
// still shape execution — [Bounded] caps how many spawned functions run
// at once, [Paced] throttles how often they start — but any waiting
// happens inside the spawned goroutine, never on the caller.
package spawn

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Spawner schedules a function to run on a detached goroutine.
type Spawner interface {
	// Go schedules fn and returns immediately.
	Go(fn func())
}

// Goroutine spawns each function on its own goroutine with no limit.
// The zero value is ready to use.
type Goroutine struct{}

// Go implements Spawner.
func (Goroutine) Go(fn func()) { go fn() }

// Bounded caps the number of concurrently running functions with a
// weighted semaphore. Acquisition happens inside the spawned goroutine,
// so Go itself never blocks; excess work queues on the scheduler until
// a slot frees up.
type Bounded struct {
	sem *semaphore.Weighted
}

// NewBounded creates a Bounded spawner allowing at most n concurrent
// executions. It panics if n < 1 (programming error).
func NewBounded(n int64) *Bounded {
	if n < 1 {
		panic("spawn: bounded concurrency must be at least 1")
	}
	return &Bounded{sem: semaphore.NewWeighted(n)}
}

// Go implements Spawner.
func (b *Bounded) Go(fn func()) {
	go func() {
		// Acquire with a background context cannot fail.
		_ = b.sem.Acquire(context.Background(), 1)
		defer b.sem.Release(1)
		fn()
	}()
}

// Paced throttles execution starts through a rate limiter. The limiter
// wait happens on the spawned goroutine; Go returns immediately.
type Paced struct {
	limiter *rate.Limiter
	next    Spawner
}

// NewPaced creates a Paced spawner that gates each execution on the
// given limiter before delegating to next. A nil next defaults to
// [Goroutine].
func NewPaced(l *rate.Limiter, next Spawner) *Paced {
	if next == nil {
		next = Goroutine{}
	}
	return &Paced{limiter: l, next: next}
}

// Go implements Spawner.
func (p *Paced) Go(fn func()) {
	p.next.Go(func() {
		_ = p.limiter.Wait(context.Background())
		fn()
	})
}
