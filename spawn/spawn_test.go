package spawn_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/flingworks/fling/spawn"
)

func TestGoroutine_RunsDetached(t *testing.T) {
	var s spawn.Goroutine
	done := make(chan struct{})

	s.Go(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("spawned function never ran")
	}
}

func TestBounded_CapsConcurrency(t *testing.T) {
	const limit = 2
	const total = 10

	s := spawn.NewBounded(limit)

	var active, peak int64
	var wg sync.WaitGroup
	wg.Add(total)

	for range total {
		s.Go(func() {
			defer wg.Done()
			n := atomic.AddInt64(&active, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&active, -1)
		})
	}

	wg.Wait()

	if got := atomic.LoadInt64(&peak); got > limit {
		t.Errorf("peak concurrency = %d, want <= %d", got, limit)
	}
}

func TestBounded_GoNeverBlocks(t *testing.T) {
	s := spawn.NewBounded(1)

	blocker := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	s.Go(func() {
		defer wg.Done()
		<-blocker
	})

	// The only slot is held; a second Go must still return promptly.
	returned := make(chan struct{})
	go func() {
		s.Go(func() { wg.Done() })
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Go blocked while the semaphore was full")
	}

	close(blocker)
	wg.Wait()
}

func TestNewBounded_PanicsOnZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewBounded(0) did not panic")
		}
	}()
	spawn.NewBounded(0)
}

func TestPaced_GatesExecution(t *testing.T) {
	// 1 token available immediately, then one every 50ms.
	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	s := spawn.NewPaced(limiter, nil)

	var wg sync.WaitGroup
	wg.Add(3)
	start := time.Now()
	for range 3 {
		s.Go(wg.Done)
	}
	wg.Wait()

	// Third execution needs two refill intervals.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 paced executions finished in %v, want >= 80ms", elapsed)
	}
}

func TestPaced_GoReturnsImmediately(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 0)
	s := spawn.NewPaced(limiter, nil)

	returned := make(chan struct{})
	go func() {
		s.Go(func() {})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Go blocked on the rate limiter")
	}
}
