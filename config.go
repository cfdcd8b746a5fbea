package fling

import "time"

// Config holds configuration for the Dispatcher.
type Config struct {
	// MaxConcurrent caps how many runs execute at once.
	// Zero means unbounded: every submission gets its own goroutine.
	MaxConcurrent int

	// ShutdownTimeout is the maximum time Close waits for in-flight
	// runs when the caller's context has no deadline of its own.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:   0,
		ShutdownTimeout: 30 * time.Second,
	}
}
