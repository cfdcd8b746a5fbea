package fling

import "errors"

var (
	// ErrClosed is returned by Submit after Close has been called.
	ErrClosed = errors.New("fling: dispatcher closed")

	// ErrNilBody is returned by Submit when the task body is nil.
	ErrNilBody = errors.New("fling: nil task body")
)
