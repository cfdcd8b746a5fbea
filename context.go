package fling

import (
	"context"

	"github.com/flingworks/fling/id"
)

// ID is the identifier type for fling entities.
type ID = id.ID

type correlationKey struct{}

// WithCorrelation attaches a task's correlation token to the context.
// The dispatcher does this for every run context; bodies and middleware
// can forward the context to downstream systems to keep the token
// flowing.
func WithCorrelation(ctx context.Context, taskID id.TaskID) context.Context {
	return context.WithValue(ctx, correlationKey{}, taskID)
}

// CorrelationFrom extracts the correlation token from the context.
// Returns false if none is attached.
func CorrelationFrom(ctx context.Context) (id.TaskID, bool) {
	v, ok := ctx.Value(correlationKey{}).(id.TaskID)
	return v, ok
}
