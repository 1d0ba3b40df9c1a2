// Package runctx carries the battery run id through a context.Context so
// log records and run log entries can be correlated.
package runctx

import "context"

// contextKey is unexported so no other package can collide with it.
type contextKey string

const runIDKey contextKey = "run_id"

// LogKey is the attribute name used for the run id in log records.
const LogKey = string(runIDKey)

func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunID returns the run id stored in ctx, or "" if there is none.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}
