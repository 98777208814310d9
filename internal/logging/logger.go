// Package logging defines the structured-logging interface used across the
// client. The only shipped implementation wraps log/slog, but the interface
// keeps callers independent of the backend.
package logging

import "context"

// Logger is a leveled, context-aware logger. Variadic args are key–value
// pairs, e.g. log.Info(ctx, "loaded students", "count", n).
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key–value pairs.
	With(args ...any) Logger
}
