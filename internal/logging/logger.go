// Package logging defines the structured-logging interface used across the
// CLI. The default implementation wraps log/slog; tests can substitute a
// buffer-backed logger.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs, e.g.:
//
//	log.Debug(ctx, "sending request", "method", method, "id", id)
type Logger interface {
	// Debug logs wire-level detail, enabled by the --debug flag.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs progress messages, enabled by the --verbose flag.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs.
	With(args ...any) Logger
}
