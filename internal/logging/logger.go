// Package logging defines the structured-logging interface the link hub
// server logs through. The only implementation today wraps slog; the
// interface keeps the HTTP layer and services decoupled from it.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "Starting HTTP server", "address", addr)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures, such as a view attribution
	// write that the public profile response swallows.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs. The HTTP server tags itself with module=http_server this way.
	With(args ...any) Logger
}
