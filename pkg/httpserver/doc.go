// Package httpserver is a thin wrapper over net/http's Server adding
// env-driven configuration, graceful shutdown on context cancellation or
// OS signals, and slog logging.
package httpserver
