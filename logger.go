package dbfacade

import "context"

// Logger is a structured logging interface compatible with *slog.Logger, so
// a slog logger can be passed directly without an adapter.
type Logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// noopLogger discards all messages; it is the default when no logger is
// configured.
type noopLogger struct{}

func (noopLogger) InfoContext(context.Context, string, ...any)  {}
func (noopLogger) WarnContext(context.Context, string, ...any)  {}
func (noopLogger) ErrorContext(context.Context, string, ...any) {}

// NopLogger returns the discarding logger, for drivers that need a non-nil
// default.
func NopLogger() Logger { return noopLogger{} }
