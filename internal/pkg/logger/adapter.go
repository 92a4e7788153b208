package logger

import "wallet_inspector/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level slog helpers.
// Services receive it instead of depending on a concrete logger.
type slogAdapter struct{}

// NewSlogAdapter creates a new slogAdapter.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// Info logs an informational message.
func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, args...)
}

// Debug logs a debug message.
func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, args...)
}

// Warn logs a warning message.
func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, args...)
}

// Error logs an error message.
func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, args...)
}
