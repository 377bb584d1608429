// Package diag provides the compression engine's diagnostic logger: a thin
// wrapper over log/slog with chainable structured fields.
package diag

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps a *slog.Logger. The zero value is not usable; construct via
// NewLogger, NewTextLogger, NewJSONLogger, or NoopLogger.
type Logger struct {
	inner *slog.Logger
}

// NewLogger wraps an arbitrary slog.Handler.
func NewLogger(handler slog.Handler) *Logger {
	return &Logger{inner: slog.New(handler)}
}

// NewTextLogger builds a human-readable logger writing to w at the given
// level.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger builds a structured JSON logger writing to w at the given
// level.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything. compress does not need it as a default:
// compress.Compress accepts a nil logger and then discards diagnostics.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// DefaultLogger writes warnings and above to stderr.
func DefaultLogger() *Logger {
	return NewTextLogger(os.Stderr, slog.LevelWarn)
}

// WithContext returns a logger that attaches ctx to subsequent log calls.
func (l *Logger) WithContext(ctx context.Context) *contextLogger {
	return &contextLogger{l: l, ctx: ctx}
}

// WithBlock returns a logger with the block's row/column cluster sizes
// attached as fields, for use through a single compress call.
func (l *Logger) WithBlock(rows, cols int) *Logger {
	return &Logger{inner: l.inner.With("rows", rows, "cols", cols)}
}

// WithMethod attaches a method tag field.
func (l *Logger) WithMethod(method string) *Logger {
	return &Logger{inner: l.inner.With("method", method)}
}

// WithK attaches a rank field.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{inner: l.inner.With("k", k)}
}

type contextLogger struct {
	l   *Logger
	ctx context.Context
}

func (c *contextLogger) Debug(msg string, args ...any) { c.l.inner.DebugContext(c.ctx, msg, args...) }
func (c *contextLogger) Info(msg string, args ...any)  { c.l.inner.InfoContext(c.ctx, msg, args...) }
func (c *contextLogger) Warn(msg string, args ...any)  { c.l.inner.WarnContext(c.ctx, msg, args...) }
func (c *contextLogger) Error(msg string, args ...any) { c.l.inner.ErrorContext(c.ctx, msg, args...) }

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// LogValidationMismatch logs a norm-mismatch diagnostic from the
// compression engine's validation path.
func (l *Logger) LogValidationMismatch(method string, k int, relError, threshold float64) {
	l.inner.Warn("compression validation error exceeds threshold",
		"method", method, "k", k, "rel_error", relError, "threshold", threshold)
}

// LogNaN logs a fatal NaN detection in the compressed factors.
func (l *Logger) LogNaN(method string, k int) {
	l.inner.Error("NaN detected in compressed factors", "method", method, "k", k)
}

// LogCacheClean logs bounding-box cache release at debug level.
func (l *Logger) LogCacheClean(nodeDescription string) {
	l.inner.Debug("releasing admissibility bounding-box cache", "node", nodeDescription)
}
