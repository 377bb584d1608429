package diag_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurelienfalco/hrank/diag"
)

func TestNewTextLoggerWritesFieldsAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := diag.NewTextLogger(&buf, slog.LevelInfo)

	l.WithMethod("aca_plus").WithK(3).Info("compressed block")

	out := buf.String()
	assert.Contains(t, out, "compressed block")
	assert.Contains(t, out, "method=aca_plus")
	assert.Contains(t, out, "k=3")
}

func TestNewTextLoggerSuppressesBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := diag.NewTextLogger(&buf, slog.LevelWarn)

	l.Debug("should not appear")

	assert.Empty(t, buf.String())
}

func TestNoopLoggerDiscardsEverything(t *testing.T) {
	l := diag.NoopLogger()
	l.Error("this goes nowhere", "k", 1)
	l.LogNaN("svd", 2)
	// No assertion beyond "does not panic" — NoopLogger has no observable
	// sink to check against.
}

func TestLogValidationMismatchIncludesThresholdFields(t *testing.T) {
	var buf bytes.Buffer
	l := diag.NewTextLogger(&buf, slog.LevelWarn)

	l.LogValidationMismatch("aca_partial", 4, 0.02, 0.01)

	out := buf.String()
	assert.Contains(t, out, "method=aca_partial")
	assert.Contains(t, out, "rel_error=0.02")
	assert.Contains(t, out, "threshold=0.01")
}

func TestWithContextAttachesContextToLogCalls(t *testing.T) {
	var buf bytes.Buffer
	l := diag.NewJSONLogger(&buf, slog.LevelInfo)

	l.WithContext(context.Background()).Info("ctx-scoped message")

	assert.Contains(t, buf.String(), "ctx-scoped message")
}
