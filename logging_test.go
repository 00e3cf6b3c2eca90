package asyncrt

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_WritesThroughToHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	logger.Info("spawned", "future_id", "abc")

	assert.Contains(t, buf.String(), "spawned")
	assert.Contains(t, buf.String(), "future_id=abc")
}

func TestNoopLogger_DiscardsEverything(t *testing.T) {
	logger := NewNoopLogger()
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x")
		logger.Warn("x")
		logger.Error("x")
	})
}

func TestNewSlogLogger_NilFallsBackToDefault(t *testing.T) {
	assert.NotPanics(t, func() { NewSlogLogger(nil).Info("x") })
}
