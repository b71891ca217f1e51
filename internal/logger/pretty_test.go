package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew_ConciseDropsFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug("hidden")
	log.Info("Batch failed", zap.Int("batch", 2), zap.Int("size", 10), zap.Error(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "Batch failed")
	assert.Contains(t, out, `"batch": 2`)
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "size")
}

func TestNew_ConciseWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false).With(zap.String("mint", "M1"), zap.String("rpc", "http://x"))

	log.Warn("careful")

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "M1")
	assert.NotContains(t, out, "http://x")
}

func TestNew_DebugKeepsEverything(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug("Batch confirmed", zap.Int("size", 10))

	out := buf.String()
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, `"size": 10`)
}
