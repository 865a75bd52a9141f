// internal/common/logger/logger_test.go
package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapAdapter(zap.New(core)), logs
}

func TestZapWrapper_Levels(t *testing.T) {
	log, logs := newObserved(zapcore.DebugLevel)

	log.Debug("d", nil)
	log.Info("i", map[string]interface{}{"k": 1})
	log.Warn("w", nil)
	log.Error("e", nil)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, int64(1), entries[1].ContextMap()["k"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestZapWrapper_WithFields(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	scoped := log.WithFields(map[string]interface{}{"taskType": "create-ticket"})
	scoped.With(map[string]interface{}{"sessionId": "s-1"}).Info("scoped", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "create-ticket", ctx["taskType"])
	assert.Equal(t, "s-1", ctx["sessionId"])
}

func TestZapWrapper_WithError(t *testing.T) {
	log, logs := newObserved(zapcore.InfoLevel)

	log.WithError(errors.New("boom")).Error("failed", nil)
	log.Info("field error", map[string]interface{}{"cause": errors.New("nested")})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
	assert.Equal(t, "nested", entries[1].ContextMap()["cause"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_BuildsForBothFormats(t *testing.T) {
	assert.NotNil(t, New("debug", "json"))
	assert.NotNil(t, New("info", "console", "stderr"))
	assert.NotNil(t, NewStructured("warn", "json"))
	NewNoOpLogger().Info("discarded", nil)
	NewTestLogger(t).Info("to testing.T", map[string]interface{}{"ok": true})
}
