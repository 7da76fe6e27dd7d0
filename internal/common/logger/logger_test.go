package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"service": "leases"})

	log.Info("loaded", map[string]interface{}{"count": 3})
	log.WithError(errors.New("boom")).Error("failed", map[string]interface{}{"cause": errors.New("inner")})

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "loaded", entries[0].Message)
	assert.Equal(t, "leases", entries[0].ContextMap()["service"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, "inner", entries[1].ContextMap()["cause"])
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, "json")
			assert.True(t, l.Core().Enabled(tt.enabled))
			if tt.enabled > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.enabled-1))
			}
		})
	}
}

func TestNewNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.Warn("ignored", nil)
	})
}
