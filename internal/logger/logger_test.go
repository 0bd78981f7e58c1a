package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

// TestSanitize_RedactsSecrets verifies secret-looking keys never reach the sink.
func TestSanitize_RedactsSecrets(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.Info("login", "api_version", "v3", "Authorization", "Bearer abc", "refresh_token", "xyz")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "v3", fields["api_version"])
	assert.Equal(t, "[REDACTED]", fields["Authorization"])
	assert.Equal(t, "[REDACTED]", fields["refresh_token"])
}

// TestWith_CarriesFields verifies child loggers keep their fields.
func TestWith_CarriesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("component", "chain")

	l.Warn("late registration")
	l.Error("resolve failed", "operation", "formatResponse")
	l.Debug("resolved", "provider", "v1")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "chain", entries[0].ContextMap()["component"])
	assert.Equal(t, "formatResponse", entries[1].ContextMap()["operation"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestNop(t *testing.T) {
	t.Parallel()

	l := Nop()
	l.Info("discarded", "k", "v")
	l.Sync()
}
