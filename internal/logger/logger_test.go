package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"production", "development", ""} {
		l, err := New(mode)
		require.NoError(t, err)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("sender_id", "123").Warn("send failed", "status", 500)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "send failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "123", fields["sender_id"])
	assert.EqualValues(t, 500, fields["status"])
}

func TestModeLevels(t *testing.T) {
	prod, err := New(" Production ")
	require.NoError(t, err)
	assert.False(t, prod.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))

	dev, err := New("development")
	require.NoError(t, err)
	assert.True(t, dev.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))
}
