package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		log, err := NewLogger(env)
		require.NoError(t, err, env)
		require.NotNil(t, log, env)
		log.Sync()
	}
}

func TestGetLogLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zap.InfoLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, zap.DebugLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, zap.InfoLevel, getLogLevel())
}
