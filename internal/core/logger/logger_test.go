package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestInit verifies logger initialization for different environments.
func TestInit(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		require.NoError(t, Init("development", "debug"))
		assert.NotNil(t, globalLogger)
		assert.True(t, globalLogger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("Production", func(t *testing.T) {
		require.NoError(t, Init("production", "info"))
		assert.False(t, globalLogger.Core().Enabled(zap.DebugLevel))
		assert.True(t, globalLogger.Core().Enabled(zap.InfoLevel))
	})

	t.Run("InvalidLevelKeepsDefault", func(t *testing.T) {
		require.NoError(t, Init("production", "invalid_level"))
		assert.True(t, globalLogger.Core().Enabled(zap.InfoLevel))
		assert.False(t, globalLogger.Core().Enabled(zap.DebugLevel))
	})
}

// TestGet verifies that Get falls back to a no-op logger.
func TestGet(t *testing.T) {
	globalLogger = nil
	assert.NotNil(t, Get())
	assert.False(t, Get().Core().Enabled(zap.ErrorLevel))

	require.NoError(t, Init("development", "info"))
	assert.True(t, Get().Core().Enabled(zap.InfoLevel))
}

// TestSync verifies that Sync does not panic even if logger is nil.
func TestSync(t *testing.T) {
	globalLogger = nil
	Sync()

	require.NoError(t, Init("development", "info"))
	Sync()
}
