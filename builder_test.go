package flog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("successful build returns configured logger", func(t *testing.T) {
		tmpDir := t.TempDir()

		logger, err := NewBuilder().
			Directory(tmpDir).
			Name("builder").
			LevelString("debug").
			EnableConsole(false).
			ConsoleTarget("stderr").
			ConsoleIgnoredFields(FieldTime | FieldThreadID).
			ConsoleSanitize("txt").
			EnableAsync(true).
			MaxSizeMB(10).
			InitialSequence(3).
			MaxTotalSizeKB(4096).
			FlushIntervalMs(20).
			HeartbeatLevel(2).
			Build()

		if logger != nil {
			defer logger.Shutdown()
		}

		require.NoError(t, err, "Builder.Build() should not return an error on valid config")
		require.NotNil(t, logger, "Builder.Build() should return a non-nil logger")

		cfg := logger.GetConfig()
		assert.Equal(t, tmpDir, cfg.Directory)
		assert.Equal(t, "builder", cfg.Name)
		assert.Equal(t, LevelDebug, cfg.Level)
		assert.False(t, cfg.EnableConsole)
		assert.Equal(t, "stderr", cfg.ConsoleTarget)
		assert.Equal(t, FieldTime|FieldThreadID, cfg.ConsoleIgnoredFields)
		assert.Equal(t, "txt", cfg.ConsoleSanitize)
		assert.True(t, cfg.EnableAsync)
		assert.Equal(t, int64(10*1024*1024), cfg.MaxSizeBytes)
		assert.Equal(t, int64(3), cfg.InitialSequence)
		assert.Equal(t, int64(4096), cfg.MaxTotalSizeKB)
		assert.Equal(t, int64(20), cfg.FlushIntervalMs)
		assert.Equal(t, int64(2), cfg.HeartbeatLevel)

		// Built loggers are configured but not started
		assert.True(t, logger.state.IsInitialized.Load())
		assert.False(t, logger.state.Started.Load())
		assert.Equal(t, tmpDir, filepath.Dir(logger.RunDirectory()))
	})

	t.Run("builder error accumulation", func(t *testing.T) {
		logger, err := NewBuilder().
			LevelString("invalid-level-string").
			Directory("/some/dir").
			Build()

		require.Error(t, err, "Build should fail with an invalid level string")
		assert.Contains(t, err.Error(), "invalid level string")
		assert.Nil(t, logger, "A nil logger should be returned on build error")

		_, err = NewBuilder().LevelString("nope").Config()
		assert.Error(t, err)
	})

	t.Run("apply config validation error", func(t *testing.T) {
		logger, err := NewBuilder().
			Directory(t.TempDir()).
			FlushIntervalMs(-1).
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "flush_interval_ms must be positive")
		assert.Nil(t, logger)
	})

	t.Run("config snapshot", func(t *testing.T) {
		b := NewBuilder().Level(LevelWarn).Extension("txt")
		cfg, err := b.Config()
		require.NoError(t, err)
		assert.Equal(t, LevelWarn, cfg.Level)
		assert.Equal(t, "txt", cfg.Extension)

		// Snapshot is detached from the builder
		b.Level(LevelError)
		assert.Equal(t, LevelWarn, cfg.Level)
	})
}
