package flog

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestFullLifecycle(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewBuilder().
		Directory(tmpDir).
		Name("test").
		LevelString("debug").
		EnableConsole(false).
		EnableAsync(true).
		MaxSizeBytes(2048).
		InternalErrorsToStderr(false).
		Build()

	require.NoError(t, err, "Logger creation with builder should succeed")
	require.NotNil(t, logger)
	require.NoError(t, logger.Start())

	logger.Tracef("trace message")
	logger.Debugf("debug message")
	logger.Infof("info message")
	logger.Warnf("warning message")
	logger.Errorf("error message")

	db := logger.Module("db")
	db.Infof("query took %dms", 12)
	db.Output(1, LevelWarn, "via output")

	logger.Write("raw data write")

	err = logger.ApplyConfigString("enable_console=true", "console_target=stderr")
	require.NoError(t, err)
	logger.state.ConsoleWriter.Store(&sink{w: &syncBuffer{}})

	for i := 0; i < 100; i++ {
		logger.Infof("bulk %03d", i)
	}

	require.NoError(t, logger.Flush(time.Second))
	require.NoError(t, logger.Shutdown(2*time.Second), "Logger shutdown should be clean")

	runDir := logger.RunDirectory()
	assert.Greater(t, len(logFiles(t, runDir)), 1, "rotation should have produced several files")

	content := readAll(t, runDir)
	assert.NotContains(t, content, "trace message")
	assert.Contains(t, content, "[DEBUG]: debug message")
	assert.Contains(t, content, "[ERROR]: error message")
	assert.Contains(t, content, "[db.integration_test.go.")
	assert.Contains(t, content, "[WARN]: via output")
	assert.Contains(t, content, "\nraw data write\n")
	assert.Contains(t, content, "[INFO]: bulk 099")
}

func TestConcurrentOperations(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableAsync = true
	cfg.MaxSizeBytes = 4096
	logger, _ := createTestLoggerWith(t, cfg)

	const producers, perProducer = 5, 200
	var g errgroup.Group

	for i := 0; i < producers; i++ {
		id := i
		g.Go(func() error {
			for j := 0; j < perProducer; j++ {
				if j%50 == 0 {
					logger.Errorf("worker %d log %d", id, j)
				} else {
					logger.Infof("worker %d log %d", id, j)
				}
			}
			return nil
		})
	}

	// Concurrent configuration changes
	g.Go(func() error {
		for i := 0; i < 3; i++ {
			if err := logger.ApplyConfigString(fmt.Sprintf("flush_interval_ms=%d", 10+i*10)); err != nil {
				return err
			}
			time.Sleep(20 * time.Millisecond)
		}
		return nil
	})

	// Concurrent flushes
	g.Go(func() error {
		for i := 0; i < 5; i++ {
			// Rejected handoffs while the worker restarts are expected
			_ = logger.Flush(100 * time.Millisecond)
			time.Sleep(15 * time.Millisecond)
		}
		return nil
	})

	require.NoError(t, g.Wait())
	require.NoError(t, logger.Shutdown())

	lines := readLines(t, logger.RunDirectory())
	require.Len(t, lines, producers*perProducer)

	// Per producer, queued records keep their order
	last := make(map[int]int)
	for _, line := range lines {
		var id, j int
		_, err := fmt.Sscanf(messageOf(line), "worker %d log %d", &id, &j)
		require.NoError(t, err)
		if !strings.Contains(line, "[INFO]") {
			continue
		}
		if prev, ok := last[id]; ok {
			assert.Greater(t, j, prev, "worker %d out of order", id)
		}
		last[id] = j
	}
}

func TestErrorRecovery(t *testing.T) {
	t.Run("move to new directory", func(t *testing.T) {
		logger, _ := createTestLogger(t)
		defer logger.Shutdown()

		logger.Infof("first")
		require.NotEmpty(t, logger.CurrentFile())

		require.NoError(t, logger.ApplyConfigString("directory="+t.TempDir()))
		logger.Infof("second")

		lines := readLines(t, logger.RunDirectory())
		require.Len(t, lines, 1)
		assert.Equal(t, "second", messageOf(lines[0]))
	})

	t.Run("concurrent shutdown", func(t *testing.T) {
		logger, _ := createTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = logger.Shutdown()
			}()
		}
		wg.Wait()
		assert.False(t, logger.state.IsInitialized.Load())
	})
}
