package flog

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStartStopLifecycle(t *testing.T) {
	logger, _ := createTestLogger(t) // Starts the logger by default

	assert.True(t, logger.state.Started.Load(), "Logger should be in a started state")
	assert.Equal(t, WorkerRunning, logger.state.WorkerState.Load())

	err := logger.Stop()
	require.NoError(t, err)
	assert.False(t, logger.state.Started.Load(), "Logger should be in a stopped state after Stop()")
	assert.Equal(t, WorkerStopped, logger.state.WorkerState.Load())

	err = logger.Start()
	require.NoError(t, err)
	assert.True(t, logger.state.Started.Load(), "Logger should be in a started state after restart")

	logger.Shutdown()
}

func TestStartBeforeConfig(t *testing.T) {
	logger := NewLogger()
	err := logger.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger not initialized")
}

func TestStartAlreadyStarted(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	// Calling Start() on an already started logger is a no-op
	err := logger.Start()
	assert.NoError(t, err)
	assert.True(t, logger.state.Started.Load())
}

func TestStopAlreadyStopped(t *testing.T) {
	logger, _ := createTestLogger(t)

	require.NoError(t, logger.Stop())
	assert.False(t, logger.state.Started.Load())

	// Calling Stop() on an already stopped logger is a no-op
	assert.NoError(t, logger.Stop())
	assert.False(t, logger.state.Started.Load())

	logger.Shutdown()
}

func TestStopDrainsQueue(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableAsync = true
	cfg.FlushIntervalMs = 60000
	logger, _ := createTestLoggerWith(t, cfg)
	defer logger.Shutdown()

	for i := 0; i < 50; i++ {
		logger.Infof("queued %d", i)
	}
	require.NoError(t, logger.Stop())

	assert.Len(t, readLines(t, logger.RunDirectory()), 50)
	assert.Zero(t, logger.Stats().QueueDepth)
}

func TestStopReconfigureRestart(t *testing.T) {
	logger, _ := createTestLogger(t)

	logger.Infof("first message")
	require.NoError(t, logger.Stop())

	cfg := logger.GetConfig()
	cfg.EnableAsync = true
	cfg.FlushIntervalMs = 20
	require.NoError(t, logger.ApplyConfig(cfg))
	assert.False(t, logger.state.Started.Load(), "ApplyConfig must not start a stopped worker")

	require.NoError(t, logger.Start())
	logger.Infof("second message")
	require.NoError(t, logger.Shutdown(time.Second))

	lines := readLines(t, logger.RunDirectory())
	require.Len(t, lines, 2)
	assert.Equal(t, "first message", messageOf(lines[0]))
	assert.Equal(t, "second message", messageOf(lines[1]))
}

func TestReconfigureRestartsWorker(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	require.NoError(t, logger.ApplyConfigString("flush_interval_ms=25"))
	assert.True(t, logger.state.Started.Load())
	assert.Equal(t, WorkerRunning, logger.state.WorkerState.Load())

	require.NoError(t, logger.ApplyConfigString("enable_async=true"))
	logger.Infof("after restart")
	require.Eventually(t, func() bool {
		return len(readLines(t, logger.RunDirectory())) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLoggingOnStoppedLogger(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableAsync = true
	logger, _ := createTestLoggerWith(t, cfg)

	require.NoError(t, logger.Stop())

	// Sync-path records are still written without a worker
	logger.Errorf("written now")
	// Queued records wait for the next drain
	logger.Infof("written later")

	lines := readLines(t, logger.RunDirectory())
	require.Len(t, lines, 1)
	assert.Equal(t, "written now", messageOf(lines[0]))

	require.NoError(t, logger.Shutdown(time.Second))
	assert.Len(t, readLines(t, logger.RunDirectory()), 2)
}

func TestFlushOnStoppedLogger(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableAsync = true
	logger, _ := createTestLoggerWith(t, cfg)
	defer logger.Shutdown()

	require.NoError(t, logger.Stop())
	logger.Infof("queued")

	// Flush runs inline without a worker
	require.NoError(t, logger.Flush(time.Second))
	assert.Len(t, readLines(t, logger.RunDirectory()), 1)
}

func TestShutdownLifecycle(t *testing.T) {
	logger, _ := createTestLogger(t)

	assert.True(t, logger.state.Started.Load())
	assert.True(t, logger.state.IsInitialized.Load())

	err := logger.Shutdown()
	require.NoError(t, err)

	assert.True(t, logger.state.ShutdownCalled.Load())
	assert.False(t, logger.state.IsInitialized.Load(), "Shutdown should de-initialize the logger")
	assert.False(t, logger.state.Started.Load(), "Shutdown should stop the logger")
	assert.False(t, logger.writer.IsOpen())

	// A second Shutdown is a no-op
	assert.NoError(t, logger.Shutdown())

	err = logger.Start()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logger not initialized")

	// Logging should be a silent no-op
	logger.Infof("this will not be logged")

	err = logger.Flush(time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestReconfigureAfterShutdown(t *testing.T) {
	logger, _ := createTestLogger(t)
	logger.Infof("first run")
	require.NoError(t, logger.Shutdown())

	cfg := testConfig(t)
	require.NoError(t, logger.ApplyConfig(cfg))
	require.NoError(t, logger.Start())
	defer logger.Shutdown()

	logger.Infof("second run")
	lines := readLines(t, logger.RunDirectory())
	require.Len(t, lines, 1)
	assert.Equal(t, "second run", messageOf(lines[0]))
}

func TestShutdownLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := testConfig(t)
	cfg.EnableAsync = true
	cfg.HeartbeatLevel = 1
	logger, _ := createTestLoggerWith(t, cfg)

	for i := 0; i < 100; i++ {
		logger.Infof("record %d", i)
	}
	require.NoError(t, logger.Shutdown())
}

func TestShutdownDuringAsyncLogging(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableAsync = true
	logger, _ := createTestLoggerWith(t, cfg)
	runDir := logger.RunDirectory()

	var done atomic.Bool
	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; !done.Load(); i++ {
				logger.Infof("producer %d record %d", p, i)
			}
		}(p)
	}

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, logger.Shutdown(2*time.Second))
	done.Store(true)
	wg.Wait()

	// Every record accepted into the queue was written before the file closed
	assert.Zero(t, logger.writer.Stats().QueueDepth)
	assert.Len(t, readLines(t, runDir), int(logger.state.AsyncWrites.Load()))
}

func TestStopTimeoutBlocksRestart(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableAsync = true
	logger, _ := createTestLoggerWith(t, cfg)

	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	logger.writer.SetWriteCallback(func(int) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
	})

	logger.Infof("held")
	<-entered // worker is stuck inside a drain

	err := logger.Stop(20 * time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, WorkerStopping, logger.state.WorkerState.Load())

	// A second worker must not start while the first is still alive
	assert.Error(t, logger.Start())
	assert.False(t, logger.state.Started.Load())

	close(release)
	<-logger.exiting.done
	assert.Equal(t, WorkerStopped, logger.state.WorkerState.Load())

	logger.writer.SetWriteCallback(logger.rotator.OnBytesWritten)
	require.NoError(t, logger.Start())
	assert.Equal(t, WorkerRunning, logger.state.WorkerState.Load())
	assert.Nil(t, logger.exiting)

	require.NoError(t, logger.Shutdown())
	assert.Contains(t, readAll(t, logger.RunDirectory()), "held")
}
