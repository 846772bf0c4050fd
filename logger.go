package flog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flog/formatter"
	"github.com/lixenwraith/flog/sanitizer"
	"github.com/lixenwraith/flog/writer"
)

// Logger is the core struct that encapsulates all logger functionality
type Logger struct {
	currentConfig atomic.Value // stores *Config
	formatter     atomic.Pointer[formatter.Formatter]
	run           atomic.Pointer[runInfo]
	state         State
	initMu        sync.Mutex   // serializes configuration, lazy file open and shutdown
	procMu        sync.Mutex   // serializes worker start/stop
	enqueueGate   sync.RWMutex // held shared by producers across the disabled check and enqueue
	worker        *workerHandle
	exiting       *workerHandle // worker that did not exit within its Stop timeout

	writer  *writer.FileWriter
	rotator *rotator
}

// NewLogger creates a new Logger instance with default settings.
// ApplyConfig must be called before records are accepted.
func NewLogger() *Logger {
	l := &Logger{
		writer: writer.New(),
	}

	l.currentConfig.Store(DefaultConfig())
	l.formatter.Store(formatter.New(defaultConfig.ConsoleIgnoredFields, nil))

	l.state.WorkerState.Store(WorkerStopped)
	l.state.LoggerStartTime.Store(time.Now())
	l.state.ConsoleWriter.Store(&sink{w: io.Discard})
	l.state.flushRequestChan = make(chan chan struct{}, 1)

	l.rotator = newRotator(l.writer, l.rotationPath)
	l.rotator.onError = func(err error) {
		l.internalLog("failed to rotate log file: %v\n", err)
	}
	l.rotator.onRotate = l.afterRotation
	l.writer.SetWriteCallback(l.rotator.OnBytesWritten)

	return l
}

// ApplyConfig validates and applies a configuration. On first use it creates
// the run directory; failure to do so is returned and leaves the logger
// unconfigured.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	return l.applyConfig(cfg.Clone())
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// Start launches the flush worker. Safe to call multiple times.
// Returns error if logger is not initialized, or if a worker whose Stop
// timed out has not exited yet.
func (l *Logger) Start() error {
	if !l.state.IsInitialized.Load() {
		return fmtErrorf("logger not initialized, call ApplyConfig first")
	}

	l.procMu.Lock()
	defer l.procMu.Unlock()

	if l.state.Started.Load() {
		return nil
	}

	if prev := l.exiting; prev != nil {
		select {
		case <-prev.done:
			l.exiting = nil
		default:
			return fmtErrorf("previous flush worker has not exited yet")
		}
	}

	l.state.Started.Store(true)

	h := &workerHandle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	l.worker = h
	l.state.WorkerState.Store(WorkerRunning)
	go l.processLogs(h)

	return nil
}

// Stop signals the flush worker and waits for it to drain the queue and exit.
// Can be restarted with Start(). Returns nil if already stopped.
func (l *Logger) Stop(timeout ...time.Duration) error {
	l.procMu.Lock()
	defer l.procMu.Unlock()

	if !l.state.Started.CompareAndSwap(true, false) {
		return nil
	}

	effectiveTimeout := l.stopTimeout(timeout)

	h := l.worker
	l.worker = nil
	l.state.WorkerState.Store(WorkerStopping)
	close(h.stop)

	select {
	case <-h.done:
		return nil
	case <-time.After(effectiveTimeout):
		l.exiting = h
		return fmtErrorf("flush worker did not exit within timeout (%v)", effectiveTimeout)
	}
}

// stopTimeout defaults to 2x flush interval, floored at minStopTimeout
func (l *Logger) stopTimeout(timeout []time.Duration) time.Duration {
	if len(timeout) > 0 && timeout[0] > 0 {
		return timeout[0]
	}
	d := 2 * time.Duration(l.getConfig().FlushIntervalMs) * time.Millisecond
	if d < minStopTimeout {
		d = minStopTimeout
	}
	return d
}

// Shutdown stops the worker, writes every queued record, then syncs and
// closes the file. Logging calls made after Shutdown are ignored until the
// logger is configured again. If the worker does not stop within the timeout
// the file is closed anyway; the worker's remaining writes fail and are
// counted as write errors, and Start refuses to run until it has exited.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	l.state.LoggerDisabled.Store(true)
	// Producers that passed the disabled check finish enqueueing before the final drain
	l.enqueueGate.Lock()
	l.enqueueGate.Unlock()

	if !l.state.IsInitialized.Load() {
		l.state.ShutdownCalled.Store(false)
		l.state.LoggerDisabled.Store(false)
		return nil
	}

	var finalErr error
	if err := l.Stop(timeout...); err != nil {
		finalErr = combineErrors(finalErr, err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	// Covers records queued while no worker was running
	if _, err := l.writer.DrainPending(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to write queued records during shutdown: %w", err))
	}

	if path := l.writer.Path(); path != "" {
		if err := l.writer.Close(); err != nil {
			finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s' during shutdown: %w", path, err))
		}
	}

	l.state.IsInitialized.Store(false)

	return finalErr
}

// Flush writes everything queued so far and syncs the file to disk, waiting
// for completion or timeout. Without a running worker it runs inline.
func (l *Logger) Flush(timeout time.Duration) error {
	l.state.flushMutex.Lock()
	defer l.state.flushMutex.Unlock()

	if !l.state.IsInitialized.Load() || l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger not initialized or already shut down")
	}

	if !l.state.Started.Load() {
		l.drainQueue()
		return l.syncFile()
	}

	confirmChan := make(chan struct{})

	select {
	case l.state.flushRequestChan <- confirmChan:
	case <-time.After(minWaitTime): // Short timeout to prevent blocking if processor is stuck
		return fmtErrorf("failed to send flush request to worker (possible deadlock or high load)")
	}

	select {
	case <-confirmChan:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Stats returns a snapshot of the file writer counters
func (l *Logger) Stats() writer.Stats {
	return l.writer.Stats()
}

// CurrentFile returns the path of the active log file, or "" if none is open
func (l *Logger) CurrentFile() string {
	return l.writer.Path()
}

// RunDirectory returns the directory of the current run, or "" before configuration
func (l *Logger) RunDirectory() string {
	if run := l.run.Load(); run != nil {
		return run.dir
	}
	return ""
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held
func (l *Logger) applyConfig(cfg *Config) error {
	oldCfg := l.getConfig()
	wasInitialized := l.state.IsInitialized.Load()

	var newRun *runInfo
	if cfg.EnableFile && (!wasInitialized || l.run.Load() == nil || configRequiresNewRun(oldCfg, cfg)) {
		run, err := createRun(cfg, time.Now())
		if err != nil {
			return err
		}
		newRun = run
	}

	needsRestart := wasInitialized && l.state.Started.Load() && configRequiresRestart(oldCfg, cfg)
	if needsRestart {
		if err := l.Stop(); err != nil {
			return fmtErrorf("failed to stop worker for restart: %w", err)
		}
	}

	l.currentConfig.Store(cfg)
	san := sanitizer.New().Policy(sanitizer.PolicyPreset(cfg.ConsoleSanitize))
	l.formatter.Store(formatter.New(cfg.ConsoleIgnoredFields, san))
	l.rotator.setThreshold(cfg.MaxSizeBytes)

	if cfg.EnableConsole {
		var w io.Writer = os.Stdout
		if cfg.ConsoleTarget == "stderr" {
			w = os.Stderr
		}
		l.state.ConsoleWriter.Store(&sink{w: w})
	} else {
		l.state.ConsoleWriter.Store(&sink{w: io.Discard})
	}

	switch {
	case !cfg.EnableFile:
		if l.writer.IsOpen() {
			if _, err := l.writer.DrainPending(); err != nil {
				l.internalLog("warning - failed to write queued records while disabling file output: %v\n", err)
			}
			if err := l.writer.Close(); err != nil {
				l.internalLog("warning - failed to close log file during disable: %v\n", err)
			}
		}
	case newRun != nil:
		l.run.Store(newRun)
		l.rotator.reset(cfg.InitialSequence)
		// Open file moves into the new run; otherwise the next record opens it
		if l.writer.IsOpen() {
			if err := l.writer.Redirect(newRun.filePath(cfg.InitialSequence, time.Now())); err != nil {
				l.internalLog("failed to move log file to '%s': %v\n", newRun.dir, err)
			}
		}
	}

	l.state.IsInitialized.Store(true)
	l.state.ShutdownCalled.Store(false)
	l.state.LoggerDisabled.Store(false)

	if needsRestart {
		return l.Start()
	}

	return nil
}

// ensureFileOpen opens the first file of the run on demand
func (l *Logger) ensureFileOpen() bool {
	if l.writer.IsOpen() {
		return true
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if !l.state.IsInitialized.Load() || l.state.ShutdownCalled.Load() || !l.getConfig().EnableFile {
		return false
	}
	if l.writer.IsOpen() {
		return true
	}

	run := l.run.Load()
	if run == nil {
		return false
	}
	path := run.filePath(l.rotator.currentSequence(), time.Now())
	if err := l.writer.Open(path); err != nil {
		l.internalLog("can't open log file: %v\n", err)
		return false
	}
	return true
}

// syncFile flushes and fsyncs the active file
func (l *Logger) syncFile() error {
	if err := l.writer.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", l.writer.Path(), err)
	}
	return nil
}
