package flog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/flog/formatter"
)

// log handles the core logging logic. skip is the number of frames between
// log and the call site reported in the record.
func (l *Logger) log(skip int, level int64, module, format string, args []any) {
	if !l.state.IsInitialized.Load() || l.state.LoggerDisabled.Load() {
		return
	}

	cfg := l.getConfig()
	if level < cfg.Level || (!cfg.EnableConsole && !cfg.EnableFile) {
		return
	}

	file, line, function := callerInfo(skip)
	entry := formatter.Entry{
		TimeNs:    time.Now().UnixNano(),
		ThreadID:  threadID(),
		Level:     level,
		LevelName: LevelName(level),
		Module:    module,
		File:      file,
		Line:      line,
		Function:  function,
		Template:  format,
		Args:      args,
	}
	f := l.formatter.Load()

	if cfg.EnableConsole {
		l.writeConsole(f.Format(formatter.Console, &entry))
	}

	if cfg.EnableFile {
		l.writeFile(f.Format(formatter.File, &entry), cfg.EnableAsync && level < syncLevelThreshold)
	}

	l.state.TotalLogsProcessed.Add(1)
}

// Write outputs args space-separated on one line with no metadata, at info level
func (l *Logger) Write(args ...any) {
	if !l.state.IsInitialized.Load() || l.state.LoggerDisabled.Load() {
		return
	}

	cfg := l.getConfig()
	if LevelInfo < cfg.Level {
		return
	}

	rec := formatter.FormatRaw(args)
	if cfg.EnableConsole {
		l.writeConsole(rec)
	}
	if cfg.EnableFile {
		l.writeFile(rec, cfg.EnableAsync)
	}

	l.state.TotalLogsProcessed.Add(1)
}

// writeConsole writes directly to the console sink on the caller's goroutine
func (l *Logger) writeConsole(rec *formatter.Record) {
	s := l.state.ConsoleWriter.Load().(*sink)
	_, _ = s.w.Write(rec.Bytes())
}

// writeFile sends a record down the queued or synchronous path
func (l *Logger) writeFile(rec *formatter.Record, async bool) {
	if !l.ensureFileOpen() {
		l.state.DroppedLogs.Add(1)
		return
	}

	if async {
		l.enqueueGate.RLock()
		defer l.enqueueGate.RUnlock()
		if l.state.LoggerDisabled.Load() {
			return
		}
		l.writer.AsyncWrite(rec)
		l.state.AsyncWrites.Add(1)
		return
	}

	n, err := l.writer.SyncWrite(rec)
	if err != nil {
		l.internalLog("failed to write to log file: %v\n", err)
	}
	l.state.SyncWrites.Add(1)
	l.rotator.OnBytesWritten(n)
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled
func (l *Logger) internalLog(format string, args ...any) {
	cfg := l.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}

	if !strings.HasPrefix(format, "flog: ") {
		format = "flog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
