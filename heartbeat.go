package flog

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/flog/formatter"
)

const heartbeatModule = "flog"

// handleHeartbeat processes a heartbeat timer tick
func (l *Logger) handleHeartbeat() {
	heartbeatLevel := l.getConfig().HeartbeatLevel

	if heartbeatLevel >= 1 {
		l.logProcHeartbeat()
	}

	if heartbeatLevel >= 2 {
		l.logDiskHeartbeat()
	}

	if heartbeatLevel >= 3 {
		l.logSysHeartbeat()
	}
}

// logProcHeartbeat logs logger throughput statistics
func (l *Logger) logProcHeartbeat() {
	sequence := l.state.HeartbeatSequence.Add(1)

	var uptimeHours float64
	if startTime, ok := l.state.LoggerStartTime.Load().(time.Time); ok && !startTime.IsZero() {
		uptimeHours = time.Since(startTime).Hours()
	}

	stats := l.writer.Stats()
	procArgs := []any{
		"type", "proc",
		"sequence", sequence,
		"uptime_hours", fmt.Sprintf("%.2f", uptimeHours),
		"processed_logs", l.state.TotalLogsProcessed.Load(),
		"sync_writes", l.state.SyncWrites.Load(),
		"async_writes", l.state.AsyncWrites.Load(),
		"queue_depth", stats.QueueDepth,
		"write_errors", stats.WriteErrors,
		"dropped_logs", l.state.DroppedLogs.Load(),
	}

	l.writeHeartbeatRecord(LevelProc, procArgs)
}

// logDiskHeartbeat logs file and rotation statistics
func (l *Logger) logDiskHeartbeat() {
	sequence := l.state.HeartbeatSequence.Load()

	diskArgs := []any{
		"type", "disk",
		"sequence", sequence,
		"file_sequence", l.rotator.currentSequence(),
		"rotated_files", l.rotator.rotations.Load(),
		"failed_rotations", l.rotator.failures.Load(),
		"deleted_files", l.state.TotalDeletions.Load(),
		"current_file_size_mb", fmt.Sprintf("%.2f", float64(l.writer.Size())/(1024*1024)),
	}

	if run := l.run.Load(); run != nil {
		if dirSize, err := getLogDirSize(run.dir, run.ext); err == nil {
			diskArgs = append(diskArgs, "total_log_size_mb", fmt.Sprintf("%.2f", float64(dirSize)/(1024*1024)))
		} else {
			l.internalLog("warning - heartbeat failed to get dir size: %v\n", err)
		}
		if count, err := getLogFileCount(run.dir, run.ext); err == nil {
			diskArgs = append(diskArgs, "log_file_count", count)
		} else {
			l.internalLog("warning - heartbeat failed to get file count: %v\n", err)
		}
		if freeSpace, err := getDiskFreeSpace(run.dir); err == nil {
			diskArgs = append(diskArgs, "disk_free_mb", fmt.Sprintf("%.2f", float64(freeSpace)/(1024*1024)))
		}
	}

	l.writeHeartbeatRecord(LevelDisk, diskArgs)
}

// logSysHeartbeat logs runtime statistics
func (l *Logger) logSysHeartbeat() {
	sequence := l.state.HeartbeatSequence.Load()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sysArgs := []any{
		"type", "sys",
		"sequence", sequence,
		"alloc_mb", fmt.Sprintf("%.2f", float64(memStats.Alloc)/(1024*1024)),
		"sys_mb", fmt.Sprintf("%.2f", float64(memStats.Sys)/(1024*1024)),
		"num_gc", memStats.NumGC,
		"num_goroutine", runtime.NumGoroutine(),
	}

	l.writeHeartbeatRecord(LevelSys, sysArgs)
}

// writeHeartbeatRecord formats key-value pairs as a file record. Heartbeats
// skip the level filter and the console, and never open a file themselves.
func (l *Logger) writeHeartbeatRecord(level int64, args []any) {
	if l.state.LoggerDisabled.Load() || l.state.ShutdownCalled.Load() {
		return
	}

	cfg := l.getConfig()
	if !cfg.EnableFile || !l.writer.IsOpen() {
		return
	}

	entry := formatter.Entry{
		TimeNs:    time.Now().UnixNano(),
		ThreadID:  threadID(),
		Level:     level,
		LevelName: LevelName(level),
		Module:    heartbeatModule,
		File:      "heartbeat",
		Function:  "heartbeat",
		Template:  formatPairs(args),
	}
	rec := l.formatter.Load().Format(formatter.File, &entry)

	if cfg.EnableAsync {
		l.writer.AsyncWrite(rec)
		return
	}
	n, err := l.writer.SyncWrite(rec)
	if err != nil {
		l.internalLog("failed to write heartbeat: %v\n", err)
	}
	l.rotator.OnBytesWritten(n)
}

// formatPairs renders alternating keys and values as "k=v k=v"
func formatPairs(args []any) string {
	var sb strings.Builder
	for i := 0; i+1 < len(args); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, args[i])
		sb.WriteByte('=')
		switch v := args[i+1].(type) {
		case string:
			if strings.ContainsAny(v, " =") {
				sb.WriteString(strconv.Quote(v))
			} else {
				sb.WriteString(v)
			}
		default:
			fmt.Fprint(&sb, v)
		}
	}
	return sb.String()
}
