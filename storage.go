package flog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// runInfo describes the directory and naming of one logging run
type runInfo struct {
	program string
	pid     int
	dir     string // <directory>/<program>_<date>_<time>_log
	ext     string
}

// programName returns the executable's base name without extension
func programName() string {
	exe, err := os.Executable()
	if err != nil || exe == "" {
		if len(os.Args) == 0 {
			return "flog"
		}
		exe = os.Args[0]
	}
	base := filepath.Base(exe)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// runDirName builds "<program>_<YYYY_MM_DD>_<HH_MM_SS>_log"
func runDirName(program string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s_log", program, t.Format(dateFormat), t.Format(timeFormat))
}

// createRun resolves the run directory for cfg and creates it
func createRun(cfg *Config, now time.Time) (*runInfo, error) {
	program := cfg.Name
	if program == "" {
		program = programName()
	}

	run := &runInfo{
		program: program,
		pid:     os.Getpid(),
		dir:     filepath.Join(cfg.Directory, runDirName(program, now)),
		ext:     cfg.Extension,
	}

	if err := os.MkdirAll(run.dir, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", run.dir, err)
	}
	return run, nil
}

// fileName builds "<program>_<pid>_<YYYY_MM_DD>_<HH_MM_SS>_<seq>.<ext>"
func (r *runInfo) fileName(seq int64, t time.Time) string {
	name := fmt.Sprintf("%s_%d_%s_%s_%d", r.program, r.pid, t.Format(dateFormat), t.Format(timeFormat), seq)
	if r.ext != "" {
		name += "." + r.ext
	}
	return name
}

func (r *runInfo) filePath(seq int64, t time.Time) string {
	return filepath.Join(r.dir, r.fileName(seq, t))
}

// rotationPath names the file for sequence seq in the current run
func (l *Logger) rotationPath(seq int64) string {
	run := l.run.Load()
	if run == nil {
		return ""
	}
	return run.filePath(seq, time.Now())
}

// afterRotation enforces the run directory size cap, sparing the new file
func (l *Logger) afterRotation(activePath string) {
	maxTotalKB := l.getConfig().MaxTotalSizeKB
	if maxTotalKB <= 0 {
		return
	}
	run := l.run.Load()
	if run == nil {
		return
	}

	dirSize, err := getLogDirSize(run.dir, run.ext)
	if err != nil {
		l.internalLog("warning - failed to check log directory size for '%s': %v\n", run.dir, err)
		return
	}
	maxTotal := maxTotalKB * 1024
	if dirSize <= maxTotal {
		return
	}

	deleted, err := cleanOldLogs(run.dir, run.ext, filepath.Base(activePath), dirSize-maxTotal)
	l.state.TotalDeletions.Add(uint64(deleted))
	if err != nil {
		l.internalLog("failed to clean old log files: %v\n", err)
	}
}

type logFileMeta struct {
	name    string
	modTime time.Time
	size    int64
}

// listLogFiles returns files in dir carrying ext, oldest first
func listLogFiles(dir, ext string) ([]logFileMeta, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	targetExt := ""
	if ext != "" {
		targetExt = "." + ext
	}

	var logs []logFileMeta
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if targetExt != "" && filepath.Ext(entry.Name()) != targetExt {
			continue
		}
		info, errInfo := entry.Info()
		if errInfo != nil {
			continue
		}
		logs = append(logs, logFileMeta{name: entry.Name(), modTime: info.ModTime(), size: info.Size()})
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].modTime.Equal(logs[j].modTime) {
			return logs[i].name < logs[j].name
		}
		return logs[i].modTime.Before(logs[j].modTime)
	})
	return logs, nil
}

// cleanOldLogs removes the oldest files until required bytes are freed.
// The active file is never removed. Returns the number of files deleted.
func cleanOldLogs(dir, ext, active string, required int64) (int, error) {
	logs, err := listLogFiles(dir, ext)
	if err != nil {
		return 0, fmtErrorf("failed to read log directory '%s' for cleanup: %w", dir, err)
	}

	var freedSpace int64
	deleted := 0
	for _, log := range logs {
		if freedSpace >= required {
			break
		}
		if log.name == active {
			continue
		}
		if err := os.Remove(filepath.Join(dir, log.name)); err != nil {
			continue
		}
		freedSpace += log.size
		deleted++
	}

	if freedSpace < required {
		return deleted, fmtErrorf("could not free enough space in '%s': freed %d bytes, needed %d bytes", dir, freedSpace, required)
	}
	return deleted, nil
}

// getLogDirSize calculates total size of log files matching ext
func getLogDirSize(dir, ext string) (int64, error) {
	logs, err := listLogFiles(dir, ext)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmtErrorf("failed to read log directory '%s': %w", dir, err)
	}
	var size int64
	for _, log := range logs {
		size += log.size
	}
	return size, nil
}

// getLogFileCount counts log files matching ext, including the active one
func getLogFileCount(dir, ext string) (int, error) {
	logs, err := listLogFiles(dir, ext)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return -1, fmtErrorf("failed to read log directory '%s': %w", dir, err)
	}
	return len(logs), nil
}
