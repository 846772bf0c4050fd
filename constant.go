package flog

import (
	"time"

	"github.com/lixenwraith/flog/formatter"
)

// Log level constants
const (
	LevelTrace int64 = 0
	LevelDebug int64 = 1
	LevelInfo  int64 = 2
	LevelWarn  int64 = 3
	LevelError int64 = 4
	LevelFatal int64 = 5
)

// Heartbeat record levels, written regardless of the level filter
const (
	LevelProc int64 = 6
	LevelDisk int64 = 7
	LevelSys  int64 = 8
)

// Records at or above this level bypass the async queue
const syncLevelThreshold = LevelError

// Optional console fields
const (
	FieldTime     = formatter.FieldTime
	FieldThreadID = formatter.FieldThreadID
	FieldFileLine = formatter.FieldFileLine
	FieldFunc     = formatter.FieldFunc
	FieldAll      = formatter.FieldAll
)

// Worker states
const (
	WorkerStopped int32 = iota
	WorkerRunning
	WorkerStopping
)

const (
	// Module name used when logging through the Logger directly
	defaultModule = "main"
	// Wait used for flush request handoff and stop polling
	minWaitTime = 10 * time.Millisecond
	// Floor for Stop/Shutdown default timeout
	minStopTimeout = 500 * time.Millisecond
	// Run directory and file name stamps
	dateFormat = "2006_01_02"
	timeFormat = "15_04_05"
)

var levelNames = [...]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
	LevelProc:  "PROC",
	LevelDisk:  "DISK",
	LevelSys:   "SYS",
}
