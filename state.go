package flog

import (
	"sync"
	"sync/atomic"
)

// State encapsulates the runtime state of the logger
type State struct {
	IsInitialized  atomic.Bool
	LoggerDisabled atomic.Bool
	ShutdownCalled atomic.Bool
	Started        atomic.Bool
	WorkerState    atomic.Int32 // WorkerStopped, WorkerRunning or WorkerStopping

	flushRequestChan chan chan struct{} // Channel to request a flush
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	ConsoleWriter atomic.Value // stores *sink (os.Stdout, os.Stderr or io.Discard)

	// Statistics, reported by heartbeats
	HeartbeatSequence  atomic.Uint64
	LoggerStartTime    atomic.Value  // stores time.Time
	TotalLogsProcessed atomic.Uint64 // non-heartbeat records accepted past the level filter
	SyncWrites         atomic.Uint64
	AsyncWrites        atomic.Uint64
	DroppedLogs        atomic.Uint64 // file records lost because no file could be opened
	TotalDeletions     atomic.Uint64 // files removed by size cleanup
}

// workerHandle holds the channels of one worker run
type workerHandle struct {
	stop chan struct{} // closed to broadcast stop
	done chan struct{} // closed by the worker on exit
}
