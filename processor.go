package flog

// processLogs is the flush worker loop. It drains the async queue on every
// flush tick and, once stop is closed, drains both queue slots and exits.
func (l *Logger) processLogs(h *workerHandle) {
	defer close(h.done)
	// A worker that outlived its Stop timeout must not clobber a newer worker's state
	defer l.state.WorkerState.CompareAndSwap(WorkerStopping, WorkerStopped)

	timers := l.setupProcessingTimers()
	defer l.closeProcessingTimers(timers)

	// Initial heartbeats instead of waiting for the first tick
	if l.getConfig().HeartbeatLevel > 0 {
		l.handleHeartbeat()
	}

	for {
		select {
		case <-h.stop:
			l.drainQueue()
			if _, err := l.writer.DrainPending(); err != nil {
				l.internalLog("failed to write remaining records: %v\n", err)
			}
			return

		case <-timers.flushTicker.C:
			l.drainQueue()

		case confirmChan := <-l.state.flushRequestChan:
			l.handleFlushRequest(confirmChan)

		case <-timers.heartbeatChan:
			l.handleHeartbeat()
		}
	}
}

// drainQueue writes one swapped batch, feeding each write to the rotation trigger
func (l *Logger) drainQueue() {
	if _, err := l.writer.Drain(); err != nil {
		l.internalLog("failed to write to log file: %v\n", err)
	}
}

// handleFlushRequest handles an explicit flush request
func (l *Logger) handleFlushRequest(confirmChan chan struct{}) {
	l.drainQueue()
	if err := l.writer.Sync(); err != nil {
		l.internalLog("failed to sync log file: %v\n", err)
	}
	close(confirmChan) // Signal completion back to the Flush caller
}
