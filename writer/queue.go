package writer

import (
	"sync"

	"github.com/lixenwraith/flog/formatter"
)

// queue is a double-buffered record queue. Producers append to pending; the
// single consumer swaps the two slots and processes draining outside the lock.
type queue struct {
	mu       sync.Mutex
	pending  []*formatter.Record
	draining []*formatter.Record
}

func newQueue(capacity int) *queue {
	return &queue{
		pending:  make([]*formatter.Record, 0, capacity),
		draining: make([]*formatter.Record, 0, capacity),
	}
}

// enqueue never performs I/O
func (q *queue) enqueue(rec *formatter.Record) {
	q.mu.Lock()
	q.pending = append(q.pending, rec)
	q.mu.Unlock()
}

// swap exchanges the slots and returns the records to drain. The caller owns
// the returned slice until release.
func (q *queue) swap() []*formatter.Record {
	q.mu.Lock()
	q.pending, q.draining = q.draining, q.pending
	batch := q.draining
	q.mu.Unlock()
	return batch
}

// release empties the draining slot for reuse, keeping its capacity
func (q *queue) release() {
	clear(q.draining)
	q.draining = q.draining[:0]
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
