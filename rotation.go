package flog

import (
	"sync"
	"sync/atomic"
)

// redirector is the part of the file writer rotation needs
type redirector interface {
	Redirect(path string) error
}

// rotator counts bytes written to the current file and redirects output to
// the next sequence-numbered file once the count passes the threshold.
type rotator struct {
	mu       sync.Mutex
	target   redirector
	nextPath func(seq int64) string
	total    int64
	sequence int64

	threshold atomic.Int64 // <= 0 disables rotation
	rotations atomic.Uint64
	failures  atomic.Uint64

	onRotate func(path string) // called with mu held after a successful redirect
	onError  func(err error)
}

func newRotator(target redirector, nextPath func(seq int64) string) *rotator {
	return &rotator{
		target:   target,
		nextPath: nextPath,
	}
}

// OnBytesWritten adds n to the running total and rotates when it exceeds
// the threshold. The total restarts at zero whether or not the redirect
// succeeds; a failed redirect leaves output on the previous file.
func (r *rotator) OnBytesWritten(n int) {
	if n <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.total += int64(n)
	limit := r.threshold.Load()
	if limit <= 0 || r.total <= limit {
		return
	}
	r.total = 0

	r.sequence++
	path := r.nextPath(r.sequence)
	if err := r.target.Redirect(path); err != nil {
		r.failures.Add(1)
		if r.onError != nil {
			r.onError(err)
		}
		return
	}

	r.rotations.Add(1)
	if r.onRotate != nil {
		r.onRotate(path)
	}
}

func (r *rotator) setThreshold(limit int64) {
	r.threshold.Store(limit)
}

// reset starts a new run at seq
func (r *rotator) reset(seq int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = 0
	r.sequence = seq
}

func (r *rotator) currentSequence() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sequence
}

func (r *rotator) bytesSinceRotation() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}
