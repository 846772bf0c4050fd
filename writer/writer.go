// Package writer owns the active log file: synchronous writes, a double-buffered
// queue for asynchronous writes, and in-place redirection to a new file.
package writer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/flog/formatter"
)

var (
	ErrNotOpen = errors.New("writer: no file open")
	ErrOpen    = errors.New("writer: cannot open file")
)

const (
	bufferSize    = 32 * 1024
	queueCapacity = 1024
)

// WriteCallback receives the byte count reported by each queued write
type WriteCallback func(n int)

// Stats is a snapshot of writer counters
type Stats struct {
	RecordsWritten uint64
	BytesWritten   uint64
	WriteErrors    uint64
	Drains         uint64
	QueueDepth     int
}

// FileWriter serializes every operation on the file descriptor behind one
// mutex. Queued records are written only by Drain and DrainPending.
type FileWriter struct {
	mu   sync.Mutex
	file *os.File
	out  io.Writer // bw target, the open file
	bw   *bufio.Writer
	path string

	q       *queue
	drainMu sync.Mutex
	cb      atomic.Pointer[WriteCallback]

	recordsWritten atomic.Uint64
	bytesWritten   atomic.Uint64
	writeErrors    atomic.Uint64
	drains         atomic.Uint64
}

// New creates a FileWriter with no file open
func New() *FileWriter {
	return &FileWriter{
		q: newQueue(queueCapacity),
	}
}

func openFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrOpen, path, err)
	}
	return f, nil
}

// Open opens path for appending. It is a no-op if a file is already open.
func (w *FileWriter) Open(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return nil
	}

	f, err := openFile(path)
	if err != nil {
		return err
	}
	w.attach(f, path)
	return nil
}

func (w *FileWriter) attach(f *os.File, path string) {
	w.file = f
	w.out = f
	w.path = path
	if w.bw == nil {
		w.bw = bufio.NewWriterSize(f, bufferSize)
	} else {
		w.bw.Reset(f)
	}
}

// flushLocked pushes buffered bytes to the file. bufio keeps a failed write
// as a sticky error, so on failure the buffer is reset and its contents are
// dropped; later records are attempted again.
func (w *FileWriter) flushLocked() error {
	if err := w.bw.Flush(); err != nil {
		w.writeErrors.Add(1)
		w.bw.Reset(w.out)
		return err
	}
	return nil
}

// IsOpen reports whether a file is open
func (w *FileWriter) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file != nil
}

// Path returns the path of the open file, or "" if none
func (w *FileWriter) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Redirect switches output to path. Buffered bytes land in the previous file
// before it is closed. If path cannot be opened the previous file stays
// active and the error is returned. Queued records are not touched.
func (w *FileWriter) Redirect(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return ErrNotOpen
	}

	f, err := openFile(path)
	if err != nil {
		return err
	}

	_ = w.flushLocked()
	old := w.file
	w.attach(f, path)
	if err := old.Close(); err != nil {
		w.writeErrors.Add(1)
	}
	return nil
}

// SyncWrite writes rec straight to the file after any buffered bytes and
// returns the count the file reported. The write callback is not invoked.
func (w *FileWriter) SyncWrite(rec *formatter.Record) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		w.writeErrors.Add(1)
		return 0, ErrNotOpen
	}
	// A failed flush loses only the buffered batch, not this record
	_ = w.flushLocked()

	n, err := w.out.Write(rec.Bytes())
	w.bytesWritten.Add(uint64(n))
	if err != nil {
		w.writeErrors.Add(1)
		return n, err
	}
	w.recordsWritten.Add(1)
	return n, nil
}

// AsyncWrite queues rec for the next drain
func (w *FileWriter) AsyncWrite(rec *formatter.Record) {
	w.q.enqueue(rec)
}

// SetWriteCallback installs the hook called after each queued write. The
// hook runs without the file lock held, so it may call Redirect.
func (w *FileWriter) SetWriteCallback(cb WriteCallback) {
	if cb == nil {
		w.cb.Store(nil)
		return
	}
	w.cb.Store(&cb)
}

func (w *FileWriter) writeLocked(rec *formatter.Record) (int, error) {
	if w.file == nil {
		w.writeErrors.Add(1)
		return 0, ErrNotOpen
	}
	n, err := w.bw.Write(rec.Bytes())
	w.bytesWritten.Add(uint64(n))
	if err != nil {
		w.writeErrors.Add(1)
		w.bw.Reset(w.out)
		return n, err
	}
	w.recordsWritten.Add(1)
	return n, nil
}

func (w *FileWriter) write(rec *formatter.Record) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeLocked(rec)
}

// Drain swaps the queue slots, writes every record that was pending, reports
// each byte count to the write callback and flushes. It returns the number of
// records drained and the first write error.
func (w *FileWriter) Drain() (int, error) {
	return w.drain(true)
}

// DrainPending writes whatever is still queued without invoking the write
// callback. Used for the final remainder at shutdown.
func (w *FileWriter) DrainPending() (int, error) {
	return w.drain(false)
}

func (w *FileWriter) drain(notify bool) (int, error) {
	w.drainMu.Lock()
	defer w.drainMu.Unlock()

	batch := w.q.swap()
	if len(batch) == 0 {
		return 0, nil
	}
	defer w.q.release()

	var cb WriteCallback
	if notify {
		if p := w.cb.Load(); p != nil {
			cb = *p
		}
	}

	var firstErr error
	for _, rec := range batch {
		n, err := w.write(rec)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if cb != nil {
			cb(n)
		}
	}

	if err := w.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	w.drains.Add(1)
	return len(batch), firstErr
}

// Flush pushes buffered bytes to the file without fsync
func (w *FileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.flushLocked()
}

// Sync flushes buffered bytes and commits the file to stable storage
func (w *FileWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	if err := w.flushLocked(); err != nil {
		return err
	}
	return w.file.Sync()
}

// Size returns the size of the open file as reported by the filesystem
func (w *FileWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return 0
	}
	fi, err := w.file.Stat()
	if err != nil {
		return 0
	}
	return fi.Size() + int64(w.bw.Buffered())
}

// Close flushes and closes the file. Queued records are left in place; call
// DrainPending first to persist them. The writer may be opened again.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	var errs []error
	if err := w.flushLocked(); err != nil {
		errs = append(errs, err)
	}
	if err := w.file.Sync(); err != nil {
		errs = append(errs, err)
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, err)
	}
	w.file = nil
	w.out = nil
	w.path = ""
	return errors.Join(errs...)
}

// Stats returns current counters
func (w *FileWriter) Stats() Stats {
	return Stats{
		RecordsWritten: w.recordsWritten.Load(),
		BytesWritten:   w.bytesWritten.Load(),
		WriteErrors:    w.writeErrors.Load(),
		Drains:         w.drains.Load(),
		QueueDepth:     w.q.len(),
	}
}
