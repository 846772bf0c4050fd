package formatter

import "fmt"

// Capacity is the fixed size of a record buffer. The final two bytes are
// reserved for the line terminator, so a line never exceeds Capacity-1 bytes.
const Capacity = 4096

// Record is one fully formatted log line held in a fixed-size buffer.
// Records are shared by pointer between the producer, the async queue and the
// flush worker, and are never modified after formatting completes.
type Record struct {
	buf [Capacity]byte
	n   int
}

// Bytes returns the formatted line including the trailing newline
func (r *Record) Bytes() []byte {
	return r.buf[:r.n]
}

// Len returns the number of valid bytes
func (r *Record) Len() int {
	return r.n
}

func (r *Record) String() string {
	return string(r.buf[:r.n])
}

// OverflowError is the panic value raised when a line does not fit in a record
type OverflowError struct {
	Part  string // which part of the line was being written
	Need  int
	Avail int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("formatter: %s needs %d bytes, %d available in %d-byte record",
		e.Part, e.Need, e.Avail, Capacity)
}

// limit is the last index usable for content; two bytes stay reserved.
const limit = Capacity - 2

func (r *Record) overflow(part string, need int) {
	panic(&OverflowError{Part: part, Need: need, Avail: limit - r.n})
}

func (r *Record) appendByte(part string, c byte) {
	if r.n+1 > limit {
		r.overflow(part, 1)
	}
	r.buf[r.n] = c
	r.n++
}

func (r *Record) appendString(part string, s string) {
	if r.n+len(s) > limit {
		r.overflow(part, len(s))
	}
	r.n += copy(r.buf[r.n:], s)
}

// appendFunc lets fn append into the free tail of the array. fn gets a zero
// length slice with the remaining capacity; if it grows past that, the append
// reallocated and the record overflowed.
func (r *Record) appendFunc(part string, fn func(dst []byte) []byte) {
	avail := limit - r.n
	out := fn(r.buf[r.n:r.n:limit])
	if len(out) >= avail {
		r.overflow(part, len(out))
	}
	r.n += len(out)
}

// terminate writes the trailing newline into the reserved tail
func (r *Record) terminate() {
	r.buf[r.n] = '\n'
	r.n++
}
