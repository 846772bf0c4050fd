// Package formatter assembles log lines into fixed-capacity records.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/flog/sanitizer"
)

// Optional field flags. A set bit hides the field on the console; file
// records always carry every field.
const (
	FieldTime     int64 = 0b0001
	FieldThreadID int64 = 0b0010
	FieldFileLine int64 = 0b0100
	FieldFunc     int64 = 0b1000
	FieldAll            = FieldTime | FieldThreadID | FieldFileLine | FieldFunc
)

// Target selects which field set a record is built for
type Target int

const (
	Console Target = iota
	File
)

// Entry carries everything captured at the call site
type Entry struct {
	TimeNs    int64
	ThreadID  uint64
	Level     int64
	LevelName string
	Module    string
	File      string
	Line      int
	Function  string
	Template  string
	Args      []any
}

// Formatter builds records. It is immutable and safe for concurrent use.
type Formatter struct {
	ignored   int64
	sanitizer *sanitizer.Sanitizer
}

// New creates a formatter. ignoredFields applies to console records only;
// the sanitizer, when non-nil, rewrites the message part of console records.
func New(ignoredFields int64, san *sanitizer.Sanitizer) *Formatter {
	return &Formatter{
		ignored:   ignoredFields & FieldAll,
		sanitizer: san,
	}
}

// IgnoredFields returns the console suppression mask
func (f *Formatter) IgnoredFields() int64 {
	return f.ignored
}

func (f *Formatter) show(target Target, field int64) bool {
	return target == File || f.ignored&field == 0
}

// Format renders e as
//
//	[<time-ns>][tid:<id>][<module>.<file>.<line>:<func>][<LEVEL>]: <message>\n
//
// omitting the optional parts hidden for target. It panics with
// *OverflowError if the line does not fit in a record.
func (f *Formatter) Format(target Target, e *Entry) *Record {
	r := &Record{}

	if f.show(target, FieldTime) {
		r.appendByte("time", '[')
		r.appendFunc("time", func(dst []byte) []byte {
			return strconv.AppendInt(dst, e.TimeNs, 10)
		})
		r.appendByte("time", ']')
	}

	if f.show(target, FieldThreadID) {
		r.appendString("thread id", "[tid:")
		r.appendFunc("thread id", func(dst []byte) []byte {
			return strconv.AppendUint(dst, e.ThreadID, 10)
		})
		r.appendByte("thread id", ']')
	}

	r.appendByte("module", '[')
	r.appendString("module", e.Module)

	if f.show(target, FieldFileLine) {
		r.appendByte("file", '.')
		r.appendString("file", ShortFile(e.File))
		r.appendByte("line", '.')
		r.appendFunc("line", func(dst []byte) []byte {
			return strconv.AppendInt(dst, int64(e.Line), 10)
		})
	}

	if f.show(target, FieldFunc) {
		r.appendByte("function", ':')
		r.appendString("function", e.Function)
	}
	r.appendByte("module", ']')

	r.appendByte("level", '[')
	r.appendString("level", e.LevelName)
	r.appendString("level", "]: ")

	start := r.n
	r.appendFunc("message", func(dst []byte) []byte {
		if len(e.Args) == 0 {
			return append(dst, e.Template...)
		}
		return fmt.Appendf(dst, e.Template, e.Args...)
	})

	if target == Console && !f.sanitizer.Passthrough() {
		f.sanitizeTail(r, start)
	}

	r.terminate()
	return r
}

// sanitizeTail rewrites r.buf[start:r.n] through the sanitizer
func (f *Formatter) sanitizeTail(r *Record, start int) {
	msg := make([]byte, r.n-start)
	copy(msg, r.buf[start:r.n])
	r.n = start
	r.appendFunc("message", func(dst []byte) []byte {
		return f.sanitizer.Append(dst, msg)
	})
}

// ShortFile returns the part of path after the last '/' or '\'
func ShortFile(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
