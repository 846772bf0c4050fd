//go:build !linux

package flog

import (
	"bytes"
	"errors"
	"runtime"
	"strconv"
)

var errUnsupported = errors.New("flog: not supported on this platform")

// threadID falls back to the goroutine id where no thread id call is available
func threadID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

func getDiskFreeSpace(path string) (int64, error) {
	return 0, errUnsupported
}
