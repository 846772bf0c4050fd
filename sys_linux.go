//go:build linux

package flog

import "golang.org/x/sys/unix"

// threadID returns the kernel id of the calling OS thread
func threadID() uint64 {
	return uint64(unix.Gettid())
}

// getDiskFreeSpace retrieves available disk space for the given path
func getDiskFreeSpace(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, fmtErrorf("failed to get disk stats for '%s': %w", path, err)
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
