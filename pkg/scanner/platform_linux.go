//go:build linux

package scanner

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime 优先使用 statx 提供的 birth time，文件系统不支持时退回修改时间
func creationTime(path string, info os.FileInfo) time.Time {
	if _, ok := info.Sys().(*syscall.Stat_t); !ok {
		return info.ModTime()
	}

	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return info.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
