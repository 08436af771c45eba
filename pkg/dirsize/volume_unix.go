//go:build linux || darwin || freebsd

package dirsize

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Volume 返回 path 所在文件系统的总量、已用和可用空间
func Volume(path string) (VolumeUsage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return VolumeUsage{}, fmt.Errorf("读取文件系统信息失败: %w", err)
	}

	bsize := uint64(st.Bsize)
	total := uint64(st.Blocks) * bsize
	free := uint64(st.Bavail) * bsize
	used := total - uint64(st.Bfree)*bsize

	return VolumeUsage{Path: path, Total: total, Used: used, Free: free}, nil
}
