//go:build !(linux || darwin || freebsd)

package dirsize

import (
	"errors"
	"fmt"
)

func Volume(path string) (VolumeUsage, error) {
	return VolumeUsage{}, fmt.Errorf("读取文件系统信息失败: %s: %w", path, errors.ErrUnsupported)
}
