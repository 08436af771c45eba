package dirsize

// VolumeUsage 路径所在文件系统的容量
type VolumeUsage struct {
	Path  string
	Total uint64
	Used  uint64
	Free  uint64
}

// UsedPercent 已用空间占比（0-100）
func (v VolumeUsage) UsedPercent() float64 {
	if v.Total == 0 {
		return 0
	}
	return float64(v.Used) / float64(v.Total) * 100
}
