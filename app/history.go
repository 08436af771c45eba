package app

import (
	"fmt"

	"github.com/moyu-x/dupsweep/pkg/report"
)

// RunHistory 列出已保存的扫描报告，最新的在前
func RunHistory(env *Env, limit int) ([]report.ScanRecord, error) {
	store, err := report.Open(env.Cfg.Report.Path)
	if err != nil {
		return nil, fmt.Errorf("打开报告数据库失败: %w", err)
	}
	defer store.Close()
	return store.Scans(limit)
}
