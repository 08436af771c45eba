package report

import "strings"

const rootSeparator = "\n"

func joinRoots(roots []string) string {
	return strings.Join(roots, rootSeparator)
}

// SplitRoots 还原 ScanRecord.Roots 中保存的根目录列表
func SplitRoots(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, rootSeparator)
}
