package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/moyu-x/dupsweep/config"
	"github.com/moyu-x/dupsweep/pkg/logger"
	"github.com/moyu-x/dupsweep/pkg/progress"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	originalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	sizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")).
			Width(10).
			Align(lipgloss.Right)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bytesOf(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// logPhases 只在阶段变化时记录日志，其余进度通知忽略
func logPhases() progress.Func {
	last := progress.Phase(-1)
	return func(u progress.Update) {
		if u.Phase == last {
			return
		}
		last = u.Phase
		logger.Get().Info().Msgf("扫描阶段: %s", u.Phase)
	}
}

// sizeFlag 解析大小参数；为空时返回 fallback
func sizeFlag(value string, fallback int64) (int64, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := config.ParseSize(value)
	if err != nil {
		return 0, fmt.Errorf("无效的大小: %s: %w", value, err)
	}
	return n, nil
}
