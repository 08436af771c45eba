package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/dupsweep/pkg/logger"
)

// Run 在终端界面中运行 job，扫描结束后展示结果表格，直到用户退出
func Run(ctx context.Context, job Job) error {
	logger.Get().Info().Msg("启动 TUI 界面")

	m := initialModel(ctx, job)
	defer m.cancel()

	// 全屏界面运行期间日志只写文件，避免打乱画面
	restore := logger.MuteConsole()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	restore()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
		return err
	}

	logger.Get().Info().Msg("TUI 正常退出")
	return m.err
}
