package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	switch m.state {
	case StateScanning:
		return m.scanningView()
	case StateComplete:
		return m.completeView()
	default:
		return "未知状态"
	}
}

func (m *model) scanningView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 "+m.job.Title) + "\n\n")

	status := "正在扫描..."
	if m.cancelling {
		status = "正在取消..."
	}
	b.WriteString(m.spinner.View() + " " + status + "\n\n")

	if m.job.Fraction {
		b.WriteString(labelStyle.Render("阶段："+m.phase.String()) + "\n")
		b.WriteString(m.progressBar.View() + "\n\n")
	}

	b.WriteString(labelStyle.Render("当前位置：") + "\n")
	b.WriteString(filePathStyle.Render(m.label) + "\n\n")

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("按 q 或 Ctrl+C 取消扫描") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) completeView() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorTitleStyle.Render("❌ 扫描失败") + "\n\n")
		b.WriteString(m.err.Error() + "\n\n")
	} else {
		title := "✅ 扫描完成"
		if m.cancelling {
			title = "⚠️ 扫描已取消"
		}
		b.WriteString(successTitleStyle.Render(title) + "\n\n")

		if len(m.result.Rows) > 0 {
			b.WriteString(tableStyle.Render(m.resultTable.View()) + "\n\n")
		}
		b.WriteString(statsBoxStyle.Render(
			m.result.Summary+"\n耗时："+m.elapsed.Round(time.Millisecond).String(),
		) + "\n\n")
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("↑/↓ 浏览结果，q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}
