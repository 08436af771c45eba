package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/dupsweep/pkg/logger"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.state == StateScanning {
				if !m.cancelling {
					logger.Get().Info().Msg("用户取消扫描")
					m.cancelling = true
					m.cancel()
				}
				return m, nil
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case progressMsg:
		m.phase = msg.Phase
		if msg.Label != "" {
			m.label = msg.Label
		}
		if m.job.Fraction {
			cmds = append(cmds, m.progressBar.SetPercent(msg.Fraction))
		}
		cmds = append(cmds, waitForUpdate(m.reporter.Updates()))
		return m, tea.Batch(cmds...)

	case updatesClosedMsg:
		return m, nil

	case doneMsg:
		m.state = StateComplete
		m.elapsed = time.Since(m.started)
		m.err = msg.err
		m.result = msg.result
		m.resultTable = newResultTable(msg.result, m.width)
		m.cancel()
		if dropped := m.reporter.Dropped(); dropped > 0 {
			logger.Get().Debug().Msgf("界面繁忙，丢弃了 %d 条进度通知", dropped)
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == StateScanning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == StateScanning {
		model, cmd := m.progressBar.Update(msg)
		m.progressBar = model.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateComplete {
		var cmd tea.Cmd
		m.resultTable, cmd = m.resultTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.progressBar.Width = msg.Width - 10
	if m.state == StateComplete {
		m.resultTable.SetWidth(msg.Width - 4)
	}
}
