package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	scanprogress "github.com/moyu-x/dupsweep/pkg/progress"
)

type State int

const (
	StateScanning State = iota
	StateComplete
)

// Result 扫描完成后要展示的表格
type Result struct {
	Columns []table.Column
	Rows    []table.Row
	Summary string
}

// Job 在后台运行的扫描。onProgress 不会阻塞，ctx 在用户取消时结束。
type Job struct {
	Title string
	// Fraction 为 false 的扫描只报告标签，不显示进度条
	Fraction bool
	Run      func(ctx context.Context, onProgress scanprogress.Func) (Result, error)
}

type model struct {
	state       State
	job         Job
	ctx         context.Context
	cancel      context.CancelFunc
	reporter    *scanprogress.Reporter
	cancelling  bool
	phase       scanprogress.Phase
	label       string
	started     time.Time
	elapsed     time.Duration
	result      Result
	resultTable table.Model
	progressBar progress.Model
	spinner     spinner.Model
	width       int
	err         error
}

func initialModel(ctx context.Context, job Job) *model {
	ctx, cancel := context.WithCancel(ctx)

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Width(4)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &model{
		state:       StateScanning,
		job:         job,
		ctx:         ctx,
		cancel:      cancel,
		reporter:    scanprogress.NewReporter(64),
		started:     time.Now(),
		progressBar: progressBar,
		spinner:     s,
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runJob(),
		waitForUpdate(m.reporter.Updates()),
	)
}

func (m *model) runJob() tea.Cmd {
	return func() tea.Msg {
		defer m.reporter.Close()
		result, err := m.job.Run(m.ctx, m.reporter.Func())
		return doneMsg{result: result, err: err}
	}
}

func waitForUpdate(updates <-chan scanprogress.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return updatesClosedMsg{}
		}
		return progressMsg(u)
	}
}

func newResultTable(r Result, width int) table.Model {
	t := table.New(
		table.WithColumns(r.Columns),
		table.WithRows(r.Rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(len(r.Rows))),
	)
	if width > 0 {
		t.SetWidth(width - 4)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func tableHeight(rows int) int {
	switch {
	case rows < 1:
		return 1
	case rows > 20:
		return 20
	default:
		return rows
	}
}
