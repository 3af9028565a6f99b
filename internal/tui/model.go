package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/config"
	apperrors "github.com/agbru/loganalyzer/internal/errors"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

// Session is everything a dashboard run needs: the input, the resolved
// configuration and the coordinator options. The progress reporter option
// is added by the dashboard.
type Session struct {
	Sources  []analysis.Source
	Keywords analysis.Keywords
	Config   config.AppConfig
	// Dir is the folder actually analyzed, shown in the header.
	Dir     string
	Options []orchestration.Option
	Version string
}

// Result is the outcome of the last run shown by the dashboard.
type Result struct {
	Comparison orchestration.Comparison
	Err        error
	ExitCode   int
	// Completed is false when the user quit before a run finished.
	Completed bool
}

// run is the lifecycle of the comparison currently on screen. Every rerun
// gets a new generation and a new context derived from the session one.
type run struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	result     Result
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel
	keymap  KeyMap

	run
	screen

	sessionCtx context.Context
	session    Session
	ref        *programRef
	paused     bool
}

// NewModel creates the dashboard for s. The first run starts with Init.
func NewModel(ctx context.Context, s Session) Model {
	logs := NewLogsModel()
	logs.AddExecutionConfig(s.Config, s.Dir, len(s.Sources))
	keymap := DefaultKeyMap()

	m := Model{
		header:     NewHeaderModel(s.Version, s.Dir),
		logs:       logs,
		metrics:    NewMetricsModel(),
		chart:      NewChartModel(),
		footer:     NewFooterModel(keymap),
		keymap:     keymap,
		sessionCtx: ctx,
		session:    s,
		ref:        &programRef{},
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	return m
}

// Init starts the first run.
func (m Model) Init() tea.Cmd {
	return m.startRun()
}

func (m Model) startRun() tea.Cmd {
	return tea.Batch(
		scheduleTick(),
		compareCmd(m.ctx, m.ref, m.session, m.generation),
		awaitCancel(m.ctx, m.generation),
	)
}

// Update routes a message to the panel it concerns.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case ProgressMsg:
		m.recordProgress(msg)
	case ComparisonMsg:
		m.logs.AddComparison(msg.Comparison)
	case FailuresMsg:
		m.logs.AddFailures(msg.Failures)
	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
	case TickMsg:
		return m, m.sample()
	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
	case AnalysisCompleteMsg:
		m.complete(msg)
	case ContextCancelledMsg:
		if msg.Generation != m.generation || m.done {
			return m, nil
		}
		m.finish(Result{Err: msg.Err, ExitCode: apperrors.ExitCodeFor(msg.Err)})
		return m, tea.Quit
	}
	return m, nil
}

// recordProgress counts the file even while paused so that the totals stay
// right; only the scrolling panels freeze.
func (m *Model) recordProgress(msg ProgressMsg) {
	m.metrics.RecordFile(msg)
	if m.paused {
		return
	}
	m.logs.AddProgressEntry(msg)
	m.chart.RecordFile(msg.AverageProgress, msg.ETA)
	m.metrics.UpdateProgress(msg.AverageProgress)
}

// sample schedules the statistics of one tick. Sampling stops with the run.
func (m Model) sample() tea.Cmd {
	switch {
	case m.done:
		return nil
	case m.paused:
		return scheduleTick()
	}
	return tea.Batch(readRuntimeStats, readHostStats, scheduleTick())
}

func (m *Model) complete(msg AnalysisCompleteMsg) {
	if msg.Generation != m.generation {
		// Left over from a run replaced by a rerun.
		return
	}
	m.finish(Result{Comparison: msg.Comparison, Err: msg.Err, ExitCode: msg.ExitCode, Completed: true})
	m.chart.SetDone(m.header.Elapsed())
	m.footer.SetError(msg.Err != nil || msg.ExitCode != apperrors.ExitSuccess)
}

func (m *Model) finish(res Result) {
	m.done = true
	m.result = res
	m.header.SetDone()
	m.footer.SetDone(true)
}

// rerun abandons the current run and starts a new generation.
func (m *Model) rerun() tea.Cmd {
	m.cancel()
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.sessionCtx)
	m.done = false
	m.result = Result{}
	m.paused = false

	m.header.Reset()
	m.logs.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.resize()
	return m.startRun()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.done = true
			m.result = Result{Err: context.Canceled, ExitCode: apperrors.ExitErrorCanceled}
		}
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
	case key.Matches(msg, m.keymap.Help):
		m.footer.ToggleHelp()
		m.resize()
	case key.Matches(msg, m.keymap.Rerun):
		cmd := m.rerun()
		return m, cmd
	case key.Matches(msg, m.keymap.Up, m.keymap.Down, m.keymap.PageUp, m.keymap.PageDown):
		m.logs.Update(msg)
	}
	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if !m.ready() {
		return "Initializing..."
	}
	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.logs.renderToHeight(lipgloss.Height(right)), right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) resize() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.footerHeight = m.footer.Height()

	l := m.layout()
	m.logs.SetSize(l.logs.width, l.logs.height)
	m.metrics.SetSize(l.metrics.width, l.metrics.height)
	m.chart.SetSize(l.chart.width, l.chart.height)
}

// Run shows the dashboard until the user quits or ctx ends, and returns the
// result of the last run.
func Run(ctx context.Context, s Session) Result {
	initTUIStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Bridge goroutines may Send as soon as the first run starts.
	model.ref.SetProgram(p)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.cancel()
		if m.done {
			return m.result
		}
	}
	if err != nil {
		return Result{Err: err, ExitCode: apperrors.ExitCodeFor(err)}
	}
	return Result{Err: context.Canceled, ExitCode: apperrors.ExitErrorCanceled}
}
