package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/loganalyzer/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	logTimeStyle       lipgloss.Style
	logUnitStyle       lipgloss.Style
	logFileStyle       lipgloss.Style
	logSuccessStyle    lipgloss.Style
	logWarnStyle       lipgloss.Style
	logErrorStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartBarStyle      lipgloss.Style
	chartEmptyStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = fg(t.Accent).Bold(true)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	logTimeStyle = fg(t.Dim)
	logUnitStyle = fg(t.Info)
	logFileStyle = fg(t.Text)
	logSuccessStyle = fg(t.Success)
	logWarnStyle = fg(t.Warning)
	logErrorStyle = fg(t.Error)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = fg(t.Accent).Bold(true)

	chartBarStyle = fg(t.Accent)
	chartEmptyStyle = fg(t.Dim)

	statusRunningStyle = fg(t.Success).Bold(true)
	statusPausedStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = fg(t.Accent).Bold(true)
	statusErrorStyle = fg(t.Error).Bold(true)

	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)
}
