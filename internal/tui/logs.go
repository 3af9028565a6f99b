package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/config"
	"github.com/agbru/loganalyzer/internal/format"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

// maxLogEntries bounds the scrollback of the logs panel.
const maxLogEntries = 2000

// LogsModel is the scrollable event log of the dashboard: one line per
// scanned file, followed by the results of the run.
type LogsModel struct {
	entries    []string
	offset     int // lines scrolled up from the bottom
	keymap     KeyMap
	width      int
	height     int
	now        func() time.Time
	configRows []string
}

// NewLogsModel creates an empty log.
func NewLogsModel() LogsModel {
	return LogsModel{keymap: DefaultKeyMap(), now: time.Now}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// AddExecutionConfig records the run parameters at the top of the log.
// They are kept across resets.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig, dir string, files int) {
	l.configRows = []string{
		metricLabelStyle.Render("Folder:   ") + logFileStyle.Render(dir),
		metricLabelStyle.Render("Files:    ") + metricValueStyle.Render(fmt.Sprintf("%d", files)),
		metricLabelStyle.Render("Keywords: ") + logFileStyle.Render(strings.Join(cfg.Keywords, ", ")),
		metricLabelStyle.Render("Workers:  ") + metricValueStyle.Render(fmt.Sprintf("%d", cfg.PoolSize)),
	}
	l.entries = append(l.entries, l.configRows...)
}

// AddProgressEntry logs one scanned file.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	unit := analysis.Unit{Pass: msg.Pass, Worker: msg.Worker}.String()
	line := fmt.Sprintf("%s %s %s %s",
		logTimeStyle.Render(l.now().Format("15:04:05")),
		logUnitStyle.Render(fmt.Sprintf("%-10s", unit)),
		logFileStyle.Render(filepath.Base(msg.File)),
		logTimeStyle.Render(fmt.Sprintf("(%d/%d)", msg.Done, msg.Total)))
	if msg.Err != nil {
		line += " " + logWarnStyle.Render(msg.Err.Error())
	}
	l.add(line)
}

// AddComparison logs the per-keyword counts of both passes and the speedup.
func (l *LogsModel) AddComparison(cmp orchestration.Comparison) {
	l.add("")
	l.add(titleStyle.Render("--- Comparison ---"))
	for _, kw := range cmp.Keywords.Slice() {
		seq, conc := cmp.Sequential.Counts.Get(kw), cmp.Concurrent.Counts.Get(kw)
		style := logSuccessStyle
		if seq != conc {
			style = logErrorStyle
		}
		l.add(fmt.Sprintf("%-12s %s / %s", kw,
			style.Render(format.FormatCount(seq)), style.Render(format.FormatCount(conc))))
	}
	l.add(fmt.Sprintf("Sequential %s, concurrent %s, speedup %s",
		format.FormatExecutionDuration(cmp.Sequential.Duration()),
		format.FormatExecutionDuration(cmp.Concurrent.Duration()),
		metricValueStyle.Render(format.FormatSpeedup(cmp.Speedup()))))
	if cmp.Consistent() {
		l.add(logSuccessStyle.Render("Both passes produced identical counts."))
	} else {
		l.add(logErrorStyle.Render("CRITICAL: the passes disagree."))
	}
}

// AddFailures logs the files missing from the counts.
func (l *LogsModel) AddFailures(failures []analysis.FileFailure) {
	if len(failures) == 0 {
		return
	}
	l.add(logWarnStyle.Render(fmt.Sprintf("%d files skipped:", len(failures))))
	for _, f := range failures {
		l.add("  " + logWarnStyle.Render(f.String()))
	}
}

// AddError logs a run that ended with an error.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("Run failed after %s: %v",
		format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

// Reset clears the log, keeping the run parameters.
func (l *LogsModel) Reset() {
	l.entries = append([]string(nil), l.configRows...)
	l.offset = 0
}

// Update scrolls the log.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := max(l.visibleLines()-1, 1)
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.offset++
	case key.Matches(msg, l.keymap.Down):
		l.offset--
	case key.Matches(msg, l.keymap.PageUp):
		l.offset += page
	case key.Matches(msg, l.keymap.PageDown):
		l.offset -= page
	}
	l.clampOffset()
}

func (l *LogsModel) add(line string) {
	l.entries = append(l.entries, line)
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
	if l.offset > 0 {
		// Keep the viewed lines in place while new entries arrive.
		l.offset++
	}
	l.clampOffset()
}

func (l *LogsModel) visibleLines() int {
	return max(l.height-2, 1)
}

func (l *LogsModel) clampOffset() {
	l.offset = min(max(l.offset, 0), max(len(l.entries)-l.visibleLines(), 0))
}

// visible returns the entries that fit in n lines at the current scroll
// position.
func (l LogsModel) visible(n int) []string {
	end := len(l.entries) - l.offset
	start := max(end-n, 0)
	return append([]string(nil), l.entries[start:end]...)
}

// renderToHeight renders the panel with the given total height.
func (l LogsModel) renderToHeight(h int) string {
	inner := max(h-2, 1)
	lines := l.visible(inner)
	for len(lines) < inner {
		lines = append(lines, "")
	}
	return panelStyle.Width(max(l.width-2, 0)).Height(inner).Render(strings.Join(lines, "\n"))
}
