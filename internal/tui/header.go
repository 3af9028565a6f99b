package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/loganalyzer/internal/format"
)

// HeaderModel is the top bar: title, version, analyzed folder and the
// elapsed time of the current run.
type HeaderModel struct {
	started time.Time
	stopped time.Time // zero while the run is going
	version string
	target  string
	width   int
}

// NewHeaderModel starts the clock of the first run.
func NewHeaderModel(version, target string) HeaderModel {
	return HeaderModel{started: time.Now(), version: version, target: target}
}

// SetDone stops the clock.
func (h *HeaderModel) SetDone() { h.stopped = time.Now() }

// Reset restarts the clock for a rerun.
func (h *HeaderModel) Reset() {
	h.started = time.Now()
	h.stopped = time.Time{}
}

func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed is the run time so far, or the final run time once stopped.
func (h HeaderModel) Elapsed() time.Duration {
	if h.stopped.IsZero() {
		return time.Since(h.started)
	}
	return h.stopped.Sub(h.started)
}

func (h HeaderModel) View() string {
	title := "Log Analyzer"
	// Development builds carry no meaningful version.
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	sep := versionStyle.Render(" | ")
	row := titleStyle.Render(title) + sep +
		versionStyle.Render(h.target) + sep +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))

	if pad := h.width - 2 - lipgloss.Width(row); pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return headerStyle.Width(h.width).Render(row)
}
