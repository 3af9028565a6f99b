package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/loganalyzer/internal/format"
)

const (
	// sparklineLabelWidth is the room taken by " CPU 100.0% " in front of
	// a sparkline plus the panel borders.
	sparklineLabelWidth = 17
	// minSparklineHeight is the panel height below which the sparklines
	// are hidden.
	minSparklineHeight = 10
)

// ChartModel shows the overall progress bar and the CPU, memory and
// throughput history.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	elapsed         time.Duration
	done            bool

	cpuHistory  *RingBuffer
	memHistory  *RingBuffer
	fileHistory *RingBuffer // files scanned per tick
	pending     int

	width  int
	height int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory:  NewRingBuffer(60),
		memHistory:  NewRingBuffer(60),
		fileHistory: NewRingBuffer(60),
	}
}

// SetSize updates dimensions and resizes the histories to the sparkline
// width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if n := w - sparklineLabelWidth; n > 0 {
		c.cpuHistory.Resize(n)
		c.memHistory.Resize(n)
		c.fileHistory.Resize(n)
	}
}

// RecordFile counts a scanned file in the current throughput bucket and
// stores the resulting overall progress.
func (c *ChartModel) RecordFile(average float64, eta time.Duration) {
	c.averageProgress = average
	c.eta = eta
	c.pending++
}

// UpdateSysStats appends a system sample and closes the current
// throughput bucket.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
	c.fileHistory.Push(float64(c.pending))
	c.pending = 0
}

// SetDone freezes the chart with the final elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.eta = 0
}

// Reset clears progress and history.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.elapsed = 0
	c.done = false
	c.pending = 0
	c.cpuHistory.Reset()
	c.memHistory.Reset()
	c.fileHistory.Reset()
}

// renderProgressBar renders the overall progress bar, or "" when the panel
// is too narrow.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 14
	if barWidth < 5 {
		return ""
	}
	bar := format.ProgressBar(c.averageProgress, barWidth)
	filled := strings.IndexRune(bar, '░')
	if filled < 0 {
		filled = len(bar)
	}
	return fmt.Sprintf(" %s%s %5.1f%%",
		chartBarStyle.Render(bar[:filled]), chartEmptyStyle.Render(bar[filled:]),
		c.averageProgress*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Progress"))
	if c.done {
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf("  done in %s", format.FormatExecutionDuration(c.elapsed))))
	} else {
		b.WriteString(metricLabelStyle.Render("  ETA: " + format.FormatETA(c.eta)))
	}
	if bar := c.renderProgressBar(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	if c.height >= minSparklineHeight {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf(" CPU %5.1f%% %s\n", c.cpuHistory.Last(),
			cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice()))))
		b.WriteString(fmt.Sprintf(" MEM %5.1f%% %s\n", c.memHistory.Last(),
			memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice()))))
		b.WriteString(fmt.Sprintf(" I/O %4.0f/t %s", c.fileHistory.Last(),
			chartBarStyle.Render(RenderScaledSparkline(c.fileHistory.Slice(), c.fileHistory.Max()))))
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
