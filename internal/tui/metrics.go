package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/format"
)

// MetricsModel displays runtime memory statistics and the scan counters of
// the current run.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	speed        float64 // overall progress per second, smoothed
	lastProgress float64
	lastUpdate   time.Time

	total      int
	sequential int
	concurrent int
	errors     int
	workers    map[int]int // files scanned per worker in the concurrent pass

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		lastUpdate: time.Now(),
		workers:    make(map[int]int),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateProgress updates the speed metric.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt > 0.05 {
		if dp := progress - m.lastProgress; dp > 0 {
			instantSpeed := dp / dt
			if m.speed > 0 {
				m.speed = 0.7*m.speed + 0.3*instantSpeed
			} else {
				m.speed = instantSpeed
			}
		}
		m.lastProgress = progress
		m.lastUpdate = now
	}
}

// RecordFile counts one scanned file.
func (m *MetricsModel) RecordFile(msg ProgressMsg) {
	m.total = msg.Total
	switch msg.Pass {
	case analysis.PassSequential:
		m.sequential = msg.Done
	case analysis.PassConcurrent:
		m.concurrent = msg.Done
		m.workers[msg.Worker]++
	}
	if msg.Err != nil {
		m.errors++
	}
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	heapStr := metricValueStyle.Render(format.FormatBytes(m.alloc) + " / " + format.FormatBytes(m.heapInuse))
	gcStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	rows.WriteString(fmt.Sprintf("  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), heapStr,
		metricLabelStyle.Render(" | "),
		metricLabelStyle.Render("GC:"), gcStr))

	colWidth := (m.width - 6) / 2
	speed := "-"
	if m.speed > 0 {
		speed = fmt.Sprintf("%.1f%%/s", m.speed*100)
	}
	leftCol := []string{
		formatMetricCol("Sequential:", fmt.Sprintf("%d/%d", m.sequential, m.total), colWidth),
		formatMetricCol("Speed:", speed, colWidth),
	}
	rightCol := []string{
		formatMetricCol("Concurrent:", fmt.Sprintf("%d/%d", m.concurrent, m.total), colWidth),
		formatMetricCol("Workers:", fmt.Sprintf("%d used", len(m.workers)), colWidth),
	}
	if m.errors > 0 {
		leftCol = append(leftCol, formatMetricCol("Scan errors:", fmt.Sprintf("%d", m.errors), colWidth))
		rightCol = append(rightCol, formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth))
	} else {
		leftCol = append(leftCol, formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth))
		rightCol = append(rightCol, "")
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
