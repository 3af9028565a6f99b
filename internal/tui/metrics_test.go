package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()
	msg := MemStatsMsg{Alloc: 12 << 20, HeapInuse: 16 << 20, NumGC: 3, PauseTotalNs: 2_500_000, NumGoroutine: 6}
	m.UpdateMemStats(msg)
	m.SetSize(70, 10)

	view := m.View()
	for _, want := range []string{"12.0 MiB / 16.0 MiB", "3 (2.5ms)", "6"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestMetricsModel_UpdateProgress(t *testing.T) {
	tests := []struct {
		name      string
		ago       time.Duration
		last      float64
		progress  float64
		wantSpeed bool
	}{
		{"forward progress", time.Second, 0, 0.5, true},
		{"too soon after the last sample", 0, 0, 0.5, false},
		{"no forward progress", time.Second, 0.5, 0.5, false},
		{"progress went back after a rerun", time.Second, 0.8, 0.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetricsModel()
			m.lastUpdate = time.Now().Add(-tt.ago)
			m.lastProgress = tt.last
			m.UpdateProgress(tt.progress)
			if got := m.speed > 0; got != tt.wantSpeed {
				t.Errorf("speed = %v, want positive: %v", m.speed, tt.wantSpeed)
			}
		})
	}
}

func TestMetricsModel_SpeedSmoothing(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-time.Second)
	m.UpdateProgress(0.25)
	first := m.speed

	// A burst twice as fast moves the average up, but not all the way.
	m.lastUpdate = time.Now().Add(-time.Second)
	m.UpdateProgress(0.75)
	if m.speed <= first || m.speed >= 0.5 {
		t.Errorf("smoothed speed %v should lie between %v and 0.5", m.speed, first)
	}
	if m.lastProgress != 0.75 {
		t.Errorf("lastProgress = %v, want 0.75", m.lastProgress)
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(60, 15)

	m.UpdateMemStats(MemStatsMsg{
		Alloc:        1024 * 1024 * 50,
		HeapInuse:    1024 * 1024 * 80,
		NumGC:        10,
		NumGoroutine: 8,
	})

	view := m.View()
	for _, label := range []string{"Heap", "GC", "Sequential", "Concurrent", "Speed", "Workers", "Goroutines"} {
		if !strings.Contains(view, label) {
			t.Errorf("expected view to contain %q", label)
		}
	}
	if strings.Contains(view, "Scan errors") {
		t.Error("scan errors row should be hidden when no file failed")
	}
}

func TestMetricsModel_RecordFile(t *testing.T) {
	m := NewMetricsModel()

	send := func(pass analysis.Pass, worker, done int, err error) {
		m.RecordFile(ProgressMsg{AggregatedProgress: orchestration.AggregatedProgress{
			ProgressUpdate: orchestration.ProgressUpdate{
				Pass: pass, Worker: worker, Done: done, Total: 3, Err: err,
			},
		}})
	}
	send(analysis.PassSequential, 0, 1, nil)
	send(analysis.PassSequential, 0, 2, nil)
	send(analysis.PassSequential, 0, 3, errors.New("unreadable"))
	send(analysis.PassConcurrent, 0, 1, nil)
	send(analysis.PassConcurrent, 1, 2, nil)
	send(analysis.PassConcurrent, 1, 3, errors.New("unreadable"))

	if m.total != 3 || m.sequential != 3 || m.concurrent != 3 {
		t.Errorf("unexpected counters total=%d seq=%d conc=%d", m.total, m.sequential, m.concurrent)
	}
	if m.errors != 2 {
		t.Errorf("expected 2 scan errors, got %d", m.errors)
	}
	if len(m.workers) != 2 || m.workers[1] != 2 {
		t.Errorf("unexpected worker usage %v", m.workers)
	}

	m.SetSize(60, 15)
	view := m.View()
	if !strings.Contains(view, "Scan errors") || !strings.Contains(view, "2 used") {
		t.Errorf("view should report errors and workers, got:\n%s", view)
	}
}

func TestFormatMetricCol(t *testing.T) {
	col := formatMetricCol("Workers:", "4 used", 30)
	if !strings.Contains(col, "Workers:") || !strings.Contains(col, "4 used") {
		t.Errorf("unexpected column %q", col)
	}
	if w := lipgloss.Width(col); w != 30 {
		t.Errorf("column width = %d, want 30", w)
	}
	if w := lipgloss.Width(formatMetricCol("Workers:", "4 used", 5)); w <= 5 {
		t.Errorf("a narrow column should not truncate, width %d", w)
	}
}
