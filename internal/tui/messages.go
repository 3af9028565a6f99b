package tui

import (
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

// TickMsg drives the periodic sampling of runtime and system statistics.
type TickMsg time.Time

// ProgressMsg reports one scanned file together with the overall progress.
type ProgressMsg struct {
	orchestration.AggregatedProgress
}

// ProgressDoneMsg is sent once the progress channel of a run is closed.
type ProgressDoneMsg struct{}

// ComparisonMsg carries the comparison of a finished run.
type ComparisonMsg struct {
	Comparison orchestration.Comparison
}

// FailuresMsg lists the files missing from the counts of a finished run.
type FailuresMsg struct {
	Failures []analysis.FileFailure
}

// ErrorMsg reports a run that ended with an error.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a system-wide CPU and memory sample in percent.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// AnalysisCompleteMsg ends a run. Generation identifies the run so that
// messages of a run replaced by a rerun are ignored.
type AnalysisCompleteMsg struct {
	Comparison orchestration.Comparison
	Err        error
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg reports that the context of a run was canceled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
