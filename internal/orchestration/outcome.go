package orchestration

import (
	"math"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/metrics"
)

// Outcome is the result of one pass over the input files.
type Outcome struct {
	// Pass names the strategy that produced the outcome.
	Pass analysis.Pass
	// Counts holds the aggregated counts over the files scanned successfully.
	Counts *analysis.Counts
	// Failures lists the files whose contribution is missing, in input order.
	Failures []analysis.FileFailure
	// Files is the number of files the pass was given.
	Files int
	// Start and End carry monotonic clock readings taken around the pass.
	Start time.Time
	End   time.Time
	// CPU is the process CPU time consumed while the pass ran.
	CPU time.Duration
	// Memory summarizes heap growth and GC activity during the pass.
	Memory metrics.MemoryDelta
}

// Duration returns the wall-clock time of the pass.
func (o Outcome) Duration() time.Duration {
	return o.End.Sub(o.Start)
}

// Scanned returns the number of files that contributed to Counts.
func (o Outcome) Scanned() int {
	return o.Files - len(o.Failures)
}

// Comparison pairs the outcomes of both passes over the same input.
type Comparison struct {
	// RunID identifies the run in logs, reports and traces.
	RunID      string
	PoolSize   int
	Keywords   analysis.Keywords
	Sequential Outcome
	Concurrent Outcome
}

// Speedup returns the sequential duration divided by the concurrent one.
// It is NaN when the concurrent duration is not positive.
func (c Comparison) Speedup() float64 {
	conc := c.Concurrent.Duration()
	if conc <= 0 {
		return math.NaN()
	}
	return float64(c.Sequential.Duration()) / float64(conc)
}

// Consistent reports whether both passes produced identical counts.
func (c Comparison) Consistent() bool {
	return c.Sequential.Counts.Equal(c.Concurrent.Counts)
}

// Failures returns the files that failed in either pass, each listed once.
// Failures of the sequential pass come first, followed by the files that
// failed only in the concurrent pass.
func (c Comparison) Failures() []analysis.FileFailure {
	seen := make(map[string]bool, len(c.Sequential.Failures))
	var out []analysis.FileFailure
	for _, list := range [][]analysis.FileFailure{c.Sequential.Failures, c.Concurrent.Failures} {
		for _, f := range list {
			if seen[f.File] {
				continue
			}
			seen[f.File] = true
			out = append(out, f)
		}
	}
	return out
}
