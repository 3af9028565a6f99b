package orchestration

import (
	"context"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/metrics"
	"github.com/agbru/loganalyzer/internal/parallel"
)

// RunConcurrent scans the sources on the workers of pool. Every file becomes
// one task; each task hands its partial counts to a single Aggregator
// goroutine, so the global Counts has exactly one writer.
//
// A failing file never aborts its siblings. When ctx is done, files not yet
// started are recorded as failures carrying the context error, which is
// returned alongside the outcome.
func RunConcurrent(ctx context.Context, sources []analysis.Source, keywords analysis.Keywords, scanner *analysis.Scanner, pool *parallel.Pool) (Outcome, error) {
	out := Outcome{Pass: analysis.PassConcurrent, Files: len(sources)}

	mem := metrics.NewMemoryCollector()
	memStart := mem.Snapshot()
	cpuStart := metrics.ProcessCPUTime()
	out.Start = time.Now()

	agg := analysis.NewAggregator(keywords, pool.Size())
	tasks := make([]parallel.Task, len(sources))
	for i, src := range sources {
		tasks[i] = &scanTask{index: i, src: src, keywords: keywords, scanner: scanner, agg: agg}
	}
	runErr := pool.Run(ctx, tasks)
	res := agg.Close()

	out.End = time.Now()
	out.CPU = metrics.ProcessCPUTime() - cpuStart
	out.Memory = mem.Snapshot().Delta(memStart)
	out.Counts = res.Counts
	out.Failures = res.Failures
	return out, runErr
}

// scanTask scans one file on a pool worker.
type scanTask struct {
	index    int
	src      analysis.Source
	keywords analysis.Keywords
	scanner  *analysis.Scanner
	agg      *analysis.Aggregator
}

func (t *scanTask) Run(worker int) {
	unit := analysis.Unit{Pass: analysis.PassConcurrent, Worker: worker}
	counts, err := t.scanner.Scan(t.src, t.keywords, unit)
	t.agg.Submit(analysis.Partial{Index: t.index, File: t.src.Name(), Counts: counts, Err: err})
}

func (t *scanTask) Abandon(_ int, err error) {
	t.agg.Submit(analysis.Partial{Index: t.index, File: t.src.Name(), Err: err})
}
