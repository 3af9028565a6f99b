package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/metrics"
)

// RunSequential scans the sources one after the other on the calling
// goroutine and folds every result into a single Counts.
//
// Cancellation is checked between files: the file being scanned always
// finishes, the remaining ones are recorded as failures carrying the context
// error, and that error is returned alongside the outcome.
func RunSequential(ctx context.Context, sources []analysis.Source, keywords analysis.Keywords, scanner *analysis.Scanner) (Outcome, error) {
	out := Outcome{
		Pass:   analysis.PassSequential,
		Counts: analysis.NewCounts(keywords),
		Files:  len(sources),
	}
	unit := analysis.Unit{Pass: analysis.PassSequential}

	mem := metrics.NewMemoryCollector()
	memStart := mem.Snapshot()
	cpuStart := metrics.ProcessCPUTime()
	out.Start = time.Now()

	var ctxErr error
	for _, src := range sources {
		if ctxErr == nil {
			ctxErr = ctx.Err()
		}
		if ctxErr != nil {
			out.Failures = append(out.Failures, analysis.FileFailure{File: src.Name(), Err: ctxErr})
			continue
		}
		counts, err := scanOne(scanner, src, keywords, unit)
		if err == nil {
			err = out.Counts.Merge(counts)
		}
		if err != nil {
			out.Failures = append(out.Failures, analysis.FileFailure{File: src.Name(), Err: err})
		}
	}

	out.End = time.Now()
	out.CPU = metrics.ProcessCPUTime() - cpuStart
	out.Memory = mem.Snapshot().Delta(memStart)
	return out, ctxErr
}

// scanOne turns a panic raised while scanning src into a failure of that
// file, as the worker pool does for the concurrent pass.
func scanOne(scanner *analysis.Scanner, src analysis.Source, keywords analysis.Keywords, unit analysis.Unit) (counts *analysis.Counts, err error) {
	defer func() {
		if r := recover(); r != nil {
			counts, err = nil, fmt.Errorf("task panicked: %v", r)
		}
	}()
	return scanner.Scan(src, keywords, unit)
}
