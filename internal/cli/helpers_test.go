package cli

import (
	"errors"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

// sampleComparison builds a comparison over ERROR and WARN where the
// sequential pass took 40ms and the concurrent one 20ms. extraWarn is added
// to the concurrent WARN count to simulate a mismatch.
func sampleComparison(extraWarn int64) orchestration.Comparison {
	kw := analysis.MustKeywords("ERROR", "WARN")
	seq := analysis.NewCounts(kw)
	_ = seq.Add("ERROR", 3)
	_ = seq.Add("WARN", 2)
	conc := seq.Clone()
	_ = conc.Add("WARN", extraWarn)

	start := time.Unix(1700000000, 0)
	return orchestration.Comparison{
		RunID:    "run-1",
		PoolSize: 4,
		Keywords: kw,
		Sequential: orchestration.Outcome{
			Pass: analysis.PassSequential, Counts: seq, Files: 2,
			Start: start, End: start.Add(40 * time.Millisecond), CPU: 35 * time.Millisecond,
		},
		Concurrent: orchestration.Outcome{
			Pass: analysis.PassConcurrent, Counts: conc, Files: 2,
			Start: start, End: start.Add(20 * time.Millisecond), CPU: 50 * time.Millisecond,
		},
	}
}

func sampleFailures() []analysis.FileFailure {
	return []analysis.FileFailure{{File: "logs/locked.log", Err: errors.New("permission denied")}}
}
