package orchestration

import (
	"math"
	"testing"

	"github.com/agbru/loganalyzer/internal/analysis"
)

func TestPassIndex(t *testing.T) {
	t.Parallel()
	if PassIndex(analysis.PassSequential) != 0 || PassIndex(analysis.PassConcurrent) != 1 {
		t.Error("sequential must come first, concurrent second")
	}
	if PassIndex("other") != -1 {
		t.Error("unknown pass should map to -1")
	}
}

func TestProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil {
		t.Fatal("expected nil aggregator without files")
	}

	agg := NewProgressAggregator(4)
	steps := []struct {
		update      ProgressUpdate
		wantValue   float64
		wantAverage float64
	}{
		{ProgressUpdate{Pass: analysis.PassSequential, Done: 2, Total: 4}, 0.5, 0.25},
		{ProgressUpdate{Pass: analysis.PassSequential, Done: 4, Total: 4}, 1, 0.5},
		{ProgressUpdate{Pass: analysis.PassConcurrent, Worker: 3, Done: 1, Total: 4}, 0.25, 0.625},
		{ProgressUpdate{Pass: "bogus", Done: 4, Total: 4}, 0, 0.625},
		{ProgressUpdate{Pass: analysis.PassConcurrent, Done: 4, Total: 4}, 1, 1},
	}
	for i, s := range steps {
		ap := agg.Update(s.update)
		if math.Abs(ap.Value-s.wantValue) > 1e-9 || math.Abs(ap.AverageProgress-s.wantAverage) > 1e-9 {
			t.Errorf("step %d: got value %.3f average %.3f, want %.3f and %.3f",
				i, ap.Value, ap.AverageProgress, s.wantValue, s.wantAverage)
		}
		if ap.Pass != s.update.Pass {
			t.Errorf("step %d: update not carried through", i)
		}
	}
	if agg.Average() != 1 || agg.ETA() != 0 {
		t.Errorf("finished aggregator: average %.3f eta %s", agg.Average(), agg.ETA())
	}
}
