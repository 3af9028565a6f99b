package orchestration

import (
	"sync/atomic"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/format"
)

// progressObserver turns scan events into progress updates. The channel it
// writes to is sized for one update per file and pass, so sends never block.
type progressObserver struct {
	ch         chan<- ProgressUpdate
	total      int
	sequential atomic.Int64
	concurrent atomic.Int64
}

func newProgressObserver(ch chan<- ProgressUpdate, total int) *progressObserver {
	return &progressObserver{ch: ch, total: total}
}

func (p *progressObserver) FileScanned(event analysis.ScanEvent) {
	counter := &p.sequential
	if event.Unit.Pass == analysis.PassConcurrent {
		counter = &p.concurrent
	}
	done := counter.Add(1)
	update := ProgressUpdate{
		Pass:   event.Unit.Pass,
		Worker: event.Unit.Worker,
		File:   event.File,
		Done:   int(done),
		Total:  p.total,
		Err:    event.Err,
	}
	select {
	case p.ch <- update:
	default:
	}
}

// passOrder fixes the slot of each pass in the aggregated progress.
var passOrder = []analysis.Pass{analysis.PassSequential, analysis.PassConcurrent}

// PassIndex returns the slot of pass in the aggregated progress, or -1.
func PassIndex(pass analysis.Pass) int {
	for i, p := range passOrder {
		if p == pass {
			return i
		}
	}
	return -1
}

// AggregatedProgress is a ProgressUpdate enriched with the completion of its
// pass and of the whole comparison, where each pass weighs one half.
type AggregatedProgress struct {
	ProgressUpdate
	// Value is the completed fraction of the update's pass.
	Value float64
	// AverageProgress is the completed fraction of both passes.
	AverageProgress float64
	ETA             time.Duration
}

// ProgressAggregator folds per-file updates into the overall progress shown
// by the displays. It is used from the single display goroutine.
type ProgressAggregator struct {
	state *format.ProgressWithETA
}

// NewProgressAggregator returns nil when there are no files to track.
func NewProgressAggregator(numFiles int) *ProgressAggregator {
	if numFiles <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(len(passOrder))}
}

// Update records u and returns the resulting progress. Updates of an unknown
// pass or without a total leave the progress unchanged.
func (a *ProgressAggregator) Update(u ProgressUpdate) AggregatedProgress {
	ap := AggregatedProgress{ProgressUpdate: u}
	idx := PassIndex(u.Pass)
	if idx < 0 || u.Total <= 0 {
		ap.AverageProgress, ap.ETA = a.state.CalculateAverage(), a.state.GetETA()
		return ap
	}
	ap.Value = float64(u.Done) / float64(u.Total)
	ap.AverageProgress, ap.ETA = a.state.UpdateWithETA(idx, ap.Value)
	return ap
}

// Average returns the completed fraction of both passes.
func (a *ProgressAggregator) Average() float64 { return a.state.CalculateAverage() }

// ETA returns the current estimate of the remaining time, 0 when unknown.
func (a *ProgressAggregator) ETA() time.Duration { return a.state.GetETA() }

// Elapsed returns the time since the aggregator was created.
func (a *ProgressAggregator) Elapsed() time.Duration { return a.state.Elapsed() }
