package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/loganalyzer/internal/analysis"
	apperrors "github.com/agbru/loganalyzer/internal/errors"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

// programRef lets code running outside the event loop post messages. The
// model is copied on every Update, so it holds a pointer to this shared
// slot rather than the program itself.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = p
}

// Send posts msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter turns per-file updates into ProgressMsg for the
// dashboard.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress forwards every update with the aggregated progress of
// both passes, then reports the end of the stream.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numFiles int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numFiles)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		t.ref.Send(ProgressMsg{AggregatedProgress: agg.Update(update)})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter routes the final report of a run to the activity log.
type TUIResultPresenter struct {
	ref *programRef
}

var _ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentComparison sends the comparison to the TUI.
func (t *TUIResultPresenter) PresentComparison(cmp orchestration.Comparison, _ io.Writer) {
	t.ref.Send(ComparisonMsg{Comparison: cmp})
}

// PresentFailures sends the skipped files to the TUI.
func (t *TUIResultPresenter) PresentFailures(failures []analysis.FileFailure, _ io.Writer) {
	t.ref.Send(FailuresMsg{Failures: failures})
}

// HandleError shows err in the log and maps it to an exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.ExitCodeFor(err)
}
