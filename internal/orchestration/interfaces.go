package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
)

// ProgressUpdate reports that one file has been scanned by one pass.
type ProgressUpdate struct {
	Pass   analysis.Pass
	Worker int
	File   string
	// Done is the number of files the pass has scanned so far, this one
	// included. Total is the number of files the pass was given.
	Done  int
	Total int
	Err   error
}

// ProgressReporter defines the interface for displaying analysis progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinners,
// dashboards) while the orchestration layer coordinates the passes.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving one update per scanned file and pass.
	//   - numFiles: The number of files each pass scans.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numFiles int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numFiles int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numFiles int, out io.Writer) {
	f(wg, progressChan, numFiles, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting a comparison.
// This interface decouples the orchestration layer from presentation
// concerns, allowing different output formats without modifying the
// orchestration logic.
type ResultPresenter interface {
	// PresentComparison displays the per-keyword counts of both passes,
	// their timings and the speedup.
	PresentComparison(cmp Comparison, out io.Writer)

	// PresentFailures lists the files whose contribution is missing.
	PresentFailures(failures []analysis.FileFailure, out io.Writer)
}

// MetricsRecorder receives measurements while a comparison runs. It sees
// every scan event and a summary of each pass.
type MetricsRecorder interface {
	analysis.ScanObserver
	// PassCompleted is called once per pass, after its outcome is known.
	PassCompleted(pass analysis.Pass, elapsed time.Duration, files, failures int)
	// ComparisonCompleted is called when both passes finished.
	ComparisonCompleted(counts *analysis.Counts, speedup float64, consistent bool)
}
