package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/format"
	"github.com/agbru/loganalyzer/internal/orchestration"
	"github.com/agbru/loganalyzer/internal/ui"
)

// progressBarWidth is the number of cells of the progress bar.
const progressBarWidth = 40

// DisplayProgress renders a spinner with a progress bar covering both passes
// until progressChan is closed. Each pass counts for half of the bar. With no
// files to scan it only drains the channel.
//
// Parameters:
//   - wg: Marked done when the display returns.
//   - progressChan: Per-file updates from the coordinator.
//   - numFiles: The number of files each pass scans.
//   - out: The writer the spinner renders to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numFiles int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numFiles)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	current := analysis.PassSequential
	var failed int

	render := func() {
		bar := format.FormatProgressBarWithETA(agg.Average(), agg.ETA(), progressBarWidth)
		s.UpdateSuffix(fmt.Sprintf(" %s %s%s%s", bar, ui.ColorCyan(), current, ui.ColorReset()))
	}

	render()
	s.Start()

	ticker := time.NewTicker(progressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s %d files scanned by each pass in %s",
					format.ProgressBar(agg.Average(), progressBarWidth),
					numFiles, format.FormatExecutionDuration(agg.Elapsed()))
				if failed > 0 {
					fmt.Fprintf(out, ", %s%d scan errors%s", ui.ColorYellow(), failed, ui.ColorReset())
				}
				fmt.Fprintln(out)
				return
			}
			if update.Err != nil {
				failed++
			}
			current = agg.Update(update).Pass
		case <-ticker.C:
			render()
		}
	}
}
