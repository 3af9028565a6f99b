package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/format"
	"github.com/agbru/loganalyzer/internal/orchestration"
	"github.com/agbru/loganalyzer/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display while the passes run.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the running passes.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numFiles int, out io.Writer) {
	DisplayProgress(wg, progressChan, numFiles, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output of a comparison in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparison displays the per-keyword counts of both passes side by
// side, followed by their timings and the speedup. Uses manual padding to
// correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparison(cmp orchestration.Comparison, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	seq, conc := cmp.Sequential.Counts, cmp.Concurrent.Counts
	rows := [][]string{}
	matches := []bool{}
	for _, kw := range cmp.Keywords.Slice() {
		s, c := countOf(seq, kw), countOf(conc, kw)
		rows = append(rows, []string{kw, format.FormatCount(s), format.FormatCount(c)})
		matches = append(matches, s == c)
	}

	headers := []string{"Keyword", "Sequential", "Concurrent"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-len(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	for r, row := range rows {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorBlue(), row[0], ui.ColorReset(), padRight("", widths[0]-len(row[0])))
		for i := 1; i < len(row); i++ {
			fmt.Fprintf(out, "%s%s   ", padRight("", widths[i]-len(row[i])), row[i])
		}
		if matches[r] {
			fmt.Fprintf(out, "%s✅ Match%s\n", ui.ColorGreen(), ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s❌ Mismatch%s\n", ui.ColorRed(), ui.ColorReset())
		}
	}

	fmt.Fprintln(out)
	displayPassTiming(out, "Sequential", cmp.Sequential)
	displayPassTiming(out, "Concurrent", cmp.Concurrent)
	fmt.Fprintf(out, "Speedup (seq / concurrent): %s%s%s with %d workers\n",
		ui.ColorYellow(), format.FormatSpeedup(cmp.Speedup()), ui.ColorReset(), cmp.PoolSize)
}

// PresentFailures lists the files whose contribution is missing from the
// counts. It prints nothing when failures is empty.
func (CLIResultPresenter) PresentFailures(failures []analysis.FileFailure, out io.Writer) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s--- Skipped files (%d) ---%s\n", ui.ColorYellow(), len(failures), ui.ColorReset())
	for _, f := range failures {
		fmt.Fprintf(out, "  %s%s%s: %v\n", ui.ColorRed(), f.File, ui.ColorReset(), f.Err)
	}
}

func displayPassTiming(out io.Writer, name string, o orchestration.Outcome) {
	fmt.Fprintf(out, "%-10s time: %s%s%s (CPU %s, %d/%d files)\n",
		name, ui.ColorYellow(), format.FormatExecutionDuration(o.Duration()), ui.ColorReset(),
		format.FormatExecutionDuration(o.CPU), o.Scanned(), o.Files)
}

func countOf(c *analysis.Counts, kw string) int64 {
	if c == nil {
		return 0
	}
	return c.Get(kw)
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// DisplayMemoryStats shows heap and GC activity of both passes.
func DisplayMemoryStats(cmp orchestration.Comparison, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	for _, p := range []struct {
		name string
		o    orchestration.Outcome
	}{{"Sequential", cmp.Sequential}, {"Concurrent", cmp.Concurrent}} {
		m := p.o.Memory
		fmt.Fprintf(out, "  %-10s heap growth %s, heap in use %s, %d GC cycles",
			p.name, format.FormatBytes(m.HeapGrowth), format.FormatBytes(m.HeapEnd), m.GCCycles)
		if m.GCPause > 0 {
			fmt.Fprintf(out, ", GC pause %s", format.FormatExecutionDuration(m.GCPause))
		}
		fmt.Fprintln(out)
	}
}
