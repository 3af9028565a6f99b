// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Save* functions write data to files on the filesystem.
//     Examples: [SaveReport].

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/loganalyzer/internal/format"
	"github.com/agbru/loganalyzer/internal/orchestration"
	"github.com/agbru/loganalyzer/internal/report"
	"github.com/agbru/loganalyzer/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Format is the report format, text or json.
	Format string
	// Quiet mode suppresses everything but the one-line result.
	Quiet bool
}

// FormatQuietResult formats a comparison for quiet mode output: the
// concurrent counts as KEY=N pairs followed by the speedup and the
// consistency flag, on one line suitable for scripting.
func FormatQuietResult(cmp orchestration.Comparison) string {
	var parts []string
	for _, kw := range cmp.Keywords.Slice() {
		parts = append(parts, fmt.Sprintf("%s=%d", kw, countOf(cmp.Concurrent.Counts, kw)))
	}
	parts = append(parts,
		"speedup="+format.FormatSpeedup(cmp.Speedup()),
		fmt.Sprintf("consistent=%t", cmp.Consistent()))
	return strings.Join(parts, " ")
}

// DisplayQuietResult outputs a comparison in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, cmp orchestration.Comparison) {
	fmt.Fprintln(out, FormatQuietResult(cmp))
}

// SaveReport writes the comparison report to config.OutputFile. It does
// nothing when no file is configured.
func SaveReport(out io.Writer, cmp orchestration.Comparison, generatedAt time.Time, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}
	if err := report.WriteFile(config.OutputFile, report.Build(cmp, generatedAt), config.Format); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
