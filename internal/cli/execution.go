package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/loganalyzer/internal/config"
	"github.com/agbru/loganalyzer/internal/ui"
)

// PrintExecutionConfig displays the resolved configuration before the passes
// start: the analyzed folder, the keyword set, the pool size, the timeout
// and the environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - dir: The folder actually analyzed (the demo folder when generated).
//   - numFiles: The number of files discovered.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, dir string, numFiles int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Analyzing %s%d%s files in %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), numFiles, ui.ColorReset(), ui.ColorCyan(), dir, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Keywords: %s%s%s.\n", ui.ColorBold(), strings.Join(cfg.Keywords, ", "), ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, pool of %s%d%s workers.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorGreen(), cfg.PoolSize, ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// PrintDemoNotice tells the user that demo logs were generated because the
// requested folder was empty or missing.
func PrintDemoNotice(requested, demoDir string, files int, out io.Writer) {
	if requested == "" {
		fmt.Fprintf(out, "No folder given, generated %d demo log files in %s%s%s.\n",
			files, ui.ColorCyan(), demoDir, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%sFolder %s does not exist%s, generated %d demo log files in %s%s%s.\n",
		ui.ColorYellow(), requested, ui.ColorReset(), files, ui.ColorCyan(), demoDir, ui.ColorReset())
}
