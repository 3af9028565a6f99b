package app

import (
	"context"
	"errors"
	"io"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/cli"
	"github.com/agbru/loganalyzer/internal/demo"
	"github.com/agbru/loganalyzer/internal/discovery"
	apperrors "github.com/agbru/loganalyzer/internal/errors"
	"github.com/agbru/loganalyzer/internal/logging"
	"github.com/agbru/loganalyzer/internal/metrics"
	"github.com/agbru/loganalyzer/internal/orchestration"
)

// input is the resolved set of files of one run.
type input struct {
	// dir is the folder actually analyzed.
	dir   string
	paths []string
}

// resolveInput picks the folder to analyze and discovers its files. When no
// folder is configured, or the configured one does not exist, demo logs are
// generated and analyzed instead.
func (a *Application) resolveInput(out io.Writer) (input, error) {
	in := input{dir: a.Config.Dir}
	if !discovery.IsDir(in.dir) {
		generated, err := demo.Generate(demo.Options{
			Dir:   a.Config.DemoDir,
			Files: a.Config.DemoFiles,
			Lines: a.Config.DemoLines,
		})
		if err != nil {
			return input{}, apperrors.WrapError(err, "cannot generate demo logs")
		}
		a.Logger.Info("generated demo logs",
			logging.String("dir", a.Config.DemoDir),
			logging.Int("files", len(generated)))
		if !a.Config.Quiet && !a.Config.TUI {
			cli.PrintDemoNotice(a.Config.Dir, a.Config.DemoDir, len(generated), out)
		}
		in.dir = a.Config.DemoDir
	}

	paths, err := discovery.Find(in.dir, a.Config.Extensions)
	if err != nil {
		return input{}, err
	}
	if len(paths) == 0 {
		a.Logger.Warn("no matching files found", logging.String("dir", in.dir))
	}
	in.paths = paths
	return in, nil
}

// runAnalyze orchestrates the comparison in plain terminal mode.
func (a *Application) runAnalyze(ctx context.Context, out io.Writer, in input, keywords analysis.Keywords, recorder *metrics.Recorder) int {
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, in.dir, len(in.paths), out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	opts := append(a.coordinatorOptions(recorder), orchestration.WithProgressReporter(progressReporter, progressOut))
	cmp, err := orchestration.NewCoordinator(opts...).Compare(ctx, analysis.FileSources(in.paths), keywords)
	if err != nil {
		return apperrors.HandleRunError(a.runError(err), out)
	}

	var exitCode int
	if a.Config.Quiet {
		cli.DisplayQuietResult(out, cmp)
		if !cmp.Consistent() {
			exitCode = apperrors.ExitErrorMismatch
		}
	} else {
		exitCode = orchestration.AnalyzeComparison(cmp, cli.CLIResultPresenter{}, out)
		if a.Config.Verbose {
			cli.DisplayMemoryStats(cmp, out)
		}
	}

	return a.finish(out, cmp, exitCode, recorder)
}

// runError reports an expired deadline as a TimeoutError carrying the
// configured limit.
func (a *Application) runError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "log analysis", Limit: a.Config.Timeout}
	}
	return err
}
