package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/cli"
	"github.com/agbru/loganalyzer/internal/config"
	apperrors "github.com/agbru/loganalyzer/internal/errors"
	"github.com/agbru/loganalyzer/internal/logging"
	"github.com/agbru/loganalyzer/internal/metrics"
	"github.com/agbru/loganalyzer/internal/orchestration"
	"github.com/agbru/loganalyzer/internal/tui"
	"github.com/agbru/loganalyzer/internal/ui"
)

// Application represents the loganalyzer application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger

	now func() time.Time
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the logger derived from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithClock sets the clock used to timestamp reports.
func WithClock(now func() time.Time) AppOption {
	return func(a *Application) { a.now = now }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "loganalyzer"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter, now: time.Now}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, errWriter)
	}
	return app, nil
}

// newLogger builds the console logger on errWriter. The dashboard owns the
// terminal, so TUI mode logs nothing.
func newLogger(cfg config.AppConfig, errWriter io.Writer) logging.Logger {
	if cfg.TUI {
		return logging.NopLogger{}
	}
	level := zerolog.WarnLevel
	switch {
	case cfg.Verbose:
		level = zerolog.DebugLevel
	case cfg.Quiet:
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	cw := zerolog.ConsoleWriter{Out: errWriter, NoColor: cfg.NoColor, TimeFormat: time.TimeOnly}
	return logging.NewZerologAdapter(zerolog.New(cw).Level(level).With().Timestamp().Logger())
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	in, err := a.resolveInput(out)
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter)
	}
	keywords, err := analysis.NewKeywords(a.Config.Keywords...)
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var recorder *metrics.Recorder
	if a.Config.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}

	if a.Config.TUI {
		return a.runTUI(ctx, out, in, keywords, recorder)
	}
	return a.runAnalyze(ctx, out, in, keywords, recorder)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// coordinatorOptions translates the configuration into coordinator options.
// The progress reporter is left to the caller.
func (a *Application) coordinatorOptions(recorder *metrics.Recorder) []orchestration.Option {
	opts := []orchestration.Option{
		orchestration.WithPoolSize(a.Config.PoolSize),
		orchestration.WithScannerOptions(analysis.WithMaxLineSize(a.Config.MaxLineSize)),
		orchestration.WithLogger(a.Logger),
		orchestration.WithMonitor(a.Config.MonitorInterval),
	}
	if recorder != nil {
		opts = append(opts, orchestration.WithMetrics(recorder))
	}
	return opts
}

// runTUI launches the interactive dashboard and returns the exit code of
// the last run it showed.
func (a *Application) runTUI(ctx context.Context, out io.Writer, in input, keywords analysis.Keywords, recorder *metrics.Recorder) int {
	res := tui.Run(ctx, tui.Session{
		Sources:  analysis.FileSources(in.paths),
		Keywords: keywords,
		Config:   a.Config,
		Dir:      in.dir,
		Options:  a.coordinatorOptions(recorder),
		Version:  Version,
	})
	if !res.Completed || res.Err != nil {
		if err := a.runError(res.Err); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		}
		return res.ExitCode
	}
	return a.finish(out, res.Comparison, res.ExitCode, recorder)
}

// finish writes the report and the metrics textfile of a completed run.
// A write failure turns a successful exit code into ExitErrorGeneric.
func (a *Application) finish(out io.Writer, cmp orchestration.Comparison, exitCode int, recorder *metrics.Recorder) int {
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Format:     a.Config.Format,
		Quiet:      a.Config.Quiet,
	}
	if err := cli.SaveReport(out, cmp, a.now(), outputCfg); err != nil {
		a.Logger.Error("cannot write report", err, logging.String("path", a.Config.OutputFile))
		fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
		exitCode = max(exitCode, apperrors.ExitErrorGeneric)
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Error("cannot write metrics", err, logging.String("path", a.Config.MetricsFile))
			fmt.Fprintf(a.ErrWriter, "Error saving metrics: %v\n", err)
			exitCode = max(exitCode, apperrors.ExitErrorGeneric)
		}
	}
	return exitCode
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
