package orchestration

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/config"
	apperrors "github.com/agbru/loganalyzer/internal/errors"
	"github.com/agbru/loganalyzer/internal/logging"
	"github.com/agbru/loganalyzer/internal/monitor"
	"github.com/agbru/loganalyzer/internal/parallel"
)

const tracerName = "github.com/agbru/loganalyzer/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel: one slot per file for
// each of the two passes, so scan goroutines never wait on the UI.
const ProgressBufferMultiplier = 2

// Coordinator runs both passes over the same input and compares them.
type Coordinator struct {
	poolSize        int
	scanOpts        []analysis.ScannerOption
	observers       analysis.Observers
	logger          logging.Logger
	reporter        ProgressReporter
	progressOut     io.Writer
	metrics         MetricsRecorder
	monitorInterval time.Duration
	tracer          trace.Tracer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPoolSize sets the number of workers of the concurrent pass.
func WithPoolSize(n int) Option {
	return func(c *Coordinator) { c.poolSize = n }
}

// WithScannerOptions configures the scanner shared by both passes.
func WithScannerOptions(opts ...analysis.ScannerOption) Option {
	return func(c *Coordinator) { c.scanOpts = append(c.scanOpts, opts...) }
}

// WithObserver adds an observer notified after every file scan.
func WithObserver(o analysis.ScanObserver) Option {
	return func(c *Coordinator) { c.observers = append(c.observers, o) }
}

// WithLogger sets the logger used for pass and file events.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithProgressReporter sets the progress display and its output.
func WithProgressReporter(r ProgressReporter, out io.Writer) Option {
	return func(c *Coordinator) {
		c.reporter = r
		c.progressOut = out
	}
}

// WithMetrics sets the recorder fed during the comparison.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithMonitor reports pool status every interval during the concurrent
// pass. A zero interval disables the monitor.
func WithMonitor(interval time.Duration) Option {
	return func(c *Coordinator) { c.monitorInterval = interval }
}

// WithTracer sets the tracer used for the compare and pass spans. The
// default is the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Coordinator) { c.tracer = t }
}

// NewCoordinator returns a Coordinator using the platform default pool size,
// no logging and no progress display unless configured otherwise.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		poolSize:    config.DefaultPoolSize(),
		logger:      logging.NopLogger{},
		reporter:    NullProgressReporter{},
		progressOut: io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// PoolSize returns the configured number of workers.
func (c *Coordinator) PoolSize() int { return c.poolSize }

// Compare runs the sequential pass and then the concurrent pass over sources
// and returns both outcomes.
//
// An empty keyword set or a pool size below one is rejected with a
// ConfigError before any file is opened. File failures do not make Compare
// fail; they are listed in each outcome. If ctx is done before both passes
// finish, the partial comparison is returned with the context error.
func (c *Coordinator) Compare(ctx context.Context, sources []analysis.Source, keywords analysis.Keywords) (Comparison, error) {
	if keywords.Len() == 0 {
		return Comparison{}, apperrors.NewConfigError("keyword set is empty")
	}
	pool, err := parallel.NewPool(c.poolSize)
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{RunID: uuid.NewString(), PoolSize: c.poolSize, Keywords: keywords}
	ctx, span := c.tracer.Start(ctx, "loganalyzer.compare", trace.WithAttributes(
		attribute.String("loganalyzer.run_id", cmp.RunID),
		attribute.Int("loganalyzer.files", len(sources)),
		attribute.Int("loganalyzer.pool_size", c.poolSize),
		attribute.StringSlice("loganalyzer.keywords", keywords.Slice()),
	))
	defer span.End()

	progressChan := make(chan ProgressUpdate, len(sources)*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go c.reporter.DisplayProgress(&displayWg, progressChan, len(sources), c.progressOut)

	observers := slices.Clone(c.observers)
	observers = append(observers, newProgressObserver(progressChan, len(sources)), analysis.NewLoggingObserver(c.logger))
	if c.metrics != nil {
		observers = append(observers, c.metrics)
	}
	scanner := analysis.NewScanner(append(slices.Clone(c.scanOpts), analysis.WithObserver(observers))...)

	c.logger.Info("starting comparison",
		logging.String("run_id", cmp.RunID),
		logging.Int("files", len(sources)),
		logging.Int("pool_size", c.poolSize),
		logging.String("keywords", keywords.String()),
	)

	cmp.Sequential, err = c.runPass(ctx, analysis.PassSequential, func(ctx context.Context) (Outcome, error) {
		return RunSequential(ctx, sources, keywords, scanner)
	})
	if err == nil {
		var mon *monitor.Monitor
		if c.monitorInterval > 0 {
			mon = monitor.Start(ctx, c.monitorInterval, pool.Stats, c.logger)
		}
		cmp.Concurrent, err = c.runPass(ctx, analysis.PassConcurrent, func(ctx context.Context) (Outcome, error) {
			return RunConcurrent(ctx, sources, keywords, scanner, pool)
		})
		if mon != nil {
			mon.Stop()
		}
	}

	close(progressChan)
	displayWg.Wait()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("comparison interrupted", err, logging.String("run_id", cmp.RunID))
		return cmp, err
	}

	speedup, consistent := cmp.Speedup(), cmp.Consistent()
	span.SetAttributes(
		attribute.Float64("loganalyzer.speedup", speedup),
		attribute.Bool("loganalyzer.consistent", consistent),
		attribute.Int("loganalyzer.failures", len(cmp.Failures())),
	)
	if !consistent {
		span.SetStatus(codes.Error, "sequential and concurrent counts differ")
	}
	if c.metrics != nil {
		c.metrics.ComparisonCompleted(cmp.Concurrent.Counts, speedup, consistent)
	}
	c.logger.Info("comparison finished",
		logging.String("run_id", cmp.RunID),
		logging.Duration("sequential", cmp.Sequential.Duration()),
		logging.Duration("concurrent", cmp.Concurrent.Duration()),
		logging.Float64("speedup", speedup),
	)
	return cmp, nil
}

func (c *Coordinator) runPass(ctx context.Context, pass analysis.Pass, run func(context.Context) (Outcome, error)) (Outcome, error) {
	ctx, span := c.tracer.Start(ctx, "loganalyzer.pass."+string(pass))
	defer span.End()

	c.logger.Debug("pass started", logging.String("pass", string(pass)))
	out, err := run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(
		attribute.Int64("loganalyzer.duration_ns", out.Duration().Nanoseconds()),
		attribute.Int("loganalyzer.failures", len(out.Failures)),
	)
	if c.metrics != nil {
		c.metrics.PassCompleted(pass, out.Duration(), out.Files, len(out.Failures))
	}
	c.logger.Info("pass finished",
		logging.String("pass", string(pass)),
		logging.Duration("elapsed", out.Duration()),
		logging.Int("files", out.Files),
		logging.Int("failures", len(out.Failures)),
	)
	return out, err
}

// AnalyzeComparison presents a finished comparison and maps it to an exit
// code. A disagreement between the passes is a critical error; failed files
// are reported but do not change the exit code.
//
// Parameters:
//   - cmp: The comparison to analyze.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: ExitSuccess, or ExitErrorMismatch when the counts differ.
func AnalyzeComparison(cmp Comparison, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentComparison(cmp, out)
	if failures := cmp.Failures(); len(failures) > 0 {
		presenter.PresentFailures(failures, out)
	}

	if !cmp.Consistent() {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The sequential and concurrent passes produced different counts.\n")
		return apperrors.ExitErrorMismatch
	}
	fmt.Fprintf(out, "\nGlobal Status: Success. Both passes produced identical counts.\n")
	return apperrors.ExitSuccess
}
