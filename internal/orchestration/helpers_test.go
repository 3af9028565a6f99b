package orchestration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
)

// textSource is an in-memory Source.
type textSource struct {
	name string
	body string
}

func (s textSource) Name() string { return s.name }

func (s textSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.body)), nil
}

// missingSource fails on Open like a file deleted after discovery.
type missingSource struct{ name string }

func (s missingSource) Name() string { return s.name }

func (s missingSource) Open() (io.ReadCloser, error) {
	return nil, fmt.Errorf("open %s: %w", s.name, errors.New("no such file or directory"))
}

// hookSource calls onOpen before behaving like a textSource.
type hookSource struct {
	textSource
	onOpen func()
}

func (s hookSource) Open() (io.ReadCloser, error) {
	s.onOpen()
	return s.textSource.Open()
}

func textSources(bodies ...string) []analysis.Source {
	out := make([]analysis.Source, len(bodies))
	for i, b := range bodies {
		out[i] = textSource{name: fmt.Sprintf("file%02d.log", i), body: b}
	}
	return out
}

// mockPresenter records what AnalyzeComparison asked it to show.
type mockPresenter struct {
	compared bool
	failures []analysis.FileFailure
}

func (m *mockPresenter) PresentComparison(Comparison, io.Writer) { m.compared = true }

func (m *mockPresenter) PresentFailures(f []analysis.FileFailure, _ io.Writer) { m.failures = f }

// recordingMetrics is a MetricsRecorder keeping every call.
type recordingMetrics struct {
	mu          sync.Mutex
	events      []analysis.ScanEvent
	passes      []analysis.Pass
	comparisons int
	speedup     float64
	consistent  bool
}

func (r *recordingMetrics) FileScanned(e analysis.ScanEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingMetrics) PassCompleted(pass analysis.Pass, _ time.Duration, _, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes = append(r.passes, pass)
}

func (r *recordingMetrics) ComparisonCompleted(_ *analysis.Counts, speedup float64, consistent bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comparisons++
	r.speedup = speedup
	r.consistent = consistent
}

// syncBuffer guards a bytes.Buffer written by background goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
