package orchestration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/agbru/loganalyzer/internal/analysis"
	"github.com/agbru/loganalyzer/internal/parallel"
)

func TestRunSequential_CancelBetweenFiles(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sources := []analysis.Source{
		textSource{name: "a", body: "ERROR"},
		hookSource{textSource: textSource{name: "b", body: "ERROR ERROR"}, onOpen: cancel},
		textSource{name: "c", body: "ERROR"},
		textSource{name: "d", body: "ERROR"},
	}
	out, err := RunSequential(ctx, sources, analysis.MustKeywords("ERROR"), analysis.NewScanner())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := out.Counts.Get("ERROR"); got != 3 {
		t.Errorf("the file in progress must finish: count = %d, want 3", got)
	}
	if len(out.Failures) != 2 || out.Failures[0].File != "c" || out.Failures[1].File != "d" {
		t.Errorf("unexpected failures %v", out.Failures)
	}
	for _, f := range out.Failures {
		if !errors.Is(f.Err, context.Canceled) {
			t.Errorf("failure %s should carry the context error, got %v", f.File, f.Err)
		}
	}
}

func TestRunConcurrent_CancelAbandonsQueuedFiles(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sources := []analysis.Source{hookSource{textSource: textSource{name: "first", body: "WARN"}, onOpen: cancel}}
	for i := 0; i < 9; i++ {
		sources = append(sources, textSource{name: fmt.Sprintf("queued%d", i), body: "WARN"})
	}
	pool, _ := parallel.NewPool(1)

	out, err := RunConcurrent(ctx, sources, analysis.MustKeywords("WARN"), analysis.NewScanner(), pool)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Counts.Get("WARN") != 1 {
		t.Errorf("only the running file should count, got %d", out.Counts.Get("WARN"))
	}
	if len(out.Failures) != 9 || out.Scanned() != 1 {
		t.Errorf("expected 9 abandoned files, got %d", len(out.Failures))
	}
	for i, f := range out.Failures {
		if f.File != fmt.Sprintf("queued%d", i) {
			t.Errorf("failures out of input order: %v", out.Failures)
			break
		}
	}
}

// TestRunConcurrent_SumOfFiles checks that the aggregate equals the sum of
// independent per-file scans.
func TestRunConcurrent_SumOfFiles(t *testing.T) {
	t.Parallel()
	keywords := analysis.MustKeywords("ERROR", "WARN", "INFO")
	lines := []string{"ERROR db down", "WARN slow", "INFO ok", "ERROR ERROR", "nothing", "INFOWARN"}

	var sources []analysis.Source
	for i := 0; i < 40; i++ {
		var b strings.Builder
		for j := 0; j < i%7+1; j++ {
			b.WriteString(lines[(i+j)%len(lines)])
			b.WriteByte('\n')
		}
		sources = append(sources, textSource{name: fmt.Sprintf("f%d", i), body: b.String()})
	}

	scanner := analysis.NewScanner()
	want := analysis.NewCounts(keywords)
	for _, src := range sources {
		c, err := scanner.Scan(src, keywords, analysis.Unit{Pass: analysis.PassSequential})
		if err != nil {
			t.Fatal(err)
		}
		if err := want.Merge(c); err != nil {
			t.Fatal(err)
		}
	}

	pool, _ := parallel.NewPool(5)
	out, err := RunConcurrent(context.Background(), sources, keywords, scanner, pool)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Counts.Equal(want) {
		t.Errorf("aggregate %v != sum of files %v", out.Counts, want)
	}
	if out.Files != len(sources) || out.Scanned() != len(sources) {
		t.Errorf("unexpected file accounting: files=%d scanned=%d", out.Files, out.Scanned())
	}
	if out.Duration() < 0 {
		t.Errorf("negative duration %v", out.Duration())
	}
}

func TestRunConcurrent_PanickingObserverIsolated(t *testing.T) {
	t.Parallel()
	scanner := analysis.NewScanner(analysis.WithObserver(analysis.ObserverFunc(func(e analysis.ScanEvent) {
		if e.File == "bad" {
			panic("observer bug")
		}
	})))
	sources := []analysis.Source{
		textSource{name: "ok1", body: "ERROR"},
		textSource{name: "bad", body: "ERROR"},
		textSource{name: "ok2", body: "ERROR"},
	}
	pool, _ := parallel.NewPool(2)

	out, err := RunConcurrent(context.Background(), sources, analysis.MustKeywords("ERROR"), scanner, pool)
	if err != nil {
		t.Fatalf("a panicking task must not fail the pass: %v", err)
	}
	if out.Counts.Get("ERROR") != 2 {
		t.Errorf("siblings should contribute, got %d", out.Counts.Get("ERROR"))
	}
	if len(out.Failures) != 1 || out.Failures[0].File != "bad" || !strings.Contains(out.Failures[0].Err.Error(), "observer bug") {
		t.Errorf("unexpected failures %v", out.Failures)
	}
}

func TestRunSequential_PanickingObserverIsolated(t *testing.T) {
	t.Parallel()
	scanner := analysis.NewScanner(analysis.WithObserver(analysis.ObserverFunc(func(e analysis.ScanEvent) {
		if e.File == "bad" {
			panic("observer bug")
		}
	})))
	sources := []analysis.Source{
		textSource{name: "ok1", body: "ERROR"},
		textSource{name: "bad", body: "ERROR"},
		textSource{name: "ok2", body: "ERROR"},
	}

	out, err := RunSequential(context.Background(), sources, analysis.MustKeywords("ERROR"), scanner)
	if err != nil {
		t.Fatalf("a panicking scan must not fail the pass: %v", err)
	}
	if out.Counts.Get("ERROR") != 2 {
		t.Errorf("the files around the panic should count, got %d", out.Counts.Get("ERROR"))
	}
	if len(out.Failures) != 1 || out.Failures[0].File != "bad" || !strings.Contains(out.Failures[0].Err.Error(), "observer bug") {
		t.Errorf("unexpected failures %v", out.Failures)
	}

	pool, _ := parallel.NewPool(2)
	conc, err := RunConcurrent(context.Background(), sources, analysis.MustKeywords("ERROR"), scanner, pool)
	if err != nil {
		t.Fatal(err)
	}
	if !conc.Counts.Equal(out.Counts) || len(conc.Failures) != len(out.Failures) {
		t.Errorf("both passes should treat the panic alike: %v/%v vs %v/%v",
			out.Counts, out.Failures, conc.Counts, conc.Failures)
	}
}

func TestRunSequential_ScanErrorRecorded(t *testing.T) {
	t.Parallel()
	sources := []analysis.Source{missingSource{name: "gone"}, textSource{name: "ok", body: "INFO"}}
	out, err := RunSequential(context.Background(), sources, analysis.MustKeywords("INFO"), analysis.NewScanner())
	if err != nil {
		t.Fatal(err)
	}
	if out.Counts.Get("INFO") != 1 || len(out.Failures) != 1 || out.Failures[0].File != "gone" {
		t.Errorf("unexpected outcome counts=%v failures=%v", out.Counts, out.Failures)
	}
}
