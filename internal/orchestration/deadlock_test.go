package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
)

// TestCompareNoDeadlock verifies that Compare returns under progress
// reporters that are slow, late, or silent.
func TestCompareNoDeadlock(t *testing.T) {
	t.Parallel()
	sources := make([]analysis.Source, 200)
	for i := range sources {
		sources[i] = textSource{name: fmt.Sprintf("f%03d", i), body: "ERROR WARN\nINFO\n"}
	}

	reporters := map[string]ProgressReporter{
		"null": NullProgressReporter{},
		"slow": ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, _ int, _ io.Writer) {
			defer wg.Done()
			for range ch {
				time.Sleep(50 * time.Microsecond)
			}
		}),
		"late": ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, _ int, _ io.Writer) {
			defer wg.Done()
			time.Sleep(20 * time.Millisecond)
			DrainChannel(ch)
		}),
	}

	for name, reporter := range reporters {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			done := make(chan error, 1)
			go func() {
				c := NewCoordinator(WithPoolSize(8), WithProgressReporter(reporter, io.Discard))
				_, err := c.Compare(context.Background(), sources, analysis.MustKeywords("ERROR", "INFO"))
				done <- err
			}()

			select {
			case err := <-done:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: Compare did not return")
			}
		})
	}
}

// TestCompareNoDeadlock_Timeout verifies that a deadline during the
// concurrent pass still lets Compare return.
func TestCompareNoDeadlock_Timeout(t *testing.T) {
	t.Parallel()
	sources := make([]analysis.Source, 50)
	for i := range sources {
		sources[i] = hookSource{
			textSource: textSource{name: fmt.Sprintf("slow%02d", i), body: "ERROR"},
			onOpen:     func() { time.Sleep(2 * time.Millisecond) },
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = NewCoordinator(WithPoolSize(2)).Compare(ctx, sources, analysis.MustKeywords("ERROR"))
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: Compare ignored the deadline")
	}
}
