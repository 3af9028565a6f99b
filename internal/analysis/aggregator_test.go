package analysis

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAggregator_SumsPartials(t *testing.T) {
	t.Parallel()
	k := MustKeywords("ERROR", "WARN")
	agg := NewAggregator(k, 0)

	for i := 0; i < 3; i++ {
		c := NewCounts(k)
		_ = c.Add("ERROR", int64(i+1))
		agg.Submit(Partial{Index: i, File: fmt.Sprintf("f%d", i), Counts: c})
	}
	res := agg.Close()

	if res.Counts.Get("ERROR") != 6 || res.Counts.Get("WARN") != 0 {
		t.Errorf("unexpected counts %s", res.Counts)
	}
	if res.Merged != 3 {
		t.Errorf("expected 3 merged, got %d", res.Merged)
	}
	if len(res.Failures) != 0 {
		t.Errorf("expected no failures, got %v", res.Failures)
	}
}

func TestAggregator_NoPartials(t *testing.T) {
	t.Parallel()
	res := NewAggregator(MustKeywords("ERROR"), 1).Close()
	if res.Counts.Get("ERROR") != 0 || res.Merged != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if got := res.Counts.Map(); len(got) != 1 {
		t.Errorf("every keyword needs an entry, got %v", got)
	}
}

func TestAggregator_FailuresExcludedAndOrdered(t *testing.T) {
	t.Parallel()
	k := MustKeywords("ERROR")
	agg := NewAggregator(k, 4)

	ok := NewCounts(k)
	_ = ok.Add("ERROR", 5)
	agg.Submit(Partial{Index: 2, File: "c.log", Err: errors.New("read failed")})
	agg.Submit(Partial{Index: 1, File: "b.log", Counts: ok})
	agg.Submit(Partial{Index: 0, File: "a.log", Err: errors.New("open failed")})
	bad := NewCounts(MustKeywords("OTHER"))
	_ = bad.Add("OTHER", 9)
	agg.Submit(Partial{Index: 3, File: "d.log", Counts: bad})

	res := agg.Close()
	if res.Counts.Get("ERROR") != 5 {
		t.Errorf("expected only b.log to count, got %s", res.Counts)
	}
	if len(res.Failures) != 3 {
		t.Fatalf("expected 3 failures, got %v", res.Failures)
	}
	for i, want := range []string{"a.log", "c.log", "d.log"} {
		if res.Failures[i].File != want {
			t.Errorf("failure %d: expected %s, got %s", i, want, res.Failures[i].File)
		}
	}
}

func TestAggregator_CloseTwice(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(MustKeywords("ERROR"), 0)
	first := agg.Close()
	second := agg.Close()
	if !first.Counts.Equal(second.Counts) {
		t.Error("second Close should return the same counts")
	}
}

// TestAggregator_HighContention submits from many goroutines released at
// once and checks nothing is lost.
func TestAggregator_HighContention(t *testing.T) {
	k := MustKeywords("ERROR", "WARN")
	for round := 0; round < 20; round++ {
		agg := NewAggregator(k, 8)
		const senders = 200
		var wg sync.WaitGroup
		barrier := make(chan struct{})

		wg.Add(senders)
		for i := 0; i < senders; i++ {
			go func(id int) {
				defer wg.Done()
				<-barrier
				c := NewCounts(k)
				_ = c.Add("ERROR", 1)
				_ = c.Add("WARN", int64(id))
				agg.Submit(Partial{Index: id, File: fmt.Sprint(id), Counts: c})
			}(i)
		}
		close(barrier)

		done := make(chan AggregateResult)
		go func() {
			wg.Wait()
			done <- agg.Close()
		}()

		select {
		case res := <-done:
			if res.Counts.Get("ERROR") != senders {
				t.Fatalf("round %d: expected ERROR=%d, got %d", round, senders, res.Counts.Get("ERROR"))
			}
			if want := int64(senders * (senders - 1) / 2); res.Counts.Get("WARN") != want {
				t.Fatalf("round %d: expected WARN=%d, got %d", round, want, res.Counts.Get("WARN"))
			}
		case <-time.After(10 * time.Second):
			t.Fatalf("DEADLOCK: round %d did not finish", round)
		}
	}
}
