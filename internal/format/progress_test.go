package format

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestProgressState(t *testing.T) {
	t.Parallel()

	ps := NewProgressState(2)
	if got := ps.CalculateAverage(); got != 0 {
		t.Fatalf("fresh state average = %v, want 0", got)
	}
	ps.Update(0, 1)    // sequential pass done
	ps.Update(1, 0.5)  // concurrent pass halfway
	ps.Update(2, 0.9)  // no such pass
	ps.Update(-1, 0.9) // no such pass
	if got := ps.CalculateAverage(); got != 0.75 {
		t.Errorf("average = %v, want 0.75", got)
	}

	ps.Update(1, 7)
	if got := ps.CalculateAverage(); got != 1 {
		t.Errorf("progress above 1 should clamp, average = %v", got)
	}
	ps.Update(0, -3)
	if got := ps.CalculateAverage(); got != 0.5 {
		t.Errorf("negative progress should clamp to 0, average = %v", got)
	}

	for _, n := range []int{0, -4} {
		if got := NewProgressState(n).CalculateAverage(); got != 0 {
			t.Errorf("NewProgressState(%d) average = %v, want 0", n, got)
		}
	}
}

func TestProgressState_ConcurrentUpdates(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(4)
	var wg sync.WaitGroup
	for unit := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= 100; i++ {
				ps.Update(unit, float64(i)/100)
			}
		}()
	}
	wg.Wait()
	if got := ps.CalculateAverage(); got != 1 {
		t.Errorf("average after all units finished = %v, want 1", got)
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA before any progress = %v, want 0", eta)
	}

	avg, eta := p.UpdateWithETA(0, 0.5)
	if avg != 0.25 {
		t.Errorf("average = %v, want 0.25", avg)
	}
	if eta < 0 || eta > maxETA {
		t.Errorf("ETA %v outside [0, %v]", eta, maxETA)
	}

	// Half the work remains at a quarter of the work per second.
	p.progressRate = 0.25
	p.Update(1, 0.5)
	if eta := p.GetETA(); eta != 2*time.Second {
		t.Errorf("ETA = %v, want 2s", eta)
	}

	p.progressRate = 1e-9
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA from a near-zero rate = %v, want the %v cap", eta, maxETA)
	}

	p.Update(0, 1)
	p.Update(1, 1)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA when complete = %v, want 0", eta)
	}
	if p.Elapsed() < 0 {
		t.Error("elapsed time should not be negative")
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Minute, "calculating..."},
		{300 * time.Millisecond, "< 1s"},
		{12 * time.Second, "12s"},
		{3 * time.Minute, "3m"},
		{4*time.Minute + 5*time.Second, "4m5s"},
		{5 * time.Hour, "5h"},
		{2*time.Hour + 40*time.Minute, "2h40m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░░░░░"},
		{0.25, "██░░░░░░"},
		{0.5, "████░░░░"},
		{1, "████████"},
		{1.5, "████████"},
		{-1, "░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, 8); got != tt.want {
			t.Errorf("ProgressBar(%v, 8) = %q, want %q", tt.progress, got, tt.want)
		}
	}

	line := FormatProgressBarWithETA(0.5, 90*time.Second, 10)
	for _, want := range []string{"[█████░░░░░]", " 50.0%", "ETA: 1m30s"} {
		if !strings.Contains(line, want) {
			t.Errorf("FormatProgressBarWithETA() = %q, missing %q", line, want)
		}
	}
	if line := FormatProgressBarWithETA(2, 0, 4); !strings.Contains(line, "100.0%") || !strings.Contains(line, "calculating...") {
		t.Errorf("FormatProgressBarWithETA() = %q", line)
	}
}
