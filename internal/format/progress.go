package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressState tracks the completion fraction of a fixed number of units,
// typically the two passes of a comparison.
type ProgressState struct {
	mu         sync.Mutex
	progresses []float64
	numUnits   int
}

// NewProgressState creates a state for numUnits units, all at zero.
func NewProgressState(numUnits int) *ProgressState {
	if numUnits < 0 {
		numUnits = 0
	}
	return &ProgressState{progresses: make([]float64, numUnits), numUnits: numUnits}
}

// Update sets the progress of one unit, clamped to [0, 1]. Out-of-range
// indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= ps.numUnits {
		return
	}
	ps.mu.Lock()
	ps.progresses[index] = clamp01(value)
	ps.mu.Unlock()
}

// CalculateAverage returns the mean progress over all units.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numUnits == 0 {
		return 0
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numUnits)
}

// maxETA caps estimates produced from a near-zero rate.
const maxETA = 24 * time.Hour

// etaSmoothing is the weight of the newest rate sample.
const etaSmoothing = 0.3

// ProgressWithETA extends ProgressState with a smoothed completion rate used
// to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // average progress per second
}

// NewProgressWithETA creates a tracker for numUnits units starting now.
func NewProgressWithETA(numUnits int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numUnits),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a unit's progress and returns the average progress
// and the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = etaSmoothing*rate + (1-etaSmoothing)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.GetETA()
}

// GetETA returns the current estimate without updating, 0 when unknown.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// Elapsed returns the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// FormatETA renders an estimate as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m, s := int(eta.Minutes()), int(eta.Seconds())%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h, m := int(eta.Hours()), int(eta.Minutes())%60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders progress as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  50.0% ETA: 30s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
