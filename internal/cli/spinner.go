package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner is the animated status line shown while the passes run.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix replaces the text drawn after the animation frame.
	UpdateSuffix(suffix string)
}

// terminalSpinner draws a Spinner with briandowns/spinner.
type terminalSpinner struct {
	s *spinner.Spinner
}

func (t *terminalSpinner) Start() { t.s.Start() }

func (t *terminalSpinner) Stop() { t.s.Stop() }

// UpdateSuffix takes the spinner lock because the suffix is read by the
// animation goroutine.
func (t *terminalSpinner) UpdateSuffix(suffix string) {
	t.s.Lock()
	defer t.s.Unlock()
	t.s.Suffix = suffix
}

// newSpinner is replaced in tests.
var newSpinner = func(opts ...spinner.Option) Spinner {
	return &terminalSpinner{s: spinner.New(spinner.CharSets[14], progressRefreshRate, opts...)}
}

// progressRefreshRate is both the animation period and the redraw period
// of the progress bar.
const progressRefreshRate = 150 * time.Millisecond
