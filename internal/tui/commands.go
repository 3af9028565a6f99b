package tui

import (
	"context"
	"io"
	"runtime"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/loganalyzer/internal/orchestration"
	"github.com/agbru/loganalyzer/internal/sysmon"
)

// sampleInterval is the refresh period of the runtime and host statistics.
const sampleInterval = 500 * time.Millisecond

func scheduleTick() tea.Cmd {
	return tea.Tick(sampleInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func readRuntimeStats() tea.Msg {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemStatsMsg{
		Alloc:        ms.Alloc,
		HeapInuse:    ms.HeapInuse,
		NumGC:        ms.NumGC,
		PauseTotalNs: ms.PauseTotalNs,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

func readHostStats() tea.Msg {
	host := sysmon.Sample()
	return SysStatsMsg{CPUPercent: host.CPUPercent, MemPercent: host.MemPercent}
}

// compareCmd runs both passes of one dashboard run. Progress and the final
// report reach the program through ref while the command is running; the
// returned message closes the run.
func compareCmd(ctx context.Context, ref *programRef, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref}
		opts := append(slices.Clone(s.Options),
			orchestration.WithProgressReporter(&TUIProgressReporter{ref: ref}, io.Discard))

		start := time.Now()
		cmp, err := orchestration.NewCoordinator(opts...).Compare(ctx, s.Sources, s.Keywords)
		done := AnalysisCompleteMsg{Comparison: cmp, Err: err, Generation: gen}
		if err != nil {
			done.ExitCode = presenter.HandleError(err, time.Since(start))
		} else {
			done.ExitCode = orchestration.AnalyzeComparison(cmp, presenter, io.Discard)
		}
		return done
	}
}

// awaitCancel reports the end of ctx, which happens on timeout, on SIGINT,
// and whenever a run is replaced.
func awaitCancel(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
