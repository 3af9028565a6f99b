// Package monitor periodically reports the status of a worker pool while it
// runs, together with a host CPU and memory snapshot.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/loganalyzer/internal/logging"
	"github.com/agbru/loganalyzer/internal/parallel"
	"github.com/agbru/loganalyzer/internal/sysmon"
)

// Monitor is a background reporter started by Start.
type Monitor struct {
	stats  func() parallel.Stats
	sample func() sysmon.Stats
	logger logging.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithSampler replaces the host sampler, sysmon.Sample by default.
func WithSampler(sample func() sysmon.Stats) Option {
	return func(m *Monitor) { m.sample = sample }
}

// Start launches a goroutine logging the pool status every interval. The
// goroutine stops when ctx is done or Stop is called, logging one last
// status on the way out. stats must be safe to call concurrently with the
// pool's workers; Pool.Stats reads atomics only.
func Start(ctx context.Context, interval time.Duration, stats func() parallel.Stats, logger logging.Logger, opts ...Option) *Monitor {
	ctx, cancel := context.WithCancel(ctx)
	m := &Monitor{
		stats:  stats,
		sample: sysmon.Sample,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.loop(ctx, interval)
	return m
}

// Stop ends the monitor and waits for its final report. It is safe to call
// more than once.
func (m *Monitor) Stop() {
	m.cancel()
	<-m.done
}

func (m *Monitor) loop(ctx context.Context, interval time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.report()
			return
		case <-ticker.C:
			m.report()
		}
	}
}

func (m *Monitor) report() {
	s := m.stats()
	host := m.sample()
	m.logger.Info(FormatStats(s),
		logging.Int("pool_size", s.Size),
		logging.Int64("abandoned", s.Abandoned),
		logging.Float64("cpu_percent", host.CPUPercent),
		logging.Float64("mem_percent", host.MemPercent),
		logging.Uint64("rss_bytes", host.ProcessRSS),
		logging.Int("threads", int(host.Threads)),
	)
}

// FormatStats renders pool statistics on one line.
func FormatStats(s parallel.Stats) string {
	return fmt.Sprintf("[POOL] Active=%d, Completed=%d, TaskCount=%d, LargestPool=%d",
		s.Active, s.Completed, s.Submitted, s.Largest)
}
