//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks

package analysis

import (
	"fmt"
	"time"

	"github.com/agbru/loganalyzer/internal/logging"
)

// Pass names one of the two runs over the same input.
type Pass string

const (
	PassSequential Pass = "sequential"
	PassConcurrent Pass = "concurrent"
)

// Unit identifies the execution unit that scanned a file: the pass, and for
// the concurrent pass the worker index inside the pool.
type Unit struct {
	Pass   Pass
	Worker int
}

// String returns "sequential" or "worker-N".
func (u Unit) String() string {
	if u.Pass == PassConcurrent {
		return fmt.Sprintf("worker-%d", u.Worker)
	}
	return string(u.Pass)
}

// ScanEvent is emitted once per scanned file, whether the scan succeeded or
// not. Err is nil on success.
type ScanEvent struct {
	Unit    Unit
	File    string
	Lines   int64
	Bytes   int64
	Matches int64
	Elapsed time.Duration
	Err     error
}

// ScanObserver receives scan events. FileScanned is called from pool workers
// concurrently and must not block for long.
type ScanObserver interface {
	FileScanned(event ScanEvent)
}

// ObserverFunc adapts a function to ScanObserver.
type ObserverFunc func(event ScanEvent)

// FileScanned calls f.
func (f ObserverFunc) FileScanned(event ScanEvent) { f(event) }

// Observers fans an event out to several observers in order.
type Observers []ScanObserver

// FileScanned notifies every observer.
func (o Observers) FileScanned(event ScanEvent) {
	for _, obs := range o {
		if obs != nil {
			obs.FileScanned(event)
		}
	}
}

// NoOpObserver ignores events.
type NoOpObserver struct{}

// FileScanned does nothing.
func (NoOpObserver) FileScanned(ScanEvent) {}

// LoggingObserver logs each processed file at debug level and each failed
// file at warn level.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver creates a LoggingObserver.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// FileScanned logs the event.
func (l *LoggingObserver) FileScanned(event ScanEvent) {
	if event.Err != nil {
		l.logger.Warn("file scan failed",
			logging.String("unit", event.Unit.String()),
			logging.String("file", event.File),
			logging.Err(event.Err))
		return
	}
	l.logger.Debug("file processed",
		logging.String("unit", event.Unit.String()),
		logging.String("file", event.File),
		logging.Int64("lines", event.Lines),
		logging.Int64("matches", event.Matches),
		logging.Duration("elapsed", event.Elapsed))
}
