package analysis

import (
	"bufio"
	"time"

	apperrors "github.com/agbru/loganalyzer/internal/errors"
)

// DefaultMaxLineSize is the longest line, in bytes, the scanner accepts.
// A longer line fails the file with a read error.
const DefaultMaxLineSize = 1 << 20

const initialLineBuffer = 64 * 1024

// Scanner counts keyword occurrences in one Source at a time. A Scanner
// holds no per-scan state and may be shared by all workers of a pool.
type Scanner struct {
	observer    ScanObserver
	maxLineSize int
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithObserver sets the observer notified after every scan.
func WithObserver(o ScanObserver) ScannerOption {
	return func(s *Scanner) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithMaxLineSize overrides DefaultMaxLineSize. Values below 1 are ignored.
func WithMaxLineSize(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.maxLineSize = n
		}
	}
}

// NewScanner creates a Scanner.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{observer: NoOpObserver{}, maxLineSize: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads src line by line and returns one count per keyword. Lines are
// split on "\n" with an optional preceding "\r" removed, and a final line
// without a terminator is still counted.
//
// When src cannot be opened or a read fails partway, Scan returns a
// *apperrors.ScanError and no counts. The observer is notified in both cases.
func (s *Scanner) Scan(src Source, keywords Keywords, unit Unit) (*Counts, error) {
	start := time.Now()
	counts, lines, size, err := s.scan(src, keywords)

	event := ScanEvent{
		Unit:    unit,
		File:    src.Name(),
		Lines:   lines,
		Bytes:   size,
		Elapsed: time.Since(start),
		Err:     err,
	}
	if err == nil {
		event.Matches = counts.Total()
	}
	s.observer.FileScanned(event)

	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *Scanner) scan(src Source, keywords Keywords) (*Counts, int64, int64, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, 0, 0, &apperrors.ScanError{File: src.Name(), Op: "open", Cause: err}
	}
	defer rc.Close()

	counts := NewCounts(keywords)
	buf := acquireLineBuffer(s.maxLineSize)
	defer releaseLineBuffer(buf)
	sc := bufio.NewScanner(rc)
	sc.Buffer(*buf, s.maxLineSize)

	var lines, size int64
	for sc.Scan() {
		line := sc.Text()
		lines++
		size += int64(len(line))
		for i := range counts.values {
			counts.values[i] += CountOccurrences(line, keywords.At(i))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, lines, size, &apperrors.ScanError{File: src.Name(), Op: "read", Cause: err}
	}
	return counts, lines, size, nil
}
