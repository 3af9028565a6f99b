package analysis

import (
	"fmt"
	"sort"
	"sync"
)

// Partial is the outcome of scanning one file. Ownership of Counts moves to
// the Aggregator on Submit. Index is the file's position in the input and
// only orders the failure list.
type Partial struct {
	Index  int
	File   string
	Counts *Counts
	Err    error
}

// FileFailure names a file whose contribution is missing from the aggregate,
// and why.
type FileFailure struct {
	File string
	Err  error
}

// String returns "file: reason".
func (f FileFailure) String() string {
	return fmt.Sprintf("%s: %v", f.File, f.Err)
}

// AggregateResult is the final state of an Aggregator.
type AggregateResult struct {
	Counts   *Counts
	Failures []FileFailure
	// Merged is the number of partials folded into Counts.
	Merged int
}

// Aggregator is a single-writer collector. Workers hand their partial
// results over a channel; one goroutine owns the global Counts and merges
// them one at a time, so no lock guards the mapping and no update is lost.
type Aggregator struct {
	in        chan Partial
	done      chan struct{}
	closeOnce sync.Once

	total    *Counts
	failures []indexedFailure
	merged   int
}

type indexedFailure struct {
	index int
	FileFailure
}

// NewAggregator starts the collector goroutine. buffer sizes the hand-off
// channel; workers block in Submit only when it is full.
func NewAggregator(keywords Keywords, buffer int) *Aggregator {
	if buffer < 0 {
		buffer = 0
	}
	a := &Aggregator{
		in:    make(chan Partial, buffer),
		done:  make(chan struct{}),
		total: NewCounts(keywords),
	}
	go a.collect()
	return a
}

// Submit hands p to the collector. It must not be called after Close.
func (a *Aggregator) Submit(p Partial) {
	a.in <- p
}

// Close stops accepting partials, waits until every submitted partial is
// merged, and returns the result. Calling Close more than once returns the
// same result.
func (a *Aggregator) Close() AggregateResult {
	a.closeOnce.Do(func() { close(a.in) })
	<-a.done

	failures := make([]FileFailure, len(a.failures))
	for i, f := range a.failures {
		failures[i] = f.FileFailure
	}
	return AggregateResult{Counts: a.total.Clone(), Failures: failures, Merged: a.merged}
}

func (a *Aggregator) collect() {
	defer close(a.done)
	for p := range a.in {
		if p.Err == nil {
			if err := a.total.Merge(p.Counts); err != nil {
				p.Err = err
			}
		}
		if p.Err != nil {
			a.failures = append(a.failures, indexedFailure{index: p.Index, FileFailure: FileFailure{File: p.File, Err: p.Err}})
			continue
		}
		a.merged++
	}
	sort.SliceStable(a.failures, func(i, j int) bool { return a.failures[i].index < a.failures[j].index })
}
