package parallel

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/loganalyzer/internal/errors"
)

// Task is one unit of work queued on a Pool.
type Task interface {
	// Run executes the task on the given worker (0 <= worker < Size).
	Run(worker int)
	// Abandon is called instead of Run when the task can no longer start,
	// because the pool's context ended or Run panicked.
	Abandon(worker int, err error)
}

// TaskFuncs adapts a pair of functions to Task.
type TaskFuncs struct {
	RunFunc     func(worker int)
	AbandonFunc func(worker int, err error)
}

// Run calls RunFunc.
func (t TaskFuncs) Run(worker int) {
	if t.RunFunc != nil {
		t.RunFunc(worker)
	}
}

// Abandon calls AbandonFunc.
func (t TaskFuncs) Abandon(worker int, err error) {
	if t.AbandonFunc != nil {
		t.AbandonFunc(worker, err)
	}
}

// Stats is a point-in-time view of a Pool.
type Stats struct {
	Size      int
	Active    int64 // tasks currently running
	Largest   int64 // highest Active ever observed
	Submitted int64 // tasks queued since creation
	Completed int64 // tasks that ran to the end
	Abandoned int64 // tasks abandoned or panicked
}

// Pool is a fixed-size set of workers. A Pool may be reused for several Run
// calls; Stats accumulate across them.
type Pool struct {
	size int

	active    atomic.Int64
	largest   atomic.Int64
	submitted atomic.Int64
	completed atomic.Int64
	abandoned atomic.Int64
}

// NewPool creates a pool of size workers. size must be at least 1.
func NewPool(size int) (*Pool, error) {
	if size < 1 {
		return nil, apperrors.NewConfigError("pool size must be at least 1, got %d", size)
	}
	return &Pool{size: size}, nil
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Stats returns the current counters. It takes no lock and may be called
// from any goroutine while Run is in progress.
func (p *Pool) Stats() Stats {
	return Stats{
		Size:      p.size,
		Active:    p.active.Load(),
		Largest:   p.largest.Load(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Abandoned: p.abandoned.Load(),
	}
}

// Run queues every task, then starts Size workers that drain the queue, and
// waits until each task has either run or been abandoned.
//
// Once ctx is done, tasks still in the queue are abandoned with ctx.Err();
// tasks already running are left to finish. A panicking task is abandoned
// with an error describing the panic and does not affect other tasks.
// Run returns ctx.Err() if the context ended before the queue drained.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	queue := make(chan Task, len(tasks))
	for _, t := range tasks {
		queue <- t
	}
	close(queue)
	p.submitted.Add(int64(len(tasks)))

	var g errgroup.Group
	var canceled atomic.Bool
	for w := 0; w < p.size; w++ {
		worker := w
		g.Go(func() error {
			for t := range queue {
				if err := ctx.Err(); err != nil {
					canceled.Store(true)
					t.Abandon(worker, err)
					p.abandoned.Add(1)
					continue
				}
				p.runTask(worker, t)
			}
			return nil
		})
	}
	_ = g.Wait()

	if canceled.Load() {
		return ctx.Err()
	}
	return nil
}

func (p *Pool) runTask(worker int, t Task) {
	n := p.active.Add(1)
	for {
		cur := p.largest.Load()
		if n <= cur || p.largest.CompareAndSwap(cur, n) {
			break
		}
	}

	defer func() {
		p.active.Add(-1)
		if r := recover(); r != nil {
			p.abandoned.Add(1)
			t.Abandon(worker, fmt.Errorf("task panicked: %v", r))
			return
		}
		p.completed.Add(1)
	}()
	t.Run(worker)
}
