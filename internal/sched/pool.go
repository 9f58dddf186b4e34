// Package sched provides the fork-join primitive used by the search driver
// and per-worker state arrays.
//
// Fork2 makes a deferred decision: when a worker slot is free the second
// branch runs on a new goroutine, otherwise both branches run inline on the
// calling worker. Either way Fork2 returns only after both branches finished.
package sched

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pwsa/internal/resource"
)

// Worker identifies the worker slot a branch runs on. Worker 0 is the
// goroutine that started the computation.
type Worker int

// Branch is one side of a fork.
type Branch func(w Worker) error

// Pool schedules forked branches onto a bounded set of workers.
type Pool struct {
	rc *resource.Controller

	parallel atomic.Int64
	inline   atomic.Int64
}

// NewPool returns a pool drawing worker slots from rc. A nil controller
// gives a pool that always runs inline.
func NewPool(rc *resource.Controller) *Pool {
	return &Pool{rc: rc}
}

// Workers returns the maximum number of concurrently running workers.
func (p *Pool) Workers() int {
	return p.rc.MaxWorkers()
}

// Fork2 runs a and b to completion, possibly in parallel, and returns the
// first non-nil error of a, then b. a always runs on the calling worker w.
func (p *Pool) Fork2(w Worker, a, b Branch) error {
	id, ok := p.rc.TryAcquireWorker()
	if !ok {
		p.inline.Add(1)
		if err := a(w); err != nil {
			return err
		}
		return b(w)
	}

	p.parallel.Add(1)
	var g errgroup.Group
	g.Go(func() error {
		defer p.rc.ReleaseWorker(id)
		return b(Worker(id))
	})
	errA := a(w)
	errB := g.Wait()
	if errA != nil {
		return errA
	}
	return errB
}

// ForkStats reports how many forks ran in parallel and how many were inlined.
func (p *Pool) ForkStats() (parallel, inline int64) {
	return p.parallel.Load(), p.inline.Load()
}
