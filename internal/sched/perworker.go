package sched

import "golang.org/x/sys/cpu"

type cell[T any] struct {
	v T
	_ cpu.CacheLinePad
}

// PerWorker is an array of values indexed by Worker. Each value sits on its
// own cache line, so workers updating their own cell do not contend. Only
// the worker that owns a cell may touch it while branches run.
type PerWorker[T any] struct {
	cells []cell[T]
}

// NewPerWorker allocates one cell per worker, each set to init.
func NewPerWorker[T any](workers int, init T) *PerWorker[T] {
	p := &PerWorker[T]{cells: make([]cell[T], workers)}
	for i := range p.cells {
		p.cells[i].v = init
	}
	return p
}

// Mine returns the cell of worker w.
func (p *PerWorker[T]) Mine(w Worker) *T {
	return &p.cells[w].v
}

// Len returns the number of cells.
func (p *PerWorker[T]) Len() int { return len(p.cells) }

// Each calls fn for every cell. Call it only when no branch is running.
func (p *PerWorker[T]) Each(fn func(w Worker, v *T)) {
	for i := range p.cells {
		fn(Worker(i), &p.cells[i].v)
	}
}
