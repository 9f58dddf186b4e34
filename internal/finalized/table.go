// Package finalized implements the write-once table of finalized distances
// shared by all branches of a search.
//
// Each vertex owns an independent atomic slot. The first compare-and-swap
// from Unset wins; later writers observe and adopt the winning value. No lock
// guards the table.
package finalized

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/pwsa/graph"
)

// Unset marks a slot that has not been finalized.
const Unset int64 = -1

// ErrNegativeDistance is the panic value of TryFinalize for distances below zero.
var ErrNegativeDistance = errors.New("finalized: negative distance")

// Table holds one atomic distance slot per vertex.
type Table struct {
	slots []atomic.Int64
}

// New allocates a table for n vertices with every slot Unset.
func New(n int) *Table {
	t := &Table{slots: make([]atomic.Int64, n)}
	for i := range t.slots {
		t.slots[i].Store(Unset)
	}
	return t
}

// SizeBytes returns the memory footprint of a table for n vertices.
func SizeBytes(n int) int64 {
	return int64(n) * 8
}

// Len returns the number of slots.
func (t *Table) Len() int { return len(t.slots) }

// TryFinalize attempts to commit d as the distance of v and returns the value
// stored after the attempt, together with whether this call won. Callers must
// propagate the returned value, not d.
func (t *Table) TryFinalize(v graph.Vertex, d int64) (actual int64, won bool) {
	if d < 0 {
		panic(fmt.Errorf("%w: vertex %d distance %d", ErrNegativeDistance, v, d))
	}
	slot := &t.slots[v]
	if slot.CompareAndSwap(Unset, d) {
		return d, true
	}
	return slot.Load(), false
}

// Load returns the finalized distance of v, or Unset.
func (t *Table) Load(v graph.Vertex) int64 {
	return t.slots[v].Load()
}

// IsFinalized reports whether v has a committed distance.
func (t *Table) IsFinalized(v graph.Vertex) bool {
	return t.slots[v].Load() != Unset
}

// Count returns the number of finalized vertices. It is a point-in-time
// scan and may lag concurrent writers.
func (t *Table) Count() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].Load() != Unset {
			n++
		}
	}
	return n
}

// Reached returns the set of finalized vertices.
func (t *Table) Reached() *roaring.Bitmap {
	rb := roaring.New()
	for i := range t.slots {
		if t.slots[i].Load() != Unset {
			rb.Add(uint32(i))
		}
	}
	rb.RunOptimize()
	return rb
}

// Distances copies every slot into a plain slice.
func (t *Table) Distances() []int64 {
	out := make([]int64, len(t.slots))
	for i := range t.slots {
		out[i] = t.slots[i].Load()
	}
	return out
}
