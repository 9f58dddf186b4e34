// Package frontier holds the pending vertex packages of one search branch,
// ordered by priority and divisible by total weight.
package frontier

import (
	"github.com/hupe1980/pwsa/internal/treap"
)

// EntryBytes approximates the heap footprint of one frontier entry (treap
// node plus package) for memory accounting.
const EntryBytes = 96

// Compile time check to ensure Package satisfies the treap value contract.
var _ treap.Splittable[Package] = Package{}

// Frontier is a priority container of vertex packages backed by a weighted
// treap. It is owned by a single branch; SplitAt transfers part of it to
// another Frontier that shares no nodes with this one.
type Frontier struct {
	t treap.Treap[Package]
}

// New returns an empty frontier.
func New() *Frontier {
	return &Frontier{}
}

// Insert adds pkg under key. Packages without work are dropped.
func (f *Frontier) Insert(key int64, pkg Package) {
	f.t.Insert(key, pkg)
}

// DeleteMin removes the package with the smallest key. The caller must check
// TotalWeight() > 0 first; an empty frontier panics.
func (f *Frontier) DeleteMin() (int64, Package) {
	return f.t.DeleteMin()
}

// TotalWeight returns the number of work units pending in the frontier.
func (f *Frontier) TotalWeight() int64 { return f.t.TotalWeight() }

// Len returns the number of entries.
func (f *Frontier) Len() int { return f.t.Len() }

// SplitAt keeps the lowest-priority prefix of weight w and moves the rest
// into other.
func (f *Frontier) SplitAt(w int64, other *Frontier) {
	f.t.SplitAt(w, &other.t)
}

// Merge moves all packages of other into f.
func (f *Frontier) Merge(other *Frontier) {
	f.t.Merge(&other.t)
}

// Check verifies the underlying treap invariants.
func (f *Frontier) Check() error {
	return f.t.Check()
}
