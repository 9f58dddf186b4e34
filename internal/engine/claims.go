package engine

import (
	"sync/atomic"

	"github.com/hupe1980/pwsa/graph"
)

// noOwner marks a vertex no package has claimed yet. Package ids start at 1.
const noOwner = 0

// claims records, per vertex, the id of the package that owns it. The owner
// is the only package allowed to finalize the vertex and relax its edges, so
// every vertex is expanded once no matter how many packages reach it.
type claims struct {
	owner []atomic.Uint64
}

func newClaims(n int) *claims {
	return &claims{owner: make([]atomic.Uint64, n)}
}

func claimsSizeBytes(n int) int64 { return int64(n) * 8 }

// claim reports whether the package id owns v, taking ownership if v is
// still unclaimed.
func (c *claims) claim(v graph.Vertex, id uint64) bool {
	slot := &c.owner[v]
	if cur := slot.Load(); cur != noOwner {
		return cur == id
	}
	if slot.CompareAndSwap(noOwner, id) {
		return true
	}
	return slot.Load() == id
}

// taken reports whether some package owns v.
func (c *claims) taken(v graph.Vertex) bool {
	return c.owner[v].Load() != noOwner
}
