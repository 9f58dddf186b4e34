package frontier

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pwsa/graph"
)

// ErrBadSplit is the panic value of Package.SplitAt for weights outside [0, Weight()].
var ErrBadSplit = errors.New("frontier: package split out of range")

// Package is a splittable unit of pending work for one vertex.
//
// The work is a half-open range [Lo, Hi) of units. Unit 0 settles the vertex
// (finalizes its distance) and unit i >= 1 relaxes out-edge i-1. A freshly
// discovered vertex of out-degree d is the package [0, d+1). Splitting a
// package cuts the range; both halves keep ID, Vertex and DistanceTo.
type Package struct {
	ID         uint64 // identifies the package across splits; 0 is unassigned
	Vertex     graph.Vertex
	DistanceTo int64
	Lo, Hi     int
}

// NewPackage returns the full package for v reached at distance d.
func NewPackage(v graph.Vertex, d int64, outDegree int) Package {
	return Package{Vertex: v, DistanceTo: d, Lo: 0, Hi: outDegree + 1}
}

// Weight returns the number of units left in the package.
func (p Package) Weight() int64 { return int64(p.Hi - p.Lo) }

// Edges returns the out-edge index range [lo, hi) covered by p.
func (p Package) Edges() (lo, hi int) {
	lo = p.Lo - 1
	if lo < 0 {
		lo = 0
	}
	hi = p.Hi - 1
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// SplitAt returns the first w units as head and the rest as tail.
func (p Package) SplitAt(w int64) (head, tail Package) {
	if w < 0 || w > p.Weight() {
		panic(fmt.Errorf("%w: %d of %d", ErrBadSplit, w, p.Weight()))
	}
	mid := p.Lo + int(w)
	head, tail = p, p
	head.Hi = mid
	tail.Lo = mid
	return head, tail
}

func (p Package) String() string {
	return fmt.Sprintf("pkg#%d{v=%d d=%d [%d,%d)}", p.ID, p.Vertex, p.DistanceTo, p.Lo, p.Hi)
}
