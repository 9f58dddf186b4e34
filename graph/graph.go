// Package graph defines the read-only graph contract consumed by the search
// engine and ships an immutable CSR (compressed sparse row) implementation.
//
// The engine only ever reads a Graph, from many goroutines at once, so every
// implementation must be safe for concurrent readers. CSR is.
package graph

import (
	"errors"
	"fmt"
)

// Vertex identifies a vertex; valid ids are 0..NumberVertices()-1.
type Vertex = uint32

// Graph is a directed graph with non-negative int64 edge weights.
type Graph interface {
	// NumberVertices returns the vertex count.
	NumberVertices() int

	// OutDegree returns the number of out-edges of v.
	OutDegree(v Vertex) int

	// ForEachOutNeighbor calls fn for out-edges lo..hi-1 of v, in order.
	ForEachOutNeighbor(v Vertex, lo, hi int, fn func(u Vertex, weight int64))
}

// Heuristic estimates the remaining cost from a vertex. It must be pure:
// deterministic and free of shared mutable state.
type Heuristic func(v Vertex) int64

// Zero is the heuristic that always returns 0.
func Zero(Vertex) int64 { return 0 }

var (
	// ErrNegativeWeight is returned when an edge weight is below zero.
	ErrNegativeWeight = errors.New("graph: negative edge weight")

	// ErrVertexOutOfRange is returned for an edge endpoint outside the vertex set.
	ErrVertexOutOfRange = errors.New("graph: vertex out of range")
)

// Edge is a weighted directed edge.
type Edge struct {
	From, To Vertex
	Weight   int64
}

func (e Edge) String() string {
	return fmt.Sprintf("%d->%d(%d)", e.From, e.To, e.Weight)
}
