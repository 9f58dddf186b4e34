package graph

import (
	"fmt"
	"slices"

	"github.com/hupe1980/pwsa/internal/conv"
)

// Compile time check to ensure CSR satisfies Graph.
var _ Graph = (*CSR)(nil)

// CSR is an immutable directed graph in compressed sparse row form.
type CSR struct {
	firstOut []uint32 // len: n+1; firstOut[v]..firstOut[v+1] are edges from v
	head     []Vertex // len: m; target of each edge
	weight   []int64  // len: m
}

// NumberVertices implements Graph.
func (g *CSR) NumberVertices() int { return len(g.firstOut) - 1 }

// NumberEdges returns the edge count.
func (g *CSR) NumberEdges() int { return len(g.head) }

// OutDegree implements Graph.
func (g *CSR) OutDegree(v Vertex) int {
	return int(g.firstOut[v+1] - g.firstOut[v])
}

// ForEachOutNeighbor implements Graph.
func (g *CSR) ForEachOutNeighbor(v Vertex, lo, hi int, fn func(u Vertex, weight int64)) {
	start := int(g.firstOut[v])
	for i := start + lo; i < start+hi; i++ {
		fn(g.head[i], g.weight[i])
	}
}

// Edges returns every edge in CSR order.
func (g *CSR) Edges() []Edge {
	out := make([]Edge, 0, len(g.head))
	for v := 0; v < g.NumberVertices(); v++ {
		for i := g.firstOut[v]; i < g.firstOut[v+1]; i++ {
			out = append(out, Edge{From: Vertex(v), To: g.head[i], Weight: g.weight[i]})
		}
	}
	return out
}

// Builder accumulates edges for a CSR graph.
type Builder struct {
	n     int
	edges []Edge
	err   error
}

// NewBuilder returns a builder for a graph with n vertices.
func NewBuilder(n int) *Builder {
	return &Builder{n: n}
}

// AddEdge adds the directed edge from->to. The first invalid edge is reported
// by Build.
func (b *Builder) AddEdge(from, to Vertex, weight int64) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case weight < 0:
		b.err = fmt.Errorf("%w: %d->%d weight %d", ErrNegativeWeight, from, to, weight)
	case int(from) >= b.n || int(to) >= b.n:
		b.err = fmt.Errorf("%w: %d->%d with %d vertices", ErrVertexOutOfRange, from, to, b.n)
	default:
		b.edges = append(b.edges, Edge{From: from, To: to, Weight: weight})
	}
	return b
}

// AddUndirected adds both u->v and v->u.
func (b *Builder) AddUndirected(u, v Vertex, weight int64) *Builder {
	return b.AddEdge(u, v, weight).AddEdge(v, u, weight)
}

// Build freezes the accumulated edges. Out-edges of each vertex keep their
// insertion order.
func (b *Builder) Build() (*CSR, error) {
	if b.err != nil {
		return nil, b.err
	}
	if _, err := conv.IntToUint32(b.n); err != nil {
		return nil, fmt.Errorf("graph: vertex count: %w", err)
	}
	if _, err := conv.IntToUint32(len(b.edges)); err != nil {
		return nil, fmt.Errorf("graph: edge count: %w", err)
	}

	edges := slices.Clone(b.edges)
	slices.SortStableFunc(edges, func(x, y Edge) int {
		return int(x.From) - int(y.From)
	})

	g := &CSR{
		firstOut: make([]uint32, b.n+1),
		head:     make([]Vertex, len(edges)),
		weight:   make([]int64, len(edges)),
	}
	for _, e := range edges {
		g.firstOut[e.From+1]++
	}
	for v := 0; v < b.n; v++ {
		g.firstOut[v+1] += g.firstOut[v]
	}
	for i, e := range edges {
		g.head[i] = e.To
		g.weight[i] = e.Weight
	}
	return g, nil
}

// MustBuild is Build for static fixtures; it panics on error.
func (b *Builder) MustBuild() *CSR {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
