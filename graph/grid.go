package graph

import "math/rand/v2"

// Grid describes a rows x cols 4-connected grid graph. Vertex ids are
// row-major: id = r*Cols + c.
type Grid struct {
	Rows, Cols int
}

// Vertex returns the id of cell (r, c).
func (gr Grid) Vertex(r, c int) Vertex { return Vertex(r*gr.Cols + c) }

// Cell returns the (row, col) of v.
func (gr Grid) Cell(v Vertex) (int, int) { return int(v) / gr.Cols, int(v) % gr.Cols }

// Build creates the grid with every edge weight drawn from weight. A nil
// weight gives unit edges.
func (gr Grid) Build(weight func() int64) *CSR {
	if weight == nil {
		weight = func() int64 { return 1 }
	}
	b := NewBuilder(gr.Rows * gr.Cols)
	for r := 0; r < gr.Rows; r++ {
		for c := 0; c < gr.Cols; c++ {
			v := gr.Vertex(r, c)
			if c+1 < gr.Cols {
				b.AddUndirected(v, gr.Vertex(r, c+1), weight())
			}
			if r+1 < gr.Rows {
				b.AddUndirected(v, gr.Vertex(r+1, c), weight())
			}
		}
	}
	return b.MustBuild()
}

// RandomWeights returns a weight generator over [lo, hi] seeded for
// reproducible grids.
func RandomWeights(seed uint64, lo, hi int64) func() int64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func() int64 { return lo + rng.Int64N(hi-lo+1) }
}

// Manhattan returns the L1 distance heuristic towards target, scaled by
// minWeight. It is admissible when every edge weighs at least minWeight.
func (gr Grid) Manhattan(target Vertex, minWeight int64) Heuristic {
	tr, tc := gr.Cell(target)
	return func(v Vertex) int64 {
		r, c := gr.Cell(v)
		dr, dc := r-tr, c-tc
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		return int64(dr+dc) * minWeight
	}
}
