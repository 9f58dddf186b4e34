package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pwsa/internal/conv"
)

func collect(g Graph, v Vertex, lo, hi int) []Edge {
	var out []Edge
	g.ForEachOutNeighbor(v, lo, hi, func(u Vertex, w int64) {
		out = append(out, Edge{From: v, To: u, Weight: w})
	})
	return out
}

func TestBuilder_CSR(t *testing.T) {
	g, err := NewBuilder(4).
		AddEdge(2, 3, 7).
		AddEdge(0, 1, 1).
		AddEdge(0, 2, 4).
		AddEdge(1, 2, 2).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 4, g.NumberVertices())
	assert.Equal(t, 4, g.NumberEdges())
	assert.Equal(t, 2, g.OutDegree(0))
	assert.Equal(t, 0, g.OutDegree(3))

	assert.Equal(t, []Edge{{0, 1, 1}, {0, 2, 4}}, collect(g, 0, 0, 2))
	assert.Equal(t, []Edge{{0, 2, 4}}, collect(g, 0, 1, 2))
	assert.Empty(t, collect(g, 3, 0, 0))
	assert.Len(t, g.Edges(), 4)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := NewBuilder(2).AddEdge(0, 1, -1).Build()
	assert.ErrorIs(t, err, ErrNegativeWeight)

	_, err = NewBuilder(2).AddEdge(0, 2, 1).AddEdge(0, 1, 1).Build()
	assert.ErrorIs(t, err, ErrVertexOutOfRange)

	assert.Panics(t, func() { NewBuilder(1).AddEdge(0, 0, -5).MustBuild() })

	_, err = NewBuilder(-1).Build()
	assert.ErrorIs(t, err, conv.ErrOverflow)
}

func TestGrid(t *testing.T) {
	gr := Grid{Rows: 3, Cols: 4}
	g := gr.Build(nil)

	assert.Equal(t, 12, g.NumberVertices())
	// 3 rows * 3 horizontal + 2 * 4 vertical, both directions.
	assert.Equal(t, 2*(9+8), g.NumberEdges())

	corner := gr.Vertex(0, 0)
	center := gr.Vertex(1, 1)
	assert.Equal(t, 2, g.OutDegree(corner))
	assert.Equal(t, 4, g.OutDegree(center))

	r, c := gr.Cell(gr.Vertex(2, 3))
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	h := gr.Manhattan(gr.Vertex(2, 3), 2)
	assert.Equal(t, int64(10), h(corner))
	assert.Equal(t, int64(0), h(gr.Vertex(2, 3)))
}

func TestRandomWeights_Reproducible(t *testing.T) {
	a := RandomWeights(42, 1, 9)
	b := RandomWeights(42, 1, 9)
	for i := 0; i < 100; i++ {
		x := a()
		assert.Equal(t, x, b())
		assert.GreaterOrEqual(t, x, int64(1))
		assert.LessOrEqual(t, x, int64(9))
	}
}
