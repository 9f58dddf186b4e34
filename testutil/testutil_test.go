package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pwsa/graph"
)

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.IntN(1 << 30)
	rng.Reset()
	assert.Equal(t, a, rng.IntN(1<<30))
	assert.Equal(t, uint64(42), rng.Seed())
}

func TestConnectedGraph(t *testing.T) {
	g := NewRNG(1).ConnectedGraph(500, 3, 1, 9)
	assert.Equal(t, 500, g.NumberVertices())
	assert.Equal(t, 499+500*2, g.NumberEdges())

	for v, d := range ShortestPaths(g, 0) {
		assert.GreaterOrEqual(t, d, int64(0), "vertex %d", v)
	}
}

func TestShortestPaths(t *testing.T) {
	g := graph.NewBuilder(5).
		AddEdge(0, 1, 4).
		AddEdge(0, 2, 1).
		AddEdge(2, 1, 2).
		AddEdge(1, 3, 1).
		MustBuild()

	assert.Equal(t, []int64{0, 3, 1, 4, -1}, ShortestPaths(g, 0))
}

func TestCheckDistances(t *testing.T) {
	g := graph.NewBuilder(4).
		AddEdge(0, 1, 4).
		AddEdge(0, 2, 1).
		AddEdge(2, 1, 2).
		MustBuild()

	require.NoError(t, CheckDistances(g, 0, []int64{0, 3, 1, -1}))
	// First-finalized wins: 1 via the direct, longer edge is still consistent.
	require.NoError(t, CheckDistances(g, 0, []int64{0, 4, 1, -1}))

	assert.Error(t, CheckDistances(g, 0, []int64{1, 3, 1, -1}), "source not at 0")
	assert.Error(t, CheckDistances(g, 0, []int64{0, -1, 1, -1}), "reachable missing")
	assert.Error(t, CheckDistances(g, 0, []int64{0, 3, 1, 7}), "unreachable reached")
	assert.Error(t, CheckDistances(g, 0, []int64{0, 2, 1, -1}), "below shortest")
	assert.Error(t, CheckDistances(g, 0, []int64{0, 5, 1, -1}), "unexplained")
}

func TestOptimality(t *testing.T) {
	exact := []int64{0, 3, 1, -1}
	assert.InDelta(t, 1.0, Optimality(exact, exact), 1e-9)
	assert.InDelta(t, 2.0/3.0, Optimality([]int64{0, 4, 1, -1}, exact), 1e-9)
	assert.InDelta(t, 1.0, Optimality([]int64{-1, -1, -1, -1}, exact), 1e-9)
}
