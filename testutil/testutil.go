package testutil

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/pwsa/graph"
)

// unreached mirrors the distance of vertices a search did not finalize.
const unreached = -1

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Int64Range returns a pseudo-random number in [lo,hi].
func (r *RNG) Int64Range(lo, hi int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rand.Int64N(hi-lo+1)
}

// RandomGraph returns a directed graph with n vertices and about
// n*avgDegree edges between uniformly chosen endpoints, with weights in
// [minW, maxW].
func (r *RNG) RandomGraph(n, avgDegree int, minW, maxW int64) *graph.CSR {
	b := graph.NewBuilder(n)
	if n == 0 {
		return b.MustBuild()
	}
	for range n * avgDegree {
		b.AddEdge(graph.Vertex(r.IntN(n)), graph.Vertex(r.IntN(n)), r.Int64Range(minW, maxW))
	}
	return b.MustBuild()
}

// ConnectedGraph is RandomGraph plus a random spanning tree rooted at vertex
// 0, so every vertex is reachable from 0.
func (r *RNG) ConnectedGraph(n, avgDegree int, minW, maxW int64) *graph.CSR {
	b := graph.NewBuilder(n)
	for v := 1; v < n; v++ {
		b.AddEdge(graph.Vertex(r.IntN(v)), graph.Vertex(v), r.Int64Range(minW, maxW))
	}
	for range n * (avgDegree - 1) {
		b.AddEdge(graph.Vertex(r.IntN(n)), graph.Vertex(r.IntN(n)), r.Int64Range(minW, maxW))
	}
	return b.MustBuild()
}

// ShortestPaths computes exact distances from source by Bellman-Ford
// relaxation. Unreachable vertices get -1.
func ShortestPaths(g graph.Graph, source graph.Vertex) []int64 {
	n := g.NumberVertices()
	dist := make([]int64, n)
	for i := range dist {
		dist[i] = unreached
	}
	dist[source] = 0

	for changed := true; changed; {
		changed = false
		for v := range n {
			dv := dist[v]
			if dv == unreached {
				continue
			}
			g.ForEachOutNeighbor(graph.Vertex(v), 0, g.OutDegree(graph.Vertex(v)), func(u graph.Vertex, w int64) {
				if d := dv + w; dist[u] == unreached || d < dist[u] {
					dist[u] = d
					changed = true
				}
			})
		}
	}
	return dist
}

// CheckDistances verifies a complete search result: the source is at 0,
// exactly the vertices reachable from source are reached, no distance is
// below the shortest one, and every reached vertex other than the source has
// a reached predecessor u with dist[u] + w(u, v) == dist[v].
func CheckDistances(g graph.Graph, source graph.Vertex, dist []int64) error {
	n := g.NumberVertices()
	if len(dist) != n {
		return fmt.Errorf("got %d distances for %d vertices", len(dist), n)
	}
	if dist[source] != 0 {
		return fmt.Errorf("source %d at distance %d", source, dist[source])
	}

	explained := make([]bool, n)
	explained[source] = true
	for v := range n {
		dv := dist[v]
		if dv == unreached {
			continue
		}
		g.ForEachOutNeighbor(graph.Vertex(v), 0, g.OutDegree(graph.Vertex(v)), func(u graph.Vertex, w int64) {
			if dist[u] != unreached && dv+w == dist[u] {
				explained[u] = true
			}
		})
	}

	exact := ShortestPaths(g, source)
	for v := range n {
		switch {
		case exact[v] == unreached && dist[v] != unreached:
			return fmt.Errorf("unreachable vertex %d at distance %d", v, dist[v])
		case exact[v] != unreached && dist[v] == unreached:
			return fmt.Errorf("reachable vertex %d not reached", v)
		case dist[v] != unreached && dist[v] < exact[v]:
			return fmt.Errorf("vertex %d at %d, below shortest distance %d", v, dist[v], exact[v])
		case dist[v] != unreached && !explained[v]:
			return fmt.Errorf("vertex %d at %d has no finalized predecessor", v, dist[v])
		}
	}
	return nil
}

// Optimality returns the fraction of reached vertices whose distance equals
// the exact one.
func Optimality(dist, exact []int64) float64 {
	var reached, optimal int
	for v, d := range dist {
		if d == unreached {
			continue
		}
		reached++
		if d == exact[v] {
			optimal++
		}
	}
	if reached == 0 {
		return 1
	}
	return float64(optimal) / float64(reached)
}
