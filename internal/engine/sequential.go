package engine

import (
	"context"
	"fmt"

	"github.com/hupe1980/pwsa/graph"
	"github.com/hupe1980/pwsa/internal/finalized"
	"github.com/hupe1980/pwsa/internal/queue"
	"github.com/hupe1980/pwsa/internal/resource"
	"github.com/hupe1980/pwsa/internal/visited"
)

// ctxCheckInterval is how many pops the sequential search performs between
// context checks.
const ctxCheckInterval = 1024

// RunSequential is the single-goroutine baseline: a textbook weighted A*
// over a binary heap with a closed set, using the same key policy as Run.
// Work counters use the same units as Run so both can be compared.
func RunSequential(ctx context.Context, g graph.Graph, h graph.Heuristic, source, dest graph.Vertex, cfg Config) (*finalized.Table, Stats, error) {
	cfg = cfg.withDefaults()

	rc := resource.NewController(resource.Config{MemoryLimitBytes: cfg.MemoryLimit})
	n := g.NumberVertices()
	tableBytes := finalized.SizeBytes(n)
	if err := rc.AcquireMemory(tableBytes); err != nil {
		return nil, Stats{}, fmt.Errorf("distance table for %d vertices: %w", n, err)
	}
	defer rc.ReleaseMemory(tableBytes)

	keys := keyer{policy: cfg.Policy, weight: cfg.HeuristicWeight}
	table := finalized.New(n)
	closed := visited.New(n)
	pq := queue.New(1024)

	var stats Stats
	push := func(v graph.Vertex, d int64) {
		pq.Push(v, d, keys.key(h(v), d))
		stats.UnitsInserted += int64(g.OutDegree(v)) + 1
		stats.Packages++
	}
	push(source, 0)

	for pops := 0; pq.Len() > 0; pops++ {
		if pops%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
			stats.Batches++
		}

		item, _ := pq.Pop()
		v := item.Vertex
		units := int64(g.OutDegree(v)) + 1
		if !closed.Visit(v) {
			stats.UnitsSkipped += units
			continue
		}
		stats.UnitsProcessed += units

		table.TryFinalize(v, item.Distance)
		stats.Settled++
		if cfg.StopAtDestination && v == dest {
			break
		}

		g.ForEachOutNeighbor(v, 0, g.OutDegree(v), func(u graph.Vertex, e int64) {
			stats.Expansions++
			if closed.Visited(u) {
				return
			}
			push(u, item.Distance+e)
		})
	}

	stats.PeakMemory = rc.PeakMemory()
	return table, stats, nil
}
