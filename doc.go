// Package pwsa implements a parallel weighted search (A*-style) over a
// splittable frontier.
//
// The frontier of each search branch is a weighted treap of vertex packages.
// A package covers a range of work units of one discovered vertex: unit 0
// settles the vertex, unit i relaxes its out-edge i-1. Because the treap can
// be divided by total weight, a branch holding too much work hands half of
// it to a second branch, and both continue independently. Branches share
// only a write-once table of finalized distances.
//
// # Quick Start
//
//	gr := graph.Grid{Rows: 512, Cols: 512}
//	g := gr.Build(graph.RandomWeights(1, 1, 9))
//	dst := gr.Vertex(511, 511)
//
//	res, err := pwsa.Search(ctx, g, gr.Manhattan(dst, 1), 0, dst,
//	    pwsa.WithSplitCutoff(2048),
//	    pwsa.WithPollCutoff(128),
//	    pwsa.WithStopAtDestination(),
//	)
//	if err != nil {
//	    return err
//	}
//	d, ok := res.DestinationDistance()
//
// # Granularity
//
// Two cutoffs control task granularity:
//
//   - the split cutoff is the frontier weight (or the work done since the
//     last split) above which a branch forks
//   - the poll cutoff bounds one sequential batch between decisions
//
// Forks take a worker slot when one is free and run inline otherwise, so
// WithWorkers bounds the goroutines of a search.
//
// # Results
//
// A vertex keeps the distance of the first package that finalized it. Stale
// packages for an already finalized vertex are skipped when dequeued. With
// splits, a branch may finalize a vertex through a longer path before another
// branch reaches it through a shorter one, so parallel results are not
// guaranteed optimal. SearchSequential provides the exact baseline.
//
// # Snapshots
//
// The snapshot package stores the distances of a Result in a compact,
// compressed binary form.
package pwsa
