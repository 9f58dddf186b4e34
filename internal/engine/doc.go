// Package engine implements the search drivers.
//
// Run is the parallel driver. Each branch owns a frontier of vertex packages
// and repeatedly decides between three moves:
//   - finish, when its frontier holds no work
//   - split, when the frontier or the work done since the last split exceeds
//     the split cutoff; the upper half of the frontier by weight is handed to
//     a second branch through sched.Pool.Fork2
//   - run a sequential batch of at most the poll cutoff units
//
// Branches share the finalized-distance table and a claim per vertex. The
// first package dequeued for a vertex claims it; only pieces of that package
// finalize the vertex and relax its edges, even when a frontier split has
// moved some of those pieces to another branch. Pieces of every other
// package for the vertex are dropped as stale on dequeue, so each vertex is
// expanded exactly once.
//
// RunSequential is the single-goroutine baseline over a binary heap.
package engine
