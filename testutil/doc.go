// Package testutil provides testing utilities for pwsa.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random graphs, computing exact
// shortest distances, and verifying search results.
//
// # Random Graph Generation
//
//	rng := testutil.NewRNG(seed)
//	g := rng.ConnectedGraph(1000, 4, 1, 9) // every vertex reachable from 0
//
// # Exact Distances (Ground Truth)
//
//	exact := testutil.ShortestPaths(g, 0)
//
// # Result Verification
//
//	err := testutil.CheckDistances(g, 0, res.Distances())
//	optimal := testutil.Optimality(res.Distances(), exact)
package testutil
