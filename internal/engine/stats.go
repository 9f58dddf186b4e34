package engine

import "sync/atomic"

// Stats summarizes one search run.
//
// Work is counted in package units (one settle unit per discovered vertex
// plus one unit per out-edge). When a run is not cut short,
// UnitsInserted == UnitsProcessed + UnitsSkipped.
type Stats struct {
	UnitsInserted  int64
	UnitsProcessed int64
	UnitsSkipped   int64 // stale pieces dropped on dequeue
	Expansions     int64 // out-edges scanned
	Packages       int64 // vertex packages created
	Settled        int64 // vertices finalized by this run
	Batches        int64
	Splits         int64
	ParallelForks  int64
	InlineForks    int64
	PeakMemory     int64 // bytes reserved for table and frontiers
}

type counters struct {
	unitsInserted  atomic.Int64
	unitsProcessed atomic.Int64
	unitsSkipped   atomic.Int64
	expansions     atomic.Int64
	settled        atomic.Int64
	batches        atomic.Int64
	splits         atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		UnitsInserted:  c.unitsInserted.Load(),
		UnitsProcessed: c.unitsProcessed.Load(),
		UnitsSkipped:   c.unitsSkipped.Load(),
		Expansions:     c.expansions.Load(),
		Settled:        c.settled.Load(),
		Batches:        c.batches.Load(),
		Splits:         c.splits.Load(),
	}
}
