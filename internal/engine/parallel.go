package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/pwsa/graph"
	"github.com/hupe1980/pwsa/internal/finalized"
	"github.com/hupe1980/pwsa/internal/frontier"
	"github.com/hupe1980/pwsa/internal/resource"
	"github.com/hupe1980/pwsa/internal/sched"
)

type decision int

const (
	decisionDone decision = iota
	decisionSequential
	decisionSplit
)

// search is the state shared by every branch of one parallel run. Only the
// table, the counters and the done flag are written concurrently.
type search struct {
	ctx   context.Context
	g     graph.Graph
	h     graph.Heuristic
	dest  graph.Vertex
	cfg   Config
	keys  keyer
	table  *finalized.Table
	claims *claims
	rc     *resource.Controller
	pool  *sched.Pool

	workSinceSplit *sched.PerWorker[int64]
	packages       *sched.PerWorker[uint64]

	stats    counters
	done     atomic.Bool
	progress *rate.Sometimes
	log      *slog.Logger
}

// Run executes the parallel weighted search from source and returns the
// finalized-distance table.
func Run(ctx context.Context, g graph.Graph, h graph.Heuristic, source, dest graph.Vertex, cfg Config) (*finalized.Table, Stats, error) {
	cfg = cfg.withDefaults()

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: cfg.MemoryLimit,
		MaxWorkers:       cfg.Workers,
	})

	n := g.NumberVertices()
	tableBytes := finalized.SizeBytes(n) + claimsSizeBytes(n)
	if err := rc.AcquireMemory(tableBytes); err != nil {
		return nil, Stats{}, fmt.Errorf("distance table for %d vertices: %w", n, err)
	}
	defer rc.ReleaseMemory(tableBytes)

	s := &search{
		ctx:            ctx,
		g:              g,
		h:              h,
		dest:           dest,
		cfg:            cfg,
		keys:           keyer{policy: cfg.Policy, weight: cfg.HeuristicWeight},
		table:          finalized.New(n),
		claims:         newClaims(n),
		rc:             rc,
		pool:           sched.NewPool(rc),
		workSinceSplit: sched.NewPerWorker[int64](cfg.Workers, 0),
		packages:       sched.NewPerWorker[uint64](cfg.Workers, 0),
		progress:       &rate.Sometimes{Interval: cfg.ProgressInterval},
		log:            cfg.Logger,
	}

	s.log.Debug("parallel search started",
		"workers", s.pool.Workers(),
		"memory_limit", rc.MemoryLimit(),
		"split_cutoff", cfg.SplitCutoff,
		"poll_cutoff", cfg.PollCutoff,
	)

	f := frontier.New()
	start := s.newPackage(0, source, 0)
	f.Insert(s.priority(source, 0), start)
	s.stats.unitsInserted.Add(start.Weight())

	err := s.run(0, f)

	stats := s.stats.snapshot()
	s.packages.Each(func(_ sched.Worker, created *uint64) {
		stats.Packages += int64(*created)
	})
	stats.ParallelForks, stats.InlineForks = s.pool.ForkStats()
	stats.PeakMemory = rc.PeakMemory()
	if err != nil {
		return nil, stats, err
	}
	return s.table, stats, nil
}

func (s *search) priority(v graph.Vertex, d int64) int64 {
	return s.keys.key(s.h(v), d)
}

// newPackage creates the full package for v at distance d. Ids interleave
// per worker, so workers mint them without sharing a counter.
func (s *search) newPackage(w sched.Worker, v graph.Vertex, d int64) frontier.Package {
	created := s.packages.Mine(w)
	pkg := frontier.NewPackage(v, d, s.g.OutDegree(v))
	pkg.ID = *created*uint64(s.packages.Len()) + uint64(w) + 1
	*created++
	return pkg
}

// run drives one branch until its frontier is empty or it forks.
func (s *search) run(w sched.Worker, f *frontier.Frontier) error {
	var b budget
	b.rc = s.rc
	defer b.release()

	if err := b.sync(f.Len()); err != nil {
		return err
	}

	for {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		if s.done.Load() {
			return nil
		}

		switch s.decide(w, f) {
		case decisionDone:
			return nil
		case decisionSplit:
			other := frontier.New()
			weight := f.TotalWeight()
			f.SplitAt(weight/2, other)
			*s.workSinceSplit.Mine(w) = 0

			s.stats.splits.Add(1)
			if s.cfg.Observer != nil {
				s.cfg.Observer.RecordSplit(weight)
			}
			s.log.Debug("frontier split", "worker", int(w), "weight", weight, "entries", f.Len()+other.Len())

			// Each half re-reserves its own entries.
			b.release()
			return s.pool.Fork2(w,
				func(w sched.Worker) error { return s.run(w, f) },
				func(w sched.Worker) error { return s.run(w, other) },
			)
		default:
			s.doWork(w, f)
			if err := b.sync(f.Len()); err != nil {
				return err
			}
		}
	}
}

func (s *search) decide(w sched.Worker, f *frontier.Frontier) decision {
	sz := f.TotalWeight()
	ws := s.workSinceSplit.Mine(w)
	if sz == 0 {
		*ws = 0
		return decisionDone
	}
	if sz > s.cfg.SplitCutoff || (*ws > s.cfg.SplitCutoff && sz > 1) {
		return decisionSplit
	}
	return decisionSequential
}

// doWork processes up to PollCutoff units from f.
func (s *search) doWork(w sched.Worker, f *frontier.Frontier) {
	started := time.Now()
	ws := s.workSinceSplit.Mine(w)

	var round, skipped, expansions, inserted, settled int64
	for round < s.cfg.PollCutoff && f.TotalWeight() > 0 {
		_, pkg := f.DeleteMin()
		if !s.claims.claim(pkg.Vertex, pkg.ID) {
			// Another package owns this vertex; drop the whole piece.
			units := pkg.Weight()
			round += units
			*ws += units
			skipped += units
			continue
		}
		if pkg.Weight()+round > s.cfg.PollCutoff {
			head, tail := pkg.SplitAt(s.cfg.PollCutoff - round)
			f.Insert(s.priority(tail.Vertex, tail.DistanceTo), tail)
			pkg = head
		}

		units := pkg.Weight()
		round += units
		*ws += units

		if _, won := s.table.TryFinalize(pkg.Vertex, pkg.DistanceTo); won {
			settled++
			if pkg.Vertex == s.dest {
				s.reachedDestination(pkg.DistanceTo)
			}
		}

		lo, hi := pkg.Edges()
		s.g.ForEachOutNeighbor(pkg.Vertex, lo, hi, func(u graph.Vertex, e int64) {
			expansions++
			if s.claims.taken(u) {
				return
			}
			next := s.newPackage(w, u, pkg.DistanceTo+e)
			f.Insert(s.priority(u, next.DistanceTo), next)
			inserted += next.Weight()
		})
	}

	s.stats.batches.Add(1)
	s.stats.unitsProcessed.Add(round - skipped)
	s.stats.unitsSkipped.Add(skipped)
	s.stats.unitsInserted.Add(inserted)
	s.stats.expansions.Add(expansions)
	s.stats.settled.Add(settled)

	if s.cfg.Observer != nil {
		s.cfg.Observer.RecordBatch(round, time.Since(started))
	}
	s.progress.Do(func() {
		s.log.Debug("search progress",
			"settled", s.stats.settled.Load(),
			"batches", s.stats.batches.Load(),
			"splits", s.stats.splits.Load(),
			"memory", s.rc.MemoryUsage(),
		)
	})
}

func (s *search) reachedDestination(d int64) {
	s.log.Debug("destination finalized", "vertex", s.dest, "distance", d)
	if s.cfg.StopAtDestination {
		s.done.Store(true)
	}
}

// budget mirrors the frontier entries of one branch in the memory
// controller, reserving in chunks to keep the controller off the hot path.
type budget struct {
	rc       *resource.Controller
	reserved int64
}

const budgetChunk = 256 * frontier.EntryBytes

func (b *budget) sync(entries int) error {
	need := int64(entries) * frontier.EntryBytes
	for b.reserved < need {
		if err := b.rc.AcquireMemory(budgetChunk); err != nil {
			return fmt.Errorf("frontier with %d entries: %w", entries, err)
		}
		b.reserved += budgetChunk
	}
	return nil
}

func (b *budget) release() {
	b.rc.ReleaseMemory(b.reserved)
	b.reserved = 0
}
