package pwsa

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/pwsa/graph"
	"github.com/hupe1980/pwsa/internal/engine"
	"github.com/hupe1980/pwsa/internal/finalized"
)

const tracerName = "github.com/hupe1980/pwsa"

// Vertex identifies a graph vertex.
type Vertex = graph.Vertex

// Unset is the distance reported for vertices a search did not reach.
const Unset = finalized.Unset

// Policy selects how the frontier key combines the heuristic estimate h(v)
// with the path cost g(v).
type Policy = engine.Policy

const (
	// PolicyAStar orders by g + h.
	PolicyAStar = engine.PolicyAStar
	// PolicyUniform orders by g alone and ignores the heuristic.
	PolicyUniform = engine.PolicyUniform
	// PolicyGreedy orders by h alone.
	PolicyGreedy = engine.PolicyGreedy
)

// Stats summarizes the work of one search.
type Stats = engine.Stats

// Result holds the finalized distances of a search.
//
// Distances follow "first finalized wins": a vertex keeps the distance of
// the first package that settled it. They are shortest distances under
// PolicyUniform, or under PolicyAStar with a consistent heuristic, when the
// search ran without splits; a split search may finalize a vertex through a
// longer path that another branch reached first.
type Result struct {
	Source      Vertex
	Destination Vertex
	Stats       Stats
	Duration    time.Duration

	table *finalized.Table
}

// Len returns the number of vertices of the searched graph.
func (r *Result) Len() int { return r.table.Len() }

// Distance returns the finalized distance of v and whether v was reached.
func (r *Result) Distance(v Vertex) (int64, bool) {
	if int(v) >= r.table.Len() {
		return Unset, false
	}
	d := r.table.Load(v)
	return d, d != Unset
}

// DestinationDistance returns the distance of the destination vertex and
// whether it was reached.
func (r *Result) DestinationDistance() (int64, bool) {
	return r.Distance(r.Destination)
}

// Reached returns the set of finalized vertices.
func (r *Result) Reached() *roaring.Bitmap {
	return r.table.Reached()
}

// Distances returns a copy of every distance, Unset for unreached vertices.
func (r *Result) Distances() []int64 {
	return r.table.Distances()
}

type runFunc func(ctx context.Context, g graph.Graph, h graph.Heuristic, source, dest graph.Vertex, cfg engine.Config) (*finalized.Table, engine.Stats, error)

// Search runs the parallel weighted search from source over g, guided by h.
//
// Each branch of the search owns a frontier. When a frontier grows beyond
// the split cutoff, or a branch has done more than the split cutoff of work
// since it last split, the frontier is halved by weight and both halves run
// as parallel branches, subject to the worker limit. Otherwise the branch
// processes up to the poll cutoff of work before deciding again.
//
// The destination is only used for WithStopAtDestination and for
// Result.DestinationDistance; without that option the search finalizes every
// vertex reachable from source.
func Search(ctx context.Context, g graph.Graph, h graph.Heuristic, source, destination Vertex, opts ...Option) (*Result, error) {
	return search(ctx, "pwsa.Search", engine.Run, g, h, source, destination, opts)
}

// SearchSequential runs the single-goroutine baseline: weighted A* over a
// binary heap with the same key policy as Search. Split and poll cutoffs and
// the worker count are ignored. With PolicyUniform it computes exact
// shortest distances.
func SearchSequential(ctx context.Context, g graph.Graph, h graph.Heuristic, source, destination Vertex, opts ...Option) (*Result, error) {
	return search(ctx, "pwsa.SearchSequential", engine.RunSequential, g, h, source, destination, opts)
}

func search(ctx context.Context, spanName string, run runFunc, g graph.Graph, h graph.Heuristic, source, destination Vertex, optFns []Option) (*Result, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := validateArgs(g, h, source, destination); err != nil {
		return nil, err
	}

	ctx, span := o.tracerProvider.Tracer(tracerName).Start(ctx, spanName,
		trace.WithAttributes(
			attribute.Int("pwsa.vertices", g.NumberVertices()),
			attribute.Int64("pwsa.source", int64(source)),
			attribute.Int64("pwsa.destination", int64(destination)),
			attribute.String("pwsa.policy", o.policy.String()),
			attribute.Int64("pwsa.split_cutoff", o.splitCutoff),
			attribute.Int64("pwsa.poll_cutoff", o.pollCutoff),
			attribute.Int("pwsa.workers", o.workers),
		),
	)
	defer span.End()

	log := o.logger.WithSearch(source, destination).WithWorkers(o.workers)

	start := time.Now()
	table, stats, err := run(ctx, g, h, source, destination, o.engineConfig(log))
	duration := time.Since(start)
	err = translateError(err)

	o.metricsCollector.RecordSearch(duration, stats.Settled, err)
	log.LogSearch(ctx, stats, duration, err)

	span.SetAttributes(
		attribute.Int64("pwsa.settled", stats.Settled),
		attribute.Int64("pwsa.splits", stats.Splits),
		attribute.Int64("pwsa.parallel_forks", stats.ParallelForks),
		attribute.Int64("pwsa.units_skipped", stats.UnitsSkipped),
		attribute.Int64("pwsa.peak_memory", stats.PeakMemory),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res := &Result{
		Source:      source,
		Destination: destination,
		Stats:       stats,
		Duration:    duration,
		table:       table,
	}
	if d, ok := res.DestinationDistance(); ok {
		span.SetAttributes(attribute.Int64("pwsa.destination_distance", d))
	}
	return res, nil
}

func validateArgs(g graph.Graph, h graph.Heuristic, source, destination Vertex) error {
	if g == nil {
		return fmt.Errorf("%w: nil graph", ErrInvalidArgument)
	}
	if h == nil {
		return fmt.Errorf("%w: nil heuristic", ErrInvalidArgument)
	}
	n := g.NumberVertices()
	if int(source) >= n {
		return &ErrVertexOutOfRange{Role: "source", Vertex: source, NumberVertices: n}
	}
	if int(destination) >= n {
		return &ErrVertexOutOfRange{Role: "destination", Vertex: destination, NumberVertices: n}
	}
	return nil
}
