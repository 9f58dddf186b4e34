package pwsa

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/pwsa/internal/engine"
)

// Default granularity cutoffs.
const (
	DefaultSplitCutoff = engine.DefaultSplitCutoff
	DefaultPollCutoff  = engine.DefaultPollCutoff
)

type options struct {
	splitCutoff       int64
	pollCutoff        int64
	policy            Policy
	heuristicWeight   float64
	stopAtDestination bool
	workers           int
	memoryLimit       int64
	progressInterval  time.Duration
	metricsCollector  MetricsCollector
	logger            *Logger
	tracerProvider    trace.TracerProvider
}

// Option configures a search.
type Option func(*options)

// WithSplitCutoff sets the frontier weight above which a branch divides its
// frontier and forks. Smaller values expose more parallelism at the cost of
// more forks and staler pruning. Must be positive.
func WithSplitCutoff(units int64) Option {
	return func(o *options) {
		o.splitCutoff = units
	}
}

// WithPollCutoff sets the maximum work units of one sequential batch before
// a branch re-evaluates whether to split. Must be positive.
func WithPollCutoff(units int64) Option {
	return func(o *options) {
		o.pollCutoff = units
	}
}

// WithPolicy selects how frontier keys combine the heuristic and the path
// cost. The default is PolicyAStar.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithHeuristicWeight scales the heuristic before it enters the key
// (weighted A*). Must be positive and finite; 1 is plain A*.
func WithHeuristicWeight(eps float64) Option {
	return func(o *options) {
		o.heuristicWeight = eps
	}
}

// WithStopAtDestination ends the search as soon as the destination vertex is
// finalized. Vertices not finalized by then stay unreached in the result.
func WithStopAtDestination() Option {
	return func(o *options) {
		o.stopAtDestination = true
	}
}

// WithWorkers sets the maximum number of goroutines a search may run
// branches on. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMemoryLimit caps the bytes a search may reserve for its distance table
// and frontiers. Exceeding it fails the search with ErrResourceExhausted.
// 0 disables the limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithProgressInterval sets the minimum time between progress log lines
// emitted at debug level while a search runs.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithMetricsCollector configures a metrics collector for monitoring searches.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pwsa.BasicMetricsCollector{}
//	res, _ := pwsa.Search(ctx, g, h, src, dst, pwsa.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Splits: %d, Avg batch: %d units\n", stats.SplitCount, stats.BatchAvgUnits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for searches.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pwsa.NewJSONLogger(slog.LevelDebug)
//	res, _ := pwsa.Search(ctx, g, h, src, dst, pwsa.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used for search
// spans. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		splitCutoff:      DefaultSplitCutoff,
		pollCutoff:       DefaultPollCutoff,
		policy:           PolicyAStar,
		heuristicWeight:  1,
		workers:          runtime.GOMAXPROCS(0),
		progressInterval: engine.DefaultProgressInterval,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		tracerProvider:   otel.GetTracerProvider(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	return o
}

func (o *options) validate() error {
	switch {
	case o.splitCutoff <= 0:
		return fmt.Errorf("%w: split cutoff must be positive, got %d", ErrInvalidArgument, o.splitCutoff)
	case o.pollCutoff <= 0:
		return fmt.Errorf("%w: poll cutoff must be positive, got %d", ErrInvalidArgument, o.pollCutoff)
	case !o.policy.Valid():
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidArgument, int(o.policy))
	case o.heuristicWeight <= 0 || math.IsInf(o.heuristicWeight, 0) || math.IsNaN(o.heuristicWeight):
		return fmt.Errorf("%w: heuristic weight must be positive and finite, got %v", ErrInvalidArgument, o.heuristicWeight)
	case o.workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidArgument, o.workers)
	case o.memoryLimit < 0:
		return fmt.Errorf("%w: memory limit must not be negative, got %d", ErrInvalidArgument, o.memoryLimit)
	}
	return nil
}

func (o *options) engineConfig(log *Logger) engine.Config {
	cfg := engine.Config{
		SplitCutoff:       o.splitCutoff,
		PollCutoff:        o.pollCutoff,
		Policy:            o.policy,
		HeuristicWeight:   o.heuristicWeight,
		StopAtDestination: o.stopAtDestination,
		Workers:           o.workers,
		MemoryLimit:       o.memoryLimit,
		ProgressInterval:  o.progressInterval,
		Logger:            log.Logger,
	}
	if _, noop := o.metricsCollector.(NoopMetricsCollector); !noop {
		cfg.Observer = o.metricsCollector
	}
	return cfg
}
