package engine

import (
	"log/slog"
	"math"
	"time"
)

// Policy selects how a frontier key is derived from the heuristic estimate h
// and the path cost g of a package.
type Policy int

const (
	// PolicyAStar orders by g + h (weighted A*).
	PolicyAStar Policy = iota
	// PolicyUniform orders by g alone (Dijkstra order, heuristic ignored).
	PolicyUniform
	// PolicyGreedy orders by h alone (greedy best-first).
	PolicyGreedy
)

func (p Policy) String() string {
	switch p {
	case PolicyAStar:
		return "astar"
	case PolicyUniform:
		return "uniform"
	case PolicyGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p >= PolicyAStar && p <= PolicyGreedy
}

// Observer receives driver events. Implementations must be safe for
// concurrent use.
type Observer interface {
	RecordSplit(frontierWeight int64)
	RecordBatch(units int64, duration time.Duration)
}

// Config tunes one search run.
type Config struct {
	// SplitCutoff is the frontier weight above which a branch splits.
	SplitCutoff int64

	// PollCutoff bounds the work units of one sequential batch.
	PollCutoff int64

	Policy Policy

	// HeuristicWeight scales h before it enters the key. 1 keeps h as is.
	HeuristicWeight float64

	// StopAtDestination ends every branch once the destination is finalized.
	StopAtDestination bool

	// Workers is the maximum number of goroutines running branches.
	Workers int

	// MemoryLimit caps the bytes held by the distance table and the
	// frontiers. 0 disables the limit.
	MemoryLimit int64

	// ProgressInterval is the minimum time between progress log lines.
	ProgressInterval time.Duration

	Logger   *slog.Logger
	Observer Observer
}

// Default values used by Config.withDefaults.
const (
	DefaultSplitCutoff      = 1024
	DefaultPollCutoff       = 64
	DefaultProgressInterval = time.Second
)

func (c Config) withDefaults() Config {
	if c.SplitCutoff <= 0 {
		c.SplitCutoff = DefaultSplitCutoff
	}
	if c.PollCutoff <= 0 {
		c.PollCutoff = DefaultPollCutoff
	}
	if c.HeuristicWeight == 0 {
		c.HeuristicWeight = 1
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// keyer turns (vertex estimate, path cost) into a frontier key.
type keyer struct {
	policy Policy
	weight float64
}

func (k keyer) key(h, g int64) int64 {
	if k.weight != 1 && h != 0 {
		h = int64(math.Round(k.weight * float64(h)))
	}
	switch k.policy {
	case PolicyUniform:
		return g
	case PolicyGreedy:
		return h
	default:
		return h + g
	}
}
