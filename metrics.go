package pwsa

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// RecordSplit and RecordBatch are called from the search workers and must be
// safe for concurrent use.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    searchHistogram prometheus.Histogram
//	    splitCounter    prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordSplit(frontierWeight int64) {
//	    p.splitCounter.Inc()
//	}
type MetricsCollector interface {
	// RecordSearch is called after each search.
	// settled is the number of vertices the search finalized, err is nil if
	// successful.
	RecordSearch(duration time.Duration, settled int64, err error)

	// RecordSplit is called each time a branch divides its frontier.
	// frontierWeight is the pending work before the split.
	RecordSplit(frontierWeight int64)

	// RecordBatch is called after each sequential batch.
	RecordBatch(units int64, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSearch(time.Duration, int64, error) {}
func (NoopMetricsCollector) RecordSplit(int64)                        {}
func (NoopMetricsCollector) RecordBatch(int64, time.Duration)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	SettledTotal     atomic.Int64
	SplitCount       atomic.Int64
	SplitWeightTotal atomic.Int64
	BatchCount       atomic.Int64
	BatchUnits       atomic.Int64
	BatchTotalNanos  atomic.Int64
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(duration time.Duration, settled int64, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.SettledTotal.Add(settled)
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(frontierWeight int64) {
	b.SplitCount.Add(1)
	b.SplitWeightTotal.Add(frontierWeight)
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(units int64, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchUnits.Add(units)
	b.BatchTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		SettledTotal:   b.SettledTotal.Load(),
		SplitCount:     b.SplitCount.Load(),
		SplitAvgWeight: avg(b.SplitWeightTotal.Load(), b.SplitCount.Load()),
		BatchCount:     b.BatchCount.Load(),
		BatchUnits:     b.BatchUnits.Load(),
		BatchAvgNanos:  avg(b.BatchTotalNanos.Load(), b.BatchCount.Load()),
		BatchAvgUnits:  avg(b.BatchUnits.Load(), b.BatchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	SettledTotal   int64
	SplitCount     int64
	SplitAvgWeight int64
	BatchCount     int64
	BatchUnits     int64
	BatchAvgNanos  int64
	BatchAvgUnits  int64
}
