package meshgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordFlip is called after each edge flip. duration is the total
	// time taken, err is nil if successful.
	RecordFlip(duration time.Duration, err error)

	// RecordSplit is called after each edge split.
	RecordSplit(duration time.Duration, err error)

	// RecordCollapse is called after each edge collapse.
	RecordCollapse(duration time.Duration, err error)

	// RecordAssembly is called after each operator assembly. operator
	// names the operator built ("d0", "laplacian", ...).
	RecordAssembly(operator string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector. Use
// this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFlip(time.Duration, error)             {}
func (NoopMetricsCollector) RecordSplit(time.Duration, error)            {}
func (NoopMetricsCollector) RecordCollapse(time.Duration, error)         {}
func (NoopMetricsCollector) RecordAssembly(string, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FlipCount      atomic.Int64
	FlipErrors     atomic.Int64
	SplitCount     atomic.Int64
	SplitErrors    atomic.Int64
	CollapseCount  atomic.Int64
	CollapseErrors atomic.Int64
	AssemblyCount  atomic.Int64
	AssemblyErrors atomic.Int64
	AssemblyNanos  atomic.Int64
	MutationNanos  atomic.Int64
}

// RecordFlip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFlip(duration time.Duration, err error) {
	b.FlipCount.Add(1)
	b.MutationNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FlipErrors.Add(1)
	}
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(duration time.Duration, err error) {
	b.SplitCount.Add(1)
	b.MutationNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SplitErrors.Add(1)
	}
}

// RecordCollapse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCollapse(duration time.Duration, err error) {
	b.CollapseCount.Add(1)
	b.MutationNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CollapseErrors.Add(1)
	}
}

// RecordAssembly implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssembly(_ string, duration time.Duration, err error) {
	b.AssemblyCount.Add(1)
	b.AssemblyNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AssemblyErrors.Add(1)
	}
}
