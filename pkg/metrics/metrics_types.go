// Package metrics exposes prometheus metrics for the solve engine.
// The engine records through an optional *Registry; a nil registry
// disables metrics entirely.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	// Graph metrics
	GraphNodesTotal Gauge
	GraphEdgesTotal Gauge

	// Solve metrics
	SolvesTotal            *prometheus.CounterVec
	SolveDuration          prometheus.Histogram
	SolverInvocationsTotal *prometheus.CounterVec
	StalenessChecksTotal   prometheus.Counter

	// Cache metrics
	CachedNeighborSnapshots Gauge

	// Contract violations surfaced to callers
	ContractViolationsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// Gauge is re-exported so callers don't need the prometheus import
type Gauge = prometheus.Gauge

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initEngineMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
