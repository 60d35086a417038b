package metrics

import (
	"time"
)

// Solve results for RecordSolve
const (
	SolveRecomputed = "recomputed"
	SolveClean      = "clean"
	SolveFailed     = "failed"
)

// RecordSolve records the outcome of a solve call. Duration is only
// observed for solves that actually recomputed.
func (r *Registry) RecordSolve(result string, duration time.Duration) {
	r.SolvesTotal.WithLabelValues(result).Inc()
	if result == SolveRecomputed {
		r.SolveDuration.Observe(duration.Seconds())
	}
}

// RecordSolverInvocation records a single solver callable invocation
func (r *Registry) RecordSolverInvocation(status string) {
	r.SolverInvocationsTotal.WithLabelValues(status).Inc()
}

// RecordStalenessCheck records one NeedsSolve evaluation
func (r *Registry) RecordStalenessCheck() {
	r.StalenessChecksTotal.Inc()
}

// RecordContractViolation records a caller contract violation by kind
// (self_connection, missing_connection, key_conflict, structural)
func (r *Registry) RecordContractViolation(kind string) {
	r.ContractViolationsTotal.WithLabelValues(kind).Inc()
}

// UpdateGraphMetrics updates node/edge/cache gauges
func (r *Registry) UpdateGraphMetrics(nodes, edges, cachedSnapshots int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	r.CachedNeighborSnapshots.Set(float64(cachedSnapshots))
}
