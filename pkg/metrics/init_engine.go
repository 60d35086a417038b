package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "solvegraph_nodes_total",
			Help: "Total number of nodes in the graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "solvegraph_edges_total",
			Help: "Total number of edges in the graph",
		},
	)

	r.SolvesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "solvegraph_solves_total",
			Help: "Total number of solve calls",
		},
		[]string{"result"},
	)

	r.SolveDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "solvegraph_solve_duration_seconds",
			Help:    "Duration of solve calls that recomputed",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.SolverInvocationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "solvegraph_solver_invocations_total",
			Help: "Total number of solver invocations",
		},
		[]string{"status"},
	)

	r.StalenessChecksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "solvegraph_staleness_checks_total",
			Help: "Total number of staleness checks",
		},
	)

	r.CachedNeighborSnapshots = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "solvegraph_cached_neighbor_snapshots",
			Help: "Number of neighbor snapshots currently cached across all nodes",
		},
	)

	r.ContractViolationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "solvegraph_contract_violations_total",
			Help: "Total number of caller contract violations",
		},
		[]string{"kind"},
	)
}
