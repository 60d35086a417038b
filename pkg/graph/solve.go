package graph

import (
	"time"

	"github.com/solvegraph/solvegraph/pkg/logging"
	"github.com/solvegraph/solvegraph/pkg/metrics"
)

// Solver computes one output value from a node. Implementations may
// read any attribute of the node and of its neighbors (via Neighbors),
// but must not mutate graph topology.
type Solver interface {
	Compute(n *Node) (Value, error)
}

// SolverFunc adapts a plain function to the Solver interface
type SolverFunc func(n *Node) (Value, error)

func (f SolverFunc) Compute(n *Node) (Value, error) {
	return f(n)
}

// Resolver resolves a named solver reference to a Solver. Hosts supply
// an implementation when solvers are registered by name; the engine
// resolves each reference once per solve, so re-binding a name takes
// effect on the next solve.
type Resolver interface {
	Resolve(ref string) (Solver, error)
}

// ResolverFunc adapts a plain function to the Resolver interface
type ResolverFunc func(ref string) (Solver, error)

func (f ResolverFunc) Resolve(ref string) (Solver, error) {
	return f(ref)
}

// MapResolver is a simple name-to-solver table
type MapResolver map[string]Solver

func (m MapResolver) Resolve(ref string) (Solver, error) {
	solver, exists := m[ref]
	if !exists {
		return nil, ErrSolverNotFound
	}
	return solver, nil
}

// solverEntry holds either a directly registered solver or a named
// reference resolved at solve time
type solverEntry struct {
	solver Solver
	ref    string
}

// Solve recomputes the node's output attributes if it is stale. When
// the node is not stale the call is an idempotent no-op: no generation
// bump, no attribute writes, no solver invocations. It returns whether
// a recomputation happened.
func (n *Node) Solve() (bool, error) {
	if err := n.ensureValid(); err != nil {
		return false, err
	}

	g := n.graph
	g.stats.TotalSolves++
	start := time.Now()

	if !n.NeedsSolve() {
		if g.metrics != nil {
			g.metrics.RecordSolve(metrics.SolveClean, 0)
		}
		return false, nil
	}

	n.generation++
	n.cache.refresh(n)
	g.stats.TotalRecomputes++

	for key, entry := range n.solvers {
		solver, err := n.resolveSolver(entry)
		if err != nil {
			if g.lenientResolve {
				g.log.Warn("solver reference unresolved, skipping output key",
					logging.NodeID(n.id), logging.Key(key), logging.Error(err))
				continue
			}
			n.recordSolveFailure(start)
			return true, NewError("Solve").Node(n.id).Key(key).Cause(err).Err()
		}

		value, err := solver.Compute(n)
		if err != nil {
			if g.metrics != nil {
				g.metrics.RecordSolverInvocation("error")
			}
			n.recordSolveFailure(start)
			return true, NewError("Solve").Node(n.id).Key(key).Cause(err).Err()
		}
		if g.metrics != nil {
			g.metrics.RecordSolverInvocation("ok")
		}

		g.attrs.Set(n.id, key, value)
		// Fold the output into the fresh baseline so an unchanged
		// 1-hop neighborhood leaves the node non-stale.
		if value.IsNone() {
			delete(n.cache.self, key)
		} else {
			n.cache.self[key] = value
		}
	}

	if g.metrics != nil {
		g.metrics.RecordSolve(metrics.SolveRecomputed, time.Since(start))
	}
	g.updateGraphMetrics()
	g.log.Debug("node solved", logging.NodeID(n.id), logging.Generation(n.generation))
	return true, nil
}

// resolveSolver turns a solver entry into an invocable solver,
// performing late-bound resolution for named references
func (n *Node) resolveSolver(entry solverEntry) (Solver, error) {
	if entry.solver != nil {
		return entry.solver, nil
	}
	if n.graph.resolver == nil {
		return nil, NewError("Resolve").Node(n.id).Cause(ErrSolverNotFound).Err()
	}
	return n.graph.resolver.Resolve(entry.ref)
}

func (n *Node) recordSolveFailure(start time.Time) {
	if n.graph.metrics != nil {
		n.graph.metrics.RecordSolve(metrics.SolveFailed, time.Since(start))
	}
}
