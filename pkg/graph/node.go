package graph

import (
	"github.com/solvegraph/solvegraph/pkg/logging"
)

// Node is a graph vertex. Attribute keys are partitioned into input
// keys (set directly by callers) and output keys (populated only by a
// registered solver); the partitions stay disjoint by construction.
type Node struct {
	id      string
	graph   *Graph
	edges   map[string]*edgeRecord
	solvers map[string]solverEntry
	cache   snapshotCache

	// generation counts solves that actually recomputed
	generation uint64
}

// edgeRecord is one node's mirror of an undirected edge. The peer node
// holds the mirrored record; both must always agree on existence, tag
// set, and position, which is why all edge mutation goes through the
// Graph entry points.
type edgeRecord struct {
	peer     string
	position Value
}

// ID returns the node's stable unique ID
func (n *Node) ID() string {
	return n.id
}

// Generation returns the number of solves that recomputed this node
func (n *Node) Generation() uint64 {
	return n.generation
}

// ensureValid guards against nodes constructed outside Graph.NewNode
func (n *Node) ensureValid() error {
	if n.graph == nil || n.edges == nil || n.solvers == nil {
		return NewError("Node").Node(n.id).Cause(ErrStructuralIntegrity).Err()
	}
	return nil
}

// Attribute returns the current value for a key, or None if absent
func (n *Node) Attribute(key string) Value {
	if n.graph == nil {
		return None()
	}
	return n.graph.attrs.Get(n.id, key)
}

// Attributes returns a copy of the node's full attribute map
func (n *Node) Attributes() map[string]Value {
	if n.graph == nil {
		return map[string]Value{}
	}
	return n.graph.attrs.All(n.id)
}

// SetInput sets an input attribute. Setting None clears the key.
// Fails with ErrKeyConflict if the key is claimed by a solver.
func (n *Node) SetInput(key string, value Value) error {
	if err := n.ensureValid(); err != nil {
		return err
	}
	if _, claimed := n.solvers[key]; claimed {
		n.graph.recordViolation("key_conflict")
		return KeyConflictError("SetInput", n.id, key)
	}
	n.graph.attrs.Set(n.id, key, value)
	return nil
}

// Input returns the current value of an input attribute, or None
func (n *Node) Input(key string) Value {
	return n.Attribute(key)
}

// RegisterSolver registers a solver for an output key. Fails with
// ErrKeyConflict if the key already holds a non-absent input value.
// Registering a second solver for the same key replaces the first.
func (n *Node) RegisterSolver(key string, solver Solver) error {
	if err := n.ensureValid(); err != nil {
		return err
	}
	if solver == nil {
		return NewError("RegisterSolver").Node(n.id).Key(key).Cause(ErrStructuralIntegrity).Err()
	}
	if err := n.checkOutputKey("RegisterSolver", key); err != nil {
		return err
	}
	n.solvers[key] = solverEntry{solver: solver}
	n.graph.log.Debug("solver registered", logging.NodeID(n.id), logging.Key(key))
	return nil
}

// RegisterSolverRef registers a named solver reference for an output
// key. The name is resolved through the graph's Resolver once per
// solve, so re-binding the name takes effect on the next solve.
func (n *Node) RegisterSolverRef(key, ref string) error {
	if err := n.ensureValid(); err != nil {
		return err
	}
	if err := n.checkOutputKey("RegisterSolverRef", key); err != nil {
		return err
	}
	n.solvers[key] = solverEntry{ref: ref}
	n.graph.log.Debug("solver reference registered",
		logging.NodeID(n.id), logging.Key(key), logging.String("ref", ref))
	return nil
}

func (n *Node) checkOutputKey(op, key string) error {
	if _, claimed := n.solvers[key]; claimed {
		// already an output key; replacement is allowed
		return nil
	}
	if !n.graph.attrs.Get(n.id, key).IsNone() {
		n.graph.recordViolation("key_conflict")
		return KeyConflictError(op, n.id, key)
	}
	return nil
}

// OutputKeys returns the keys claimed by registered solvers
func (n *Node) OutputKeys() []string {
	keys := make([]string, 0, len(n.solvers))
	for key := range n.solvers {
		keys = append(keys, key)
	}
	return keys
}

// Position returns the node's position attribute
func (n *Node) Position() (Vector3, error) {
	return n.Attribute(PositionKey).AsVector()
}

// SetPosition updates the node's position attribute
func (n *Node) SetPosition(position Vector3) error {
	return n.SetInput(PositionKey, VectorValue(position))
}

// Neighbors returns the currently connected nodes, in no particular
// order. Solvers use this to read one-hop neighbor state.
func (n *Node) Neighbors() []*Node {
	neighbors := make([]*Node, 0, len(n.edges))
	for peerID := range n.edges {
		if peer, exists := n.graph.nodes[peerID]; exists {
			neighbors = append(neighbors, peer)
		}
	}
	return neighbors
}
