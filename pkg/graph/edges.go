package graph

import (
	"fmt"

	"github.com/solvegraph/solvegraph/pkg/logging"
)

// ConnectOptions carries the optional tag set and position for Connect
type ConnectOptions struct {
	Tags     []string
	Position Value // VectorValue or None
}

// Connect creates an undirected edge between two nodes, applying the
// given tags and position to both mirror records. Connecting an
// already-connected pair is a no-op; the existing edge keeps its tags
// and position.
func (g *Graph) Connect(aID, bID string, opts *ConnectOptions) error {
	if aID == bID {
		g.recordViolation("self_connection")
		return SelfConnectionError("Connect", aID)
	}
	a, exists := g.nodes[aID]
	if !exists {
		return NodeNotFoundError("Connect", aID)
	}
	b, exists := g.nodes[bID]
	if !exists {
		return NodeNotFoundError("Connect", bID)
	}
	if _, connected := a.edges[bID]; connected {
		return nil
	}

	position := None()
	if opts != nil {
		if err := validateEdgePosition("Connect", aID, bID, opts.Position); err != nil {
			return err
		}
		position = opts.Position
	}

	a.edges[bID] = &edgeRecord{peer: bID, position: position}
	b.edges[aID] = &edgeRecord{peer: aID, position: position}

	if opts != nil {
		for _, tag := range opts.Tags {
			g.tags.Add(aID, bID, g.namespaced(tag))
			g.tags.Add(bID, aID, g.namespaced(tag))
		}
	}

	g.stats.EdgeCount++
	g.updateGraphMetrics()
	g.log.Debug("nodes connected", logging.NodeID(aID), logging.PeerID(bID))
	return nil
}

// Disconnect removes the edge between two nodes, including both mirror
// records and all engine-owned tags on them. Disconnecting an
// unconnected pair is a no-op.
func (g *Graph) Disconnect(aID, bID string) error {
	if aID == bID {
		g.recordViolation("self_connection")
		return SelfConnectionError("Disconnect", aID)
	}
	a, aExists := g.nodes[aID]
	b, bExists := g.nodes[bID]
	if !aExists || !bExists {
		return nil
	}
	if _, connected := a.edges[bID]; !connected {
		return nil
	}

	g.clearEngineTags(aID, bID)
	g.clearEngineTags(bID, aID)
	delete(a.edges, bID)
	delete(b.edges, aID)

	g.stats.EdgeCount--
	g.updateGraphMetrics()
	g.log.Debug("nodes disconnected", logging.NodeID(aID), logging.PeerID(bID))
	return nil
}

// IsConnected reports whether an edge exists between two nodes
func (g *Graph) IsConnected(aID, bID string) bool {
	if aID == bID {
		return false
	}
	a, exists := g.nodes[aID]
	if !exists {
		return false
	}
	_, connected := a.edges[bID]
	return connected
}

// ConnectedNodes returns the IDs of all nodes connected to the given
// node, in no particular order
func (g *Graph) ConnectedNodes(id string) ([]string, error) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, NodeNotFoundError("ConnectedNodes", id)
	}
	peers := make([]string, 0, len(node.edges))
	for peerID := range node.edges {
		peers = append(peers, peerID)
	}
	return peers, nil
}

// ConnectedNodesWithTag returns the connected nodes whose edge carries
// the given tag. The check reads this node's mirror record, which is
// kept equal to the peer's by invariant.
func (g *Graph) ConnectedNodesWithTag(id, tag string) ([]string, error) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, NodeNotFoundError("ConnectedNodesWithTag", id)
	}
	peers := make([]string, 0)
	for peerID := range node.edges {
		if g.tags.Has(id, peerID, g.namespaced(tag)) {
			peers = append(peers, peerID)
		}
	}
	return peers, nil
}

// SetEdgePosition updates the position on both mirror records. Passing
// None clears it. Fails with ErrMissingConnection if no edge exists.
func (g *Graph) SetEdgePosition(aID, bID string, position Value) error {
	a, _, err := g.edgePair("SetEdgePosition", aID, bID)
	if err != nil {
		return err
	}
	if err := validateEdgePosition("SetEdgePosition", aID, bID, position); err != nil {
		return err
	}
	a.edges[bID].position = position
	g.nodes[bID].edges[aID].position = position
	return nil
}

// EdgePosition returns the edge's position, or None if unset. Fails
// with ErrMissingConnection if no edge exists.
func (g *Graph) EdgePosition(aID, bID string) (Value, error) {
	a, _, err := g.edgePair("EdgePosition", aID, bID)
	if err != nil {
		return None(), err
	}
	return a.edges[bID].position, nil
}

// edgePair validates an operation that requires an existing edge
// between two distinct nodes
func (g *Graph) edgePair(op, aID, bID string) (*Node, *Node, error) {
	if aID == bID {
		g.recordViolation("self_connection")
		return nil, nil, SelfConnectionError(op, aID)
	}
	a, exists := g.nodes[aID]
	if !exists {
		return nil, nil, NodeNotFoundError(op, aID)
	}
	b, exists := g.nodes[bID]
	if !exists {
		return nil, nil, NodeNotFoundError(op, bID)
	}
	if _, connected := a.edges[bID]; !connected {
		g.recordViolation("missing_connection")
		return nil, nil, MissingConnectionError(op, aID, bID)
	}
	return a, b, nil
}

func validateEdgePosition(op, aID, bID string, position Value) error {
	if position.IsNone() || position.Kind() == KindVector {
		return nil
	}
	return NewError(op).Node(aID).Peer(bID).
		Cause(fmt.Errorf("edge position must be a vector or none, got %s", position.Kind())).Err()
}
