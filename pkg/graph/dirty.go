package graph

// NeedsSolve reports whether the node is stale, i.e. whether its own
// attributes or any directly connected neighbor's attributes changed
// since the last solve. Staleness is sensitive to exactly one hop:
// a change two hops away only propagates once the intermediate
// neighbor solves and re-caches.
func (n *Node) NeedsSolve() bool {
	if n.graph != nil && n.graph.metrics != nil {
		n.graph.metrics.RecordStalenessCheck()
	}

	if !attrsEqual(n.graph.attrs.All(n.id), n.cache.self) {
		return true
	}

	if len(n.cache.neighbors) != len(n.edges) {
		return true
	}

	for peerID := range n.edges {
		snap, cached := n.cache.neighbors[peerID]
		if !cached {
			return true
		}
		if !attrsEqual(n.graph.attrs.All(peerID), snap) {
			return true
		}
	}

	return false
}
