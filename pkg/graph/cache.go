package graph

// snapshotCache holds, per node, the attribute snapshot of that node
// and of each connected neighbor as observed at the end of the last
// solve. It is written only by refresh, which Solve calls exactly once
// per actual recomputation.
type snapshotCache struct {
	self      map[string]Value
	neighbors map[string]map[string]Value
}

func newSnapshotCache() snapshotCache {
	return snapshotCache{
		self:      make(map[string]Value),
		neighbors: make(map[string]map[string]Value),
	}
}

// refresh overwrites the primary snapshot with the node's current
// attributes and reconciles the neighbor snapshots against the current
// neighbor set: connected neighbors get a fresh copy, entries for
// disconnected nodes are purged. An existing neighbor snapshot map is
// rewritten in place so references callers hold to it stay valid.
func (c *snapshotCache) refresh(n *Node) {
	c.self = n.graph.attrs.All(n.id)

	for peerID := range n.edges {
		current := n.graph.attrs.All(peerID)
		if snap, cached := c.neighbors[peerID]; cached {
			clear(snap)
			for key, value := range current {
				snap[key] = value
			}
		} else {
			c.neighbors[peerID] = current
		}
	}

	for peerID := range c.neighbors {
		if _, connected := n.edges[peerID]; !connected {
			delete(c.neighbors, peerID)
		}
	}
}

// CachedNeighborIDs returns the neighbor IDs currently held in the
// node's snapshot cache. After a successful solve this set equals the
// node's connected-node set exactly.
func (n *Node) CachedNeighborIDs() []string {
	ids := make([]string, 0, len(n.cache.neighbors))
	for id := range n.cache.neighbors {
		ids = append(ids, id)
	}
	return ids
}
