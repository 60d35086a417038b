// Package graph implements a mutable, undirected attributed graph with
// incremental recomputation. Nodes carry caller-set input attributes
// and solver-computed output attributes; Solve recomputes a node's
// outputs only when its own attributes or a directly connected
// neighbor's attributes changed since the last solve.
package graph

import (
	"github.com/solvegraph/solvegraph/pkg/logging"
	"github.com/solvegraph/solvegraph/pkg/metrics"
)

// DefaultTagNamespace is the reserved prefix under which the engine
// stores edge tags in the TagStore, keeping them disjoint from any
// externally managed labels on the same edge.
const DefaultTagNamespace = "solvegraph:"

// PositionKey is the attribute key holding a node's spatial position.
// It is set at construction and behaves as an ordinary input key.
const PositionKey = "position"

// Config holds configuration for a Graph. The zero value is usable:
// in-memory stores, UUID node IDs, no-op logging, no metrics, and
// strict solver resolution.
type Config struct {
	// TagNamespace overrides the reserved tag prefix.
	TagNamespace string

	// LenientResolve makes Solve skip (and log) output keys whose
	// solver reference cannot be resolved instead of failing the solve.
	LenientResolve bool

	// Host capabilities; nil selects the in-memory defaults.
	Attributes AttributeStore
	Tags       TagStore
	IDs        IDGenerator

	// Resolver resolves named solver references. Only needed when
	// RegisterSolverRef is used.
	Resolver Resolver

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Statistics tracks engine counters
type Statistics struct {
	NodeCount       int
	EdgeCount       int
	TotalSolves     uint64
	TotalRecomputes uint64
}

// Graph owns all nodes by ID and routes every edge mutation through a
// single entry point so the mirrored edge records never diverge.
type Graph struct {
	nodes map[string]*Node

	attrs    AttributeStore
	tags     TagStore
	ids      IDGenerator
	resolver Resolver

	tagNamespace   string
	lenientResolve bool

	log     logging.Logger
	metrics *metrics.Registry
	stats   Statistics
}

// New creates an empty graph with the given configuration
func New(cfg Config) *Graph {
	g := &Graph{
		nodes:          make(map[string]*Node),
		attrs:          cfg.Attributes,
		tags:           cfg.Tags,
		ids:            cfg.IDs,
		resolver:       cfg.Resolver,
		tagNamespace:   cfg.TagNamespace,
		lenientResolve: cfg.LenientResolve,
		log:            cfg.Logger,
		metrics:        cfg.Metrics,
	}
	if g.attrs == nil {
		g.attrs = newMemAttributeStore()
	}
	if g.tags == nil {
		g.tags = newMemTagStore()
	}
	if g.ids == nil {
		g.ids = uuidGenerator{}
	}
	if g.tagNamespace == "" {
		g.tagNamespace = DefaultTagNamespace
	}
	if g.log == nil {
		g.log = logging.NopLogger{}
	}
	return g
}

// NewNode allocates a node with a fresh unique ID, empty edge set,
// empty solver set, an empty cache, and the given position attribute.
func (g *Graph) NewNode(position Vector3) *Node {
	var id string
	for {
		id = g.ids.NewID()
		if _, taken := g.nodes[id]; !taken {
			break
		}
	}

	node := &Node{
		id:      id,
		graph:   g,
		edges:   make(map[string]*edgeRecord),
		solvers: make(map[string]solverEntry),
		cache:   newSnapshotCache(),
	}
	g.nodes[id] = node
	g.attrs.Set(id, PositionKey, VectorValue(position))
	g.stats.NodeCount++
	g.updateGraphMetrics()

	g.log.Debug("node created", logging.NodeID(id))
	return node
}

// Node retrieves a node by ID
func (g *Graph) Node(id string) (*Node, error) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, NodeNotFoundError("Node", id)
	}
	return node, nil
}

// HasNode reports whether a node with the given ID exists
func (g *Graph) HasNode(id string) bool {
	_, exists := g.nodes[id]
	return exists
}

// NodeIDs returns the IDs of all nodes, in no particular order
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}

// RemoveNode destroys a node, severing all of its edges. Each peer's
// mirrored edge record is removed as well, so no edge outlives either
// endpoint.
func (g *Graph) RemoveNode(id string) error {
	node, exists := g.nodes[id]
	if !exists {
		return NodeNotFoundError("RemoveNode", id)
	}

	for peerID := range node.edges {
		if err := g.Disconnect(id, peerID); err != nil {
			return err
		}
	}

	g.attrs.Drop(id)
	delete(g.nodes, id)
	g.stats.NodeCount--
	g.updateGraphMetrics()

	g.log.Debug("node removed", logging.NodeID(id))
	return nil
}

// Stats returns a copy of the engine counters
func (g *Graph) Stats() Statistics {
	return g.stats
}

func (g *Graph) updateGraphMetrics() {
	if g.metrics == nil {
		return
	}
	cached := 0
	for _, node := range g.nodes {
		cached += len(node.cache.neighbors)
	}
	g.metrics.UpdateGraphMetrics(g.stats.NodeCount, g.stats.EdgeCount, cached)
}

func (g *Graph) recordViolation(kind string) {
	if g.metrics != nil {
		g.metrics.RecordContractViolation(kind)
	}
}
