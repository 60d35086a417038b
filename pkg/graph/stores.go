package graph

import (
	"github.com/google/uuid"
)

// AttributeStore is the host capability backing each node's attribute
// map. The engine only assumes get/set/enumerate semantics; how (or
// whether) the store persists is the host's concern. Setting a key to
// None clears it.
type AttributeStore interface {
	Get(nodeID, key string) Value
	Set(nodeID, key string, value Value)
	All(nodeID string) map[string]Value
	Drop(nodeID string)
}

// TagStore is the host capability that attaches string labels to one
// node's view of an edge. The engine namespaces every label it writes
// (see tags.go), so a host store may carry unrelated external labels on
// the same edge without collision. List returns raw labels including
// any external ones; the engine filters on read.
type TagStore interface {
	Add(ownerID, peerID, label string)
	Remove(ownerID, peerID, label string)
	Has(ownerID, peerID, label string) bool
	List(ownerID, peerID string) []string
}

// IDGenerator supplies unique IDs for new nodes.
type IDGenerator interface {
	NewID() string
}

// memAttributeStore is the default in-memory attribute store.
type memAttributeStore struct {
	attrs map[string]map[string]Value
}

func newMemAttributeStore() *memAttributeStore {
	return &memAttributeStore{attrs: make(map[string]map[string]Value)}
}

func (s *memAttributeStore) Get(nodeID, key string) Value {
	return s.attrs[nodeID][key]
}

func (s *memAttributeStore) Set(nodeID, key string, value Value) {
	m, ok := s.attrs[nodeID]
	if !ok {
		if value.IsNone() {
			return
		}
		m = make(map[string]Value)
		s.attrs[nodeID] = m
	}
	if value.IsNone() {
		delete(m, key)
		return
	}
	m[key] = value
}

func (s *memAttributeStore) All(nodeID string) map[string]Value {
	return cloneAttrs(s.attrs[nodeID])
}

func (s *memAttributeStore) Drop(nodeID string) {
	delete(s.attrs, nodeID)
}

// edgeKey identifies one node's view of an edge. The two mirror views
// of an edge have swapped owner and peer.
type edgeKey struct {
	owner string
	peer  string
}

// memTagStore is the default in-memory tag store.
type memTagStore struct {
	labels map[edgeKey]map[string]struct{}
}

func newMemTagStore() *memTagStore {
	return &memTagStore{labels: make(map[edgeKey]map[string]struct{})}
}

func (s *memTagStore) Add(ownerID, peerID, label string) {
	key := edgeKey{owner: ownerID, peer: peerID}
	set, ok := s.labels[key]
	if !ok {
		set = make(map[string]struct{})
		s.labels[key] = set
	}
	set[label] = struct{}{}
}

func (s *memTagStore) Remove(ownerID, peerID, label string) {
	key := edgeKey{owner: ownerID, peer: peerID}
	set, ok := s.labels[key]
	if !ok {
		return
	}
	delete(set, label)
	if len(set) == 0 {
		delete(s.labels, key)
	}
}

func (s *memTagStore) Has(ownerID, peerID, label string) bool {
	_, ok := s.labels[edgeKey{owner: ownerID, peer: peerID}][label]
	return ok
}

func (s *memTagStore) List(ownerID, peerID string) []string {
	set := s.labels[edgeKey{owner: ownerID, peer: peerID}]
	out := make([]string, 0, len(set))
	for label := range set {
		out = append(out, label)
	}
	return out
}

// uuidGenerator is the default node ID generator.
type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.New().String()
}
