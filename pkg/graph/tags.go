package graph

import (
	"sort"
	"strings"
)

// Edge tags are stored in the TagStore under a reserved namespace
// prefix so they can coexist with externally managed labels on the
// same edge. Translation between namespaced and plain tag strings
// happens here and nowhere else; it has no effect on tag identity as
// seen by callers.

func (g *Graph) namespaced(tag string) string {
	return g.tagNamespace + tag
}

func (g *Graph) stripNamespace(label string) (string, bool) {
	if !strings.HasPrefix(label, g.tagNamespace) {
		return "", false
	}
	return label[len(g.tagNamespace):], true
}

// clearEngineTags removes every engine-owned tag from one mirror
// record, leaving external labels untouched
func (g *Graph) clearEngineTags(ownerID, peerID string) {
	for _, label := range g.tags.List(ownerID, peerID) {
		if _, ours := g.stripNamespace(label); ours {
			g.tags.Remove(ownerID, peerID, label)
		}
	}
}

// AddTag adds a tag to the edge between two nodes, on both mirror
// records. Fails with ErrMissingConnection if no edge exists.
func (g *Graph) AddTag(aID, bID, tag string) error {
	if _, _, err := g.edgePair("AddTag", aID, bID); err != nil {
		return err
	}
	g.tags.Add(aID, bID, g.namespaced(tag))
	g.tags.Add(bID, aID, g.namespaced(tag))
	return nil
}

// RemoveTag removes a tag from the edge between two nodes, on both
// mirror records. Removing an absent tag is a no-op.
func (g *Graph) RemoveTag(aID, bID, tag string) error {
	if _, _, err := g.edgePair("RemoveTag", aID, bID); err != nil {
		return err
	}
	g.tags.Remove(aID, bID, g.namespaced(tag))
	g.tags.Remove(bID, aID, g.namespaced(tag))
	return nil
}

// HasTag reports whether the edge between two nodes carries a tag
func (g *Graph) HasTag(aID, bID, tag string) (bool, error) {
	if _, _, err := g.edgePair("HasTag", aID, bID); err != nil {
		return false, err
	}
	return g.tags.Has(aID, bID, g.namespaced(tag)), nil
}

// Tags returns the edge's tag set in sorted order
func (g *Graph) Tags(aID, bID string) ([]string, error) {
	if _, _, err := g.edgePair("Tags", aID, bID); err != nil {
		return nil, err
	}
	tags := make([]string, 0)
	for _, label := range g.tags.List(aID, bID) {
		if tag, ours := g.stripNamespace(label); ours {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}
