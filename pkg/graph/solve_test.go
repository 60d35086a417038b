package graph

import (
	"errors"
	"fmt"
	"testing"
)

// distanceSolver computes the distance to the node's first neighbor
var distanceSolver = SolverFunc(func(n *Node) (Value, error) {
	pos, err := n.Position()
	if err != nil {
		return None(), err
	}
	for _, peer := range n.Neighbors() {
		peerPos, err := peer.Position()
		if err != nil {
			return None(), err
		}
		return NumberValue(Distance(pos, peerPos)), nil
	}
	return None(), nil
})

func TestSolve_BeamScenario(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))
	b := g.NewNode(vec(1, 0, 0))

	err := g.Connect(a.ID(), b.ID(), &ConnectOptions{
		Tags:     []string{"beam"},
		Position: VectorValue(vec(0.5, 0, 0)),
	})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	tags, err := g.Tags(a.ID(), b.ID())
	if err != nil || len(tags) != 1 || tags[0] != "beam" {
		t.Fatalf("Expected tags [beam], got %v (%v)", tags, err)
	}
	pos, err := g.EdgePosition(a.ID(), b.ID())
	if err != nil {
		t.Fatalf("EdgePosition: %v", err)
	}
	if v, _ := pos.AsVector(); v != vec(0.5, 0, 0) {
		t.Fatalf("Expected edge position (0.5, 0, 0), got %s", pos)
	}

	if err := a.RegisterSolver("length", distanceSolver); err != nil {
		t.Fatalf("RegisterSolver: %v", err)
	}

	recomputed, err := a.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !recomputed {
		t.Error("First solve should recompute")
	}

	length, err := a.Attribute("length").AsNumber()
	if err != nil {
		t.Fatalf("length attribute: %v", err)
	}
	if length != 1.0 {
		t.Errorf("Expected length 1.0, got %g", length)
	}
	if a.Generation() != 1 {
		t.Errorf("Expected generation 1, got %d", a.Generation())
	}

	// Second solve with nothing changed is an idempotent no-op.
	recomputed, err = a.Solve()
	if err != nil {
		t.Fatalf("Second solve: %v", err)
	}
	if recomputed {
		t.Error("Second solve should be a no-op")
	}
	if a.Generation() != 1 {
		t.Errorf("Generation should stay 1, got %d", a.Generation())
	}
}

func TestSolve_IdempotentStateUnchanged(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))
	b := g.NewNode(vec(1, 0, 0))
	if err := g.Connect(a.ID(), b.ID(), nil); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := a.RegisterSolver("length", distanceSolver); err != nil {
		t.Fatalf("RegisterSolver: %v", err)
	}

	if _, err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	attrsBefore := a.Attributes()
	cachedBefore := a.CachedNeighborIDs()
	genBefore := a.Generation()

	if _, err := a.Solve(); err != nil {
		t.Fatalf("Second solve: %v", err)
	}

	if a.Generation() != genBefore {
		t.Errorf("Generation changed: %d -> %d", genBefore, a.Generation())
	}
	if !attrsEqual(a.Attributes(), attrsBefore) {
		t.Error("Attributes changed across a no-op solve")
	}
	if len(a.CachedNeighborIDs()) != len(cachedBefore) {
		t.Error("Cache changed across a no-op solve")
	}
}

func TestNeedsSolve_StalenessTriggers(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))
	b := g.NewNode(vec(1, 0, 0))
	c := g.NewNode(vec(2, 0, 0))

	// Chain: a - b - c
	if err := g.Connect(a.ID(), b.ID(), nil); err != nil {
		t.Fatalf("Connect a-b: %v", err)
	}
	if err := g.Connect(b.ID(), c.ID(), nil); err != nil {
		t.Fatalf("Connect b-c: %v", err)
	}

	for _, n := range []*Node{a, b, c} {
		if _, err := n.Solve(); err != nil {
			t.Fatalf("Solve %s: %v", n.ID(), err)
		}
	}
	if a.NeedsSolve() {
		t.Fatal("Node a should be clean after solving")
	}

	// Own input change
	if err := a.SetInput("load", NumberValue(1)); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if !a.NeedsSolve() {
		t.Error("Own attribute change should make the node stale")
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Re-solve a: %v", err)
	}
	if a.NeedsSolve() {
		t.Error("Solve should clear staleness")
	}

	// Direct neighbor change
	if err := b.SetInput("load", NumberValue(2)); err != nil {
		t.Fatalf("SetInput on b: %v", err)
	}
	if !a.NeedsSolve() {
		t.Error("Neighbor attribute change should make the node stale")
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Re-solve a: %v", err)
	}

	// Two hops away: c's change must not affect a directly.
	if err := c.SetInput("load", NumberValue(3)); err != nil {
		t.Fatalf("SetInput on c: %v", err)
	}
	if a.NeedsSolve() {
		t.Error("A change two hops away must not make the node stale")
	}
	if !b.NeedsSolve() {
		t.Error("The intermediate neighbor should be stale")
	}
}

func TestSolve_CacheReconciliation(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))
	b := g.NewNode(vec(1, 0, 0))
	c := g.NewNode(vec(2, 0, 0))

	if err := g.Connect(a.ID(), b.ID(), nil); err != nil {
		t.Fatalf("Connect a-b: %v", err)
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	cached := a.CachedNeighborIDs()
	if len(cached) != 1 || cached[0] != b.ID() {
		t.Fatalf("Expected cached [%s], got %v", b.ID(), cached)
	}

	// Swap the neighbor set and re-solve.
	if err := g.Disconnect(a.ID(), b.ID()); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if err := g.Connect(a.ID(), c.ID(), nil); err != nil {
		t.Fatalf("Connect a-c: %v", err)
	}
	if !a.NeedsSolve() {
		t.Fatal("Topology change should make the node stale")
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Re-solve: %v", err)
	}

	cached = a.CachedNeighborIDs()
	if len(cached) != 1 || cached[0] != c.ID() {
		t.Errorf("Expected cached [%s] after reconciliation, got %v", c.ID(), cached)
	}
}

func TestSolve_NeighborSnapshotReuse(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))
	b := g.NewNode(vec(1, 0, 0))
	if err := g.Connect(a.ID(), b.ID(), nil); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if _, err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	snap := a.cache.neighbors[b.ID()]

	if err := b.SetInput("load", NumberValue(9)); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Re-solve: %v", err)
	}

	// The snapshot map is rewritten in place, not reallocated.
	snapAfter := a.cache.neighbors[b.ID()]
	if fmt.Sprintf("%p", snap) != fmt.Sprintf("%p", snapAfter) {
		t.Error("Neighbor snapshot map should be reused across refreshes")
	}
	if !snap["load"].Equal(NumberValue(9)) {
		t.Error("Reused snapshot should hold the refreshed values")
	}
}

func TestSolve_GenerationCountsRecomputesOnly(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))

	for i := 0; i < 5; i++ {
		if _, err := a.Solve(); err != nil {
			t.Fatalf("Solve %d: %v", i, err)
		}
	}
	// First solve recomputes (empty cache vs position attribute);
	// the rest are no-ops.
	if a.Generation() != 1 {
		t.Errorf("Expected generation 1 after repeated solves, got %d", a.Generation())
	}

	stats := g.Stats()
	if stats.TotalSolves != 5 || stats.TotalRecomputes != 1 {
		t.Errorf("Expected 5 solves / 1 recompute, got %d / %d",
			stats.TotalSolves, stats.TotalRecomputes)
	}
}

func TestSolve_NamedReferenceResolution(t *testing.T) {
	resolver := MapResolver{"solvers/distance": distanceSolver}
	g := New(Config{IDs: &seqIDs{}, Resolver: resolver})
	a := g.NewNode(vec(0, 0, 0))
	b := g.NewNode(vec(0, 3, 4))
	if err := g.Connect(a.ID(), b.ID(), nil); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := a.RegisterSolverRef("length", "solvers/distance"); err != nil {
		t.Fatalf("RegisterSolverRef: %v", err)
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if length, _ := a.Attribute("length").AsNumber(); length != 5 {
		t.Errorf("Expected length 5, got %g", length)
	}

	// Re-binding the name takes effect on the next solve without
	// re-registration.
	resolver["solvers/distance"] = SolverFunc(func(n *Node) (Value, error) {
		return NumberValue(-1), nil
	})
	if err := a.SetInput("touch", BoolValue(true)); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Re-solve: %v", err)
	}
	if length, _ := a.Attribute("length").AsNumber(); length != -1 {
		t.Errorf("Expected rebound solver result -1, got %g", length)
	}
}

func TestSolve_UnresolvedReferenceStrict(t *testing.T) {
	g := New(Config{IDs: &seqIDs{}})
	a := g.NewNode(vec(0, 0, 0))

	if err := a.RegisterSolverRef("length", "solvers/missing"); err != nil {
		t.Fatalf("RegisterSolverRef: %v", err)
	}
	if _, err := a.Solve(); !errors.Is(err, ErrSolverNotFound) {
		t.Errorf("Expected ErrSolverNotFound, got %v", err)
	}
}

func TestSolve_UnresolvedReferenceLenient(t *testing.T) {
	g := New(Config{IDs: &seqIDs{}, LenientResolve: true})
	a := g.NewNode(vec(0, 0, 0))

	if err := a.RegisterSolverRef("length", "solvers/missing"); err != nil {
		t.Fatalf("RegisterSolverRef: %v", err)
	}
	recomputed, err := a.Solve()
	if err != nil {
		t.Fatalf("Lenient solve should not fail: %v", err)
	}
	if !recomputed {
		t.Error("Solve should still recompute")
	}
	if !a.Attribute("length").IsNone() {
		t.Error("Skipped output key should stay absent")
	}
}

func TestSolve_SolverError(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))

	boom := errors.New("boom")
	if err := a.RegisterSolver("bad", SolverFunc(func(n *Node) (Value, error) {
		return None(), boom
	})); err != nil {
		t.Fatalf("RegisterSolver: %v", err)
	}

	_, err := a.Solve()
	if !errors.Is(err, boom) {
		t.Errorf("Expected solver error to propagate, got %v", err)
	}

	var gerr *GraphError
	if !errors.As(err, &gerr) {
		t.Fatal("Expected a *GraphError")
	}
	if gerr.Key != "bad" {
		t.Errorf("Expected failing key 'bad', got %q", gerr.Key)
	}
}

func TestSolve_NoneOutputClearsKey(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(0, 0, 0))

	returnNone := false
	if err := a.RegisterSolver("opt", SolverFunc(func(n *Node) (Value, error) {
		if returnNone {
			return None(), nil
		}
		return NumberValue(1), nil
	})); err != nil {
		t.Fatalf("RegisterSolver: %v", err)
	}

	if _, err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if a.Attribute("opt").IsNone() {
		t.Fatal("Expected output to be written")
	}

	returnNone = true
	if err := a.SetInput("touch", BoolValue(true)); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if _, err := a.Solve(); err != nil {
		t.Fatalf("Re-solve: %v", err)
	}
	if !a.Attribute("opt").IsNone() {
		t.Error("None output should clear the attribute")
	}
	if a.NeedsSolve() {
		t.Error("Node should be clean after the clearing solve")
	}
}

func TestSolve_MultipleOutputKeys(t *testing.T) {
	g := newTestGraph()
	a := g.NewNode(vec(3, 4, 0))

	if err := a.RegisterSolver("norm", SolverFunc(func(n *Node) (Value, error) {
		pos, err := n.Position()
		if err != nil {
			return None(), err
		}
		return NumberValue(Distance(pos, vec(0, 0, 0))), nil
	})); err != nil {
		t.Fatalf("RegisterSolver norm: %v", err)
	}
	if err := a.RegisterSolver("grounded", SolverFunc(func(n *Node) (Value, error) {
		pos, err := n.Position()
		if err != nil {
			return None(), err
		}
		return BoolValue(pos.Z == 0), nil
	})); err != nil {
		t.Fatalf("RegisterSolver grounded: %v", err)
	}

	if _, err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if norm, _ := a.Attribute("norm").AsNumber(); norm != 5 {
		t.Errorf("Expected norm 5, got %g", norm)
	}
	if grounded, _ := a.Attribute("grounded").AsBool(); !grounded {
		t.Error("Expected grounded true")
	}
	if a.Generation() != 1 {
		t.Errorf("One solve pass should bump generation once, got %d", a.Generation())
	}
}
