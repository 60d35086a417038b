package graph

import (
	"fmt"
)

// seqIDs is a deterministic ID generator for tests
type seqIDs struct {
	next int
}

func (s *seqIDs) NewID() string {
	s.next++
	return fmt.Sprintf("n%d", s.next)
}

func newTestGraph() *Graph {
	return New(Config{IDs: &seqIDs{}})
}

func vec(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}
