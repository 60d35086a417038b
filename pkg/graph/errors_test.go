package graph

import (
	"errors"
	"fmt"
	"testing"
)

func TestGraphError_Formatting(t *testing.T) {
	err := NewError("Connect").Node("a").Peer("b").Cause(ErrSelfConnection).Err()
	msg := err.Error()
	if msg != fmt.Sprintf("Connect a->b: %v", ErrSelfConnection) {
		t.Errorf("Unexpected message: %q", msg)
	}

	err = KeyConflictError("SetInput", "a", "length")
	if err.Error() != fmt.Sprintf("SetInput a (key length): %v", ErrKeyConflict) {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestGraphError_Unwrap(t *testing.T) {
	err := MissingConnectionError("Tags", "a", "b")

	if !errors.Is(err, ErrMissingConnection) {
		t.Error("errors.Is should match the sentinel cause")
	}

	var gerr *GraphError
	if !errors.As(err, &gerr) {
		t.Fatal("errors.As should extract *GraphError")
	}
	if gerr.Op != "Tags" || gerr.NodeID != "a" || gerr.PeerID != "b" {
		t.Errorf("Unexpected fields: %+v", gerr)
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !IsNotFound(NodeNotFoundError("Node", "x")) {
		t.Error("IsNotFound should match node not found")
	}
	if IsNotFound(SelfConnectionError("Connect", "x")) {
		t.Error("IsNotFound should not match self connection")
	}

	for _, err := range []error{
		SelfConnectionError("Connect", "x"),
		MissingConnectionError("Tags", "x", "y"),
		KeyConflictError("SetInput", "x", "k"),
	} {
		if !IsContractViolation(err) {
			t.Errorf("IsContractViolation should match %v", err)
		}
	}
	if IsContractViolation(errors.New("random")) {
		t.Error("IsContractViolation should not match arbitrary errors")
	}
}
