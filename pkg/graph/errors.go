package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrSelfConnection      = errors.New("node cannot connect to itself")
	ErrMissingConnection   = errors.New("nodes are not connected")
	ErrKeyConflict         = errors.New("attribute key conflict")
	ErrStructuralIntegrity = errors.New("structural integrity violation")
	ErrNodeNotFound        = errors.New("node not found")
	ErrSolverNotFound      = errors.New("solver reference not found")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "Connect", "RegisterSolver")
	NodeID string // Primary node ID (if applicable)
	PeerID string // Peer node ID for edge operations
	Key    string // Attribute key (for attribute/solver operations)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.PeerID != "":
		return fmt.Sprintf("%s %s->%s: %v", e.Op, e.NodeID, e.PeerID, e.Cause)
	case e.Key != "":
		return fmt.Sprintf("%s %s (key %s): %v", e.Op, e.NodeID, e.Key, e.Cause)
	case e.NodeID != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.NodeID, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Node sets the primary node ID.
func (b *ErrorBuilder) Node(id string) *ErrorBuilder {
	b.err.NodeID = id
	return b
}

// Peer sets the peer node ID for edge operations.
func (b *ErrorBuilder) Peer(id string) *ErrorBuilder {
	b.err.PeerID = id
	return b
}

// Key sets the attribute key for attribute and solver operations.
func (b *ErrorBuilder) Key(key string) *ErrorBuilder {
	b.err.Key = key
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// Convenience functions for common error patterns

// SelfConnectionError creates an error for an operation given the same node twice.
func SelfConnectionError(op, nodeID string) error {
	return NewError(op).Node(nodeID).Peer(nodeID).Cause(ErrSelfConnection).Err()
}

// MissingConnectionError creates an error for an operation requiring an edge.
func MissingConnectionError(op, nodeID, peerID string) error {
	return NewError(op).Node(nodeID).Peer(peerID).Cause(ErrMissingConnection).Err()
}

// KeyConflictError creates an error for an input/output key partition violation.
func KeyConflictError(op, nodeID, key string) error {
	return NewError(op).Node(nodeID).Key(key).Cause(ErrKeyConflict).Err()
}

// NodeNotFoundError creates a node not found error.
func NodeNotFoundError(op, nodeID string) error {
	return NewError(op).Node(nodeID).Cause(ErrNodeNotFound).Err()
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrSolverNotFound)
}

// IsContractViolation returns true if the error is a caller contract
// violation rather than an internal failure.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrSelfConnection) ||
		errors.Is(err, ErrMissingConnection) ||
		errors.Is(err, ErrKeyConflict) ||
		errors.Is(err, ErrStructuralIntegrity)
}
