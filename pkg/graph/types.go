package graph

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind represents the type of an attribute value
type Kind uint8

const (
	KindNone Kind = iota
	KindNumber
	KindString
	KindBool
	KindVector
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Vector3 is a 3D vector used for node and edge positions
type Vector3 = r3.Vec

// Value represents a typed attribute value. The zero Value is None,
// which doubles as "attribute absent": setting a key to None clears it.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	vec  Vector3
}

// Helper functions to create typed values
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func VectorValue(v Vector3) Value {
	return Value{kind: KindVector, vec: v}
}

// None returns the absent value
func None() Value {
	return Value{}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNone reports whether the value is absent
func (v Value) IsNone() bool {
	return v.kind == KindNone
}

// Decode methods
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("value is not a number (got %s)", v.kind)
	}
	return v.num, nil
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("value is not a string (got %s)", v.kind)
	}
	return v.str, nil
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("value is not a bool (got %s)", v.kind)
	}
	return v.b, nil
}

func (v Value) AsVector() (Vector3, error) {
	if v.kind != KindVector {
		return Vector3{}, fmt.Errorf("value is not a vector (got %s)", v.kind)
	}
	return v.vec, nil
}

// Equal reports whether two values have the same kind and payload.
// Numeric and vector comparison is exact; there is no epsilon tolerance.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindBool:
		return v.b == other.b
	case KindVector:
		return v.vec == other.vec
	default:
		return false
	}
}

// String returns a printable form of the value, mainly for logs and tests
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "none"
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindString:
		return v.str
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindVector:
		return fmt.Sprintf("(%g, %g, %g)", v.vec.X, v.vec.Y, v.vec.Z)
	default:
		return "unknown"
	}
}

// Distance returns the Euclidean distance between two points
func Distance(a, b Vector3) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// cloneAttrs makes a deep copy of an attribute map
func cloneAttrs(attrs map[string]Value) map[string]Value {
	clone := make(map[string]Value, len(attrs))
	for k, v := range attrs {
		clone[k] = v
	}
	return clone
}

// attrsEqual compares two attribute maps with two-way key iteration:
// keys present on either side only, or present on both with differing
// values, all count as a difference.
func attrsEqual(current, cached map[string]Value) bool {
	for key, cachedVal := range cached {
		cur, ok := current[key]
		if !ok || !cur.Equal(cachedVal) {
			return false
		}
	}
	for key := range current {
		if _, ok := cached[key]; !ok {
			return false
		}
	}
	return true
}
