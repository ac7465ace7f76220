package record

import (
	"encoding/json"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
)

func (k Kind) String() string {
	if k == KindSequence {
		return "sequence"
	}
	return "scalar"
}

// Value is either a single string or an ordered list of strings.
type Value struct {
	kind   Kind
	scalar string
	items  []string
}

func Scalar(s string) Value { return Value{kind: KindScalar, scalar: s} }

// Sequence copies items; nil becomes an empty sequence.
func Sequence(items []string) Value {
	return Value{kind: KindSequence, items: append([]string{}, items...)}
}

func (v Value) Kind() Kind { return v.kind }

// Scalar returns the string of a scalar value, "" for a sequence.
func (v Value) Scalar() string { return v.scalar }

// Items returns a copy of a sequence's items, nil for a scalar.
func (v Value) Items() []string {
	if v.kind != KindSequence {
		return nil
	}
	return append([]string{}, v.items...)
}

// IsEmpty reports whether the value carries no data.
func (v Value) IsEmpty() bool {
	if v.kind == KindSequence {
		return len(v.items) == 0
	}
	return v.scalar == ""
}

// Display renders the value for tabular output; sequences are joined with ", ".
func (v Value) Display() string {
	if v.kind == KindSequence {
		return strings.Join(v.items, ", ")
	}
	return v.scalar
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindSequence {
		return json.Marshal(v.Items())
	}
	return json.Marshal(v.scalar)
}

func (v Value) any() any {
	if v.kind == KindSequence {
		out := make([]any, len(v.items))
		for i, s := range v.items {
			out[i] = s
		}
		return out
	}
	return v.scalar
}
