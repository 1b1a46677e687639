package deserialize

import (
	"github.com/brownfield-data/typedeser/pkg/schemaspec"
	"github.com/brownfield-data/typedeser/pkg/typedbuffer"
)

// Value is one node of the decoded output tree (spec.md §3.3): a single
// scalar, a finalized typed array, a map of further Values, or a
// heterogeneous list of arrays (the SeqOfArrays/SeqOfArraysTransposed/
// SeqOfMapsTransposed result shape).
type Value interface {
	isValue()
}

// ScalarValue holds one decoded Scalar(t) leaf. Only the field matching
// Kind is populated; IsUnsigned distinguishes a KIntGen value that arrived
// as a token stream UInt event from one that arrived as Int.
type ScalarValue struct {
	Kind       schemaspec.ScalarKind
	Str        string
	Bool       bool
	Int        int64
	UInt       uint64
	IsUnsigned bool
	Float      float64
}

func (ScalarValue) isValue() {}

// ArrayValue wraps a single finalized typed buffer (an Array(dt) leaf).
type ArrayValue struct {
	Buf *typedbuffer.Buffer
}

func (ArrayValue) isValue() {}

// MapValue holds the decoded field values of a Map{fields} node. Field
// order is not preserved — ToNative finalizes into a plain Go map, and
// nothing in spec.md requires key order to survive into the native output.
type MapValue struct {
	Fields map[string]Value
}

func (MapValue) isValue() {}

// ArrayListValue holds the K typed buffers produced by SeqOfArrays,
// SeqOfArraysTransposed or SeqOfMapsTransposed.
type ArrayListValue struct {
	Buffers []*typedbuffer.Buffer
}

func (ArrayListValue) isValue() {}

// ToNative unwraps a Value into host-native Go values (spec.md §4.6): a
// map[string]any for MapValue, the buffer's Native form for ArrayValue (a
// flat typed slice for 1-D, nested []any of typed slices for N-D), a []any
// of native arrays for ArrayListValue, and the scalar's own Go type
// otherwise.
func ToNative(v Value) any {
	switch t := v.(type) {
	case ScalarValue:
		switch t.Kind {
		case schemaspec.KStr:
			return t.Str
		case schemaspec.KBool:
			return t.Bool
		case schemaspec.KIntGen:
			if t.IsUnsigned {
				return t.UInt
			}
			return t.Int
		case schemaspec.KFloatGen:
			return t.Float
		default:
			return nil
		}
	case ArrayValue:
		return t.Buf.Native()
	case MapValue:
		out := make(map[string]any, len(t.Fields))
		for k, fv := range t.Fields {
			out[k] = ToNative(fv)
		}
		return out
	case ArrayListValue:
		out := make([]any, len(t.Buffers))
		for i, b := range t.Buffers {
			out[i] = b.Native()
		}
		return out
	default:
		return nil
	}
}
