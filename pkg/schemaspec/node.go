// Package schemaspec builds the immutable schema tree the deserializer
// core walks (spec.md §3.1, §4.1). It exposes two equivalent ways to
// build one: the dynamic, literal-driven From(spec any) that mirrors the
// original API's overloaded-literal encoding exactly (and is also what
// the YAML loader in yaml.go feeds into), and a statically-typed builder
// (Array, Map, SeqOfArrays, ...) for callers who want the compiler to
// rule out malformed shapes up front — the "first-class tagged variant
// builder" spec.md §9's Design Notes recommend.
package schemaspec

import (
	"sort"

	"github.com/brownfield-data/typedeser/pkg/typedbuffer"
)

// DType re-exports typedbuffer's element-type tag so schema specs can name
// array element types without importing typedbuffer directly.
type DType = typedbuffer.DType

const (
	I8   = typedbuffer.I8
	I16  = typedbuffer.I16
	I32  = typedbuffer.I32
	I64  = typedbuffer.I64
	U8   = typedbuffer.U8
	U16  = typedbuffer.U16
	U32  = typedbuffer.U32
	U64  = typedbuffer.U64
	F32  = typedbuffer.F32
	F64  = typedbuffer.F64
	BoolDType = typedbuffer.Bool
	StrDType  = typedbuffer.Str
)

// ScalarKind names the semantic type of a single-scalar schema leaf.
type ScalarKind uint8

const (
	KStr ScalarKind = iota
	KBool
	KIntGen
	KFloatGen
)

func (k ScalarKind) String() string {
	switch k {
	case KStr:
		return "str"
	case KBool:
		return "bool"
	case KIntGen:
		return "int"
	case KFloatGen:
		return "float"
	default:
		return "unknown"
	}
}

// Node is one variant of the schema tree (spec.md §3.1): ScalarNode,
// ArrayNode, MapNode, SeqOfArraysNode, SeqOfArraysTransposedNode, or
// SeqOfMapsTransposedNode.
type Node interface {
	isNode()
}

// ScalarNode expects exactly one scalar of the given semantic Kind.
type ScalarNode struct{ Kind ScalarKind }

func (ScalarNode) isNode() {}

// ArrayNode expects a (possibly nested) rectangular sequence of scalars
// and produces a single N-dimensional array of element type DType.
type ArrayNode struct{ DType DType }

func (ArrayNode) isNode() {}

// MapNode expects a map and recurses into Fields by key.
type MapNode struct{ Fields map[string]Node }

func (MapNode) isNode() {}

// SeqOfArraysNode expects a sequence of len(DTypes) sub-sequences, the
// k-th parsed as Array(DTypes[k]).
type SeqOfArraysNode struct{ DTypes []DType }

func (SeqOfArraysNode) isNode() {}

// SeqOfArraysTransposedNode expects a sequence of rows, each with
// len(DTypes) columns, and produces one 1-D array per column.
type SeqOfArraysTransposedNode struct{ DTypes []DType }

func (SeqOfArraysTransposedNode) isNode() {}

// SeqOfMapsTransposedNode expects a sequence of maps sharing the key set
// in Keys, and produces one 1-D array per key, typed per DTypes (same
// index order as Keys).
type SeqOfMapsTransposedNode struct {
	Keys   []string
	DTypes []DType
}

func (SeqOfMapsTransposedNode) isNode() {}

// Scalar type markers. Use these directly as values in a dynamic spec map
// passed to From, e.g. map[string]any{"name": schemaspec.Str}.
var (
	Str   Node = ScalarNode{Kind: KStr}
	Bool  Node = ScalarNode{Kind: KBool}
	Int   Node = ScalarNode{Kind: KIntGen}
	Float Node = ScalarNode{Kind: KFloatGen}
)

// Array builds an Array(dt) leaf node directly.
func Array(dt DType) Node { return ArrayNode{DType: dt} }

// Map builds a Map{fields} node directly.
func Map(fields map[string]Node) Node { return MapNode{Fields: fields} }

// SeqOfArrays builds a SeqOfArrays([dt0, ...]) node directly.
func SeqOfArrays(dtypes ...DType) Node {
	return SeqOfArraysNode{DTypes: append([]DType(nil), dtypes...)}
}

// SeqOfArraysTransposed builds a SeqOfArraysTransposed([dt0, ...]) node
// directly.
func SeqOfArraysTransposed(dtypes ...DType) Node {
	return SeqOfArraysTransposedNode{DTypes: append([]DType(nil), dtypes...)}
}

// SeqOfMapsTransposed builds a SeqOfMapsTransposed({name: dt, ...}) node
// directly. Because fields only accepts a DType (not a Node), the
// list-of-nested-structure construction error spec.md §4.1 describes is
// unreachable through this entry point — the Go type system enforces the
// rule instead of a runtime check (see DESIGN.md). From (below) still
// performs and tests the runtime check, for dynamic/YAML-sourced specs.
func SeqOfMapsTransposed(fields map[string]DType) Node {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	dtypes := make([]DType, len(keys))
	for i, k := range keys {
		dtypes[i] = fields[k]
	}
	return SeqOfMapsTransposedNode{Keys: keys, DTypes: dtypes}
}
