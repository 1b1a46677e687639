package schemaspec

import (
	"sort"

	"github.com/brownfield-data/typedeser/internal/dzerr"
)

// From builds a Schema from a dynamic spec value — a tree of
// map[string]any, []any, schemaspec.DType, and the Str/Bool/Int/Float
// markers — mirroring the original API's overloaded-literal encoding
// (spec.md §3.1, §9). The top level must resolve to a MapNode; anything
// else produces the same construction-time error the original raises for
// a non-map top-level structure.
func From(spec any, opts ...Option) (*Schema, error) {
	node, err := nodeFromAny(spec)
	if err != nil {
		return nil, err
	}
	return New(node, opts...)
}

func nodeFromAny(v any) (Node, error) {
	switch t := v.(type) {
	case Node:
		return t, nil
	case DType:
		return ArrayNode{DType: t}, nil
	case map[string]any:
		fields := make(map[string]Node, len(t))
		for k, fv := range t {
			child, err := nodeFromAny(fv)
			if err != nil {
				return nil, err
			}
			fields[k] = child
		}
		return MapNode{Fields: fields}, nil
	case []any:
		return seqNodeFromAny(t)
	default:
		return nil, dzerr.Type("unsupported schema spec value of type %T", v)
	}
}

// seqNodeFromAny classifies a bare Go slice into one of the three
// sequence schema variants (spec.md §3.1):
//
//	[dt0, dt1, ...]     -> SeqOfArrays
//	[[dt0, dt1, ...]]   -> SeqOfArraysTransposed (single element, itself a list)
//	[{name: dt, ...}]   -> SeqOfMapsTransposed (single element, itself a map)
func seqNodeFromAny(seq []any) (Node, error) {
	if len(seq) == 1 {
		switch inner := seq[0].(type) {
		case []any:
			dtypes, err := dtypesFromAny(inner)
			if err != nil {
				return nil, err
			}
			return SeqOfArraysTransposedNode{DTypes: dtypes}, nil
		case map[string]any:
			return seqOfMapsTransposedFromAny(inner)
		}
	}
	dtypes, err := dtypesFromAny(seq)
	if err != nil {
		return nil, err
	}
	return SeqOfArraysNode{DTypes: dtypes}, nil
}

func seqOfMapsTransposedFromAny(fields map[string]any) (Node, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dtypes := make([]DType, len(keys))
	for i, k := range keys {
		fv := fields[k]
		if _, isMap := fv.(map[string]any); isMap {
			return nil, dzerr.NotImplemented(`structure unsupported. Currently sequences of nested structures are unsupported e.g. [{"a": {"b": Type}}])`)
		}
		dt, ok := dtypeLeaf(fv)
		if !ok {
			return nil, dzerr.Type("unsupported element type for transposed map field %q: %T", k, fv)
		}
		dtypes[i] = dt
	}
	return SeqOfMapsTransposedNode{Keys: keys, DTypes: dtypes}, nil
}

// dtypesFromAny converts a flat list of dtype markers. A bare Str marker
// is accepted as equivalent to the Str DType here: the original API
// reuses its builtin str type for both the scalar marker and the
// array-of-strings column marker, since numpy has no dedicated string
// dtype object.
func dtypesFromAny(seq []any) ([]DType, error) {
	out := make([]DType, 0, len(seq))
	for _, v := range seq {
		dt, ok := dtypeLeaf(v)
		if !ok {
			return nil, dzerr.Type("expected a numeric element-type marker, got %T", v)
		}
		out = append(out, dt)
	}
	return out, nil
}

// dtypeLeaf resolves one dtype-list element. Besides a direct DType
// marker, it also accepts the bare scalar markers (Str/Bool/Int/Float):
// the original reuses its builtin str/int/float/bool types as column
// markers inside a dtype list (spec.md §8 scenario 6 mixes numpy dtype
// objects with plain `int`/`str`), defaulting each to its natural Go
// width (Int->I64, Float->F64) since a bare marker carries no explicit
// width.
func dtypeLeaf(v any) (DType, bool) {
	if dt, ok := v.(DType); ok {
		return dt, true
	}
	if sn, ok := v.(ScalarNode); ok {
		switch sn.Kind {
		case KStr:
			return StrDType, true
		case KBool:
			return BoolDType, true
		case KIntGen:
			return I64, true
		case KFloatGen:
			return F64, true
		}
	}
	return 0, false
}

// constructionError reports why root cannot serve as the top-level schema
// node: only MapNode is a valid top level (spec.md §9), matching the
// original's messages for a bare scalar/sequence top-level structure.
func constructionError(root Node) error {
	switch t := root.(type) {
	case ScalarNode:
		return dzerr.Type("Cannot deserialize map as type: %s. Try using a dictionary instead", t.Kind)
	case ArrayNode:
		return dzerr.Type("Cannot deserialize map as type: %s. Try using a dictionary instead", t.DType)
	case SeqOfArraysNode, SeqOfArraysTransposedNode, SeqOfMapsTransposedNode:
		return dzerr.Type("Cannot deserialize map as sequence of arrays")
	default:
		return dzerr.Type("Cannot deserialize map as type: unknown. Try using a dictionary instead")
	}
}
