package deserialize

import (
	"github.com/brownfield-data/typedeser/internal/dzerr"
	"github.com/brownfield-data/typedeser/pkg/schemaspec"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
)

// decodeScalar implements the Scalar(t) compatibility matrix (spec.md
// §4.3): IntGen never accepts Float even when integral, and FloatGen only
// widens an Int/UInt token when the caller opted into
// schemaspec.WithLenientFloatScalars (spec.md §9's second Open Question).
func decodeScalar(n schemaspec.ScalarNode, src tokenstream.Source, sch *schemaspec.Schema) (Value, error) {
	ev, err := nextEvent(src)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case schemaspec.KStr:
		if ev.Kind != tokenstream.Str {
			return nil, scalarTypeErr(n.Kind)
		}
		return ScalarValue{Kind: n.Kind, Str: ev.StrV}, nil

	case schemaspec.KBool:
		if ev.Kind != tokenstream.Bool {
			return nil, scalarTypeErr(n.Kind)
		}
		return ScalarValue{Kind: n.Kind, Bool: ev.BoolV}, nil

	case schemaspec.KIntGen:
		switch ev.Kind {
		case tokenstream.Int:
			return ScalarValue{Kind: n.Kind, Int: ev.IntV}, nil
		case tokenstream.UInt:
			return ScalarValue{Kind: n.Kind, UInt: ev.UIntV, IsUnsigned: true}, nil
		default:
			return nil, scalarTypeErr(n.Kind)
		}

	case schemaspec.KFloatGen:
		switch ev.Kind {
		case tokenstream.Float:
			return ScalarValue{Kind: n.Kind, Float: ev.FloatV}, nil
		case tokenstream.Int:
			if !sch.LenientFloatScalars {
				return nil, scalarTypeErr(n.Kind)
			}
			return ScalarValue{Kind: n.Kind, Float: float64(ev.IntV)}, nil
		case tokenstream.UInt:
			if !sch.LenientFloatScalars {
				return nil, scalarTypeErr(n.Kind)
			}
			return ScalarValue{Kind: n.Kind, Float: float64(ev.UIntV)}, nil
		default:
			return nil, scalarTypeErr(n.Kind)
		}

	default:
		return nil, dzerr.Type("unsupported scalar kind %v", n.Kind)
	}
}

func scalarTypeErr(k schemaspec.ScalarKind) error {
	return dzerr.Type("Could not deserialize as %s", k)
}
