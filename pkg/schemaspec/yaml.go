package schemaspec

import (
	"gopkg.in/yaml.v3"

	"github.com/brownfield-data/typedeser/internal/dzerr"
)

// FromYAML loads a schema from a YAML document whose scalar leaves are
// spelled as type-marker strings — "str", "bool", "int", "float" for
// Scalar leaves, and "i8".."u64"/"f32"/"f64"/"bool_arr"/"str" for array
// element types — mirroring the YAML-sourced schema loading
// twinfer-kbin-plugin's pkg/kaitaistruct.NewKaitaiSchemaFromYAML supports,
// generalized to this package's marker vocabulary.
func FromYAML(data []byte, opts ...Option) (*Schema, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, dzerr.Parse(err)
	}
	converted, err := convertYAMLValue(raw)
	if err != nil {
		return nil, err
	}
	return From(converted, opts...)
}

func convertYAMLValue(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return markerFromString(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, fv := range t {
			cv, err := convertYAMLValue(fv)
			if err != nil {
				return nil, err
			}
			out[k] = cv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, fv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, dzerr.Type("schema map keys must be strings, got %T", k)
			}
			cv, err := convertYAMLValue(fv)
			if err != nil {
				return nil, err
			}
			out[ks] = cv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, ev := range t {
			cv, err := convertYAMLValue(ev)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	default:
		return nil, dzerr.Type("unsupported schema YAML value %v (%T)", v, v)
	}
}

func markerFromString(s string) (any, error) {
	switch s {
	case "str":
		return Str, nil
	case "bool":
		return Bool, nil
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	}
	dt, ok := dtypeFromString(s)
	if !ok {
		return nil, dzerr.Type("unrecognized schema type marker %q", s)
	}
	return dt, nil
}

func dtypeFromString(s string) (DType, bool) {
	switch s {
	case "i8":
		return I8, true
	case "i16":
		return I16, true
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "u8":
		return U8, true
	case "u16":
		return U16, true
	case "u32":
		return U32, true
	case "u64":
		return U64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	case "bool_arr":
		return BoolDType, true
	default:
		return 0, false
	}
}
