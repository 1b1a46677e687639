package deserialize

import (
	"github.com/brownfield-data/typedeser/pkg/schemaspec"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
)

// decodeMap implements the Map{fields} node (spec.md §4.3): schema-named
// keys recurse, unmentioned keys are structurally skipped whole (§4.5),
// and missing schema keys are a hard error by default — relaxed by
// schemaspec.WithTolerantMissingKeys (spec.md §9's first Open Question).
func decodeMap(n schemaspec.MapNode, src tokenstream.Source, sch *schemaspec.Schema) (Value, error) {
	ev, err := nextEvent(src)
	if err != nil {
		return nil, err
	}
	if ev.Kind != tokenstream.MapStart {
		return nil, mapNodeTypeMismatch(ev)
	}

	observed := make(map[string]bool, len(n.Fields))
	out := MapValue{Fields: make(map[string]Value, len(n.Fields))}

	for {
		keyEv, err := nextEvent(src)
		if err != nil {
			return nil, err
		}
		if keyEv.Kind == tokenstream.MapEnd {
			break
		}
		if keyEv.Kind != tokenstream.MapKey {
			return nil, expectMapKeyErr(keyEv.Kind)
		}

		child, ok := n.Fields[keyEv.StrV]
		if !ok {
			sch.Logger.Debug("decode: skipping unmentioned key", "key", keyEv.StrV)
			if err := skipValue(src); err != nil {
				return nil, err
			}
			continue
		}

		v, err := decode(child, src, sch)
		if err != nil {
			return nil, err
		}
		observed[keyEv.StrV] = true
		out.Fields[keyEv.StrV] = v
	}

	if !sch.TolerantMissingKeys {
		var missing []string
		for name := range n.Fields {
			if !observed[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, missingKeysErr(missing)
		}
	}

	return out, nil
}
