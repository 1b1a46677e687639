package deserialize

import (
	"errors"
	"fmt"

	"github.com/brownfield-data/typedeser/internal/dzerr"
	"github.com/brownfield-data/typedeser/pkg/schemaspec"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
)

// decode dispatches on the schema node variant (spec.md §4.3). Node-visit
// diagnostics go to Debug level only, per SPEC_FULL.md §1's logging policy.
func decode(node schemaspec.Node, src tokenstream.Source, sch *schemaspec.Schema) (Value, error) {
	sch.Logger.Debug("decode: visiting node", "node", nodeKind(node))
	switch n := node.(type) {
	case schemaspec.ScalarNode:
		return decodeScalar(n, src, sch)
	case schemaspec.ArrayNode:
		return decodeArray(n, src, sch)
	case schemaspec.MapNode:
		return decodeMap(n, src, sch)
	case schemaspec.SeqOfArraysNode:
		return decodeSeqOfArrays(n, src, sch)
	case schemaspec.SeqOfArraysTransposedNode:
		return decodeSeqOfArraysTransposed(n, src, sch)
	case schemaspec.SeqOfMapsTransposedNode:
		return decodeSeqOfMapsTransposed(n, src, sch)
	default:
		return nil, dzerr.Type("unsupported schema node %T", node)
	}
}

func nodeKind(node schemaspec.Node) string {
	switch node.(type) {
	case schemaspec.ScalarNode:
		return "Scalar"
	case schemaspec.ArrayNode:
		return "Array"
	case schemaspec.MapNode:
		return "Map"
	case schemaspec.SeqOfArraysNode:
		return "SeqOfArrays"
	case schemaspec.SeqOfArraysTransposedNode:
		return "SeqOfArraysTransposed"
	case schemaspec.SeqOfMapsTransposedNode:
		return "SeqOfMapsTransposed"
	default:
		return "unknown"
	}
}

// nextEvent reads the next token, wrapping a raw stream error (malformed
// bytes, premature EOF) as a dzerr ParseError unless it already is one.
func nextEvent(src tokenstream.Source) (tokenstream.Event, error) {
	ev, err := src.Next()
	if err != nil {
		var de *dzerr.Error
		if errors.As(err, &de) {
			return ev, err
		}
		return ev, dzerr.Parse(err)
	}
	return ev, nil
}

// skipValue consumes one complete, unmentioned value subtree (spec.md
// §4.5): a scalar event, or a balanced MapStart…MapEnd / SeqStart…SeqEnd.
func skipValue(src tokenstream.Source) error {
	ev, err := nextEvent(src)
	if err != nil {
		return err
	}
	return skipRest(ev, src)
}

// skipRest finishes the subtree that ev opened. MapKey events between a
// MapStart and its MapEnd are transparent to the depth counter, as are the
// scalar values that follow them.
func skipRest(ev tokenstream.Event, src tokenstream.Source) error {
	depth := 0
	switch ev.Kind {
	case tokenstream.MapStart, tokenstream.SeqStart:
		depth = 1
	default:
		return nil
	}
	for depth > 0 {
		next, err := nextEvent(src)
		if err != nil {
			return err
		}
		switch next.Kind {
		case tokenstream.MapStart, tokenstream.SeqStart:
			depth++
		case tokenstream.MapEnd, tokenstream.SeqEnd:
			depth--
		}
	}
	return nil
}

func expectMapKeyErr(k tokenstream.Kind) error {
	return dzerr.Parse(fmt.Errorf("expected map key, got %s", k))
}
