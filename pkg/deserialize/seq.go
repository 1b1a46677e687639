package deserialize

import (
	"github.com/brownfield-data/typedeser/pkg/schemaspec"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
	"github.com/brownfield-data/typedeser/pkg/typedbuffer"
)

// decodeSeqOfArrays implements SeqOfArrays([dt0, ...]) (spec.md §4.3): a
// sequence of K column sub-sequences, each parsed as Array(dt_k). Extra
// input columns beyond K are silently skipped; fewer than K is an error.
func decodeSeqOfArrays(n schemaspec.SeqOfArraysNode, src tokenstream.Source, sch *schemaspec.Schema) (Value, error) {
	ev, err := nextEvent(src)
	if err != nil {
		return nil, err
	}
	if ev.Kind != tokenstream.SeqStart {
		return nil, seqTypeMismatch(ev, n.DTypes)
	}

	buffers := make([]*typedbuffer.Buffer, 0, len(n.DTypes))
	found := 0
	for {
		colEv, err := nextEvent(src)
		if err != nil {
			return nil, err
		}
		if colEv.Kind == tokenstream.SeqEnd {
			break
		}
		if found < len(n.DTypes) {
			buf, err := decodeArrayFromEvent(colEv, src, n.DTypes[found], sch)
			if err != nil {
				return nil, err
			}
			buffers = append(buffers, buf)
		} else if err := skipRest(colEv, src); err != nil {
			return nil, err
		}
		found++
	}

	if found < len(n.DTypes) {
		return nil, tooManyColumnsErr(n.DTypes, found)
	}
	return ArrayListValue{Buffers: buffers}, nil
}

// decodeSeqOfArraysTransposed implements SeqOfArraysTransposed (spec.md
// §4.3): a sequence of rows, each row itself a flat K-element sequence,
// producing K 1-D column buffers of length equal to the row count.
func decodeSeqOfArraysTransposed(n schemaspec.SeqOfArraysTransposedNode, src tokenstream.Source, sch *schemaspec.Schema) (Value, error) {
	ev, err := nextEvent(src)
	if err != nil {
		return nil, err
	}
	if ev.Kind != tokenstream.SeqStart {
		return nil, seqTypeMismatch(ev, n.DTypes)
	}

	buffers := make([]*typedbuffer.Buffer, len(n.DTypes))
	for i, dt := range n.DTypes {
		buffers[i] = typedbuffer.New(dt)
	}

	rows := 0
	for {
		rowEv, err := nextEvent(src)
		if err != nil {
			return nil, err
		}
		if rowEv.Kind == tokenstream.SeqEnd {
			break
		}
		if rowEv.Kind != tokenstream.SeqStart {
			return nil, seqTypeMismatch(rowEv, n.DTypes)
		}
		if err := decodeTransposedRow(src, buffers, n.DTypes); err != nil {
			return nil, err
		}
		rows++
	}

	for _, b := range buffers {
		b.Finalize([]int{rows})
	}
	sch.Logger.Debug("decode: seq-of-arrays-transposed finalized", "columns", len(buffers), "rows", rows)
	return ArrayListValue{Buffers: buffers}, nil
}

func decodeTransposedRow(src tokenstream.Source, buffers []*typedbuffer.Buffer, dtypes []typedbuffer.DType) error {
	k := 0
	for {
		ev, err := nextEvent(src)
		if err != nil {
			return err
		}
		if ev.Kind == tokenstream.SeqEnd {
			break
		}
		if k < len(dtypes) {
			if err := appendScalarEvent(buffers[k], ev); err != nil {
				return err
			}
		} else if err := skipRest(ev, src); err != nil {
			return err
		}
		k++
	}
	if k < len(dtypes) {
		return tooManyColumnsErr(dtypes, k)
	}
	return nil
}

// decodeSeqOfMapsTransposed implements SeqOfMapsTransposed (spec.md
// §4.3): a sequence of maps sharing the schema's key set, producing one
// 1-D column buffer per key. Extra row keys are skipped; the per-row vs.
// whole-sequence missing-key strictness follows the same
// WithTolerantMissingKeys policy as decodeMap (spec.md §9).
func decodeSeqOfMapsTransposed(n schemaspec.SeqOfMapsTransposedNode, src tokenstream.Source, sch *schemaspec.Schema) (Value, error) {
	ev, err := nextEvent(src)
	if err != nil {
		return nil, err
	}
	if ev.Kind != tokenstream.SeqStart {
		return nil, seqTypeMismatch(ev, n.DTypes)
	}

	buffers := make([]*typedbuffer.Buffer, len(n.Keys))
	index := make(map[string]int, len(n.Keys))
	for i, k := range n.Keys {
		buffers[i] = typedbuffer.New(n.DTypes[i])
		index[k] = i
	}
	everSeen := make([]bool, len(n.Keys))

	rows := 0
	for {
		rowEv, err := nextEvent(src)
		if err != nil {
			return nil, err
		}
		if rowEv.Kind == tokenstream.SeqEnd {
			break
		}
		if rowEv.Kind != tokenstream.MapStart {
			return nil, mapTypeMismatch(rowEv, n.Keys)
		}

		seen := make([]bool, len(n.Keys))
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
			idx, ok := index[keyEv.StrV]
			if !ok {
				if err := skipValue(src); err != nil {
					return nil, err
				}
				continue
			}
			valEv, err := nextEvent(src)
			if err != nil {
				return nil, err
			}
			if err := appendScalarEvent(buffers[idx], valEv); err != nil {
				return nil, err
			}
			seen[idx] = true
			everSeen[idx] = true
		}

		if !sch.TolerantMissingKeys {
			if missing := missingSchemaKeys(n.Keys, seen); len(missing) > 0 {
				return nil, missingKeysErr(missing)
			}
		}
		rows++
	}

	if sch.TolerantMissingKeys {
		if missing := missingSchemaKeys(n.Keys, everSeen); len(missing) > 0 {
			return nil, missingKeysErr(missing)
		}
	}

	for _, b := range buffers {
		b.Finalize([]int{rows})
	}
	sch.Logger.Debug("decode: seq-of-maps-transposed finalized", "columns", len(buffers), "rows", rows)
	return ArrayListValue{Buffers: buffers}, nil
}

func missingSchemaKeys(keys []string, seen []bool) []string {
	var missing []string
	for i, k := range keys {
		if !seen[i] {
			missing = append(missing, k)
		}
	}
	return missing
}
