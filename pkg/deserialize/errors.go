package deserialize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/brownfield-data/typedeser/internal/dzerr"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
	"github.com/brownfield-data/typedeser/pkg/typedbuffer"
)

// formatShapeList renders an int shape vector as "[2, 2]".
func formatShapeList(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatTrailingList renders an element-type list with the oracle's
// trailing-comma style, e.g. "[f64, u8, u8, ]" (spec.md §7).
func formatTrailingList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "[" + strings.Join(items, ", ") + ", ]"
}

// formatQuotedList renders a list of names as a quoted Python-style list,
// e.g. `["a", "b"]`, matching "Key(s) not found: [...]" (spec.md §7).
func formatQuotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func irregularShapeErr(shape []int, buf *typedbuffer.Buffer) error {
	return dzerr.Value("Irregular shape found cannot parse as %s array. Expected shape: %s  Total elements: %d",
		buf.DType, formatShapeList(shape), buf.Len())
}

func dtypeNames(dtypes []typedbuffer.DType) []string {
	names := make([]string, len(dtypes))
	for i, dt := range dtypes {
		names[i] = dt.String()
	}
	return names
}

// tooManyColumnsErr reports a K-column schema seeing fewer than K actual
// columns/row-elements (spec.md §4.3, §8 scenario 6).
func tooManyColumnsErr(dtypes []typedbuffer.DType, found int) error {
	return dzerr.Type("Too many columns specified: [%s] (%d) \nFound: (%d)",
		strings.Join(dtypeNames(dtypes), ", "), len(dtypes), found)
}

// mapTypeMismatch reports one row of a SeqOfMapsTransposed node receiving a
// non-map value (test_deserialize_lol_as_lom's "invalid type: sequence,
// expected map with elements: ..." prefix).
func mapTypeMismatch(ev tokenstream.Event, fieldNames []string) error {
	kind := "scalar"
	if ev.Kind == tokenstream.SeqStart {
		kind = "sequence"
	}
	sorted := append([]string(nil), fieldNames...)
	sort.Strings(sorted)
	return dzerr.Type("invalid type: %s, expected map with elements: %s", kind, formatTrailingList(sorted))
}

// mapNodeTypeMismatch reports a plain Map{fields} node receiving a non-map
// value (test_deserialize_list_as_map's "Cannot deserialize sequence as map
// of arrays" prefix, spec.md §7).
func mapNodeTypeMismatch(ev tokenstream.Event) error {
	kind := "scalar"
	if ev.Kind == tokenstream.SeqStart {
		kind = "sequence"
	}
	return dzerr.Type("Cannot deserialize %s as map of arrays", kind)
}

// seqTypeMismatch reports a sequence-shaped node receiving a non-sequence
// value.
func seqTypeMismatch(ev tokenstream.Event, dtypes []typedbuffer.DType) error {
	kind := "scalar"
	if ev.Kind == tokenstream.MapStart {
		kind = "map"
	}
	return dzerr.Type("invalid type: %s, expected sequence with elements: %s", kind, formatTrailingList(dtypeNames(dtypes)))
}

func missingKeysErr(missing []string) error {
	sorted := append([]string(nil), missing...)
	sort.Strings(sorted)
	return dzerr.Type("Key(s) not found: %s", formatQuotedList(sorted))
}
