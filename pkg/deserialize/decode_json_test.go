package deserialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownfield-data/typedeser/pkg/schemaspec"
)

func decodeJSON(t *testing.T, spec map[string]any, doc string, opts ...schemaspec.Option) (any, error) {
	t.Helper()
	s, err := schemaspec.From(spec, opts...)
	require.NoError(t, err)
	v, err := New(s).DeserializeJSON([]byte(doc))
	if err != nil {
		return nil, err
	}
	return ToNative(v), nil
}

// Scenario 1 (spec.md §8): plain float scalar.
func TestScenarioFloatScalar(t *testing.T) {
	got, err := decodeJSON(t, map[string]any{"float": schemaspec.Float}, `{"float":0.34}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"float": 0.34}, got)
}

// Scenario 2: a 2x2 nested array cast to F32.
func TestScenarioArray2D(t *testing.T) {
	got, err := decodeJSON(t, map[string]any{"float_arr": schemaspec.F32},
		`{"float_arr":[[1.25,-0.69],[-0.29,0.52]]}`)
	require.NoError(t, err)
	m := got.(map[string]any)
	rows := m["float_arr"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, []float32{1.25, -0.69}, rows[0])
	assert.Equal(t, []float32{-0.29, 0.52}, rows[1])
}

// Scenario 3: SeqOfArrays producing three 1-D columns of length 5.
func TestScenarioSeqOfArrays(t *testing.T) {
	doc := `{"stream0":[[-1.72,0.6,0.05,0.72,1.54],[72,45,-58,-16,-14],[1,0,0,1,0]]}`
	got, err := decodeJSON(t, map[string]any{
		"stream0": []any{schemaspec.F64, schemaspec.I16, schemaspec.U8},
	}, doc)
	require.NoError(t, err)
	cols := got.(map[string]any)["stream0"].([]any)
	require.Len(t, cols, 3)
	assert.Len(t, cols[0].([]float64), 5)
	assert.Len(t, cols[1].([]int16), 5)
	assert.Len(t, cols[2].([]uint8), 5)
}

// Scenario 4: SeqOfMapsTransposed producing three 1-D columns of length 3.
func TestScenarioSeqOfMapsTransposed(t *testing.T) {
	doc := `{"stream4":[{"x":-2.17,"y":0,"z":1},{"x":-0.06,"y":1,"z":2},{"x":1.37,"y":1,"z":3}]}`
	got, err := decodeJSON(t, map[string]any{
		"stream4": []any{map[string]any{"x": schemaspec.F64, "y": schemaspec.U8, "z": schemaspec.U8}},
	}, doc)
	require.NoError(t, err)
	cols := got.(map[string]any)["stream4"].([]any)
	require.Len(t, cols, 3)
	for _, c := range cols {
		assert.Equal(t, 3, reflectLen(c))
	}
}

// Scenario 5: irregular nested array.
func TestScenarioIrregularShape(t *testing.T) {
	_, err := decodeJSON(t, map[string]any{"irregular": schemaspec.F32}, `{"irregular":[[1,2],[3]]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Irregular shape found cannot parse as f32 array. Expected shape: [2, 2]  Total elements: 3")
}

// Scenario 6: schema names more columns than the input row provides.
func TestScenarioTooManyColumns(t *testing.T) {
	doc := `{"stream3":[[1.0,0,1],[1.0,1,2],[1.0,1,3]]}`
	got, err := decodeJSON(t, map[string]any{
		"stream3": []any{[]any{schemaspec.F64, schemaspec.I32, schemaspec.Int, schemaspec.Str}},
	}, doc)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "Too many columns specified: [f64, i32, i64, str] (4) \nFound: (3)")
}

func TestUnreferencedKeyLeavesOutputUnchanged(t *testing.T) {
	spec := map[string]any{"a": schemaspec.Int}
	got1, err := decodeJSON(t, spec, `{"a":1}`)
	require.NoError(t, err)
	got2, err := decodeJSON(t, spec, `{"a":1,"b":"ignored"}`)
	require.NoError(t, err)
	assert.Equal(t, got1, got2)
}

func TestMissingSchemaKeyIsError(t *testing.T) {
	_, err := decodeJSON(t, map[string]any{"a": schemaspec.Int, "b": schemaspec.Str}, `{"a":1}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Key(s) not found: ["b"]`)
}

func TestTolerantMissingKeysOmitsFromOutput(t *testing.T) {
	got, err := decodeJSON(t, map[string]any{"a": schemaspec.Int, "b": schemaspec.Str}, `{"a":1}`,
		schemaspec.WithTolerantMissingKeys())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1)}, got)
}

func TestIntGenRejectsFloatLiteral(t *testing.T) {
	_, err := decodeJSON(t, map[string]any{"n": schemaspec.Int}, `{"n":1.0}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not deserialize as int")
}

func TestFloatGenRejectsIntByDefault(t *testing.T) {
	_, err := decodeJSON(t, map[string]any{"f": schemaspec.Float}, `{"f":1}`)
	require.Error(t, err)
}

func TestFloatGenAcceptsIntWhenLenient(t *testing.T) {
	got, err := decodeJSON(t, map[string]any{"f": schemaspec.Float}, `{"f":1}`,
		schemaspec.WithLenientFloatScalars())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"f": 1.0}, got)
}

func TestDeterministicRedecodeYieldsEqualOutput(t *testing.T) {
	spec := map[string]any{"a": schemaspec.F32}
	doc := `{"a":[1,2,3]}`
	got1, err := decodeJSON(t, spec, doc)
	require.NoError(t, err)
	got2, err := decodeJSON(t, spec, doc)
	require.NoError(t, err)
	assert.Equal(t, got1, got2)
}

func reflectLen(v any) int {
	switch t := v.(type) {
	case []float64:
		return len(t)
	case []uint8:
		return len(t)
	default:
		return -1
	}
}
