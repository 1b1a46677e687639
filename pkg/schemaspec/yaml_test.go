package schemaspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAMLScalarsAndArrays(t *testing.T) {
	doc := `
name: str
count: int
float_arr: f32
`
	spec, err := FromYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, ScalarNode{Kind: KStr}, spec.Root.Fields["name"])
	assert.Equal(t, ScalarNode{Kind: KIntGen}, spec.Root.Fields["count"])
	assert.Equal(t, ArrayNode{DType: F32}, spec.Root.Fields["float_arr"])
}

func TestFromYAMLNestedMap(t *testing.T) {
	doc := `
outer:
  inner: str
`
	spec, err := FromYAML([]byte(doc))
	require.NoError(t, err)
	outer, ok := spec.Root.Fields["outer"].(MapNode)
	require.True(t, ok)
	assert.Equal(t, ScalarNode{Kind: KStr}, outer.Fields["inner"])
}

func TestFromYAMLSeqOfArraysTransposed(t *testing.T) {
	doc := `
rows:
  - - f64
    - i32
`
	spec, err := FromYAML([]byte(doc))
	require.NoError(t, err)
	node, ok := spec.Root.Fields["rows"].(SeqOfArraysTransposedNode)
	require.True(t, ok)
	assert.Equal(t, []DType{F64, I32}, node.DTypes)
}

func TestFromYAMLUnrecognizedMarker(t *testing.T) {
	doc := "x: not_a_type\n"
	_, err := FromYAML([]byte(doc))
	assert.Error(t, err)
}

func TestFromYAMLMalformedDocument(t *testing.T) {
	_, err := FromYAML([]byte("x: [unterminated"))
	assert.Error(t, err)
}
