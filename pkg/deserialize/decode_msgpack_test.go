package deserialize

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownfield-data/typedeser/pkg/schemaspec"
)

func encodeMsgpack(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(v))
	return buf.Bytes()
}

func TestDeserializeMsgpackScalar(t *testing.T) {
	s, err := schemaspec.From(map[string]any{"name": schemaspec.Str, "n": schemaspec.Int})
	require.NoError(t, err)

	data := encodeMsgpack(t, map[string]any{"name": "Ada", "n": 7})
	v, err := New(s).DeserializeMsgpack(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada", "n": uint64(7)}, ToNative(v))
}

func TestDeserializeMsgpackArray(t *testing.T) {
	s, err := schemaspec.From(map[string]any{"nums": schemaspec.I32})
	require.NoError(t, err)

	data := encodeMsgpack(t, map[string]any{"nums": []int{1, 2, 3}})
	v, err := New(s).DeserializeMsgpack(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nums": []int32{1, 2, 3}}, ToNative(v))
}

func TestDeserializeMsgpackNonStringKeyError(t *testing.T) {
	s, err := schemaspec.From(map[string]any{"n": schemaspec.Int})
	require.NoError(t, err)

	data := encodeMsgpack(t, map[int]int{1: 2})
	_, err = New(s).DeserializeMsgpack(data)
	assert.Error(t, err)
}
