package msgpacktok

import (
	"bytes"
	"io"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownfield-data/typedeser/pkg/tokenstream"
)

func encode(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(v))
	return buf.Bytes()
}

func collect(t *testing.T, data []byte) []tokenstream.Event {
	t.Helper()
	src := New(bytes.NewReader(data))
	var events []tokenstream.Event
	for {
		ev, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
	return events
}

func TestMapStartCarriesLengthHint(t *testing.T) {
	data := encode(t, map[string]any{"a": 1, "b": 2})
	events := collect(t, data)
	require.NotEmpty(t, events)
	assert.Equal(t, tokenstream.MapStart, events[0].Kind)
	assert.Equal(t, 2, events[0].Len)
}

func TestSeqStartCarriesLengthHint(t *testing.T) {
	data := encode(t, []int{1, 2, 3})
	events := collect(t, data)
	require.NotEmpty(t, events)
	assert.Equal(t, tokenstream.SeqStart, events[0].Kind)
	assert.Equal(t, 3, events[0].Len)
}

func TestScalarKinds(t *testing.T) {
	data := encode(t, []any{int64(-5), uint64(5), 1.5, "s", true, nil})
	events := collect(t, data)
	kinds := make([]tokenstream.Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []tokenstream.Kind{
		tokenstream.SeqStart,
		tokenstream.Int,
		tokenstream.UInt,
		tokenstream.Float,
		tokenstream.Str,
		tokenstream.Bool,
		tokenstream.Null,
		tokenstream.SeqEnd,
	}, kinds)
}

func TestNonStringMapKeyIsParseError(t *testing.T) {
	data := encode(t, map[int]string{1: "a"})
	src := New(bytes.NewReader(data))
	_, err := src.Next() // MapStart
	require.NoError(t, err)
	_, err = src.Next() // key, expected string, got int
	assert.Error(t, err)
}

func TestMalformedMsgpackReturnsError(t *testing.T) {
	src := New(bytes.NewReader([]byte{0xc1})) // 0xc1 is "never used" in the spec
	_, err := src.Next()
	assert.Error(t, err)
}
