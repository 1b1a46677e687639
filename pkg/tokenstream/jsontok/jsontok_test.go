package jsontok

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownfield-data/typedeser/pkg/tokenstream"
)

func collect(t *testing.T, doc string) []tokenstream.Event {
	t.Helper()
	src := New(strings.NewReader(doc))
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

func TestScalarMap(t *testing.T) {
	events := collect(t, `{"a":1,"b":"x","c":true,"d":1.5,"e":null}`)
	kinds := make([]tokenstream.Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []tokenstream.Kind{
		tokenstream.MapStart,
		tokenstream.MapKey, tokenstream.Int,
		tokenstream.MapKey, tokenstream.Str,
		tokenstream.MapKey, tokenstream.Bool,
		tokenstream.MapKey, tokenstream.Float,
		tokenstream.MapKey, tokenstream.Null,
		tokenstream.MapEnd,
	}, kinds)
}

func TestIntegerLiteralClassifiedAsIntNotFloat(t *testing.T) {
	events := collect(t, `[1, -1, 1.0, 1e2]`)
	require.Len(t, events, 6)
	assert.Equal(t, tokenstream.Int, events[1].Kind)
	assert.Equal(t, int64(1), events[1].IntV)
	assert.Equal(t, tokenstream.Int, events[2].Kind)
	assert.Equal(t, int64(-1), events[2].IntV)
	assert.Equal(t, tokenstream.Float, events[3].Kind)
	assert.Equal(t, tokenstream.Float, events[4].Kind)
}

func TestLargeUnsignedLiteralClassifiedAsUInt(t *testing.T) {
	events := collect(t, `[18446744073709551615]`)
	require.Len(t, events, 3)
	assert.Equal(t, tokenstream.UInt, events[1].Kind)
	assert.Equal(t, uint64(18446744073709551615), events[1].UIntV)
}

func TestNestedSequenceLengthHintAlwaysUnknown(t *testing.T) {
	events := collect(t, `[[1,2],[3,4]]`)
	assert.Equal(t, -1, events[0].Len)
}

func TestMalformedJSONReturnsError(t *testing.T) {
	src := New(strings.NewReader(`{"a":`))
	_, err := src.Next()
	require.NoError(t, err) // MapStart
	_, err = src.Next()
	require.NoError(t, err) // MapKey "a"
	_, err = src.Next()
	assert.Error(t, err)
}
