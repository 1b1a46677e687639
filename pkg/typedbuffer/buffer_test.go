package typedbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendIntWrapsToWidth(t *testing.T) {
	b := New(I8)
	require.NoError(t, b.AppendInt(200))
	assert.Equal(t, []int8{-56}, b.Int8s())
}

func TestAppendIntRejectsNegativeForUnsigned(t *testing.T) {
	b := New(U8)
	err := b.AppendInt(-1)
	assert.Error(t, err)
}

func TestAppendUintWidensToFloat(t *testing.T) {
	b := New(F64)
	require.NoError(t, b.AppendUint(42))
	assert.Equal(t, []float64{42}, b.Float64s())
}

func TestAppendFloatOnlyAcceptsFloatBuffers(t *testing.T) {
	b := New(I32)
	err := b.AppendFloat(1.5)
	assert.Error(t, err)
}

func TestAppendFloatNarrowsToF32(t *testing.T) {
	b := New(F32)
	require.NoError(t, b.AppendFloat(1.5))
	assert.Equal(t, []float32{1.5}, b.Float32s())
}

func TestAppendBoolAndStr(t *testing.T) {
	bb := New(Bool)
	require.NoError(t, bb.AppendBool(true))
	assert.Equal(t, []bool{true}, bb.Bools())
	assert.Error(t, bb.AppendStr("x"))

	sb := New(Str)
	require.NoError(t, sb.AppendStr("hi"))
	assert.Equal(t, []string{"hi"}, sb.Strs())
	assert.Error(t, sb.AppendBool(true))
}

func TestLenTracksFlatElementCount(t *testing.T) {
	b := New(I64)
	for i := 0; i < 5; i++ {
		require.NoError(t, b.AppendInt(int64(i)))
	}
	assert.Equal(t, 5, b.Len())
}

func TestDTypeStringMatchesErrorPrefixSpelling(t *testing.T) {
	assert.Equal(t, "f32", F32.String())
	assert.Equal(t, "u8", U8.String())
	assert.Equal(t, "bool", Bool.String())
}
