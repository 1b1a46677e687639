package typedbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNative1D(t *testing.T) {
	b := New(I32)
	for _, v := range []int64{1, 2, 3} {
		require.NoError(t, b.AppendInt(v))
	}
	b.Finalize([]int{3})
	assert.Equal(t, []int32{1, 2, 3}, b.Native())
}

func TestNative2D(t *testing.T) {
	b := New(F32)
	for _, v := range []float64{1.25, -0.69, -0.29, 0.52} {
		require.NoError(t, b.AppendFloat(v))
	}
	b.Finalize([]int{2, 2})
	got := b.Native().([]any)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{1.25, -0.69}, got[0])
	assert.Equal(t, []float32{-0.29, 0.52}, got[1])
}

func TestNativePreservesZeroDimension(t *testing.T) {
	b := New(U8)
	b.Finalize([]int{0})
	assert.Equal(t, []uint8{}, b.Native())
}
