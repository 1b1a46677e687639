// Package typedbuffer implements the tagged variant of growable,
// strongly-typed numeric containers the deserializer core appends scalars
// into while it walks a schema tree against a token stream (spec.md §3.2,
// §4.3, §4.4). There is one flat slice per supported element type; the
// buffer's Shape is filled in once the walk that produced it finishes.
package typedbuffer

import (
	"fmt"

	"github.com/brownfield-data/typedeser/internal/dzerr"
)

// Buffer is a tagged union: exactly the slice field matching DType is used.
// It mirrors the teacher's per-primitive kaitaicel wrapper types, but as one
// growable container per element kind instead of one boxed scalar type.
type Buffer struct {
	DType DType
	Shape []int

	i8  []int8
	i16 []int16
	i32 []int32
	i64 []int64
	u8  []uint8
	u16 []uint16
	u32 []uint32
	u64 []uint64
	f32 []float32
	f64 []float64
	b   []bool
	s   []string
}

// New returns an empty buffer for the given element type.
func New(dt DType) *Buffer {
	return &Buffer{DType: dt}
}

// Len returns the number of scalars appended so far (the flattened element
// count, independent of Shape).
func (b *Buffer) Len() int {
	switch b.DType {
	case I8:
		return len(b.i8)
	case I16:
		return len(b.i16)
	case I32:
		return len(b.i32)
	case I64:
		return len(b.i64)
	case U8:
		return len(b.u8)
	case U16:
		return len(b.u16)
	case U32:
		return len(b.u32)
	case U64:
		return len(b.u64)
	case F32:
		return len(b.f32)
	case F64:
		return len(b.f64)
	case Bool:
		return len(b.b)
	case Str:
		return len(b.s)
	default:
		return 0
	}
}

func typeErr(dt DType) error {
	return dzerr.Type("Could not deserialize as %s", dt)
}

// AppendInt appends a signed-integer scalar (a JSON/MessagePack Int event),
// wrapping to the buffer's width per spec.md §4.4. Negative values are
// rejected for unsigned targets.
func (b *Buffer) AppendInt(v int64) error {
	switch b.DType {
	case I8:
		b.i8 = append(b.i8, int8(v))
	case I16:
		b.i16 = append(b.i16, int16(v))
	case I32:
		b.i32 = append(b.i32, int32(v))
	case I64:
		b.i64 = append(b.i64, v)
	case U8:
		if v < 0 {
			return dzerr.Type("Could not deserialize as %s: negative value %d", b.DType, v)
		}
		b.u8 = append(b.u8, uint8(v))
	case U16:
		if v < 0 {
			return dzerr.Type("Could not deserialize as %s: negative value %d", b.DType, v)
		}
		b.u16 = append(b.u16, uint16(v))
	case U32:
		if v < 0 {
			return dzerr.Type("Could not deserialize as %s: negative value %d", b.DType, v)
		}
		b.u32 = append(b.u32, uint32(v))
	case U64:
		if v < 0 {
			return dzerr.Type("Could not deserialize as %s: negative value %d", b.DType, v)
		}
		b.u64 = append(b.u64, uint64(v))
	case F32:
		b.f32 = append(b.f32, float32(v))
	case F64:
		b.f64 = append(b.f64, float64(v))
	default:
		return typeErr(b.DType)
	}
	return nil
}

// AppendUint appends an unsigned-integer scalar (a JSON/MessagePack UInt
// event), wrapping to the buffer's width.
func (b *Buffer) AppendUint(v uint64) error {
	switch b.DType {
	case I8:
		b.i8 = append(b.i8, int8(v))
	case I16:
		b.i16 = append(b.i16, int16(v))
	case I32:
		b.i32 = append(b.i32, int32(v))
	case I64:
		b.i64 = append(b.i64, int64(v))
	case U8:
		b.u8 = append(b.u8, uint8(v))
	case U16:
		b.u16 = append(b.u16, uint16(v))
	case U32:
		b.u32 = append(b.u32, uint32(v))
	case U64:
		b.u64 = append(b.u64, v)
	case F32:
		b.f32 = append(b.f32, float32(v))
	case F64:
		b.f64 = append(b.f64, float64(v))
	default:
		return typeErr(b.DType)
	}
	return nil
}

// AppendFloat appends a float scalar. Only F32/F64 buffers accept it; the
// narrowing cast to F32 is lossy and permitted (spec.md §4.4).
func (b *Buffer) AppendFloat(v float64) error {
	switch b.DType {
	case F32:
		b.f32 = append(b.f32, float32(v))
	case F64:
		b.f64 = append(b.f64, v)
	default:
		return typeErr(b.DType)
	}
	return nil
}

// AppendBool appends a bool scalar. Only a Bool buffer accepts it.
func (b *Buffer) AppendBool(v bool) error {
	if b.DType != Bool {
		return typeErr(b.DType)
	}
	b.b = append(b.b, v)
	return nil
}

// AppendStr appends a string scalar. Only a Str buffer accepts it.
func (b *Buffer) AppendStr(v string) error {
	if b.DType != Str {
		return typeErr(b.DType)
	}
	b.s = append(b.s, v)
	return nil
}

// Finalize records the buffer's shape once the walk that filled it closes
// its outermost sequence. 0-length dimensions are preserved verbatim.
func (b *Buffer) Finalize(shape []int) {
	b.Shape = shape
}

// Int8s, Int16s, Int32s and Int64s return the flat signed-integer backing
// slice, valid only when DType is the matching I8/I16/I32/I64 (callers
// select by DType first).
func (b *Buffer) Int8s() []int8   { return b.i8 }
func (b *Buffer) Int16s() []int16 { return b.i16 }
func (b *Buffer) Int32s() []int32 { return b.i32 }
func (b *Buffer) Int64s() []int64 { return b.i64 }

func (b *Buffer) Uint8s() []uint8   { return b.u8 }
func (b *Buffer) Uint16s() []uint16 { return b.u16 }
func (b *Buffer) Uint32s() []uint32 { return b.u32 }
func (b *Buffer) Uint64s() []uint64 { return b.u64 }

func (b *Buffer) Float32s() []float32 { return b.f32 }
func (b *Buffer) Float64s() []float64 { return b.f64 }

func (b *Buffer) Bools() []bool     { return b.b }
func (b *Buffer) Strs() []string    { return b.s }

// String implements fmt.Stringer for debug logging.
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer{dtype=%s shape=%v len=%d}", b.DType, b.Shape, b.Len())
}
