package deserialize

import (
	"github.com/brownfield-data/typedeser/internal/dzerr"
	"github.com/brownfield-data/typedeser/pkg/schemaspec"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
	"github.com/brownfield-data/typedeser/pkg/typedbuffer"
)

// decodeArray implements the Array(dt) leaf (spec.md §4.3): a recursive
// descent through nested sequences down to scalar leaves, locking each
// depth's length against its first sibling and flattening elements into
// one typed buffer in row-major order.
func decodeArray(n schemaspec.ArrayNode, src tokenstream.Source, sch *schemaspec.Schema) (Value, error) {
	first, err := nextEvent(src)
	if err != nil {
		return nil, err
	}
	buf, err := decodeArrayFromEvent(first, src, n.DType, sch)
	if err != nil {
		return nil, err
	}
	return ArrayValue{Buf: buf}, nil
}

func decodeArrayFromEvent(first tokenstream.Event, src tokenstream.Source, dt typedbuffer.DType, sch *schemaspec.Schema) (*typedbuffer.Buffer, error) {
	buf := typedbuffer.New(dt)
	var shape, path []int
	if err := walkArrayNode(first, 0, src, buf, &shape, &path); err != nil {
		return nil, err
	}
	buf.Finalize(shape)
	sch.Logger.Debug("decode: array finalized", "dtype", dt, "shape", shape, "elements", buf.Len())
	return buf, nil
}

// walkArrayNode consumes the subtree that begins with the already-read
// event ev. A SeqStart recurses one level deeper for each child up to its
// matching SeqEnd; anything else is a leaf scalar appended via the
// element-conversion table (spec.md §4.4).
//
// shape holds the locked (first-sibling) length at each depth, -1 where
// not yet determined. path mirrors the in-progress count at each depth
// currently on the call stack, so an irregular-shape error raised deep in
// the recursion can still report the dimensions established by ancestors
// that haven't finished their own loop yet (spec.md §8 scenario 5).
func walkArrayNode(ev tokenstream.Event, depth int, src tokenstream.Source, buf *typedbuffer.Buffer, shape, path *[]int) error {
	if ev.Kind != tokenstream.SeqStart {
		return appendScalarEvent(buf, ev)
	}

	growInts(path, depth+1, 0)
	(*path)[depth] = 0

	count := 0
	for {
		next, err := nextEvent(src)
		if err != nil {
			return err
		}
		if next.Kind == tokenstream.SeqEnd {
			break
		}
		count++
		(*path)[depth] = count
		if err := walkArrayNode(next, depth+1, src, buf, shape, path); err != nil {
			return err
		}
	}

	return lockDim(shape, path, depth, count, buf)
}

func growInts(s *[]int, n, fill int) {
	for len(*s) < n {
		*s = append(*s, fill)
	}
}

func lockDim(shape, path *[]int, depth, count int, buf *typedbuffer.Buffer) error {
	growInts(shape, depth+1, -1)
	s := *shape
	if s[depth] == -1 {
		s[depth] = count
		return nil
	}
	if s[depth] != count {
		return irregularShapeErr(reportShape(shape, path), buf)
	}
	return nil
}

func reportShape(shape, path *[]int) []int {
	s, p := *shape, *path
	n := len(s)
	if len(p) > n {
		n = len(p)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(s) && s[i] != -1:
			out[i] = s[i]
		case i < len(p):
			out[i] = p[i]
		}
	}
	return out
}

// appendScalarEvent applies the element-conversion table (spec.md §4.4) to
// a single token and appends the result into buf.
func appendScalarEvent(buf *typedbuffer.Buffer, ev tokenstream.Event) error {
	switch ev.Kind {
	case tokenstream.Int:
		return buf.AppendInt(ev.IntV)
	case tokenstream.UInt:
		return buf.AppendUint(ev.UIntV)
	case tokenstream.Float:
		return buf.AppendFloat(ev.FloatV)
	case tokenstream.Bool:
		return buf.AppendBool(ev.BoolV)
	case tokenstream.Str:
		return buf.AppendStr(ev.StrV)
	default:
		return dzerr.Type("Could not deserialize as %s", buf.DType)
	}
}
