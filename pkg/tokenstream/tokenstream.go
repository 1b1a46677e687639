// Package tokenstream defines the uniform pull interface over a
// format-specific parser that the deserializer core walks in lockstep with
// a schema tree (spec.md §4.2). Two backends implement Source: jsontok
// (package jsontok) and msgpacktok (package msgpacktok); neither buffers
// the full document into a generic dynamically-typed tree.
package tokenstream

import "fmt"

// Kind identifies the structural or scalar event Next returned.
type Kind uint8

const (
	MapStart Kind = iota
	MapKey
	MapEnd
	SeqStart
	SeqEnd
	Null
	Bool
	Int
	UInt
	Float
	Str
)

func (k Kind) String() string {
	switch k {
	case MapStart:
		return "MapStart"
	case MapKey:
		return "MapKey"
	case MapEnd:
		return "MapEnd"
	case SeqStart:
		return "SeqStart"
	case SeqEnd:
		return "SeqEnd"
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case UInt:
		return "UInt"
	case Float:
		return "Float"
	case Str:
		return "Str"
	default:
		return "Unknown"
	}
}

// Event is one structural or scalar token out of the input. Len is the
// length hint for MapStart/SeqStart, or -1 when the format can't provide
// one up front (e.g. JSON); SeqEnd/MapEnd remain the authoritative close
// signal regardless (spec.md §4.2).
type Event struct {
	Kind  Kind
	Len   int
	BoolV bool
	IntV  int64
	UIntV uint64
	FloatV float64
	StrV  string
}

func (e Event) String() string {
	switch e.Kind {
	case Bool:
		return fmt.Sprintf("Bool(%v)", e.BoolV)
	case Int:
		return fmt.Sprintf("Int(%d)", e.IntV)
	case UInt:
		return fmt.Sprintf("UInt(%d)", e.UIntV)
	case Float:
		return fmt.Sprintf("Float(%v)", e.FloatV)
	case Str, MapKey:
		return fmt.Sprintf("%s(%q)", e.Kind, e.StrV)
	case MapStart, SeqStart:
		return fmt.Sprintf("%s(len=%d)", e.Kind, e.Len)
	default:
		return e.Kind.String()
	}
}

// Source is a pull-based token stream over one in-memory input buffer.
// Next returns io.EOF once the outermost value has been fully consumed.
type Source interface {
	Next() (Event, error)
}
