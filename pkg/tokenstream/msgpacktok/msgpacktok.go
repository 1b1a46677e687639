// Package msgpacktok implements tokenstream.Source over MessagePack using
// vmihailenco/msgpack/v5's Decoder, peeking the wire-format tag byte
// (Decoder.PeekCode) to decide which typed Decode* method to call next.
// Unlike JSON, MessagePack map/array headers are length-prefixed, so
// MapStart/SeqStart always carry an exact Len; the synthesized MapEnd/
// SeqEnd events still drive the walk, matching the JSON backend's shape
// (spec.md §4.2).
package msgpacktok

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/brownfield-data/typedeser/internal/dzerr"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
)

type containerKind uint8

const (
	containerSeq containerKind = iota
	containerMap
)

type frame struct {
	kind          containerKind
	entriesLeft   int
	awaitingValue bool // map only
}

// Source pulls Events out of a MessagePack byte stream.
type Source struct {
	dec   *msgpack.Decoder
	stack []frame
}

// New returns a Source reading from r.
func New(r io.Reader) *Source {
	return &Source{dec: msgpack.NewDecoder(r)}
}

// Next returns the next structural or scalar event, or io.EOF once the
// document is exhausted.
func (s *Source) Next() (tokenstream.Event, error) {
	if len(s.stack) == 0 {
		return s.decodeValue()
	}

	top := &s.stack[len(s.stack)-1]
	switch top.kind {
	case containerSeq:
		if top.entriesLeft == 0 {
			s.stack = s.stack[:len(s.stack)-1]
			return tokenstream.Event{Kind: tokenstream.SeqEnd}, nil
		}
		top.entriesLeft--
		return s.decodeValue()
	default: // containerMap
		if !top.awaitingValue {
			if top.entriesLeft == 0 {
				s.stack = s.stack[:len(s.stack)-1]
				return tokenstream.Event{Kind: tokenstream.MapEnd}, nil
			}
			top.entriesLeft--
			top.awaitingValue = true
			return s.decodeMapKey()
		}
		top.awaitingValue = false
		return s.decodeValue()
	}
}

// decodeMapKey reads one map key, which must be a string per spec.md §4.2
// ("map keys must be strings").
func (s *Source) decodeMapKey() (tokenstream.Event, error) {
	code, err := s.dec.PeekCode()
	if err != nil {
		return tokenstream.Event{}, err
	}
	if !isStrCode(code) {
		return tokenstream.Event{}, dzerr.Parse(fmt.Errorf("map key must be a string, got code 0x%02x", code))
	}
	key, err := s.dec.DecodeString()
	if err != nil {
		return tokenstream.Event{}, err
	}
	return tokenstream.Event{Kind: tokenstream.MapKey, StrV: key}, nil
}

// decodeValue peeks the next wire-format tag byte and dispatches to the
// matching typed Decode* call, producing exactly one Event (pushing a new
// frame for maps/arrays so later Next() calls drive their contents).
func (s *Source) decodeValue() (tokenstream.Event, error) {
	code, err := s.dec.PeekCode()
	if err != nil {
		return tokenstream.Event{}, err
	}

	switch {
	case isNilCode(code):
		if err := s.dec.DecodeNil(); err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.Null}, nil

	case code == 0xc2 || code == 0xc3:
		b, err := s.dec.DecodeBool()
		if err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.Bool, BoolV: b}, nil

	case code == 0xca:
		f, err := s.dec.DecodeFloat32()
		if err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.Float, FloatV: float64(f)}, nil

	case code == 0xcb:
		f, err := s.dec.DecodeFloat64()
		if err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.Float, FloatV: f}, nil

	case isUnsignedCode(code):
		u, err := s.dec.DecodeUint64()
		if err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.UInt, UIntV: u}, nil

	case isSignedCode(code):
		i, err := s.dec.DecodeInt64()
		if err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.Int, IntV: i}, nil

	case isStrCode(code):
		str, err := s.dec.DecodeString()
		if err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.Str, StrV: str}, nil

	case isMapCode(code):
		n, err := s.dec.DecodeMapLen()
		if err != nil {
			return tokenstream.Event{}, err
		}
		s.stack = append(s.stack, frame{kind: containerMap, entriesLeft: n})
		return tokenstream.Event{Kind: tokenstream.MapStart, Len: n}, nil

	case isArrayCode(code):
		n, err := s.dec.DecodeArrayLen()
		if err != nil {
			return tokenstream.Event{}, err
		}
		s.stack = append(s.stack, frame{kind: containerSeq, entriesLeft: n})
		return tokenstream.Event{Kind: tokenstream.SeqStart, Len: n}, nil

	default:
		return tokenstream.Event{}, dzerr.Parse(fmt.Errorf("unsupported msgpack type, code 0x%02x", code))
	}
}

// The tag-byte ranges below follow the MessagePack spec directly:
// https://github.com/msgpack/msgpack/blob/master/spec.md

func isNilCode(c byte) bool { return c == 0xc0 }

func isUnsignedCode(c byte) bool {
	// positive fixint, uint8, uint16, uint32, uint64
	return (c <= 0x7f) || (c >= 0xcc && c <= 0xcf)
}

func isSignedCode(c byte) bool {
	// negative fixint, int8, int16, int32, int64
	return (c >= 0xe0) || (c >= 0xd0 && c <= 0xd3)
}

func isStrCode(c byte) bool {
	// fixstr, str8, str16, str32
	return (c >= 0xa0 && c <= 0xbf) || (c >= 0xd9 && c <= 0xdb)
}

func isMapCode(c byte) bool {
	// fixmap, map16, map32
	return (c >= 0x80 && c <= 0x8f) || c == 0xde || c == 0xdf
}

func isArrayCode(c byte) bool {
	// fixarray, array16, array32
	return (c >= 0x90 && c <= 0x9f) || c == 0xdc || c == 0xdd
}
