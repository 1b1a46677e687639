// Package jsontok implements tokenstream.Source over JSON (RFC 8259) using
// goccy/go-json's encoding/json-compatible Decoder.Token() pull API, which
// never materializes the document into a generic tree. JSON never supplies
// a length hint for maps/sequences (Len is always -1); SeqEnd/MapEnd close
// events remain authoritative.
package jsontok

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/brownfield-data/typedeser/pkg/tokenstream"
)

// frame tracks whether the currently open container is a map, and if so,
// whether the next scalar Token() yields is a key or a value — goccy's
// (and encoding/json's) Token() interleaves keys and values as plain
// strings with no tag distinguishing them.
type frame struct {
	isMap     bool
	expectKey bool
}

// Source pulls Events out of a JSON byte stream.
type Source struct {
	dec   *gojson.Decoder
	stack []frame
}

// New returns a Source reading from r.
func New(r io.Reader) *Source {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	return &Source{dec: dec}
}

// Next returns the next structural or scalar event, or io.EOF once the
// document is exhausted.
func (s *Source) Next() (tokenstream.Event, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return tokenstream.Event{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			s.stack = append(s.stack, frame{isMap: true, expectKey: true})
			return tokenstream.Event{Kind: tokenstream.MapStart, Len: -1}, nil
		case '}':
			s.pop()
			s.afterValue()
			return tokenstream.Event{Kind: tokenstream.MapEnd}, nil
		case '[':
			s.stack = append(s.stack, frame{isMap: false})
			return tokenstream.Event{Kind: tokenstream.SeqStart, Len: -1}, nil
		case ']':
			s.pop()
			s.afterValue()
			return tokenstream.Event{Kind: tokenstream.SeqEnd}, nil
		}
		return tokenstream.Event{}, fmt.Errorf("jsontok: unexpected delimiter %q", t)
	case string:
		if s.expectingKey() {
			s.setExpectKey(false)
			return tokenstream.Event{Kind: tokenstream.MapKey, StrV: t}, nil
		}
		s.afterValue()
		return tokenstream.Event{Kind: tokenstream.Str, StrV: t}, nil
	case json.Number:
		s.afterValue()
		return numberEvent(t)
	case bool:
		s.afterValue()
		return tokenstream.Event{Kind: tokenstream.Bool, BoolV: t}, nil
	case nil:
		s.afterValue()
		return tokenstream.Event{Kind: tokenstream.Null}, nil
	default:
		return tokenstream.Event{}, fmt.Errorf("jsontok: unexpected token type %T", tok)
	}
}

func (s *Source) pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *Source) expectingKey() bool {
	return len(s.stack) > 0 && s.stack[len(s.stack)-1].isMap && s.stack[len(s.stack)-1].expectKey
}

func (s *Source) setExpectKey(v bool) {
	if len(s.stack) > 0 {
		s.stack[len(s.stack)-1].expectKey = v
	}
}

// afterValue flips the parent map back into key-expecting mode once a
// complete value (scalar, or a container we just closed) has been read.
func (s *Source) afterValue() {
	if len(s.stack) > 0 && s.stack[len(s.stack)-1].isMap {
		s.stack[len(s.stack)-1].expectKey = true
	}
}

// numberEvent classifies a JSON number literal as Int, UInt or Float by
// inspecting its literal text, so that an IntGen scalar leaf can reject a
// literal like "1.0" even though it is numerically integral (spec.md §4.3).
func numberEvent(n json.Number) (tokenstream.Event, error) {
	text := string(n)
	if strings.ContainsAny(text, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return tokenstream.Event{}, err
		}
		return tokenstream.Event{Kind: tokenstream.Float, FloatV: f}, nil
	}
	if iv, err := strconv.ParseInt(text, 10, 64); err == nil {
		return tokenstream.Event{Kind: tokenstream.Int, IntV: iv}, nil
	}
	if uv, err := strconv.ParseUint(text, 10, 64); err == nil {
		return tokenstream.Event{Kind: tokenstream.UInt, UIntV: uv}, nil
	}
	f, err := n.Float64()
	if err != nil {
		return tokenstream.Event{}, err
	}
	return tokenstream.Event{Kind: tokenstream.Float, FloatV: f}, nil
}
