// Package deserialize implements the schema-directed streaming walk
// (spec.md §4.3): decode drives a schemaspec.Node tree in lockstep with a
// tokenstream.Source, appending scalars straight into typedbuffer.Buffers
// without ever materializing a generic dynamically-typed document.
package deserialize

import (
	"bytes"

	"github.com/brownfield-data/typedeser/pkg/schemaspec"
	"github.com/brownfield-data/typedeser/pkg/tokenstream"
	"github.com/brownfield-data/typedeser/pkg/tokenstream/jsontok"
	"github.com/brownfield-data/typedeser/pkg/tokenstream/msgpacktok"
)

// Schema pairs a validated schemaspec.Schema with the two entry points
// that walk it against an encoded document (spec.md §6).
type Schema struct {
	spec *schemaspec.Schema
}

// New wraps a validated schemaspec.Schema for deserialization.
func New(spec *schemaspec.Schema) *Schema {
	return &Schema{spec: spec}
}

// DeserializeJSON decodes data (RFC 8259 JSON) against the schema.
func (s *Schema) DeserializeJSON(data []byte) (Value, error) {
	return s.deserialize(jsontok.New(bytes.NewReader(data)))
}

// DeserializeMsgpack decodes data (MessagePack) against the schema.
func (s *Schema) DeserializeMsgpack(data []byte) (Value, error) {
	return s.deserialize(msgpacktok.New(bytes.NewReader(data)))
}

func (s *Schema) deserialize(src tokenstream.Source) (Value, error) {
	return decode(s.spec.Root, src, s.spec)
}
