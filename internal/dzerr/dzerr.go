// Package dzerr defines the small error taxonomy the deserializer surfaces
// to callers: TypeError, ValueError, NotImplementedError and ParseError.
// Every decode-time failure is wrapped in one of these so callers can branch
// on Kind without parsing message text, while the message text itself still
// carries the stable prefixes documented in spec.md.
package dzerr

import (
	"errors"
	"fmt"
)

// Kind categorizes a deserialization failure.
type Kind int

const (
	// TypeKind covers schema/data shape mismatches: wrong scalar type,
	// missing schema key, too many columns, map/sequence confusion.
	TypeKind Kind = iota
	// ValueKind covers irregular (non-rectangular) nested sequences.
	ValueKind
	// NotImplementedKind covers constructs the spec explicitly rejects,
	// e.g. a list-of-nested-structures schema.
	NotImplementedKind
	// ParseKind covers malformed input bytes (bad JSON/MessagePack).
	ParseKind
)

func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "TypeError"
	case ValueKind:
		return "ValueError"
	case NotImplementedKind:
		return "NotImplementedError"
	case ParseKind:
		return "ParseError"
	default:
		return "Error"
	}
}

// Error is the concrete error type returned by the schema and deserialize
// packages. It implements error and supports errors.As/errors.Unwrap.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Type builds a TypeError with the given stable-prefixed message.
func Type(format string, args ...any) error {
	return &Error{Kind: TypeKind, Msg: fmt.Sprintf(format, args...)}
}

// Value builds a ValueError.
func Value(format string, args ...any) error {
	return &Error{Kind: ValueKind, Msg: fmt.Sprintf(format, args...)}
}

// NotImplemented builds a NotImplementedError.
func NotImplemented(format string, args ...any) error {
	return &Error{Kind: NotImplementedKind, Msg: fmt.Sprintf(format, args...)}
}

// Parse wraps an underlying decode error (from the JSON/MessagePack
// backend) as a ParseError.
func Parse(err error) error {
	return &Error{Kind: ParseKind, Msg: "malformed input", Err: err}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
