// Package vjson is a JSON document-object-model, parser, and serializer
// engineered for predictable latency on small-to-large payloads (100 B -
// 100 KB) with optional arena-backed allocation.
package vjson

import (
	"github.com/biggeezerdevelopment/velocijson/internal/model"
	"github.com/biggeezerdevelopment/velocijson/internal/parser"
	"github.com/biggeezerdevelopment/velocijson/internal/serializer"
)

// Parse parses data into a Value tree per opts. Strings longer than the
// inline SSO capacity are allocated from opts.Arena when set, or on the
// heap otherwise.
func Parse(data []byte, opts ParseOptions) (Value, error) {
	return parser.Parse(data, opts)
}

// Serialize renders v as JSON per opts, returning a freshly allocated
// byte slice.
func Serialize(v *Value, opts SerializeOptions) ([]byte, error) {
	return serializer.Serialize(v, opts)
}

// Kind discriminates the variant a Value currently holds.
type Kind = model.Kind

const (
	KindNull   = model.KindNull
	KindBool   = model.KindBool
	KindInt    = model.KindInt
	KindUInt   = model.KindUInt
	KindFloat  = model.KindFloat
	KindString = model.KindString
	KindArray  = model.KindArray
	KindObject = model.KindObject
)

// Value is the tagged-union JSON value; see internal/model.Value for the
// full contract (SSO strings, arena routing, typed accessors).
type Value = model.Value

// Null is the zero Value.
var Null = model.Null

// NewBool, NewInt, NewUInt, NewFloat, NewString, NewArray, NewObject
// construct a Value of the corresponding Kind. NewString takes an
// optional arena; nil means heap-allocate strings above the SSO
// threshold.
var (
	NewBool   = model.NewBool
	NewInt    = model.NewInt
	NewUInt   = model.NewUInt
	NewFloat  = model.NewFloat
	NewString = model.NewString
	NewArray  = model.NewArray
	NewObject = model.NewObject
)

// Array is an ordered sequence of Value.
type Array = model.Array

// NewArrayValue allocates an empty Array with the given capacity hint.
var NewArrayValue = model.NewArrayValue

// Object is an ordered (key, Value) sequence with a lazy hash index.
type Object = model.Object

// NewObjectValue allocates an empty Object.
var NewObjectValue = model.NewObjectValue

// ErrorKind enumerates every failure mode the parser, serializer, and
// typed Value accessors can surface.
type ErrorKind = model.ErrorKind

const (
	UnexpectedEndOfInput = model.UnexpectedEndOfInput
	UnexpectedCharacter  = model.UnexpectedCharacter
	InvalidEscape        = model.InvalidEscape
	InvalidUnicodeEscape = model.InvalidUnicodeEscape
	InvalidNumber        = model.InvalidNumber
	UnterminatedString   = model.UnterminatedString
	UnterminatedArray    = model.UnterminatedArray
	UnterminatedObject   = model.UnterminatedObject
	TrailingContent      = model.TrailingContent
	MaxDepthExceeded     = model.MaxDepthExceeded
	InvalidLiteral       = model.InvalidLiteral
	DuplicateKey         = model.DuplicateKey
	InvalidUTF8          = model.InvalidUTF8
	InvalidComment       = model.InvalidComment
	TypeMismatch         = model.TypeMismatch
	OutOfRange           = model.OutOfRange
	KeyNotFound          = model.KeyNotFound
	IntegerOverflow      = model.IntegerOverflow
	NanOrInfinity        = model.NanOrInfinity
)

// Error is the structured diagnostic produced by the parser and by typed
// Value accessors.
type Error = model.Error

// Location pinpoints a byte offset in the original input as a
// (line, column, offset) triple.
type Location = model.Location
