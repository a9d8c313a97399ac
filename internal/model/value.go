package model

import (
	"math"

	"github.com/biggeezerdevelopment/velocijson/internal/arena"
)

// Kind discriminates the variant a Value currently holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUInt:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ssoCap is the small-string-optimization threshold: strings up to this
// many bytes are stored inline in Value and never allocate.
const ssoCap = 15

// notSSO marks a Value whose string payload is not stored inline.
const notSSO = 0xFF

// Value is the tagged-union JSON value: a discriminator byte, an SSO
// length byte, an arena-ownership flag, and a scalar/SSO/pointer payload
// slot, carried as plain documented struct fields rather than a packed
// union.
type Value struct {
	kind      Kind
	ssoLen    uint8 // 0..15 when the string payload is inline; notSSO otherwise
	arenaBit  bool  // true if the non-scalar payload was allocated from an arena
	num       uint64
	sso       [ssoCap]byte
	str       string // populated when kind==KindString && ssoLen==notSSO
	arr       *Array
	obj       *Object
}

// Null is the zero Value.
var Null = Value{kind: KindNull}

// NewBool returns a Bool Value.
func NewBool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}
	return v
}

// NewInt returns an Int Value.
func NewInt(i int64) Value {
	return Value{kind: KindInt, num: uint64(i)}
}

// NewUInt returns a UInt Value.
func NewUInt(u uint64) Value {
	return Value{kind: KindUInt, num: u}
}

// NewFloat returns a Float Value.
func NewFloat(f float64) Value {
	return Value{kind: KindFloat, num: math.Float64bits(f)}
}

// NewString returns a String Value. When a is non-nil and s is longer
// than the SSO threshold, the bytes are copied into a and the Value keeps
// a zero-copy view into the arena's storage; the caller must not read the
// resulting Value's string after a subsequent a.Reset(). Strings at or
// below the SSO threshold are always stored inline, arena or not.
func NewString(s string, a *arena.Arena) Value {
	v := Value{kind: KindString}
	if len(s) <= ssoCap {
		v.ssoLen = uint8(len(s))
		copy(v.sso[:], s)
		return v
	}
	v.ssoLen = notSSO
	if a != nil {
		v.str = a.AllocString(s)
		v.arenaBit = true
	} else {
		// Force an independent copy: s may alias caller-owned memory.
		b := make([]byte, len(s))
		copy(b, s)
		v.str = string(b)
	}
	return v
}

// NewStringFromBytes is NewString's []byte-source counterpart, used by the
// parser to avoid an intermediate string(src) copy on the arena-routed
// path: AllocStringFromBytes copies src into the arena exactly once.
func NewStringFromBytes(b []byte, a *arena.Arena) Value {
	v := Value{kind: KindString}
	if len(b) <= ssoCap {
		v.ssoLen = uint8(len(b))
		copy(v.sso[:], b)
		return v
	}
	v.ssoLen = notSSO
	if a != nil {
		v.str = a.AllocStringFromBytes(b)
		v.arenaBit = true
	} else {
		v.str = string(b)
	}
	return v
}

// NewArray wraps arr in an Array-kind Value.
func NewArray(arr *Array) Value {
	return Value{kind: KindArray, arr: arr}
}

// NewObject wraps obj in an Object-kind Value.
func NewObject(obj *Object) Value {
	return Value{kind: KindObject, obj: obj}
}

// Kind reports the discriminator.
func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool   { return v.kind == KindNull }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsInt() bool    { return v.kind == KindInt }
func (v *Value) IsUInt() bool   { return v.kind == KindUInt }
func (v *Value) IsFloat() bool  { return v.kind == KindFloat }
func (v *Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindUInt || v.kind == KindFloat }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsArray() bool  { return v.kind == KindArray }
func (v *Value) IsObject() bool { return v.kind == KindObject }

// IsArenaOwned reports whether this Value's non-scalar payload (string
// above the SSO threshold, Array, or Object) was allocated from an arena.
func (v *Value) IsArenaOwned() bool { return v.arenaBit }

func typeMismatch(got Kind, want string) error {
	return &Error{Kind: TypeMismatch, Message: "value is " + got.String() + ", not " + want}
}

// AsBool returns the Bool payload.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, typeMismatch(v.kind, "bool")
	}
	return v.num != 0, nil
}

// AsInt returns the Int payload. A UInt value converts losslessly when it
// fits in int64; a Float value is not convertible here (use AsFloat for
// numeric widening, per spec: integer accessors do not narrow floats).
func (v *Value) AsInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return int64(v.num), nil
	case KindUInt:
		if v.num > math.MaxInt64 {
			return 0, &Error{Kind: IntegerOverflow, Message: "uint value overflows int64"}
		}
		return int64(v.num), nil
	default:
		return 0, typeMismatch(v.kind, "int")
	}
}

// AsUInt returns the UInt payload. An Int value converts losslessly when
// non-negative.
func (v *Value) AsUInt() (uint64, error) {
	switch v.kind {
	case KindUInt:
		return v.num, nil
	case KindInt:
		i := int64(v.num)
		if i < 0 {
			return 0, &Error{Kind: IntegerOverflow, Message: "negative int value has no uint representation"}
		}
		return uint64(i), nil
	default:
		return 0, typeMismatch(v.kind, "uint")
	}
}

// AsFloat returns the value widened to float64; it succeeds for any
// numeric variant (Int, UInt, Float).
func (v *Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return math.Float64frombits(v.num), nil
	case KindInt:
		return float64(int64(v.num)), nil
	case KindUInt:
		return float64(v.num), nil
	default:
		return 0, typeMismatch(v.kind, "number")
	}
}

// AsString returns the String payload.
func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", typeMismatch(v.kind, "string")
	}
	return v.stringValue(), nil
}

func (v *Value) stringValue() string {
	if v.ssoLen != notSSO {
		return string(v.sso[:v.ssoLen])
	}
	return v.str
}

// AsArray returns the Array payload.
func (v *Value) AsArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, typeMismatch(v.kind, "array")
	}
	return v.arr, nil
}

// Index is the bounds-checked array-indexing operation: it fails with
// TypeMismatch if v is not an array and with OutOfRange if i is out of
// bounds.
func (v *Value) Index(i int) (*Value, error) {
	arr, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	return arr.Index(i)
}

// Get is the immutable object-indexing operation: it fails with
// KeyNotFound if the key is absent.
func (v *Value) Get(key string) (*Value, error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	found, ok := obj.Find(key)
	if !ok {
		return nil, &Error{Kind: KeyNotFound, Message: "key not found: " + key}
	}
	return found, nil
}

// GetOrSet is the mutable object-indexing operation: it inserts Null if
// key is missing and returns a reference to the (possibly newly-inserted)
// entry.
func (v *Value) GetOrSet(key string) (*Value, error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	return obj.Set(key), nil
}

// Find returns a pointer to the value for key without raising, or
// (nil, false) if v is not an object or the key is absent.
func (v *Value) Find(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj.Find(key)
}

// AsObject returns the Object payload.
func (v *Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, typeMismatch(v.kind, "object")
	}
	return v.obj, nil
}

// Equal implements structural equality for containers and value equality
// for scalars. Cross-numeric comparison (Int vs UInt vs Float) compares
// without precision loss whenever both sides are integral (Int/UInt exact
// compare; Float compared via direct float64 conversion, which is lossy
// above 2^53).
func (v *Value) Equal(other *Value) bool {
	if v.kind == other.kind {
		switch v.kind {
		case KindNull:
			return true
		case KindBool, KindInt, KindUInt:
			return v.num == other.num
		case KindFloat:
			return math.Float64frombits(v.num) == math.Float64frombits(other.num)
		case KindString:
			return v.stringValue() == other.stringValue()
		case KindArray:
			return v.arr.Equal(other.arr)
		case KindObject:
			return v.obj.Equal(other.obj)
		}
	}
	if v.IsNumber() && other.IsNumber() {
		return numericEqual(v, other)
	}
	return false
}

func numericEqual(a, b *Value) bool {
	// Exact-integer fast path: Int vs UInt compares without precision loss.
	if a.kind == KindInt && b.kind == KindUInt {
		i := int64(a.num)
		return i >= 0 && uint64(i) == b.num
	}
	if a.kind == KindUInt && b.kind == KindInt {
		return numericEqual(b, a)
	}
	af, _ := a.AsFloat()
	bf, _ := b.AsFloat()
	return af == bf
}
