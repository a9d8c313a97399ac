package model

import "github.com/biggeezerdevelopment/velocijson/internal/arena"

// defaultMaxDepth bounds recursion depth to protect against stack
// exhaustion on adversarial input.
const defaultMaxDepth = 512

// ParseOptions configures the grammar the parser accepts and the arena (if
// any) Values are allocated from. The zero value parses exactly like
// StrictOptions(): every extension is off and a MaxDepth of 0 resolves to
// defaultMaxDepth.
type ParseOptions struct {
	AllowComments        bool // // line and /* block */ comments
	AllowTrailingCommas  bool
	AllowSingleQuotes    bool
	AllowUnquotedKeys    bool
	AllowNaNInfinity     bool // NaN, Infinity, -Infinity literals
	AllowHexNumbers      bool // 0x... integer literals
	AllowRawControlChars bool // unescaped bytes < 0x20 inside strings
	RejectDuplicateKeys  bool // default false: last-value-wins

	MaxDepth int // 0 means defaultMaxDepth

	// Arena, if non-nil, receives every object key and every string value
	// longer than the SSO threshold during this parse, in place of a
	// thread-local arena context. Arrays and Objects are always
	// heap-allocated.
	Arena *arena.Arena
}

// ResolvedMaxDepth returns MaxDepth, or defaultMaxDepth if MaxDepth is unset.
func (o ParseOptions) ResolvedMaxDepth() int {
	if o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return o.MaxDepth
}

// DefaultParseOptions returns strict RFC 8259 parsing with no arena.
func DefaultParseOptions() ParseOptions { return StrictOptions() }

// StrictOptions is RFC 8259: every extension off.
func StrictOptions() ParseOptions {
	return ParseOptions{MaxDepth: defaultMaxDepth}
}

// LenientOptions enables the common relaxations: comments, trailing
// commas, and raw control characters in strings.
func LenientOptions() ParseOptions {
	return ParseOptions{
		AllowComments:        true,
		AllowTrailingCommas:  true,
		AllowRawControlChars: true,
		MaxDepth:             defaultMaxDepth,
	}
}

// JSON5Options enables every extension.
func JSON5Options() ParseOptions {
	return ParseOptions{
		AllowComments:        true,
		AllowTrailingCommas:  true,
		AllowSingleQuotes:    true,
		AllowUnquotedKeys:    true,
		AllowNaNInfinity:     true,
		AllowHexNumbers:      true,
		AllowRawControlChars: true,
		MaxDepth:             defaultMaxDepth,
	}
}

// SerializeOptions configures the serializer's output grammar.
type SerializeOptions struct {
	Indent      int  // -1 (or 0) = compact; N>0 = pretty with N spaces/level
	EnsureASCII bool // escape every byte >= 0x80 as \uXXXX / surrogate pair
	AllowNaNInf bool // serialize NaN/Infinity/-Infinity literally instead of failing with NanOrInfinity
	SortKeys    bool // serialize object keys in lexicographic order
}

// CompactOptions is the minimum-whitespace serialization mode.
func CompactOptions() SerializeOptions { return SerializeOptions{Indent: -1} }

// PrettyOptions serializes with the given indent width per nesting level.
func PrettyOptions(indent int) SerializeOptions { return SerializeOptions{Indent: indent} }

// Pretty reports whether Indent requests pretty-printing.
func (o SerializeOptions) Pretty() bool { return o.Indent > 0 }
