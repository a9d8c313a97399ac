package vjson

import "github.com/biggeezerdevelopment/velocijson/internal/model"

// ParseOptions configures the grammar the parser accepts and the arena
// (if any) Values are allocated from.
type ParseOptions = model.ParseOptions

// SerializeOptions configures the serializer's output grammar.
type SerializeOptions = model.SerializeOptions

// DefaultParseOptions, StrictOptions, LenientOptions, and JSON5Options are
// the four parse-option presets.
var (
	DefaultParseOptions = model.DefaultParseOptions
	StrictOptions       = model.StrictOptions
	LenientOptions      = model.LenientOptions
	JSON5Options        = model.JSON5Options
)

// CompactOptions and PrettyOptions are the two serialize-option presets.
var (
	CompactOptions = model.CompactOptions
	PrettyOptions  = model.PrettyOptions
)
