// Package parser implements the recursive-descent JSON reader: strict
// RFC 8259 by default, with the togglable extensions ParseOptions exposes
// (comments, trailing commas, single-quoted strings, unquoted keys,
// NaN/Infinity literals, hex integers, raw control characters in strings,
// and duplicate-key policy).
package parser

import (
	"math"
	"strconv"

	"github.com/biggeezerdevelopment/velocijson/internal/codec"
	"github.com/biggeezerdevelopment/velocijson/internal/model"
	"github.com/biggeezerdevelopment/velocijson/internal/scanner"
)

// maxSafeMantissa is 2^53, the largest integer mantissa a float64 can
// represent exactly; used to gate the inline double-reconstruction fast
// path for reconstructing decimal floats exactly.
const maxSafeMantissa = 1 << 53

type parser struct {
	data  []byte
	i     int
	opts  model.ParseOptions
	depth int
}

// Parse reads exactly one JSON value from data, per opts, and fails with
// TrailingContent if anything but trailing whitespace/comments follows it.
func Parse(data []byte, opts model.ParseOptions) (model.Value, error) {
	p := &parser{data: data, opts: opts}
	if err := p.skipWS(); err != nil {
		return model.Value{}, err
	}
	if p.i >= len(p.data) {
		return model.Value{}, model.NewError(p.data, p.i, model.UnexpectedEndOfInput, "empty input")
	}
	v, err := p.parseValue()
	if err != nil {
		return model.Value{}, err
	}
	if err := p.skipWS(); err != nil {
		return model.Value{}, err
	}
	if p.i < len(p.data) {
		return model.Value{}, model.NewError(p.data, p.i, model.TrailingContent, "unexpected trailing content")
	}
	return v, nil
}

func (p *parser) skipWS() error {
	for {
		p.i = scanner.SkipWhitespace(p.data, p.i, len(p.data))
		if !p.opts.AllowComments {
			return nil
		}
		if p.i+1 >= len(p.data) || p.data[p.i] != '/' {
			return nil
		}
		switch p.data[p.i+1] {
		case '/':
			p.i += 2
			for p.i < len(p.data) && p.data[p.i] != '\n' {
				p.i++
			}
		case '*':
			start := p.i
			p.i += 2
			closed := false
			for p.i+1 < len(p.data) {
				if p.data[p.i] == '*' && p.data[p.i+1] == '/' {
					p.i += 2
					closed = true
					break
				}
				p.i++
			}
			if !closed {
				return model.NewError(p.data, start, model.InvalidComment, "unterminated block comment")
			}
		default:
			return nil
		}
	}
}

func (p *parser) enterContainer() error {
	p.depth++
	if p.depth > p.opts.ResolvedMaxDepth() {
		return model.NewError(p.data, p.i, model.MaxDepthExceeded, "maximum nesting depth exceeded")
	}
	return nil
}

func (p *parser) exitContainer() { p.depth-- }

func (p *parser) parseValue() (model.Value, error) {
	if p.i >= len(p.data) {
		return model.Value{}, model.NewError(p.data, p.i, model.UnexpectedEndOfInput, "unexpected end of input")
	}
	c := p.data[p.i]
	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		raw, err := p.parseStringRaw('"')
		if err != nil {
			return model.Value{}, err
		}
		return p.valueFromRaw(raw), nil
	case c == '\'' && p.opts.AllowSingleQuotes:
		raw, err := p.parseStringRaw('\'')
		if err != nil {
			return model.Value{}, err
		}
		return p.valueFromRaw(raw), nil
	case c == 't':
		return p.parseLiteral("true", model.NewBool(true))
	case c == 'f':
		return p.parseLiteral("false", model.NewBool(false))
	case c == 'n':
		return p.parseLiteral("null", model.Null)
	case c == '-' || isDigit(c):
		return p.parseNumber()
	case (c == 'N' || c == 'I') && p.opts.AllowNaNInfinity:
		return p.parseNumber()
	default:
		return model.Value{}, model.NewError(p.data, p.i, model.UnexpectedCharacter, "unexpected character")
	}
}

func (p *parser) parseLiteral(lit string, val model.Value) (model.Value, error) {
	if p.i+len(lit) <= len(p.data) && string(p.data[p.i:p.i+len(lit)]) == lit {
		p.i += len(lit)
		return val, nil
	}
	return model.Value{}, model.NewError(p.data, p.i, model.InvalidLiteral, "invalid literal")
}

func (p *parser) matchLiteral(lit string) bool {
	if p.i+len(lit) <= len(p.data) && string(p.data[p.i:p.i+len(lit)]) == lit {
		p.i += len(lit)
		return true
	}
	return false
}

func (p *parser) parseObject() (model.Value, error) {
	start := p.i
	if err := p.enterContainer(); err != nil {
		return model.Value{}, err
	}
	defer p.exitContainer()
	p.i++ // consume '{'
	obj := model.NewObjectValue()
	if err := p.skipWS(); err != nil {
		return model.Value{}, err
	}
	if p.i < len(p.data) && p.data[p.i] == '}' {
		p.i++
		return model.NewObject(obj), nil
	}
members:
	for {
		if err := p.skipWS(); err != nil {
			return model.Value{}, err
		}
		key, err := p.parseKey()
		if err != nil {
			return model.Value{}, err
		}
		if err := p.skipWS(); err != nil {
			return model.Value{}, err
		}
		if p.i >= len(p.data) || p.data[p.i] != ':' {
			return model.Value{}, model.NewError(p.data, p.i, model.UnexpectedCharacter, "expected ':' after object key")
		}
		p.i++
		if err := p.skipWS(); err != nil {
			return model.Value{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return model.Value{}, err
		}
		obj.AppendRaw(key, val)
		if err := p.skipWS(); err != nil {
			return model.Value{}, err
		}
		if p.i >= len(p.data) {
			return model.Value{}, model.NewError(p.data, start, model.UnterminatedObject, "unterminated object")
		}
		switch p.data[p.i] {
		case ',':
			p.i++
			if err := p.skipWS(); err != nil {
				return model.Value{}, err
			}
			if p.opts.AllowTrailingCommas && p.i < len(p.data) && p.data[p.i] == '}' {
				p.i++
				break members
			}
		case '}':
			p.i++
			break members
		default:
			return model.Value{}, model.NewError(p.data, p.i, model.UnexpectedCharacter, "expected ',' or '}'")
		}
	}
	if err := obj.Finalize(p.data, start, p.opts.RejectDuplicateKeys); err != nil {
		return model.Value{}, err
	}
	return model.NewObject(obj), nil
}

func (p *parser) parseArray() (model.Value, error) {
	start := p.i
	if err := p.enterContainer(); err != nil {
		return model.Value{}, err
	}
	defer p.exitContainer()
	p.i++ // consume '['
	arr := model.NewArrayValue(0)
	if err := p.skipWS(); err != nil {
		return model.Value{}, err
	}
	if p.i < len(p.data) && p.data[p.i] == ']' {
		p.i++
		return model.NewArray(arr), nil
	}
elements:
	for {
		if err := p.skipWS(); err != nil {
			return model.Value{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return model.Value{}, err
		}
		arr.Append(val)
		if err := p.skipWS(); err != nil {
			return model.Value{}, err
		}
		if p.i >= len(p.data) {
			return model.Value{}, model.NewError(p.data, start, model.UnterminatedArray, "unterminated array")
		}
		switch p.data[p.i] {
		case ',':
			p.i++
			if err := p.skipWS(); err != nil {
				return model.Value{}, err
			}
			if p.opts.AllowTrailingCommas && p.i < len(p.data) && p.data[p.i] == ']' {
				p.i++
				break elements
			}
		case ']':
			p.i++
			break elements
		default:
			return model.Value{}, model.NewError(p.data, p.i, model.UnexpectedCharacter, "expected ',' or ']'")
		}
	}
	return model.NewArray(arr), nil
}

func (p *parser) parseKey() (string, error) {
	if p.i >= len(p.data) {
		return "", model.NewError(p.data, p.i, model.UnexpectedEndOfInput, "expected object key")
	}
	c := p.data[p.i]
	if c == '"' {
		raw, err := p.parseStringRaw('"')
		if err != nil {
			return "", err
		}
		return p.keyFromRaw(raw), nil
	}
	if c == '\'' && p.opts.AllowSingleQuotes {
		raw, err := p.parseStringRaw('\'')
		if err != nil {
			return "", err
		}
		return p.keyFromRaw(raw), nil
	}
	if p.opts.AllowUnquotedKeys && isIdentStart(c) {
		start := p.i
		p.i++
		for p.i < len(p.data) && isIdentCont(p.data[p.i]) {
			p.i++
		}
		return p.keyFromRaw(p.data[start:p.i]), nil
	}
	return "", model.NewError(p.data, p.i, model.UnexpectedCharacter, "expected object key")
}

// keyFromRaw copies raw into a Go string, routing through the arena when
// one is configured so object keys share the parse's allocation scope.
func (p *parser) keyFromRaw(raw []byte) string {
	if p.opts.Arena != nil {
		return p.opts.Arena.AllocStringFromBytes(raw)
	}
	return string(raw)
}

func (p *parser) valueFromRaw(raw []byte) model.Value {
	return model.NewStringFromBytes(raw, p.opts.Arena)
}

// findDelim locates the next occurrence of quote or '\\' in [start, end).
// The accelerated scanner only knows about '"', so the rarely-used
// single-quote extension falls back to a plain scan.
func findDelim(data []byte, start, end int, quote byte) int {
	if quote == '"' {
		return scanner.FindStringDelimiter(data, start, end)
	}
	i := start
	for i < end && data[i] != quote && data[i] != '\\' {
		i++
	}
	return i
}

func (p *parser) parseStringRaw(quote byte) ([]byte, error) {
	start := p.i
	p.i++ // consume opening quote
	segStart := p.i
	var buf []byte
	for {
		if p.i >= len(p.data) {
			return nil, model.NewError(p.data, start, model.UnterminatedString, "unterminated string")
		}
		d := findDelim(p.data, p.i, len(p.data), quote)
		if !p.opts.AllowRawControlChars {
			limit := d
			if limit > len(p.data) {
				limit = len(p.data)
			}
			for k := p.i; k < limit; k++ {
				if p.data[k] < 0x20 {
					return nil, model.NewError(p.data, k, model.UnexpectedCharacter, "raw control character in string")
				}
			}
		}
		if d >= len(p.data) {
			return nil, model.NewError(p.data, start, model.UnterminatedString, "unterminated string")
		}
		c := p.data[d]
		if c == quote {
			p.i = d + 1
			if buf == nil {
				return p.data[segStart:d], nil
			}
			buf = append(buf, p.data[segStart:d]...)
			return buf, nil
		}
		// c == '\\'
		if buf == nil {
			buf = make([]byte, 0, (d-segStart)+16)
		}
		buf = append(buf, p.data[segStart:d]...)
		p.i = d + 1
		if p.i >= len(p.data) {
			return nil, model.NewError(p.data, start, model.UnterminatedString, "unterminated string")
		}
		esc := p.data[p.i]
		switch esc {
		case '"', '\\', '/':
			buf = append(buf, esc)
			p.i++
		case '\'':
			if !p.opts.AllowSingleQuotes {
				return nil, model.NewError(p.data, p.i, model.InvalidEscape, "invalid escape character")
			}
			buf = append(buf, '\'')
			p.i++
		case 'b':
			buf = append(buf, '\b')
			p.i++
		case 'f':
			buf = append(buf, '\f')
			p.i++
		case 'n':
			buf = append(buf, '\n')
			p.i++
		case 'r':
			buf = append(buf, '\r')
			p.i++
		case 't':
			buf = append(buf, '\t')
			p.i++
		case 'u':
			p.i++
			r, err := p.parseHex4()
			if err != nil {
				return nil, err
			}
			cp, err := p.resolveCodepoint(r, start)
			if err != nil {
				return nil, err
			}
			var tmp [4]byte
			n := codec.EncodeRune(tmp[:], cp)
			buf = append(buf, tmp[:n]...)
		default:
			return nil, model.NewError(p.data, p.i, model.InvalidEscape, "invalid escape character")
		}
		segStart = p.i
	}
}

// resolveCodepoint assembles a final rune from a \uXXXX escape, consuming
// a following \uXXXX low surrogate when r is a high surrogate.
func (p *parser) resolveCodepoint(r int, stringStart int) (rune, error) {
	switch {
	case r >= 0xD800 && r <= 0xDBFF:
		if p.i+1 < len(p.data) && p.data[p.i] == '\\' && p.data[p.i+1] == 'u' {
			p.i += 2
			r2, err := p.parseHex4()
			if err != nil {
				return 0, err
			}
			if r2 >= 0xDC00 && r2 <= 0xDFFF {
				return rune(0x10000 + (r-0xD800)<<10 + (r2 - 0xDC00)), nil
			}
			return 0, model.NewError(p.data, stringStart, model.InvalidUnicodeEscape, "unpaired high surrogate")
		}
		return 0, model.NewError(p.data, stringStart, model.InvalidUnicodeEscape, "unpaired high surrogate")
	case r >= 0xDC00 && r <= 0xDFFF:
		return 0, model.NewError(p.data, stringStart, model.InvalidUnicodeEscape, "unpaired low surrogate")
	default:
		return rune(r), nil
	}
}

func (p *parser) parseHex4() (int, error) {
	if p.i+4 > len(p.data) {
		return 0, model.NewError(p.data, p.i, model.InvalidUnicodeEscape, "truncated unicode escape")
	}
	v := 0
	for k := 0; k < 4; k++ {
		d, ok := hexVal(p.data[p.i+k])
		if !ok {
			return 0, model.NewError(p.data, p.i+k, model.InvalidUnicodeEscape, "invalid hex digit in unicode escape")
		}
		v = v*16 + d
	}
	p.i += 4
	return v, nil
}

// parseNumber reads a number literal: optional '-', a hex literal
// (AllowHexNumbers), NaN/Infinity (AllowNaNInfinity), or a decimal literal
// with optional fraction and exponent. Integers that fit uint64 become Int
// or UInt (an integer literal one past int64's max, like
// 9223372036854775808, becomes UInt rather than overflowing to Float);
// everything else is a Float, reconstructed via the exact power-of-ten
// fast path when possible and via strconv otherwise.
func (p *parser) parseNumber() (model.Value, error) {
	start := p.i
	neg := false
	if p.data[p.i] == '-' {
		neg = true
		p.i++
	}
	if p.i >= len(p.data) {
		return model.Value{}, model.NewError(p.data, start, model.InvalidNumber, "truncated number")
	}

	if p.opts.AllowNaNInfinity {
		if p.matchLiteral("Infinity") {
			if neg {
				return model.NewFloat(math.Inf(-1)), nil
			}
			return model.NewFloat(math.Inf(1)), nil
		}
		if !neg && p.matchLiteral("NaN") {
			return model.NewFloat(math.NaN()), nil
		}
	}

	if p.opts.AllowHexNumbers && p.i+1 < len(p.data) && p.data[p.i] == '0' &&
		(p.data[p.i+1] == 'x' || p.data[p.i+1] == 'X') {
		p.i += 2
		hexStart := p.i
		var val uint64
		for p.i < len(p.data) {
			d, ok := hexVal(p.data[p.i])
			if !ok {
				break
			}
			val = val*16 + uint64(d)
			p.i++
		}
		if p.i == hexStart {
			return model.Value{}, model.NewError(p.data, start, model.InvalidNumber, "invalid hex literal")
		}
		if neg {
			return model.NewInt(-int64(val)), nil
		}
		return model.NewUInt(val), nil
	}

	if !isDigit(p.data[p.i]) {
		return model.Value{}, model.NewError(p.data, start, model.InvalidNumber, "expected digit")
	}
	intStart := p.i
	if p.data[p.i] == '0' {
		p.i++
		if p.i < len(p.data) && isDigit(p.data[p.i]) {
			return model.Value{}, model.NewError(p.data, start, model.InvalidNumber, "leading zero not allowed")
		}
	} else {
		for p.i < len(p.data) && isDigit(p.data[p.i]) {
			p.i++
		}
	}
	intEnd := p.i

	isFloat := false
	var fracStart, fracEnd int
	if p.i < len(p.data) && p.data[p.i] == '.' {
		isFloat = true
		p.i++
		fracStart = p.i
		if p.i >= len(p.data) || !isDigit(p.data[p.i]) {
			return model.Value{}, model.NewError(p.data, p.i, model.InvalidNumber, "expected digit after decimal point")
		}
		for p.i < len(p.data) && isDigit(p.data[p.i]) {
			p.i++
		}
		fracEnd = p.i
	}

	hasExp := false
	expSign := 1
	var expStart, expEnd int
	if p.i < len(p.data) && (p.data[p.i] == 'e' || p.data[p.i] == 'E') {
		isFloat = true
		hasExp = true
		p.i++
		if p.i < len(p.data) && (p.data[p.i] == '+' || p.data[p.i] == '-') {
			if p.data[p.i] == '-' {
				expSign = -1
			}
			p.i++
		}
		expStart = p.i
		if p.i >= len(p.data) || !isDigit(p.data[p.i]) {
			return model.Value{}, model.NewError(p.data, p.i, model.InvalidNumber, "expected digit in exponent")
		}
		for p.i < len(p.data) && isDigit(p.data[p.i]) {
			p.i++
		}
		expEnd = p.i
	}

	if !isFloat {
		mantissa, overflow := parseUintDigits(p.data[intStart:intEnd])
		if !overflow {
			if neg {
				if mantissa <= uint64(math.MaxInt64)+1 {
					return model.NewInt(-int64(mantissa)), nil
				}
			} else if mantissa <= math.MaxInt64 {
				return model.NewInt(int64(mantissa)), nil
			} else {
				return model.NewUInt(mantissa), nil
			}
		}
		f, err := strconv.ParseFloat(string(p.data[start:p.i]), 64)
		if err != nil {
			return model.Value{}, model.NewError(p.data, start, model.InvalidNumber, "number too large")
		}
		return model.NewFloat(f), nil
	}

	mantissaDigits := make([]byte, 0, (intEnd-intStart)+(fracEnd-fracStart))
	mantissaDigits = append(mantissaDigits, p.data[intStart:intEnd]...)
	mantissaDigits = append(mantissaDigits, p.data[fracStart:fracEnd]...)
	decimalExp := -(fracEnd - fracStart)
	if hasExp {
		expVal, overflow := parseUintDigits(p.data[expStart:expEnd])
		if !overflow && expVal <= math.MaxInt32 {
			decimalExp += expSign * int(expVal)
		} else {
			decimalExp = 1 << 30 // force the strconv fallback below
		}
	}
	mantissa, overflow := parseUintDigits(mantissaDigits)
	if !overflow && mantissa <= maxSafeMantissa && decimalExp >= -22 && decimalExp <= 22 {
		absExp := decimalExp
		if absExp < 0 {
			absExp = -absExp
		}
		if pow, ok := codec.ExactPow10(absExp); ok {
			f := float64(mantissa)
			if decimalExp >= 0 {
				f *= pow
			} else {
				f /= pow
			}
			if neg {
				f = -f
			}
			return model.NewFloat(f), nil
		}
	}

	f, err := strconv.ParseFloat(string(p.data[start:p.i]), 64)
	if err != nil {
		return model.Value{}, model.NewError(p.data, start, model.InvalidNumber, "invalid float literal")
	}
	return model.NewFloat(f), nil
}

func parseUintDigits(digits []byte) (uint64, bool) {
	var v uint64
	for _, c := range digits {
		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, true
		}
		v = v*10 + d
	}
	return v, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
