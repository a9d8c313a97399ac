// Package serializer writes a model.Value tree back to JSON text: compact
// or pretty-printed, optionally ASCII-only, with the same fast integer and
// float formatting internal/codec gives the parser. Scratch buffers are
// reused across calls via sync.Pool.
package serializer

import (
	"sort"
	"sync"

	"github.com/biggeezerdevelopment/velocijson/internal/codec"
	"github.com/biggeezerdevelopment/velocijson/internal/model"
	"github.com/biggeezerdevelopment/velocijson/internal/scanner"
)

type serializer struct {
	buf   []byte
	opts  model.SerializeOptions
	depth int
}

var serializerPool = sync.Pool{
	New: func() interface{} {
		return &serializer{buf: make([]byte, 0, 4096)}
	},
}

// Serialize renders v as JSON per opts and returns a fresh, independently
// owned byte slice (the internal scratch buffer is pooled and reused).
func Serialize(v *model.Value, opts model.SerializeOptions) ([]byte, error) {
	s := serializerPool.Get().(*serializer)
	s.buf = s.buf[:0]
	s.opts = opts
	s.depth = 0
	defer func() {
		if cap(s.buf) > 1<<20 {
			s.buf = make([]byte, 0, 4096)
		}
		serializerPool.Put(s)
	}()
	if err := s.writeValue(v); err != nil {
		return nil, err
	}
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	return out, nil
}

// AppendTo renders v as JSON per opts, appending to dst and returning the
// extended slice, without the fresh-slice copy Serialize makes.
func AppendTo(dst []byte, v *model.Value, opts model.SerializeOptions) ([]byte, error) {
	s := serializerPool.Get().(*serializer)
	s.buf = s.buf[:0]
	s.opts = opts
	s.depth = 0
	defer func() {
		if cap(s.buf) > 1<<20 {
			s.buf = make([]byte, 0, 4096)
		}
		serializerPool.Put(s)
	}()
	if err := s.writeValue(v); err != nil {
		return dst, err
	}
	return append(dst, s.buf...), nil
}

func (s *serializer) writeValue(v *model.Value) error {
	switch v.Kind() {
	case model.KindNull:
		s.buf = append(s.buf, "null"...)
	case model.KindBool:
		b, _ := v.AsBool()
		if b {
			s.buf = append(s.buf, "true"...)
		} else {
			s.buf = append(s.buf, "false"...)
		}
	case model.KindInt:
		i, _ := v.AsInt()
		s.buf = codec.AppendInt(s.buf, i)
	case model.KindUInt:
		u, _ := v.AsUInt()
		s.buf = codec.AppendUint(s.buf, u)
	case model.KindFloat:
		f, _ := v.AsFloat()
		return s.writeFloat(f)
	case model.KindString:
		str, _ := v.AsString()
		s.writeString(str)
	case model.KindArray:
		arr, _ := v.AsArray()
		return s.writeArray(arr)
	case model.KindObject:
		obj, _ := v.AsObject()
		return s.writeObject(obj)
	}
	return nil
}

func (s *serializer) writeFloat(f float64) error {
	if isNaNOrInf(f) {
		if !s.opts.AllowNaNInf {
			return &model.Error{Kind: model.NanOrInfinity, Message: "NaN/Infinity not serializable under current options"}
		}
		s.buf = append(s.buf, nanInfLiteral(f)...)
		return nil
	}
	s.buf = codec.AppendFloat(s.buf, f)
	return nil
}

func isNaNOrInf(f float64) bool {
	return f != f || f > maxFloat64 || f < -maxFloat64
}

const maxFloat64 = 1.7976931348623157e+308

func nanInfLiteral(f float64) string {
	if f != f {
		return "NaN"
	}
	if f > 0 {
		return "Infinity"
	}
	return "-Infinity"
}

func (s *serializer) writeArray(arr *model.Array) error {
	s.buf = append(s.buf, '[')
	items := arr.Items()
	s.depth++
	for i := range items {
		if i > 0 {
			s.buf = append(s.buf, ',')
		}
		s.writeNewlineIndent()
		if err := s.writeValue(&items[i]); err != nil {
			s.depth--
			return err
		}
	}
	s.depth--
	if len(items) > 0 {
		s.writeNewlineIndent()
	}
	s.buf = append(s.buf, ']')
	return nil
}

func (s *serializer) writeObject(obj *model.Object) error {
	s.buf = append(s.buf, '{')
	keys := obj.Keys()
	if s.opts.SortKeys {
		sort.Strings(keys)
	}
	s.depth++
	for i, k := range keys {
		if i > 0 {
			s.buf = append(s.buf, ',')
		}
		s.writeNewlineIndent()
		s.writeString(k)
		s.buf = append(s.buf, ':')
		if s.opts.Pretty() {
			s.buf = append(s.buf, ' ')
		}
		val, _ := obj.Find(k)
		if err := s.writeValue(val); err != nil {
			s.depth--
			return err
		}
	}
	s.depth--
	if len(keys) > 0 {
		s.writeNewlineIndent()
	}
	s.buf = append(s.buf, '}')
	return nil
}

func (s *serializer) writeNewlineIndent() {
	if !s.opts.Pretty() {
		return
	}
	s.buf = append(s.buf, '\n')
	for i := 0; i < s.depth*s.opts.Indent; i++ {
		s.buf = append(s.buf, ' ')
	}
}

// writeString appends the quoted, escaped JSON representation of str,
// using FindNeedsEscape to skip straight past runs of plain bytes.
func (s *serializer) writeString(str string) {
	s.buf = append(s.buf, '"')
	data := []byte(str)
	i := 0
	for i < len(data) {
		j := scanner.FindNeedsEscape(data, i, len(data), s.opts.EnsureASCII)
		s.buf = append(s.buf, data[i:j]...)
		if j >= len(data) {
			break
		}
		c := data[j]
		switch c {
		case '"':
			s.buf = append(s.buf, '\\', '"')
			i = j + 1
		case '\\':
			s.buf = append(s.buf, '\\', '\\')
			i = j + 1
		case '\b':
			s.buf = append(s.buf, '\\', 'b')
			i = j + 1
		case '\f':
			s.buf = append(s.buf, '\\', 'f')
			i = j + 1
		case '\n':
			s.buf = append(s.buf, '\\', 'n')
			i = j + 1
		case '\r':
			s.buf = append(s.buf, '\\', 'r')
			i = j + 1
		case '\t':
			s.buf = append(s.buf, '\\', 't')
			i = j + 1
		default:
			if c < 0x20 {
				s.buf = codec.AppendEscapedRune(s.buf, rune(c))
				i = j + 1
				continue
			}
			// c >= 0x80 with EnsureASCII: decode the full rune and
			// escape it as \uXXXX (or a surrogate pair above the BMP).
			r, size := codec.DecodeRune(data[j:])
			s.buf = codec.AppendEscapedRune(s.buf, r)
			i = j + size
		}
	}
	s.buf = append(s.buf, '"')
}
