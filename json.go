package vjson

import (
	"encoding/base64"
	"io"
	"reflect"
	"strings"

	"github.com/biggeezerdevelopment/velocijson/internal/codec"
	"github.com/biggeezerdevelopment/velocijson/internal/model"
	"github.com/biggeezerdevelopment/velocijson/internal/parser"
	"github.com/biggeezerdevelopment/velocijson/internal/serializer"
)

// Marshal builds a Value tree from v via reflection and serializes it with
// CompactOptions. Struct tags (`json:"name,omitempty"`) control field
// naming and omission, the same as encoding/json.
func Marshal(v interface{}) ([]byte, error) {
	val, err := buildValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return serializer.Serialize(&val, model.CompactOptions())
}

// MarshalOptions is Marshal with caller-supplied SerializeOptions (e.g.
// PrettyOptions, EnsureASCII).
func MarshalOptions(v interface{}, opts SerializeOptions) ([]byte, error) {
	val, err := buildValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return serializer.Serialize(&val, opts)
}

// Unmarshal parses data and decodes it into v, which must be a non-nil
// pointer.
func Unmarshal(data []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &model.Error{Kind: model.TypeMismatch, Message: "Unmarshal requires a non-nil pointer"}
	}
	root, err := parser.Parse(data, model.DefaultParseOptions())
	if err != nil {
		return err
	}
	return decodeValue(&root, rv.Elem())
}

// Valid reports whether data is syntactically valid JSON under strict
// (RFC 8259) parsing. Unlike the parser (which copies the bytes of an
// escape-free string verbatim without checking their UTF-8 encoding),
// Valid also demands the entire input be well-formed UTF-8, matching the
// stricter boundary contract callers expect from a standalone validity
// check.
func Valid(data []byte) bool {
	if !codec.Valid(data) {
		return false
	}
	_, err := parser.Parse(data, model.DefaultParseOptions())
	return err == nil
}

func buildValue(rv reflect.Value) (model.Value, error) {
	if !rv.IsValid() {
		return model.Null, nil
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return model.Null, nil
		}
		return buildValue(rv.Elem())
	case reflect.Bool:
		return model.NewBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return model.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return model.NewUInt(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return model.NewFloat(rv.Float()), nil
	case reflect.String:
		return model.NewString(rv.String(), nil), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return model.NewString(base64.StdEncoding.EncodeToString(rv.Bytes()), nil), nil
		}
		if rv.IsNil() {
			return model.Null, nil
		}
		return buildSequence(rv)
	case reflect.Array:
		return buildSequence(rv)
	case reflect.Map:
		return buildMap(rv)
	case reflect.Struct:
		return buildStruct(rv)
	default:
		return model.Value{}, &model.Error{Kind: model.TypeMismatch, Message: "unsupported type: " + rv.Type().String()}
	}
}

func buildSequence(rv reflect.Value) (model.Value, error) {
	arr := model.NewArrayValue(rv.Len())
	for i := 0; i < rv.Len(); i++ {
		ev, err := buildValue(rv.Index(i))
		if err != nil {
			return model.Value{}, err
		}
		arr.Append(ev)
	}
	return model.NewArray(arr), nil
}

func buildMap(rv reflect.Value) (model.Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return model.Value{}, &model.Error{Kind: model.TypeMismatch, Message: "map key must be string"}
	}
	if rv.IsNil() {
		return model.Null, nil
	}
	obj := model.NewObjectValue()
	iter := rv.MapRange()
	for iter.Next() {
		ev, err := buildValue(iter.Value())
		if err != nil {
			return model.Value{}, err
		}
		obj.Insert(iter.Key().String(), ev)
	}
	return model.NewObject(obj), nil
}

func buildStruct(rv reflect.Value) (model.Value, error) {
	obj := model.NewObjectValue()
	typ := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		name, omitempty, skip := parseTag(field)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitempty && isEmptyValue(fv) {
			continue
		}
		ev, err := buildValue(fv)
		if err != nil {
			return model.Value{}, err
		}
		obj.Insert(name, ev)
	}
	return model.NewObject(obj), nil
}

func parseTag(field reflect.StructField) (name string, omitempty bool, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = field.Name
	if tag == "" {
		return name, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

func decodeValue(src *model.Value, dst reflect.Value) error {
	if dst.Kind() == reflect.Ptr {
		if src.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return decodeValue(src, dst.Elem())
	}
	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		gv, err := toGoValue(src)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(gv))
		return nil
	}
	switch src.Kind() {
	case model.KindNull:
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	case model.KindBool:
		b, _ := src.AsBool()
		return decodeBool(b, dst)
	case model.KindInt:
		i, _ := src.AsInt()
		return decodeInt(i, dst)
	case model.KindUInt:
		u, _ := src.AsUInt()
		return decodeUint(u, dst)
	case model.KindFloat:
		f, _ := src.AsFloat()
		return decodeFloat(f, dst)
	case model.KindString:
		s, _ := src.AsString()
		return decodeString(s, dst)
	case model.KindArray:
		arr, _ := src.AsArray()
		return decodeArray(arr, dst)
	case model.KindObject:
		obj, _ := src.AsObject()
		return decodeObject(obj, dst)
	}
	return &model.Error{Kind: model.TypeMismatch, Message: "unreachable value kind"}
}

func decodeBool(b bool, dst reflect.Value) error {
	if dst.Kind() != reflect.Bool {
		return typeErr("bool", dst)
	}
	dst.SetBool(b)
	return nil
}

func decodeInt(i int64, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(float64(i))
	default:
		return typeErr("int", dst)
	}
	return nil
}

func decodeUint(u uint64, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(u)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(u))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(float64(u))
	default:
		return typeErr("uint", dst)
	}
	return nil
}

func decodeFloat(f float64, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(f))
	default:
		return typeErr("float", dst)
	}
	return nil
}

func decodeString(s string, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(s)
		return nil
	case reflect.Slice:
		if dst.Type().Elem().Kind() == reflect.Uint8 {
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return &model.Error{Kind: model.TypeMismatch, Message: "invalid base64 for []byte field: " + err.Error()}
			}
			dst.SetBytes(b)
			return nil
		}
	}
	return typeErr("string", dst)
}

func decodeArray(arr *model.Array, dst reflect.Value) error {
	items := arr.Items()
	switch dst.Kind() {
	case reflect.Slice:
		dst.Set(reflect.MakeSlice(dst.Type(), len(items), len(items)))
	case reflect.Array:
		if dst.Len() < len(items) {
			return &model.Error{Kind: model.OutOfRange, Message: "target array too small"}
		}
	default:
		return typeErr("array", dst)
	}
	for i := range items {
		if err := decodeValue(&items[i], dst.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeObject(obj *model.Object, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Map:
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}
		if dst.Type().Key().Kind() != reflect.String {
			return &model.Error{Kind: model.TypeMismatch, Message: "map key must be string"}
		}
		elemType := dst.Type().Elem()
		var rerr error
		obj.Range(func(key string, v *model.Value) bool {
			ev := reflect.New(elemType).Elem()
			if err := decodeValue(v, ev); err != nil {
				rerr = err
				return false
			}
			dst.SetMapIndex(reflect.ValueOf(key), ev)
			return true
		})
		return rerr
	case reflect.Struct:
		return decodeStruct(obj, dst)
	default:
		return typeErr("object", dst)
	}
}

func decodeStruct(obj *model.Object, dst reflect.Value) error {
	typ := dst.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, _, skip := parseTag(field)
		if skip {
			continue
		}
		v, ok := obj.Find(name)
		if !ok {
			continue
		}
		if err := decodeValue(v, dst.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func typeErr(from string, dst reflect.Value) error {
	return &model.Error{Kind: model.TypeMismatch, Message: "cannot unmarshal " + from + " into " + dst.Type().String()}
}

// toGoValue converts src into the same interface{} shape encoding/json's
// Unmarshal-into-interface{} produces (map[string]interface{},
// []interface{}, float64, string, bool, nil), for decoding into untyped
// destinations.
func toGoValue(src *model.Value) (interface{}, error) {
	switch src.Kind() {
	case model.KindNull:
		return nil, nil
	case model.KindBool:
		b, _ := src.AsBool()
		return b, nil
	case model.KindInt:
		i, _ := src.AsInt()
		return float64(i), nil
	case model.KindUInt:
		u, _ := src.AsUInt()
		return float64(u), nil
	case model.KindFloat:
		f, _ := src.AsFloat()
		return f, nil
	case model.KindString:
		s, _ := src.AsString()
		return s, nil
	case model.KindArray:
		arr, _ := src.AsArray()
		items := arr.Items()
		out := make([]interface{}, len(items))
		for i := range items {
			gv, err := toGoValue(&items[i])
			if err != nil {
				return nil, err
			}
			out[i] = gv
		}
		return out, nil
	case model.KindObject:
		obj, _ := src.AsObject()
		out := make(map[string]interface{}, obj.Len())
		var rerr error
		obj.Range(func(key string, v *model.Value) bool {
			gv, err := toGoValue(v)
			if err != nil {
				rerr = err
				return false
			}
			out[key] = gv
			return true
		})
		return out, rerr
	default:
		return nil, &model.Error{Kind: model.TypeMismatch, Message: "unreachable value kind"}
	}
}

// Decoder reads the whole of an io.Reader on its first Decode call and
// parses it as a single JSON document; a stream holding several
// whitespace-separated documents fails with TrailingContent.
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode unmarshals the buffered document into v, reading the underlying
// reader to EOF on the first call; later calls decode the same buffered
// bytes again.
func (d *Decoder) Decode(v interface{}) error {
	if d.buf == nil {
		data, err := io.ReadAll(d.r)
		if err != nil {
			return err
		}
		d.buf = data
	}
	return Unmarshal(d.buf, v)
}

// Encoder writes Marshal output to an io.Writer.
type Encoder struct {
	w    io.Writer
	opts SerializeOptions
}

// NewEncoder returns an Encoder writing compact JSON to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, opts: CompactOptions()}
}

// SetIndent switches the Encoder to pretty-printed output with the given
// indent width; width <= 0 reverts to compact output.
func (e *Encoder) SetIndent(width int) {
	if width <= 0 {
		e.opts = CompactOptions()
		return
	}
	e.opts = PrettyOptions(width)
}

// Encode marshals v per the Encoder's current options and writes it to the
// underlying writer.
func (e *Encoder) Encode(v interface{}) error {
	data, err := MarshalOptions(v, e.opts)
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}
