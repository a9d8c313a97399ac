package serializer

import (
	"math"
	"testing"

	"github.com/biggeezerdevelopment/velocijson/internal/model"
)

func serialize(t *testing.T, v model.Value, opts model.SerializeOptions) string {
	t.Helper()
	out, err := Serialize(&v, opts)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	return string(out)
}

func TestSerializeScalars(t *testing.T) {
	tests := []struct {
		name string
		v    model.Value
		want string
	}{
		{"null", model.Null, "null"},
		{"true", model.NewBool(true), "true"},
		{"false", model.NewBool(false), "false"},
		{"int", model.NewInt(-42), "-42"},
		{"uint", model.NewUInt(42), "42"},
		{"string", model.NewString("hi", nil), `"hi"`},
		{"empty_string", model.NewString("", nil), `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serialize(t, tt.v, model.CompactOptions())
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeFloat(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want string
	}{
		{"integer_valued", 42.0, "42.0"},
		{"negative_zero", math.Copysign(0, -1), "0.0"},
		{"simple_fraction", 0.5, "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serialize(t, model.NewFloat(tt.f), model.CompactOptions())
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeNaNInfinityRejectedByDefault(t *testing.T) {
	v := model.NewFloat(nan())
	_, err := Serialize(&v, model.CompactOptions())
	if err == nil {
		t.Fatal("Serialize(NaN) succeeded, want NanOrInfinity error")
	}
	verr, ok := err.(*model.Error)
	if !ok || verr.Kind != model.NanOrInfinity {
		t.Errorf("error = %v, want NanOrInfinity", err)
	}
}

func TestSerializeNaNInfinityAllowed(t *testing.T) {
	opts := model.CompactOptions()
	opts.AllowNaNInf = true
	got := serialize(t, model.NewFloat(nan()), opts)
	if got != "NaN" {
		t.Errorf("Serialize(NaN) = %q, want %q", got, "NaN")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestSerializeStringEscaping(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{"plain", "hello", `"hello"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"control", "a\x01b", "\"a\\u0001b\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serialize(t, model.NewString(tt.s, nil), model.CompactOptions())
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeEnsureASCII(t *testing.T) {
	opts := model.CompactOptions()
	opts.EnsureASCII = true
	got := serialize(t, model.NewString("café", nil), opts)
	want := "\"caf\\u00e9\""
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeArrayAndObjectCompact(t *testing.T) {
	arr := model.NewArrayValue(2)
	arr.Append(model.NewInt(1))
	arr.Append(model.NewInt(2))
	v := model.NewArray(arr)
	got := serialize(t, v, model.CompactOptions())
	if got != "[1,2]" {
		t.Errorf("Serialize() = %q, want %q", got, "[1,2]")
	}

	obj := model.NewObjectValue()
	obj.Insert("a", model.NewInt(1))
	obj.Insert("b", model.NewBool(true))
	ov := model.NewObject(obj)
	gotObj := serialize(t, ov, model.CompactOptions())
	if gotObj != `{"a":1,"b":true}` {
		t.Errorf("Serialize() = %q, want %q", gotObj, `{"a":1,"b":true}`)
	}
}

func TestSerializePretty(t *testing.T) {
	obj := model.NewObjectValue()
	obj.Insert("a", model.NewInt(1))
	v := model.NewObject(obj)
	got := serialize(t, v, model.PrettyOptions(2))
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializeSortKeys(t *testing.T) {
	obj := model.NewObjectValue()
	obj.Insert("z", model.NewInt(1))
	obj.Insert("a", model.NewInt(2))
	v := model.NewObject(obj)
	opts := model.CompactOptions()
	opts.SortKeys = true
	got := serialize(t, v, opts)
	if got != `{"a":2,"z":1}` {
		t.Errorf("Serialize() = %q, want %q", got, `{"a":2,"z":1}`)
	}
}

func TestSerializeEmptyContainers(t *testing.T) {
	emptyArr := model.NewArray(model.NewArrayValue(0))
	if got := serialize(t, emptyArr, model.PrettyOptions(2)); got != "[]" {
		t.Errorf("Serialize(empty array) = %q, want %q", got, "[]")
	}
	emptyObj := model.NewObject(model.NewObjectValue())
	if got := serialize(t, emptyObj, model.PrettyOptions(2)); got != "{}" {
		t.Errorf("Serialize(empty object) = %q, want %q", got, "{}")
	}
}
