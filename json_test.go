package vjson

import (
	"bytes"
	"reflect"
	"testing"
)

type person struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Active   bool     `json:"active"`
	Score    float64  `json:"score"`
	Tags     []string `json:"tags,omitempty"`
	Internal string   `json:"-"`
}

func TestMarshalUnmarshalStructRoundTrip(t *testing.T) {
	in := person{Name: "John", Age: 30, Active: true, Score: 95.5, Internal: "secret"}
	out, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if bytes.Contains(out, []byte("secret")) {
		t.Error("Marshal() leaked a json:\"-\" field")
	}
	if bytes.Contains(out, []byte("tags")) {
		t.Error("Marshal() emitted an omitempty field with a zero value")
	}
	var got person
	if err := Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	got.Internal = "secret" // json:"-" is never populated by Unmarshal
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round-trip = %+v, want %+v", got, in)
	}
}

func TestMarshalOptionsPretty(t *testing.T) {
	out, err := MarshalOptions(map[string]int{"a": 1}, PrettyOptions(2))
	if err != nil {
		t.Fatalf("MarshalOptions() error = %v", err)
	}
	want := "{\n  \"a\": 1\n}"
	if string(out) != want {
		t.Errorf("MarshalOptions() = %q, want %q", out, want)
	}
}

func TestUnmarshalIntoInterface(t *testing.T) {
	var v interface{}
	if err := Unmarshal([]byte(`{"a":1,"b":[1,"two",true,null]}`), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]interface{}", v)
	}
	if a, ok := m["a"].(float64); !ok || a != 1 {
		t.Errorf("m[\"a\"] = %v (%T), want float64(1)", m["a"], m["a"])
	}
	b, ok := m["b"].([]interface{})
	if !ok || len(b) != 4 {
		t.Fatalf("m[\"b\"] = %v, want a 4-element []interface{}", m["b"])
	}
	if b[2] != true || b[3] != nil {
		t.Errorf("m[\"b\"] tail = %v, want [true, nil]", b[2:])
	}
}

func TestUnmarshalRequiresNonNilPointer(t *testing.T) {
	var v interface{}
	if err := Unmarshal([]byte("1"), v); err == nil {
		t.Fatal("Unmarshal(non-pointer) succeeded, want TypeMismatch error")
	}
}

func TestMarshalByteSliceAsBase64(t *testing.T) {
	type blob struct {
		Data []byte `json:"data"`
	}
	in := blob{Data: []byte("hello")}
	out, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got blob
	if err := Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round-trip = %+v, want %+v", got, in)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"valid_object", `{"a":1}`, true},
		{"valid_scalar", "42", true},
		{"trailing_content", "1 2", false},
		{"unterminated", `{"a":1`, false},
		{"malformed_utf8", "\"a\xffb\"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid([]byte(tt.data)); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecoderEncoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]int{"a": 1}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var out map[string]int
	dec := NewDecoder(&buf)
	if err := dec.Decode(&out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out["a"] != 1 {
		t.Errorf("Decode() = %v, want map[a:1]", out)
	}
}
