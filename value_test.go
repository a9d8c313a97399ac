package vjson

import "testing"

func TestValueConstructorKinds(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"null", Null, KindNull},
		{"bool", NewBool(true), KindBool},
		{"int", NewInt(-7), KindInt},
		{"uint", NewUInt(7), KindUInt},
		{"float", NewFloat(1.5), KindFloat},
		{"string", NewString("hi", nil), KindString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.v
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
		})
	}
}

func TestValueTypeMismatchRaises(t *testing.T) {
	v := NewInt(5)
	if _, err := v.AsString(); err == nil {
		t.Fatal("AsString() on an Int succeeded, want TypeMismatch error")
	} else if verr, ok := err.(*Error); !ok || verr.Kind != TypeMismatch {
		t.Errorf("error = %v, want TypeMismatch", err)
	}
}

func TestValueIntUintCrossEqual(t *testing.T) {
	i := NewInt(42)
	u := NewUInt(42)
	if !i.Equal(&u) {
		t.Error("Int(42).Equal(UInt(42)) = false, want true")
	}
	neg := NewInt(-1)
	if neg.Equal(&u) {
		t.Error("Int(-1).Equal(UInt(42)) = true, want false")
	}
}

func TestValueIntFloatCrossEqual(t *testing.T) {
	i := NewInt(2)
	f := NewFloat(2.0)
	if !i.Equal(&f) {
		t.Error("Int(2).Equal(Float(2.0)) = false, want true")
	}
	f2 := NewFloat(2.5)
	if i.Equal(&f2) {
		t.Error("Int(2).Equal(Float(2.5)) = true, want false")
	}
}

func TestArrayIndexOutOfRange(t *testing.T) {
	arr := NewArrayValue(2)
	arr.Append(NewInt(1))
	v := NewArray(arr)
	if _, err := v.Index(5); err == nil {
		t.Fatal("Index(5) succeeded, want OutOfRange error")
	} else if verr, ok := err.(*Error); !ok || verr.Kind != OutOfRange {
		t.Errorf("error = %v, want OutOfRange", err)
	}
}

func TestObjectGetOrSetInsertsNull(t *testing.T) {
	obj := NewObjectValue()
	v := NewObject(obj)
	got, err := v.GetOrSet("missing")
	if err != nil {
		t.Fatalf("GetOrSet() error = %v", err)
	}
	if !got.IsNull() {
		t.Errorf("GetOrSet(\"missing\") = %v, want Null", got.Kind())
	}
	if obj.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after GetOrSet on missing key", obj.Len())
	}
}

func TestObjectGetMissingKeyRaises(t *testing.T) {
	obj := NewObjectValue()
	v := NewObject(obj)
	if _, err := v.Get("missing"); err == nil {
		t.Fatal("Get(\"missing\") succeeded, want KeyNotFound error")
	} else if verr, ok := err.(*Error); !ok || verr.Kind != KeyNotFound {
		t.Errorf("error = %v, want KeyNotFound", err)
	}
}

func TestObjectIndexThresholdBoundary(t *testing.T) {
	// 15 and 16 entries must both resolve correctly, whether Find uses the
	// linear scan (below threshold) or the lazy index (at/above it).
	for _, n := range []int{15, 16} {
		obj := NewObjectValue()
		for i := 0; i < n; i++ {
			obj.Insert(string(rune('a'+i)), NewInt(int64(i)))
		}
		v, ok := obj.Find(string(rune('a' + n - 1)))
		if !ok {
			t.Fatalf("n=%d: last key not found", n)
		}
		got, _ := v.AsInt()
		if got != int64(n-1) {
			t.Errorf("n=%d: got %d, want %d", n, got, n-1)
		}
	}
}

func TestSSOBoundary(t *testing.T) {
	fifteen := NewString("123456789012345", nil) // 15 bytes: inline
	if fifteen.IsArenaOwned() {
		t.Error("15-byte string reported arena-owned with a nil arena")
	}
	a := NewArena(4096)
	sixteen := NewString("1234567890123456", a) // 16 bytes: promotes
	if !sixteen.IsArenaOwned() {
		t.Error("16-byte string under an arena did not promote to arena storage")
	}
}
