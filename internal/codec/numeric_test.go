package codec

import (
	"math"
	"strconv"
	"testing"
)

func TestAppendUintMatchesStrconv(t *testing.T) {
	cases := []uint64{0, 1, 9, 10, 99, 100, 999, 1000, 123456789, math.MaxUint64}
	for _, v := range cases {
		got := string(AppendUint(nil, v))
		want := strconv.FormatUint(v, 10)
		if got != want {
			t.Errorf("AppendUint(%d) = %q want %q", v, got, want)
		}
	}
}

func TestAppendIntMatchesStrconv(t *testing.T) {
	cases := []int64{0, -1, 1, math.MinInt64, math.MaxInt64, -123456789}
	for _, v := range cases {
		got := string(AppendInt(nil, v))
		want := strconv.FormatInt(v, 10)
		if got != want {
			t.Errorf("AppendInt(%d) = %q want %q", v, got, want)
		}
	}
}

func TestAppendFloatRoundTrips(t *testing.T) {
	cases := []float64{0, -0.0, 1, -1, 0.1, 3.14, 95.5, 1e100, 1e-100, 0.1 + 0.2, 37.7749295, 9007199254740993}
	for _, v := range cases {
		s := string(AppendFloat(nil, v))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("AppendFloat(%v) = %q: %v", v, s, err)
		}
		if parsed != v && !(v == 0 && parsed == 0) {
			t.Errorf("round-trip failed: %v -> %q -> %v", v, s, parsed)
		}
	}
}

func TestAppendFloatNegativeZero(t *testing.T) {
	got := string(AppendFloat(nil, math.Copysign(0, -1)))
	if got != "0.0" {
		t.Errorf("got %q want 0.0", got)
	}
}

func TestAppendFloatIntegerFastPath(t *testing.T) {
	if got := string(AppendFloat(nil, 30.0)); got != "30.0" {
		t.Errorf("got %q want 30.0", got)
	}
}

func TestAppendFloatAlwaysHasDotOrExp(t *testing.T) {
	for _, v := range []float64{95.5, 1, 1e20, 1e-20} {
		s := string(AppendFloat(nil, v))
		hasMark := false
		for _, c := range s {
			if c == '.' || c == 'e' || c == 'E' {
				hasMark = true
			}
		}
		if !hasMark {
			t.Errorf("AppendFloat(%v) = %q has no '.' or exponent", v, s)
		}
	}
}
