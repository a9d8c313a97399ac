package codec

import (
	"math"
	"math/bits"
	"strconv"
)

// digitPairs is the "00".."99" lookup table: formatting two digits per
// division instead of one. Grounded on dtoa.hpp's kDigitPairs.
const digitPairs = "" +
	"00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

var pow10u64 = [...]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	10000000000, 100000000000, 1000000000000, 10000000000000, 100000000000000,
	1000000000000000, 10000000000000000, 100000000000000000, 1000000000000000000,
	10000000000000000000,
}

// pow10f64 holds the 23 exactly-representable powers of ten (10^0..10^22)
// used both by the fixed-point dtoa fast path (k = 1..9) and by the
// parser's inline double-reconstruction fast path (exponents -22..22).
var pow10f64 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
	1e20, 1e21, 1e22,
}

const maxSafeInteger = 9007199254740992.0 // 2^53

// countDigits returns the number of decimal digits (1..20) in val, using
// a bit-length approximation of log10 derived from the position of the
// highest set bit.
func countDigits(val uint64) int {
	if val == 0 {
		return 1
	}
	b := 64 - bits.LeadingZeros64(val)
	approx := (b * 1233) >> 12
	if approx >= len(pow10u64) || val < pow10u64[approx] {
		return approx
	}
	return approx + 1
}

// AppendUint appends the decimal representation of val to dst using the
// two-digit-pair table, writing digits right-to-left without a reversal
// pass (the final digit count is known up front via countDigits).
func AppendUint(dst []byte, val uint64) []byte {
	if val == 0 {
		return append(dst, '0')
	}
	n := countDigits(val)
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	p := start + n
	for val >= 100 {
		idx := (val % 100) * 2
		val /= 100
		p -= 2
		dst[p] = digitPairs[idx]
		dst[p+1] = digitPairs[idx+1]
	}
	if val >= 10 {
		dst[start] = digitPairs[val*2]
		dst[start+1] = digitPairs[val*2+1]
	} else {
		dst[start] = byte('0' + val)
	}
	return dst
}

// AppendInt appends the decimal representation of val to dst, handling the
// minimum signed value (whose absolute value overflows int64) via an
// unsigned two's-complement negation instead of negating val directly.
func AppendInt(dst []byte, val int64) []byte {
	if val >= 0 {
		return AppendUint(dst, uint64(val))
	}
	dst = append(dst, '-')
	return AppendUint(dst, uint64(-(val + 1))+1)
}

// AppendFloat appends the shortest decimal representation of val that
// round-trips to val, guaranteeing the output contains '.' or 'e'/'E' so
// it is unambiguously a JSON number literal, never an integer. val must
// not be NaN or +/-Inf; callers handle those per the allow_nan_inf option.
func AppendFloat(dst []byte, val float64) []byte {
	if math.Signbit(val) {
		if val == 0 {
			return append(dst, '0', '.', '0')
		}
		dst = append(dst, '-')
		val = -val
	}

	// Fast path 1: exact integers.
	if val <= maxSafeInteger && val == math.Floor(val) {
		dst = AppendUint(dst, uint64(val))
		return append(dst, '.', '0')
	}

	// Fast path 2: fixed point, k = 1..9.
	if val < 1e15 && val > 1e-6 {
		for k := 1; k <= 9; k++ {
			scaled := val * scalePow10(k)
			if scaled > maxSafeInteger {
				break // monotone in k, no later k can succeed either
			}
			if scaled == math.Floor(scaled) {
				return appendFixedPoint(dst, uint64(scaled), k)
			}
		}
	}

	// General case: Go's strconv AppendFloat with the shortest-round-trip
	// 'g' format is the stdlib's Ryu-equivalent.
	start := len(dst)
	dst = strconv.AppendFloat(dst, val, 'g', -1, 64)
	hasDotOrExp := false
	for _, c := range dst[start:] {
		if c == '.' || c == 'e' || c == 'E' {
			hasDotOrExp = true
			break
		}
	}
	if !hasDotOrExp {
		dst = append(dst, '.', '0')
	}
	return dst
}

func scalePow10(k int) float64 {
	if k >= 0 && k < len(pow10f64) {
		return pow10f64[k]
	}
	return math.Pow(10, float64(k))
}

func appendFixedPoint(dst []byte, ival uint64, k int) []byte {
	var digits [24]byte
	totalDigits := appendDigitsInto(digits[:0], ival)
	intDigits := len(totalDigits) - k
	if intDigits <= 0 {
		dst = append(dst, '0', '.')
		for i := 0; i < -intDigits; i++ {
			dst = append(dst, '0')
		}
		dst = append(dst, totalDigits...)
		return dst
	}
	dst = append(dst, totalDigits[:intDigits]...)
	dst = append(dst, '.')
	dst = append(dst, totalDigits[intDigits:]...)
	return dst
}

func appendDigitsInto(dst []byte, val uint64) []byte {
	return AppendUint(dst, val)
}

// ExactPow10 returns 10^k as an exactly-representable float64 for k in
// [-22, 22], used by the parser's inline double-reconstruction fast path.
func ExactPow10(k int) (float64, bool) {
	if k < -22 || k > 22 {
		return 0, false
	}
	if k >= 0 {
		return scalePow10(k), true
	}
	return 1 / scalePow10(-k), true
}
