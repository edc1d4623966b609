package vmath

import (
	"math"
	"math/bits"
)

// FX fixed point constants
// FX (Q19.12) carries linear quantities, 2FX (Q7.24) carries angles in radians
const (
	Decimal  = 12
	OneFX    = 1 << Decimal
	HalfFX   = OneFX >> 1
	MaskFX   = OneFX - 1
	Decimal2 = 24
	One2FX   = 1 << Decimal2

	// MatrixExtraDecimal is the additional shift carried by matrix coefficients
	// so near-unit rotation terms keep fractional resolution
	MatrixExtraDecimal = 6
	MatrixDecimal      = Decimal + MatrixExtraDecimal
	OneMatrix          = 1 << MatrixDecimal
)

// Angle constants in 2FX radians
const (
	Pi2FX     int32 = 52707179 // round(π * 2^24)
	TwoPi2FX  int32 = 2 * Pi2FX
	HalfPi2FX int32 = Pi2FX / 2
)

// OutOfRange is returned by distance queries when the point projects outside the segment
const OutOfRange int32 = math.MaxInt32

// --- Conversion ---

// ToFX converts an integer to FX
func ToFX(n int32) int32 { return n << Decimal }

// FromFX converts FX to an integer, truncating toward zero
// Arithmetic shift floors toward -inf, negative inputs are biased first
func FromFX(v int32) int32 {
	if v >= 0 {
		return v >> Decimal
	}
	return (v + OneFX - 1) >> Decimal
}

// To2FX converts an integer to 2FX
func To2FX(n int32) int32 { return n << Decimal2 }

// FXTo2FX rescales an FX value to angular precision
func FXTo2FX(v int32) int32 { return v << (Decimal2 - Decimal) }

// To2FXFromFX is the inverse of FXTo2FX, truncating toward zero
func To2FXFromFX(v int32) int32 {
	const shift = Decimal2 - Decimal
	if v >= 0 {
		return v >> shift
	}
	return (v + (1 << shift) - 1) >> shift
}

// FromFloat is for tooling and tests only; the codec never touches floats
func FromFloat(f float64) int32 { return int32(math.Round(f * OneFX)) }
func ToFloat(v int32) float64   { return float64(v) / OneFX }

// --- Arithmetic ---

// Mul multiplies two FX values through a 64-bit intermediate
func Mul(a, b int32) int32 {
	return int32((int64(a) * int64(b)) >> Decimal)
}

// Div divides two FX values, caller guarantees b != 0
func Div(a, b int32) int32 {
	return int32((int64(a) << Decimal) / int64(b))
}

// Mul2FX multiplies a value by a 2FX factor, result keeps the precision of a
func Mul2FX(a, b int32) int32 {
	return int32((int64(a) * int64(b)) >> Decimal2)
}

// Div2FX divides by a 2FX divisor, caller guarantees b != 0
func Div2FX(a, b int32) int32 {
	return int32((int64(a) << Decimal2) / int64(b))
}

// Abs returns absolute value
func Abs(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// MulDiv computes (a * b) / c with 128-bit intermediate, truncating toward zero
// Caller guarantees |a*b/c| fits in int64
func MulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	neg := ((a < 0) != (b < 0)) != (c < 0)
	ua, ub, uc := uint64(abs64(a)), uint64(abs64(b)), uint64(abs64(c))
	hi, lo := bits.Mul64(ua, ub)
	if hi >= uc {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, uc)
	r := int64(q)
	if neg {
		return -r
	}
	return r
}

// --- Trigonometry ---

// Sin2FX returns the sine of a 2FX angle as FX
func Sin2FX(angle int32) int32 {
	s, _ := sinCos(angle)
	return int32(s >> MatrixExtraDecimal)
}

// Cos2FX returns the cosine of a 2FX angle as FX
func Cos2FX(angle int32) int32 {
	_, c := sinCos(angle)
	return int32(c >> MatrixExtraDecimal)
}
