package vmath

import (
	"math"
)

// TrigShift drops low angle bits before table lookup: one entry per 2^-9 rad
const TrigShift = Decimal2 - 9

// trigLUTSize covers the folded quarter turn [0, π/2] inclusive
const trigLUTSize = int(HalfPi2FX>>TrigShift) + 2

// SinLUT and CosLUT hold one quarter turn scaled by OneMatrix
// Both are indexed by the same reduced angle so a rotation stays orthogonal
var (
	SinLUT [trigLUTSize]int32
	CosLUT [trigLUTSize]int32
)

func init() {
	for i := 0; i < trigLUTSize; i++ {
		rad := float64(int64(i)<<TrigShift) / One2FX
		SinLUT[i] = int32(math.Round(math.Sin(rad) * OneMatrix))
		CosLUT[i] = int32(math.Round(math.Cos(rad) * OneMatrix))
	}
}

// sinCos returns sin and cos of a 2FX angle scaled by OneMatrix
func sinCos(angle int32) (sin, cos int32) {
	a := angle % TwoPi2FX
	if a < 0 {
		a += TwoPi2FX
	}

	// Fold into a quadrant, a becomes the offset within it
	var quadrant int32
	switch {
	case a < HalfPi2FX:
		quadrant = 0
	case a < Pi2FX:
		quadrant, a = 1, a-HalfPi2FX
	case a < Pi2FX+HalfPi2FX:
		quadrant, a = 2, a-Pi2FX
	default:
		quadrant, a = 3, a-Pi2FX-HalfPi2FX
	}

	i := a >> TrigShift
	s, c := SinLUT[i], CosLUT[i]
	switch quadrant {
	case 0:
		return s, c
	case 1:
		return c, -s
	case 2:
		return -s, -c
	default:
		return -c, s
	}
}
