package vmath

// Mat2FX is a 2x2 linear transform stored as two columns
// Coefficients are scaled by OneMatrix (FX plus MatrixExtraDecimal bits)
type Mat2FX struct {
	Col1, Col2 Vec2FX
}

// Identity returns the identity transform
func Identity() Mat2FX {
	return Mat2FX{Col1: Vec2FX{OneMatrix, 0}, Col2: Vec2FX{0, OneMatrix}}
}

// FromRotation builds a rotation matrix from a 2FX angle
func FromRotation(angle int32) Mat2FX {
	sin, cos := sinCos(angle)
	return Mat2FX{
		Col1: Vec2FX{cos, sin},
		Col2: Vec2FX{-sin, cos},
	}
}

// FromScale builds a diagonal matrix from FX scale factors
func FromScale(sx, sy int32) Mat2FX {
	return Mat2FX{
		Col1: Vec2FX{sx << MatrixExtraDecimal, 0},
		Col2: Vec2FX{0, sy << MatrixExtraDecimal},
	}
}

// SetRotation overwrites m with a rotation by angle
func (m *Mat2FX) SetRotation(angle int32) *Mat2FX {
	*m = FromRotation(angle)
	return m
}

// Transform returns m·v; v and the result are FX
func (m Mat2FX) Transform(v Vec2FX) Vec2FX {
	x := int64(m.Col1.X)*int64(v.X) + int64(m.Col2.X)*int64(v.Y)
	y := int64(m.Col1.Y)*int64(v.X) + int64(m.Col2.Y)*int64(v.Y)
	return Vec2FX{X: int32(x >> MatrixDecimal), Y: int32(y >> MatrixDecimal)}
}

// Multiply returns m·o
func (m Mat2FX) Multiply(o Mat2FX) Mat2FX {
	// Columns of o sit at matrix scale, Transform keeps that scale
	return Mat2FX{Col1: m.Transform(o.Col1), Col2: m.Transform(o.Col2)}
}

// Determinant returns col1 × col2 at matrix scale
func (m Mat2FX) Determinant() int32 {
	return int32((int64(m.Col1.X)*int64(m.Col2.Y) - int64(m.Col2.X)*int64(m.Col1.Y)) >> MatrixDecimal)
}

// Invert replaces m with its inverse
// A zero determinant yields the all-zero matrix
func (m *Mat2FX) Invert() *Mat2FX {
	det := int64(m.Determinant())
	if det == 0 {
		*m = Mat2FX{}
		return m
	}

	a, b := m.Col1.X, m.Col2.X
	c, d := m.Col1.Y, m.Col2.Y

	m.Col1.X = int32((int64(d) << MatrixDecimal) / det)
	m.Col2.X = int32((int64(-b) << MatrixDecimal) / det)
	m.Col1.Y = int32((int64(-c) << MatrixDecimal) / det)
	m.Col2.Y = int32((int64(a) << MatrixDecimal) / det)
	return m
}

// Inverted returns the inverse without touching m
func (m Mat2FX) Inverted() Mat2FX {
	inv := m
	inv.Invert()
	return inv
}

// Transpose swaps the off-diagonal coefficients in place
func (m *Mat2FX) Transpose() *Mat2FX {
	m.Col1.Y, m.Col2.X = m.Col2.X, m.Col1.Y
	return m
}

// Norm1 returns the maximum absolute column sum
func (m Mat2FX) Norm1() int32 {
	n1 := Abs(m.Col1.X) + Abs(m.Col1.Y)
	n2 := Abs(m.Col2.X) + Abs(m.Col2.Y)
	if n1 > n2 {
		return n1
	}
	return n2
}

// Equals compares all four coefficients exactly
func (m Mat2FX) Equals(o Mat2FX) bool {
	return m.Col1.Equals(o.Col1) && m.Col2.Equals(o.Col2)
}
