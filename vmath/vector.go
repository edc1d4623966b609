package vmath

import (
	"fmt"
	"math"
)

// Vec2FX is a 2D point or direction in FX
// Pointer methods mutate the receiver and return it for chaining
// Value methods (Times*, DividedBy*, Plus, Minus) return a fresh vector
type Vec2FX struct {
	X, Y int32
}

// V2 builds a vector from FX components
func V2(x, y int32) Vec2FX { return Vec2FX{X: x, Y: y} }

// V2Int builds a vector from integer components
func V2Int(x, y int32) Vec2FX { return Vec2FX{X: ToFX(x), Y: ToFX(y)} }

func (v Vec2FX) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", ToFloat(v.X), ToFloat(v.Y))
}

// Set copies o into v
func (v *Vec2FX) Set(o Vec2FX) *Vec2FX {
	v.X, v.Y = o.X, o.Y
	return v
}

// Equals compares both components exactly
func (v Vec2FX) Equals(o Vec2FX) bool { return v.X == o.X && v.Y == o.Y }

// --- Component-wise ---

// Add adds o in place, 32-bit wraparound is accepted
func (v *Vec2FX) Add(o Vec2FX) *Vec2FX {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Sub subtracts o in place
func (v *Vec2FX) Sub(o Vec2FX) *Vec2FX {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Plus returns v + o
func (v Vec2FX) Plus(o Vec2FX) Vec2FX { return Vec2FX{v.X + o.X, v.Y + o.Y} }

// Minus returns v - o
func (v Vec2FX) Minus(o Vec2FX) Vec2FX { return Vec2FX{v.X - o.X, v.Y - o.Y} }

// Negate flips both components in place
func (v *Vec2FX) Negate() *Vec2FX {
	v.X, v.Y = -v.X, -v.Y
	return v
}

// --- Scaling ---

// MultFX scales in place by an FX factor
func (v *Vec2FX) MultFX(f int32) *Vec2FX {
	v.X = Mul(v.X, f)
	v.Y = Mul(v.Y, f)
	return v
}

// Mult2FX scales in place by a 2FX factor
func (v *Vec2FX) Mult2FX(f int32) *Vec2FX {
	v.X = Mul2FX(v.X, f)
	v.Y = Mul2FX(v.Y, f)
	return v
}

// DivideByFX divides in place by an FX divisor; zero divisor leaves v unchanged
func (v *Vec2FX) DivideByFX(d int32) *Vec2FX {
	if d == 0 {
		return v
	}
	v.X = Div(v.X, d)
	v.Y = Div(v.Y, d)
	return v
}

// TimesFX returns v scaled by an FX factor
func (v Vec2FX) TimesFX(f int32) Vec2FX { return Vec2FX{Mul(v.X, f), Mul(v.Y, f)} }

// Times2FX returns v scaled by a 2FX factor
func (v Vec2FX) Times2FX(f int32) Vec2FX { return Vec2FX{Mul2FX(v.X, f), Mul2FX(v.Y, f)} }

// DividedByFX returns v divided by an FX divisor; zero divisor returns v
func (v Vec2FX) DividedByFX(d int32) Vec2FX {
	if d == 0 {
		return v
	}
	return Vec2FX{Div(v.X, d), Div(v.Y, d)}
}

// --- Products ---

// Dot returns x1*x2 + y1*y2 in FX, accumulated at 64 bits before the shift
func (v Vec2FX) Dot(o Vec2FX) int32 {
	return int32((int64(v.X)*int64(o.X) + int64(v.Y)*int64(o.Y)) >> Decimal)
}

// Cross returns the z component of v × o in FX; positive is counter-clockwise
// The shift truncates toward zero so Cross(v, o) == -Cross(o, v)
func (v Vec2FX) Cross(o Vec2FX) int32 {
	c := cross64(v, o)
	if c < 0 {
		return -int32((-c) >> Decimal)
	}
	return int32(c >> Decimal)
}

// cross64 is the unshifted cross product at FX² scale
func cross64(a, b Vec2FX) int64 {
	return int64(a.X)*int64(b.Y) - int64(a.Y)*int64(b.X)
}

// LengthSquared returns x² + y² at FX² scale
func (v Vec2FX) LengthSquared() int64 {
	return int64(v.X)*int64(v.X) + int64(v.Y)*int64(v.Y)
}

// --- Length ---

// Refinement steps per length tier
const (
	lengthFastSteps    = 0
	lengthDefaultSteps = 1
	lengthPreciseSteps = 2
)

// LengthFast returns the seed estimate only (~4% error)
func (v Vec2FX) LengthFast() int32 { return v.length(lengthFastSteps) }

// Length returns the length after one Newton step
func (v Vec2FX) Length() int32 { return v.length(lengthDefaultSteps) }

// LengthPrecise returns the length after two Newton steps
func (v Vec2FX) LengthPrecise() int32 { return v.length(lengthPreciseSteps) }

// length seeds with an alpha-max-beta-min style estimate and refines by Newton
func (v Vec2FX) length(steps int) int32 {
	ix, iy := abs64(int64(v.X)), abs64(int64(v.Y))
	if ix < iy {
		ix, iy = iy, ix
	}

	iy3 := iy + iy/2
	g := ix - ix/32 - ix/128 + iy3/4 + iy3/64
	if g == 0 {
		return 0
	}

	sq := uint64(ix)*uint64(ix) + uint64(iy)*uint64(iy)
	ug := uint64(g)
	for i := 0; i < steps; i++ {
		ug = (sq/ug + ug) / 2
		if ug == 0 {
			return 0
		}
	}
	if ug > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(ug)
}

// NormalizeFast scales v to unit length using LengthFast; no-op on zero length
func (v *Vec2FX) NormalizeFast() *Vec2FX { return v.normalize(v.LengthFast()) }

// Normalize scales v to unit length using Length; no-op on zero length
func (v *Vec2FX) Normalize() *Vec2FX { return v.normalize(v.Length()) }

// NormalizePrecise scales v to unit length using LengthPrecise; no-op on zero length
func (v *Vec2FX) NormalizePrecise() *Vec2FX { return v.normalize(v.LengthPrecise()) }

func (v *Vec2FX) normalize(length int32) *Vec2FX {
	if length == 0 {
		return v
	}
	v.X = Div(v.X, length)
	v.Y = Div(v.Y, length)
	return v
}

// --- Rotation ---

// TurnRight rotates 90° clockwise in place
func (v *Vec2FX) TurnRight() *Vec2FX {
	v.X, v.Y = v.Y, -v.X
	return v
}

// TurnLeft rotates 90° counter-clockwise in place
func (v *Vec2FX) TurnLeft() *Vec2FX {
	v.X, v.Y = -v.Y, v.X
	return v
}

// Transform applies m to v in place
func (v *Vec2FX) Transform(m Mat2FX) *Vec2FX {
	return v.Set(m.Transform(*v))
}

// --- Geometry ---

// DistanceToSegment returns the perpendicular distance from v to segment a→b,
// or OutOfRange when v projects outside it
func (v Vec2FX) DistanceToSegment(a, b Vec2FX) int32 {
	dir := b.Minus(a)
	segLen := dir.LengthPrecise()
	if segLen == 0 {
		return OutOfRange
	}
	dir.normalize(segLen)
	return v.DistanceToSegmentDir(a, b, dir, segLen)
}

// DistanceToSegmentDir is DistanceToSegment with a precomputed unit direction and length
// The end point is implied by a + dir*segLen
func (v Vec2FX) DistanceToSegmentDir(a, _, dir Vec2FX, segLen int32) int32 {
	rel := v.Minus(a)
	proj := rel.Dot(dir)
	if proj < 0 || proj > segLen {
		return OutOfRange
	}
	return Abs(rel.Cross(dir))
}

// LeftOf reports whether v lies strictly left of the directed segment a→b
func (v Vec2FX) LeftOf(a, b Vec2FX) bool {
	return cross64(b.Minus(a), v.Minus(a)) > 0
}

// IsInRect reports whether v lies inside the inclusive rectangle
func (v Vec2FX) IsInRect(upperLeft, lowerRight Vec2FX) bool {
	return v.X >= upperLeft.X && v.X <= lowerRight.X &&
		v.Y >= upperLeft.Y && v.Y <= lowerRight.Y
}

// IntersectSegments intersects a1→b1 with a2→b2
// Parallel segments and parameters outside either segment return false
// The result averages the point derived from each segment's parametrization
func IntersectSegments(a1, b1, a2, b2 Vec2FX) (Vec2FX, bool) {
	d1 := b1.Minus(a1)
	d2 := b2.Minus(a2)

	norm := cross64(d1, d2)
	if norm == 0 {
		return Vec2FX{}, false
	}

	w := a2.Minus(a1)
	t := cross64(w, d2) // position along d1, scaled by norm
	u := cross64(w, d1) // position along d2, scaled by norm

	if !withinParam(t, norm) || !withinParam(u, norm) {
		return Vec2FX{}, false
	}

	p1x := int64(a1.X) + MulDiv(int64(d1.X), t, norm)
	p1y := int64(a1.Y) + MulDiv(int64(d1.Y), t, norm)
	p2x := int64(a2.X) + MulDiv(int64(d2.X), u, norm)
	p2y := int64(a2.Y) + MulDiv(int64(d2.Y), u, norm)

	return Vec2FX{X: int32((p1x + p2x) / 2), Y: int32((p1y + p2y) / 2)}, true
}

// withinParam checks p ∈ [0, norm] honouring the sign of norm
func withinParam(p, norm int64) bool {
	if norm > 0 {
		return p >= 0 && p <= norm
	}
	return p <= 0 && p >= norm
}
