package world

import "github.com/lixenwraith/fxworld/vmath"

// ConstraintKind is the discriminant byte preceding each constraint payload
type ConstraintKind uint8

const (
	ConstraintJoint ConstraintKind = iota
	ConstraintSpring
	ConstraintMotor
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintJoint:
		return "joint"
	case ConstraintSpring:
		return "spring"
	case ConstraintMotor:
		return "motor"
	default:
		return "unknown"
	}
}

// Constraint links two bodies; BodyB may be NoIndex for world-anchored kinds
type Constraint interface {
	Kind() ConstraintKind
	Bodies() (a, b int32)
	Data() string
	setData(string)
}

// Joint pins two body-relative anchors together
type Joint struct {
	BodyA, BodyB     int32
	AnchorA, AnchorB vmath.Vec2FX
	Collide          bool
	UserData         string
}

// Spring pulls two anchors toward RestLength with stiffness Coefficient
type Spring struct {
	BodyA, BodyB     int32
	AnchorA, AnchorB vmath.Vec2FX
	RestLength       int32
	Coefficient      int32
	UserData         string
}

// Motor drives the relative rotation of two bodies
type Motor struct {
	BodyA, BodyB     int32
	TargetVelocity   int32 // 2FX
	MaxForce         int32
	FixedOrientation bool
	UserData         string
}

func (j *Joint) Kind() ConstraintKind   { return ConstraintJoint }
func (j *Joint) Bodies() (int32, int32) { return j.BodyA, j.BodyB }
func (j *Joint) Data() string           { return j.UserData }
func (j *Joint) setData(s string)       { j.UserData = s }

func (s *Spring) Kind() ConstraintKind   { return ConstraintSpring }
func (s *Spring) Bodies() (int32, int32) { return s.BodyA, s.BodyB }
func (s *Spring) Data() string           { return s.UserData }
func (s *Spring) setData(d string)       { s.UserData = d }

func (m *Motor) Kind() ConstraintKind   { return ConstraintMotor }
func (m *Motor) Bodies() (int32, int32) { return m.BodyA, m.BodyB }
func (m *Motor) Data() string           { return m.UserData }
func (m *Motor) setData(s string)       { m.UserData = s }
