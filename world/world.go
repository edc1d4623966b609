// Package world holds the entity graph persisted by world files
// Every quantity is FX unless the field says 2FX; indices are positions in the
// owning World slices and -1 means "none"
package world

import "github.com/lixenwraith/fxworld/vmath"

// NoIndex marks an absent body/shape/constraint reference
const NoIndex int32 = -1

// Shape is a convex polygon with material properties
type Shape struct {
	Vertices   []vmath.Vec2FX
	Elasticity int32
	Friction   int32
	Mass       int32
	UserData   string
}

// MultiShape composes simple shapes by index into World.Shapes
type MultiShape struct {
	Parts    []int32
	UserData string
}

// BodyFlags is the bit set stored in the body flag byte
type BodyFlags uint8

const (
	BodyDynamic           BodyFlags = 1 << 0
	BodyCanRotate         BodyFlags = 1 << 1
	BodyNonInteracting    BodyFlags = 1 << 2
	BodyGravityUnaffected BodyFlags = 1 << 3
)

// Has reports whether all bits in f are set
func (b BodyFlags) Has(f BodyFlags) bool { return b&f == f }

// Body is a rigid body instance
// Shape indexes World.Shapes, continuing into World.MultiShapes past its end
type Body struct {
	Position        vmath.Vec2FX
	Velocity        vmath.Vec2FX
	Rotation        int32 // 2FX
	AngularVelocity int32 // 2FX
	Shape           int32
	Flags           BodyFlags
	CollisionLayers int32
	UserData        string
}

// Segment is one landscape edge; Face selects the colliding side
type Segment struct {
	Start, End vmath.Vec2FX
	Face       uint8
}

// Landscape is the static environment and its collision material
type Landscape struct {
	Segments   []Segment
	Elasticity int32
	Friction   int32
	Mass       int32
	UserData   string
}

// ScriptElement is one step of a scripted body movement
type ScriptElement struct {
	Type      uint8
	TargetA   int32
	TargetB   int32
	Timesteps int32
}

// Script is an ordered list of elements
type Script struct {
	Elements []ScriptElement
}

// ScriptBinding attaches a script to a body
type ScriptBinding struct {
	Script int32
	Body   int32
}

// EventType discriminates event variants
type EventType uint8

const (
	EventArea EventType = iota
	EventCollision
	EventSensor
	EventTimer
)

// Event is a trigger condition with optional entity filters
// For area events Targets hold the rectangle (x1, y1, x2, y2)
type Event struct {
	Type             EventType
	TriggerOnce      bool
	BodyFilter       int32
	ShapeFilter      int32
	ConstraintFilter int32
	Targets          [4]int32
	UserData         string
}

// Params are the global simulation parameters
type Params struct {
	Gravity           vmath.Vec2FX
	LateralDamping    int32
	RotationalDamping int32
	UserData          string
}

// ParticleEmitter spawns particles, optionally attached to a body
type ParticleEmitter struct {
	Body                  int32
	AxisFixed             bool
	AnchorA, AnchorB      vmath.Vec2FX
	Angle                 int32 // 2FX
	AngleDeviation        int32 // 2FX
	Speed                 int32
	SpeedDeviation        int32
	CreationRate          int32
	CreationRateDeviation int32
	AvgLifetime           int32
	LifetimeDeviation     int32
	MaxParticles          int32
	Elasticity            int32
	GravityEffect         int32
	Damping               int32
	UserData              string
}

// World is the complete persisted graph
// Landscape and Params are nil when the file carries no such section
type World struct {
	Shapes         []Shape
	MultiShapes    []MultiShape
	Bodies         []Body
	Landscape      *Landscape
	Constraints    []Constraint
	Scripts        []Script
	ScriptBindings []ScriptBinding
	Events         []Event
	Params         *Params
	Emitters       []ParticleEmitter
}

// New returns an empty world
func New() *World {
	return &World{}
}

