// Package export converts decoded worlds to and from a JSON interchange document
// All quantities stay raw fixed-point integers; the document never carries floats
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lixenwraith/fxworld/vmath"
	"github.com/lixenwraith/fxworld/world"
	"github.com/lixenwraith/fxworld/worldfile"
)

var (
	ErrBadID           = errors.New("export: document id is not a uuid")
	ErrUnknownKind     = errors.New("export: unknown constraint kind")
	ErrUnknownEvent    = errors.New("export: unknown event type")
	ErrInvalidDocument = errors.New("export: document does not match schema")
)

// Vec is an FX pair as [x, y]
type Vec [2]int32

func vecOf(v vmath.Vec2FX) Vec { return Vec{v.X, v.Y} }

func (v Vec) fx() vmath.Vec2FX { return vmath.V2(v[0], v[1]) }

// Document is the JSON form of a world.World
type Document struct {
	ID             string       `json:"id" jsonschema:"required,description=Random identifier assigned at export"`
	Version        int32        `json:"version" jsonschema:"required,minimum=1,maximum=10,description=World file version the document was read from"`
	Shapes         []Shape      `json:"shapes,omitempty"`
	MultiShapes    []MultiShape `json:"multi_shapes,omitempty"`
	Bodies         []Body       `json:"bodies,omitempty"`
	Landscape      *Landscape   `json:"landscape,omitempty"`
	Constraints    []Constraint `json:"constraints,omitempty"`
	Scripts        []Script     `json:"scripts,omitempty"`
	ScriptBindings []Binding    `json:"script_bindings,omitempty"`
	Events         []Event      `json:"events,omitempty"`
	Params         *Params      `json:"params,omitempty"`
	Emitters       []Emitter    `json:"emitters,omitempty"`
}

type Shape struct {
	Vertices   []Vec  `json:"vertices" jsonschema:"required"`
	Elasticity int32  `json:"elasticity"`
	Friction   int32  `json:"friction"`
	Mass       int32  `json:"mass"`
	UserData   string `json:"user_data,omitempty"`
}

type MultiShape struct {
	Parts    []int32 `json:"parts" jsonschema:"required"`
	UserData string  `json:"user_data,omitempty"`
}

type Body struct {
	Position        Vec    `json:"position" jsonschema:"required"`
	Velocity        Vec    `json:"velocity"`
	Rotation        int32  `json:"rotation" jsonschema:"description=Radians scaled by 2^24"`
	AngularVelocity int32  `json:"angular_velocity" jsonschema:"description=Radians per step scaled by 2^24"`
	Shape           int32  `json:"shape" jsonschema:"required"`
	Flags           uint8  `json:"flags" jsonschema:"minimum=0,maximum=255"`
	CollisionLayers int32  `json:"collision_layers"`
	UserData        string `json:"user_data,omitempty"`
}

type Segment struct {
	Start Vec   `json:"start" jsonschema:"required"`
	End   Vec   `json:"end" jsonschema:"required"`
	Face  uint8 `json:"face"`
}

type Landscape struct {
	Segments   []Segment `json:"segments"`
	Elasticity int32     `json:"elasticity"`
	Friction   int32     `json:"friction"`
	Mass       int32     `json:"mass"`
	UserData   string    `json:"user_data,omitempty"`
}

// Constraint flattens the three constraint kinds; fields foreign to Kind stay zero
type Constraint struct {
	Kind             string `json:"kind" jsonschema:"required,enum=joint,enum=spring,enum=motor"`
	BodyA            int32  `json:"body_a"`
	BodyB            int32  `json:"body_b"`
	AnchorA          *Vec   `json:"anchor_a,omitempty"`
	AnchorB          *Vec   `json:"anchor_b,omitempty"`
	Collide          bool   `json:"collide,omitempty"`
	RestLength       int32  `json:"rest_length,omitempty"`
	Coefficient      int32  `json:"coefficient,omitempty"`
	TargetVelocity   int32  `json:"target_velocity,omitempty"`
	MaxForce         int32  `json:"max_force,omitempty"`
	FixedOrientation bool   `json:"fixed_orientation,omitempty"`
	UserData         string `json:"user_data,omitempty"`
}

type ScriptElement struct {
	Type      uint8 `json:"type"`
	TargetA   int32 `json:"target_a"`
	TargetB   int32 `json:"target_b"`
	Timesteps int32 `json:"timesteps"`
}

type Script struct {
	Elements []ScriptElement `json:"elements"`
}

type Binding struct {
	Script int32 `json:"script"`
	Body   int32 `json:"body"`
}

type Event struct {
	Type             string   `json:"type" jsonschema:"required,enum=area,enum=collision,enum=sensor,enum=timer"`
	TriggerOnce      bool     `json:"trigger_once,omitempty"`
	BodyFilter       int32    `json:"body_filter"`
	ShapeFilter      int32    `json:"shape_filter"`
	ConstraintFilter int32    `json:"constraint_filter"`
	Targets          [4]int32 `json:"targets"`
	UserData         string   `json:"user_data,omitempty"`
}

type Params struct {
	Gravity           Vec    `json:"gravity"`
	LateralDamping    int32  `json:"lateral_damping"`
	RotationalDamping int32  `json:"rotational_damping"`
	UserData          string `json:"user_data,omitempty"`
}

type Emitter struct {
	Body                  int32  `json:"body"`
	AxisFixed             bool   `json:"axis_fixed,omitempty"`
	AnchorA               Vec    `json:"anchor_a"`
	AnchorB               Vec    `json:"anchor_b"`
	Angle                 int32  `json:"angle"`
	AngleDeviation        int32  `json:"angle_deviation"`
	Speed                 int32  `json:"speed"`
	SpeedDeviation        int32  `json:"speed_deviation"`
	CreationRate          int32  `json:"creation_rate"`
	CreationRateDeviation int32  `json:"creation_rate_deviation"`
	AvgLifetime           int32  `json:"avg_lifetime"`
	LifetimeDeviation     int32  `json:"lifetime_deviation"`
	MaxParticles          int32  `json:"max_particles"`
	Elasticity            int32  `json:"elasticity"`
	GravityEffect         int32  `json:"gravity_effect"`
	Damping               int32  `json:"damping"`
	UserData              string `json:"user_data,omitempty"`
}

var eventNames = []string{
	world.EventArea:      "area",
	world.EventCollision: "collision",
	world.EventSensor:    "sensor",
	world.EventTimer:     "timer",
}

// FromWorld builds a document for w tagged with the version it was read from
func FromWorld(w *world.World, v worldfile.Version) *Document {
	d := &Document{
		ID:      uuid.NewString(),
		Version: int32(v),
	}

	for _, s := range w.Shapes {
		verts := make([]Vec, len(s.Vertices))
		for i, p := range s.Vertices {
			verts[i] = vecOf(p)
		}
		d.Shapes = append(d.Shapes, Shape{
			Vertices:   verts,
			Elasticity: s.Elasticity,
			Friction:   s.Friction,
			Mass:       s.Mass,
			UserData:   s.UserData,
		})
	}
	for _, m := range w.MultiShapes {
		d.MultiShapes = append(d.MultiShapes, MultiShape{
			Parts:    append([]int32{}, m.Parts...),
			UserData: m.UserData,
		})
	}
	for _, b := range w.Bodies {
		d.Bodies = append(d.Bodies, Body{
			Position:        vecOf(b.Position),
			Velocity:        vecOf(b.Velocity),
			Rotation:        b.Rotation,
			AngularVelocity: b.AngularVelocity,
			Shape:           b.Shape,
			Flags:           uint8(b.Flags),
			CollisionLayers: b.CollisionLayers,
			UserData:        b.UserData,
		})
	}
	if ls := w.Landscape; ls != nil {
		segs := make([]Segment, len(ls.Segments))
		for i, s := range ls.Segments {
			segs[i] = Segment{Start: vecOf(s.Start), End: vecOf(s.End), Face: s.Face}
		}
		d.Landscape = &Landscape{
			Segments:   segs,
			Elasticity: ls.Elasticity,
			Friction:   ls.Friction,
			Mass:       ls.Mass,
			UserData:   ls.UserData,
		}
	}
	for _, c := range w.Constraints {
		d.Constraints = append(d.Constraints, constraintDoc(c))
	}
	for _, s := range w.Scripts {
		elems := make([]ScriptElement, len(s.Elements))
		for i, e := range s.Elements {
			elems[i] = ScriptElement(e)
		}
		d.Scripts = append(d.Scripts, Script{Elements: elems})
	}
	for _, b := range w.ScriptBindings {
		d.ScriptBindings = append(d.ScriptBindings, Binding(b))
	}
	for _, e := range w.Events {
		d.Events = append(d.Events, Event{
			Type:             eventName(e.Type),
			TriggerOnce:      e.TriggerOnce,
			BodyFilter:       e.BodyFilter,
			ShapeFilter:      e.ShapeFilter,
			ConstraintFilter: e.ConstraintFilter,
			Targets:          e.Targets,
			UserData:         e.UserData,
		})
	}
	if p := w.Params; p != nil {
		d.Params = &Params{
			Gravity:           vecOf(p.Gravity),
			LateralDamping:    p.LateralDamping,
			RotationalDamping: p.RotationalDamping,
			UserData:          p.UserData,
		}
	}
	for _, e := range w.Emitters {
		d.Emitters = append(d.Emitters, Emitter{
			Body:                  e.Body,
			AxisFixed:             e.AxisFixed,
			AnchorA:               vecOf(e.AnchorA),
			AnchorB:               vecOf(e.AnchorB),
			Angle:                 e.Angle,
			AngleDeviation:        e.AngleDeviation,
			Speed:                 e.Speed,
			SpeedDeviation:        e.SpeedDeviation,
			CreationRate:          e.CreationRate,
			CreationRateDeviation: e.CreationRateDeviation,
			AvgLifetime:           e.AvgLifetime,
			LifetimeDeviation:     e.LifetimeDeviation,
			MaxParticles:          e.MaxParticles,
			Elasticity:            e.Elasticity,
			GravityEffect:         e.GravityEffect,
			Damping:               e.Damping,
			UserData:              e.UserData,
		})
	}
	return d
}

func constraintDoc(c world.Constraint) Constraint {
	switch c := c.(type) {
	case *world.Joint:
		a, b := vecOf(c.AnchorA), vecOf(c.AnchorB)
		return Constraint{
			Kind: world.ConstraintJoint.String(), BodyA: c.BodyA, BodyB: c.BodyB,
			AnchorA: &a, AnchorB: &b, Collide: c.Collide, UserData: c.UserData,
		}
	case *world.Spring:
		a, b := vecOf(c.AnchorA), vecOf(c.AnchorB)
		return Constraint{
			Kind: world.ConstraintSpring.String(), BodyA: c.BodyA, BodyB: c.BodyB,
			AnchorA: &a, AnchorB: &b, RestLength: c.RestLength, Coefficient: c.Coefficient,
			UserData: c.UserData,
		}
	case *world.Motor:
		return Constraint{
			Kind: world.ConstraintMotor.String(), BodyA: c.BodyA, BodyB: c.BodyB,
			TargetVelocity: c.TargetVelocity, MaxForce: c.MaxForce,
			FixedOrientation: c.FixedOrientation, UserData: c.UserData,
		}
	}
	return Constraint{Kind: c.Kind().String(), UserData: c.Data()}
}

func eventName(t world.EventType) string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("type_%d", t)
}

func eventType(name string) (world.EventType, bool) {
	for i, n := range eventNames {
		if n == name {
			return world.EventType(i), true
		}
	}
	return 0, false
}

// ToWorld rebuilds the world described by d and checks its indices
func (d *Document) ToWorld() (*world.World, error) {
	if _, err := uuid.Parse(strings.TrimSpace(d.ID)); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadID, d.ID)
	}

	w := world.New()
	for _, s := range d.Shapes {
		verts := make([]vmath.Vec2FX, len(s.Vertices))
		for i, p := range s.Vertices {
			verts[i] = p.fx()
		}
		w.AddShape(world.Shape{
			Vertices:   verts,
			Elasticity: s.Elasticity,
			Friction:   s.Friction,
			Mass:       s.Mass,
			UserData:   s.UserData,
		})
	}
	for _, m := range d.MultiShapes {
		w.AddMultiShape(world.MultiShape{Parts: append([]int32{}, m.Parts...), UserData: m.UserData})
	}
	for _, b := range d.Bodies {
		w.AddBody(world.Body{
			Position:        b.Position.fx(),
			Velocity:        b.Velocity.fx(),
			Rotation:        b.Rotation,
			AngularVelocity: b.AngularVelocity,
			Shape:           b.Shape,
			Flags:           world.BodyFlags(b.Flags),
			CollisionLayers: b.CollisionLayers,
			UserData:        b.UserData,
		})
	}
	if ls := d.Landscape; ls != nil {
		segs := make([]world.Segment, len(ls.Segments))
		for i, s := range ls.Segments {
			segs[i] = world.Segment{Start: s.Start.fx(), End: s.End.fx(), Face: s.Face}
		}
		w.SetLandscape(world.Landscape{
			Segments:   segs,
			Elasticity: ls.Elasticity,
			Friction:   ls.Friction,
			Mass:       ls.Mass,
			UserData:   ls.UserData,
		})
	}
	for i, c := range d.Constraints {
		wc, err := c.toWorld()
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		w.AddConstraint(wc)
	}
	for _, s := range d.Scripts {
		elems := make([]world.ScriptElement, len(s.Elements))
		for i, e := range s.Elements {
			elems[i] = world.ScriptElement(e)
		}
		w.AddScript(world.Script{Elements: elems})
	}
	for _, b := range d.ScriptBindings {
		w.BindScript(world.ScriptBinding(b))
	}
	for i, e := range d.Events {
		t, ok := eventType(e.Type)
		if !ok {
			return nil, fmt.Errorf("event %d: %w: %q", i, ErrUnknownEvent, e.Type)
		}
		w.AddEvent(world.Event{
			Type:             t,
			TriggerOnce:      e.TriggerOnce,
			BodyFilter:       e.BodyFilter,
			ShapeFilter:      e.ShapeFilter,
			ConstraintFilter: e.ConstraintFilter,
			Targets:          e.Targets,
			UserData:         e.UserData,
		})
	}
	if p := d.Params; p != nil {
		w.SetParams(world.Params{
			Gravity:           p.Gravity.fx(),
			LateralDamping:    p.LateralDamping,
			RotationalDamping: p.RotationalDamping,
			UserData:          p.UserData,
		})
	}
	for _, e := range d.Emitters {
		w.AddEmitter(world.ParticleEmitter{
			Body:                  e.Body,
			AxisFixed:             e.AxisFixed,
			AnchorA:               e.AnchorA.fx(),
			AnchorB:               e.AnchorB.fx(),
			Angle:                 e.Angle,
			AngleDeviation:        e.AngleDeviation,
			Speed:                 e.Speed,
			SpeedDeviation:        e.SpeedDeviation,
			CreationRate:          e.CreationRate,
			CreationRateDeviation: e.CreationRateDeviation,
			AvgLifetime:           e.AvgLifetime,
			LifetimeDeviation:     e.LifetimeDeviation,
			MaxParticles:          e.MaxParticles,
			Elasticity:            e.Elasticity,
			GravityEffect:         e.GravityEffect,
			Damping:               e.Damping,
			UserData:              e.UserData,
		})
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (c Constraint) toWorld() (world.Constraint, error) {
	anchor := func(v *Vec) vmath.Vec2FX {
		if v == nil {
			return vmath.Vec2FX{}
		}
		return v.fx()
	}
	switch c.Kind {
	case world.ConstraintJoint.String():
		return &world.Joint{
			BodyA: c.BodyA, BodyB: c.BodyB,
			AnchorA: anchor(c.AnchorA), AnchorB: anchor(c.AnchorB),
			Collide: c.Collide, UserData: c.UserData,
		}, nil
	case world.ConstraintSpring.String():
		return &world.Spring{
			BodyA: c.BodyA, BodyB: c.BodyB,
			AnchorA: anchor(c.AnchorA), AnchorB: anchor(c.AnchorB),
			RestLength: c.RestLength, Coefficient: c.Coefficient, UserData: c.UserData,
		}, nil
	case world.ConstraintMotor.String():
		return &world.Motor{
			BodyA: c.BodyA, BodyB: c.BodyB,
			TargetVelocity: c.TargetVelocity, MaxForce: c.MaxForce,
			FixedOrientation: c.FixedOrientation, UserData: c.UserData,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
}

// Encode marshals d, indented when indent is set
func (d *Document) Encode(indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}

// Decode parses a document, rejecting unknown fields
func Decode(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("export: decode: %w", err)
	}
	return &d, nil
}
