package worldfile

import (
	"fmt"
	"io"

	"github.com/lixenwraith/fxworld/codec"
	"github.com/lixenwraith/fxworld/vmath"
	"github.com/lixenwraith/fxworld/world"
)

// Save encodes w in the layout of version v
// Fails with ErrNotRepresentable when w holds data v cannot carry, and with
// world.ErrDanglingIndex when an index points outside its target
func Save(dst io.Writer, w *world.World, v Version) error {
	if err := v.check(); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if err := representable(w, v); err != nil {
		return err
	}

	s := &saver{w: codec.NewWriter(dst, int32(v)), v: v, wd: w}
	if v.Tagged() {
		for _, tag := range writeOrder {
			if !s.present(tag) {
				continue
			}
			s.w.WriteU8(byte(tag))
			s.section(tag)
		}
	} else {
		for _, tag := range positionalOrder {
			s.section(tag)
		}
	}

	if err := s.w.Err(); err != nil {
		return fmt.Errorf("worldfile: write: %w", err)
	}
	return nil
}

// representable reports the first feature of w that version v lacks
func representable(w *world.World, v Version) error {
	lacks := func(what string) error {
		return fmt.Errorf("%w: %s needs a newer version than %d", ErrNotRepresentable, what, int32(v))
	}

	if w.Landscape != nil && !v.hasLandscape() {
		return lacks("landscape")
	}
	if (len(w.Scripts) > 0 || len(w.ScriptBindings) > 0) && !v.hasScripts() {
		return lacks("scripts")
	}
	if w.Params != nil {
		switch {
		case !v.hasParams():
			return lacks("world parameters")
		case w.Params.UserData != "" && !v.hasParamsUserData():
			return lacks("world parameter user data")
		case w.Params.LateralDamping != w.Params.RotationalDamping && v.legacyDamping():
			return lacks("split damping")
		}
	}
	if len(w.Emitters) > 0 && !v.hasEmitters() {
		return lacks("particle emitters")
	}
	if len(w.MultiShapes) > 0 && !v.hasMultiShapes() {
		return lacks("composite shapes")
	}
	if !v.hasMotors() {
		for _, c := range w.Constraints {
			if c.Kind() == world.ConstraintMotor {
				return lacks("motor constraints")
			}
		}
	}
	return nil
}

type saver struct {
	w  *codec.Writer
	v  Version
	wd *world.World
}

func (s *saver) present(tag Tag) bool {
	w := s.wd
	switch tag {
	case TagShapes:
		return len(w.Shapes) > 0 || len(w.MultiShapes) > 0
	case TagBody:
		return len(w.Bodies) > 0
	case TagLandscape:
		return w.Landscape != nil
	case TagConstraints:
		return len(w.Constraints) > 0
	case TagScripts:
		return len(w.Scripts) > 0 || len(w.ScriptBindings) > 0
	case TagEvents:
		return len(w.Events) > 0
	case TagWorld:
		return w.Params != nil
	case TagParticles:
		return len(w.Emitters) > 0
	}
	return false
}

func (s *saver) section(tag Tag) {
	switch tag {
	case TagShapes:
		s.shapes()
	case TagBody:
		s.bodies()
	case TagLandscape:
		s.landscape()
	case TagConstraints:
		s.constraints()
	case TagScripts:
		s.scripts()
	case TagEvents:
		s.events()
	case TagWorld:
		s.params()
	case TagParticles:
		s.emitters()
	}
}

func (s *saver) count(n int) { s.w.WriteInt32(int32(n)) }

func (s *saver) shapes() {
	s.count(len(s.wd.Shapes))
	for _, sh := range s.wd.Shapes {
		s.count(len(sh.Vertices))
		for _, v := range sh.Vertices {
			s.w.WriteVec2(v)
		}
		s.w.WriteFX(sh.Elasticity)
		s.w.WriteFX(sh.Friction)
		s.w.WriteFX(sh.Mass)
		s.w.WriteUTF(sh.UserData)
	}

	if !s.v.hasMultiShapes() {
		return
	}
	s.count(len(s.wd.MultiShapes))
	for _, m := range s.wd.MultiShapes {
		s.count(len(m.Parts))
		for _, p := range m.Parts {
			s.w.WriteInt32(p)
		}
		s.w.WriteUTF(m.UserData)
	}
}

func (s *saver) bodies() {
	s.count(len(s.wd.Bodies))
	for _, b := range s.wd.Bodies {
		s.w.WriteVec2(b.Position)
		s.w.WriteVec2(b.Velocity)
		s.w.WriteInt32(b.Rotation)
		s.w.WriteInt32(b.AngularVelocity)
		s.w.WriteInt32(b.Shape)
		s.w.WriteU8(byte(b.Flags))
		s.w.WriteInt32(b.CollisionLayers)
		s.w.WriteUTF(b.UserData)
	}
}

func (s *saver) landscape() {
	ls := s.wd.Landscape
	s.count(len(ls.Segments))
	for _, seg := range ls.Segments {
		s.w.WriteVec2(seg.Start)
		s.w.WriteVec2(seg.End)
		s.w.WriteU8(seg.Face)
	}
	s.w.WriteFX(ls.Elasticity)
	s.w.WriteFX(ls.Friction)
	s.w.WriteFX(ls.Mass)
	s.w.WriteUTF(ls.UserData)
}

func (s *saver) constraints() {
	s.count(len(s.wd.Constraints))
	for _, c := range s.wd.Constraints {
		s.w.WriteU8(byte(c.Kind()))
		switch c := c.(type) {
		case *world.Joint:
			s.w.WriteInt32(c.BodyA)
			s.w.WriteInt32(c.BodyB)
			s.w.WriteVec2(c.AnchorA)
			s.w.WriteVec2(c.AnchorB)
			s.w.WriteBool(c.Collide)
		case *world.Spring:
			s.w.WriteInt32(c.BodyA)
			s.w.WriteInt32(c.BodyB)
			s.w.WriteVec2(c.AnchorA)
			s.w.WriteVec2(c.AnchorB)
			s.w.WriteFX(c.RestLength)
			s.w.WriteFX(c.Coefficient)
		case *world.Motor:
			s.w.WriteInt32(c.BodyA)
			s.w.WriteInt32(c.BodyB)
			s.w.WriteInt32(c.TargetVelocity)
			s.w.WriteFX(c.MaxForce)
			s.w.WriteBool(c.FixedOrientation)
		}
		s.w.WriteUTF(c.Data())
	}
}

func (s *saver) scripts() {
	s.count(len(s.wd.Scripts))
	for _, sc := range s.wd.Scripts {
		s.count(len(sc.Elements))
		for _, e := range sc.Elements {
			s.w.WriteU8(e.Type)
			s.w.WriteFX(e.TargetA)
			s.w.WriteFX(e.TargetB)
			s.w.WriteInt32(e.Timesteps)
		}
	}
	s.count(len(s.wd.ScriptBindings))
	for _, b := range s.wd.ScriptBindings {
		s.w.WriteInt32(b.Script)
		s.w.WriteInt32(b.Body)
	}
}

func (s *saver) events() {
	s.count(len(s.wd.Events))
	for _, e := range s.wd.Events {
		s.w.WriteU8(byte(e.Type))
		s.w.WriteBool(e.TriggerOnce)
		s.w.WriteInt32(e.BodyFilter)
		s.w.WriteInt32(e.ShapeFilter)
		s.w.WriteInt32(e.ConstraintFilter)
		for _, t := range e.Targets {
			s.w.WriteFX(t)
		}
		s.w.WriteUTF(e.UserData)
	}
}

func (s *saver) params() {
	p := s.wd.Params
	s.w.WriteVec2(p.Gravity)
	if s.v.legacyDamping() {
		s.w.WriteFX(vmath.OneFX - p.LateralDamping)
	} else {
		s.w.WriteFX(p.LateralDamping)
		s.w.WriteFX(p.RotationalDamping)
	}
	if s.v.hasParamsUserData() {
		s.w.WriteUTF(p.UserData)
	}
}

func (s *saver) emitters() {
	s.count(len(s.wd.Emitters))
	for _, e := range s.wd.Emitters {
		s.w.WriteInt32(e.Body)
		s.w.WriteBool(e.AxisFixed)
		s.w.WriteVec2(e.AnchorA)
		s.w.WriteVec2(e.AnchorB)
		s.w.WriteInt32(e.Angle)
		s.w.WriteInt32(e.AngleDeviation)
		s.w.WriteFX(e.Speed)
		s.w.WriteFX(e.SpeedDeviation)
		s.w.WriteFX(e.CreationRate)
		s.w.WriteFX(e.CreationRateDeviation)
		s.w.WriteInt32(e.AvgLifetime)
		s.w.WriteInt32(e.LifetimeDeviation)
		s.w.WriteInt32(e.MaxParticles)
		s.w.WriteFX(e.Elasticity)
		s.w.WriteFX(e.GravityEffect)
		s.w.WriteFX(e.Damping)
		s.w.WriteUTF(e.UserData)
	}
}
