package world

import (
	"errors"
	"testing"

	"github.com/lixenwraith/fxworld/vmath"
)

func populated() *World {
	w := New()
	w.AddShape(Shape{Vertices: []vmath.Vec2FX{vmath.V2Int(0, 0), vmath.V2Int(1, 0), vmath.V2Int(0, 1)}})
	w.AddShape(Shape{Vertices: []vmath.Vec2FX{vmath.V2Int(0, 0), vmath.V2Int(2, 2)}})
	w.AddMultiShape(MultiShape{Parts: []int32{0, 1}})
	w.AddBody(Body{Shape: 0})
	w.AddBody(Body{Shape: 2})
	w.SetLandscape(Landscape{Segments: []Segment{{Start: vmath.V2Int(-1, 0), End: vmath.V2Int(1, 0)}}})
	w.AddConstraint(&Joint{BodyA: 0, BodyB: 1})
	w.AddConstraint(&Spring{BodyA: 1, BodyB: NoIndex})
	w.AddConstraint(&Motor{BodyA: 0, BodyB: 1})
	w.AddScript(Script{Elements: []ScriptElement{{Type: 1, Timesteps: 10}}})
	w.BindScript(ScriptBinding{Script: 0, Body: 1})
	w.AddEvent(Event{Type: EventArea, BodyFilter: NoIndex, ShapeFilter: 2, ConstraintFilter: NoIndex})
	w.SetParams(Params{LateralDamping: vmath.OneFX})
	w.AddEmitter(ParticleEmitter{Body: 1})
	return w
}

func TestBuilderIndices(t *testing.T) {
	w := New()
	if i := w.AddBody(Body{}); i != 0 {
		t.Errorf("first body index = %d", i)
	}
	if i := w.AddBody(Body{}); i != 1 {
		t.Errorf("second body index = %d", i)
	}
	if i := w.AddShape(Shape{}); i != 0 {
		t.Errorf("first shape index = %d", i)
	}
	if w.ShapeCount() != 1 {
		t.Errorf("ShapeCount = %d, want 1", w.ShapeCount())
	}
	w.AddMultiShape(MultiShape{Parts: []int32{0}})
	if w.ShapeCount() != 2 {
		t.Errorf("ShapeCount = %d, want 2", w.ShapeCount())
	}
}

func TestUserDataHook(t *testing.T) {
	w := populated()

	tests := []struct {
		ref  Ref
		read func() string
	}{
		{Ref{KindShape, 1}, func() string { return w.Shapes[1].UserData }},
		{Ref{KindMultiShape, 0}, func() string { return w.MultiShapes[0].UserData }},
		{Ref{KindBody, 0}, func() string { return w.Bodies[0].UserData }},
		{Ref{KindLandscape, 0}, func() string { return w.Landscape.UserData }},
		{Ref{KindConstraint, 2}, func() string { return w.Constraints[2].Data() }},
		{Ref{KindEvent, 0}, func() string { return w.Events[0].UserData }},
		{Ref{KindEmitter, 0}, func() string { return w.Emitters[0].UserData }},
		{Ref{KindParams, 0}, func() string { return w.Params.UserData }},
	}

	for _, tt := range tests {
		t.Run(tt.ref.Kind.String(), func(t *testing.T) {
			w.UserData(tt.ref, "first")
			w.UserData(tt.ref, "second")
			if got := tt.read(); got != "second" {
				t.Errorf("user data = %q, want later call to replace earlier", got)
			}
		})
	}
}

func TestUserDataIgnoresUnknownRefs(t *testing.T) {
	w := New()

	// None of these may panic on an empty world
	w.UserData(Ref{KindShape, 0}, "x")
	w.UserData(Ref{KindBody, -1}, "x")
	w.UserData(Ref{KindLandscape, 0}, "x")
	w.UserData(Ref{KindParams, 0}, "x")
	w.UserData(Ref{KindConstraint, 5}, "x")
	w.UserData(Ref{Kind(200), 0}, "x")

	if w.Landscape != nil || w.Params != nil {
		t.Error("hook created singleton entities")
	}
}

func TestConstraintKinds(t *testing.T) {
	tests := []struct {
		c    Constraint
		kind ConstraintKind
		name string
		a, b int32
	}{
		{&Joint{BodyA: 1, BodyB: 2}, ConstraintJoint, "joint", 1, 2},
		{&Spring{BodyA: 3, BodyB: NoIndex}, ConstraintSpring, "spring", 3, NoIndex},
		{&Motor{BodyA: 0, BodyB: 4}, ConstraintMotor, "motor", 0, 4},
	}
	for _, tt := range tests {
		if tt.c.Kind() != tt.kind || tt.c.Kind().String() != tt.name {
			t.Errorf("%T kind = %v", tt.c, tt.c.Kind())
		}
		if a, b := tt.c.Bodies(); a != tt.a || b != tt.b {
			t.Errorf("%T bodies = (%d, %d), want (%d, %d)", tt.c, a, b, tt.a, tt.b)
		}
	}
	if ConstraintKind(9).String() != "unknown" {
		t.Error("unexpected name for unknown kind")
	}
}

func TestBodyFlags(t *testing.T) {
	f := BodyDynamic | BodyGravityUnaffected
	if !f.Has(BodyDynamic) || !f.Has(BodyGravityUnaffected) {
		t.Error("set flags not reported")
	}
	if f.Has(BodyCanRotate) || f.Has(BodyDynamic|BodyCanRotate) {
		t.Error("unset flags reported")
	}
}

func TestValidate(t *testing.T) {
	if err := populated().Validate(); err != nil {
		t.Fatalf("valid world rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(w *World)
	}{
		{"multishape part", func(w *World) { w.MultiShapes[0].Parts[0] = 2 }},
		{"body shape past composites", func(w *World) { w.Bodies[0].Shape = 3 }},
		{"body shape negative", func(w *World) { w.Bodies[0].Shape = NoIndex }},
		{"constraint body", func(w *World) { w.Constraints[0].(*Joint).BodyB = 2 }},
		{"binding script", func(w *World) { w.ScriptBindings[0].Script = 1 }},
		{"binding body", func(w *World) { w.ScriptBindings[0].Body = NoIndex }},
		{"event shape", func(w *World) { w.Events[0].ShapeFilter = 3 }},
		{"event constraint", func(w *World) { w.Events[0].ConstraintFilter = 3 }},
		{"emitter body", func(w *World) { w.Emitters[0].Body = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := populated()
			tt.mutate(w)
			if err := w.Validate(); !errors.Is(err, ErrDanglingIndex) {
				t.Errorf("Validate = %v, want ErrDanglingIndex", err)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindEmitter.String() != "emitter" || KindParams.String() != "params" {
		t.Error("kind names changed")
	}
	if Kind(99).String() != "unknown" {
		t.Error("unexpected name for unknown kind")
	}
}
