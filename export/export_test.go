package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lixenwraith/fxworld/vmath"
	"github.com/lixenwraith/fxworld/world"
	"github.com/lixenwraith/fxworld/worldfile"
)

func sample() *world.World {
	w := world.New()
	w.AddShape(world.Shape{
		Vertices:   []vmath.Vec2FX{vmath.V2Int(0, 0), vmath.V2Int(2, 0), vmath.V2Int(1, 2)},
		Elasticity: vmath.HalfFX,
		Friction:   vmath.OneFX,
		Mass:       vmath.ToFX(3),
		UserData:   "tri",
	})
	w.AddMultiShape(world.MultiShape{Parts: []int32{0}, UserData: "wrap"})
	w.AddBody(world.Body{
		Position:        vmath.V2Int(1, -1),
		Rotation:        vmath.HalfPi2FX,
		Shape:           1,
		Flags:           world.BodyDynamic | world.BodyCanRotate,
		CollisionLayers: -1,
		UserData:        "hero",
	})
	w.AddBody(world.Body{Shape: 0})
	w.SetLandscape(world.Landscape{
		Segments: []world.Segment{{Start: vmath.V2Int(-9, 3), End: vmath.V2Int(9, 3), Face: 1}},
		Friction: vmath.OneFX,
	})
	w.AddConstraint(&world.Joint{BodyA: 0, BodyB: 1, AnchorA: vmath.V2Int(1, 0), Collide: true, UserData: "j"})
	w.AddConstraint(&world.Spring{BodyA: 1, BodyB: world.NoIndex, AnchorB: vmath.V2Int(0, 5), RestLength: vmath.ToFX(2), Coefficient: vmath.HalfFX})
	w.AddConstraint(&world.Motor{BodyA: 0, BodyB: 1, TargetVelocity: vmath.One2FX, MaxForce: vmath.ToFX(50), FixedOrientation: true})
	w.AddScript(world.Script{Elements: []world.ScriptElement{{Type: 2, TargetA: vmath.OneFX, Timesteps: 12}}})
	w.BindScript(world.ScriptBinding{Script: 0, Body: 1})
	w.AddEvent(world.Event{
		Type:             world.EventArea,
		BodyFilter:       0,
		ShapeFilter:      world.NoIndex,
		ConstraintFilter: world.NoIndex,
		Targets:          [4]int32{1, 2, 3, 4},
		UserData:         "finish",
	})
	w.SetParams(world.Params{Gravity: vmath.V2(0, vmath.ToFX(10)), LateralDamping: 4000, RotationalDamping: 3900})
	w.AddEmitter(world.ParticleEmitter{Body: world.NoIndex, Speed: vmath.OneFX, MaxParticles: 64, UserData: "sparks"})
	return w
}

func TestDocumentRoundTrip(t *testing.T) {
	src := sample()
	doc := FromWorld(src, worldfile.CurrentVersion)

	if _, err := uuid.Parse(doc.ID); err != nil {
		t.Fatalf("id %q is not a uuid: %v", doc.ID, err)
	}
	if doc.Version != int32(worldfile.CurrentVersion) {
		t.Errorf("version = %d", doc.Version)
	}

	data, err := doc.Encode(true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, err := back.ToWorld()
	if err != nil {
		t.Fatalf("ToWorld failed: %v", err)
	}
	if !reflect.DeepEqual(got, src) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, src)
	}
}

func TestDocumentCarriesIntegers(t *testing.T) {
	data, err := FromWorld(sample(), worldfile.CurrentVersion).Encode(false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Contains(data, []byte(`"rotation":26353589`)) {
		t.Errorf("rotation not stored as raw 2FX integer: %s", data)
	}
}

func TestFreshIDs(t *testing.T) {
	a := FromWorld(world.New(), 1)
	b := FromWorld(world.New(), 1)
	if a.ID == b.ID {
		t.Error("two exports share an id")
	}
}

func TestToWorldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
		want   error
	}{
		{"bad id", func(d *Document) { d.ID = "not-a-uuid" }, ErrBadID},
		{"constraint kind", func(d *Document) { d.Constraints[0].Kind = "rope" }, ErrUnknownKind},
		{"event type", func(d *Document) { d.Events[0].Type = "portal" }, ErrUnknownEvent},
		{"dangling body shape", func(d *Document) { d.Bodies[0].Shape = 9 }, world.ErrDanglingIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromWorld(sample(), worldfile.CurrentVersion)
			tt.mutate(d)
			if _, err := d.ToWorld(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode([]byte(`{"id":"x","version":1,"colour":"red"}`)); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestSchemaShape(t *testing.T) {
	data, err := Schema(true)
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}

	var s map[string]any
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, ok := s["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", data)
	}
	for _, key := range []string{"id", "version", "shapes", "bodies", "constraints", "emitters"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema lacks property %q", key)
		}
	}
	if strings.Contains(string(data), `"$ref"`) {
		t.Error("schema uses references")
	}
}

func TestValidate(t *testing.T) {
	good, err := FromWorld(sample(), worldfile.CurrentVersion).Encode(false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := Validate(good); err != nil {
		t.Fatalf("exported document rejected: %v", err)
	}

	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", `{"version":3}`},
		{"version too new", `{"id":"3f2504e0-4f89-11d3-9a0c-0305e82c3301","version":11}`},
		{"float quantity", `{"id":"3f2504e0-4f89-11d3-9a0c-0305e82c3301","version":10,"params":{"gravity":[0,9.81],"lateral_damping":1,"rotational_damping":1}}`},
		{"unknown constraint kind", `{"id":"3f2504e0-4f89-11d3-9a0c-0305e82c3301","version":10,"constraints":[{"kind":"rope","body_a":0,"body_b":1}]}`},
		{"extra property", `{"id":"3f2504e0-4f89-11d3-9a0c-0305e82c3301","version":10,"colour":"red"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate([]byte(tt.doc)); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("Validate = %v, want ErrInvalidDocument", err)
			}
		})
	}

	if err := Validate([]byte(`{`)); err == nil || errors.Is(err, ErrInvalidDocument) {
		t.Errorf("malformed JSON: err = %v, want decode error", err)
	}
}
