package worldfile

import (
	"bytes"
	"testing"

	"github.com/lixenwraith/fxworld/vmath"
	"github.com/lixenwraith/fxworld/world"
)

// sampleWorld holds at least one of every entity the format carries
func sampleWorld() *world.World {
	return &world.World{
		Shapes: []world.Shape{
			{
				Vertices: []vmath.Vec2FX{
					vmath.V2Int(-1, -1), vmath.V2Int(1, -1), vmath.V2Int(1, 1), vmath.V2Int(-1, 1),
				},
				Elasticity: vmath.FromFloat(0.5),
				Friction:   vmath.FromFloat(0.3),
				Mass:       vmath.ToFX(2),
				UserData:   "box",
			},
			{
				Vertices:   []vmath.Vec2FX{vmath.V2Int(0, 0), vmath.V2Int(2, 0), vmath.V2Int(1, 2)},
				Friction:   vmath.OneFX,
				Mass:       vmath.OneFX,
				UserData:   "",
			},
		},
		MultiShapes: []world.MultiShape{
			{Parts: []int32{0, 1}, UserData: "combo"},
		},
		Bodies: []world.Body{
			{
				Position:        vmath.V2Int(10, 20),
				Velocity:        vmath.V2(vmath.FromFloat(-1.5), 0),
				Rotation:        vmath.HalfPi2FX,
				AngularVelocity: -vmath.One2FX / 8,
				Shape:           0,
				Flags:           world.BodyDynamic | world.BodyCanRotate,
				CollisionLayers: -1,
				UserData:        "player",
			},
			{
				Position:        vmath.V2Int(-5, 0),
				Shape:           2,
				Flags:           world.BodyGravityUnaffected | world.BodyNonInteracting,
				CollisionLayers: 0x0F,
				UserData:        "ünïcode ✓",
			},
		},
		Landscape: &world.Landscape{
			Segments: []world.Segment{
				{Start: vmath.V2Int(-100, 50), End: vmath.V2Int(100, 50), Face: 1},
				{Start: vmath.V2Int(100, 50), End: vmath.V2Int(100, -50), Face: 2},
			},
			Elasticity: vmath.FromFloat(0.2),
			Friction:   vmath.FromFloat(0.7),
			Mass:       0,
			UserData:   "ground",
		},
		Constraints: []world.Constraint{
			&world.Joint{
				BodyA: 0, BodyB: 1,
				AnchorA: vmath.V2Int(1, 0), AnchorB: vmath.V2Int(-1, 0),
				Collide:  true,
				UserData: "hinge",
			},
			&world.Spring{
				BodyA: 0, BodyB: world.NoIndex,
				AnchorA: vmath.V2Int(0, 1), AnchorB: vmath.V2Int(0, -10),
				RestLength:  vmath.ToFX(5),
				Coefficient: vmath.FromFloat(0.8),
				UserData:    "bungee",
			},
			&world.Motor{
				BodyA: 1, BodyB: 0,
				TargetVelocity:   vmath.One2FX,
				MaxForce:         vmath.ToFX(100),
				FixedOrientation: true,
				UserData:         "drive",
			},
		},
		Scripts: []world.Script{
			{Elements: []world.ScriptElement{
				{Type: 1, TargetA: vmath.ToFX(3), TargetB: vmath.ToFX(-3), Timesteps: 60},
				{Type: 2, TargetA: vmath.FromFloat(0.5), Timesteps: 30},
			}},
		},
		ScriptBindings: []world.ScriptBinding{{Script: 0, Body: 1}},
		Events: []world.Event{
			{
				Type:             world.EventArea,
				TriggerOnce:      true,
				BodyFilter:       0,
				ShapeFilter:      world.NoIndex,
				ConstraintFilter: 2,
				Targets:          [4]int32{vmath.ToFX(-1), vmath.ToFX(-1), vmath.ToFX(1), vmath.ToFX(1)},
				UserData:         "goal",
			},
		},
		Params: &world.Params{
			Gravity:           vmath.V2(0, vmath.FromFloat(9.81)),
			LateralDamping:    vmath.FromFloat(0.98),
			RotationalDamping: vmath.FromFloat(0.9),
			UserData:          "earth",
		},
		Emitters: []world.ParticleEmitter{
			{
				Body:                  0,
				AxisFixed:             true,
				AnchorA:               vmath.V2Int(0, 1),
				AnchorB:               vmath.V2Int(0, 2),
				Angle:                 vmath.HalfPi2FX,
				AngleDeviation:        vmath.One2FX / 10,
				Speed:                 vmath.ToFX(4),
				SpeedDeviation:        vmath.OneFX,
				CreationRate:          vmath.ToFX(10),
				CreationRateDeviation: vmath.ToFX(2),
				AvgLifetime:           120,
				LifetimeDeviation:     30,
				MaxParticles:          500,
				Elasticity:            vmath.HalfFX,
				GravityEffect:         vmath.OneFX,
				Damping:               vmath.FromFloat(0.99),
				UserData:              "smoke",
			},
		},
	}
}

// encode saves w at version v, failing the test on error
func encode(t *testing.T, w *world.World, v Version) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Save(&buf, w, v); err != nil {
		t.Fatalf("Save v%d failed: %v", v, err)
	}
	return buf.Bytes()
}
