package worldfile

import (
	"io"
	"log"

	"github.com/lixenwraith/fxworld/codec"
	"github.com/lixenwraith/fxworld/status"
	"github.com/lixenwraith/fxworld/vmath"
	"github.com/lixenwraith/fxworld/world"
)

// Option configures Load, LoadInto and Inspect
type Option func(*options)

type options struct {
	logger *log.Logger
	stats  *status.Registry
}

// WithLogger routes decode diagnostics to l
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStatus counts sections, entities and sentinel reads into r
func WithStatus(r *status.Registry) Option {
	return func(o *options) { o.stats = r }
}

func buildOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load decodes a world file into a new world.World
// Returns nil and ErrUnsupportedVersion for unknown versions; truncated or
// malformed streams never fail, whatever was decoded is returned
func Load(r io.Reader, opts ...Option) (*world.World, error) {
	w := world.New()
	if _, err := LoadInto(r, w, opts...); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadInto decodes a world file into b and returns the file version
func LoadInto(r io.Reader, b world.Builder, opts ...Option) (Version, error) {
	l, err := newLoader(r, b, buildOptions(opts))
	if err != nil {
		return l.v, err
	}
	l.run()
	return l.v, nil
}

// loader holds the state of one forward pass
type loader struct {
	r     *codec.Reader
	v     Version
	b     world.Builder
	log   *log.Logger
	stats *status.Registry

	seen      []Tag
	truncated bool
	halted    bool
}

func newLoader(r io.Reader, b world.Builder, o options) (*loader, error) {
	l := &loader{
		r:     codec.NewReader(r),
		b:     b,
		log:   o.logger,
		stats: o.stats,
	}
	l.v = Version(l.r.Version())
	if err := l.v.check(); err != nil {
		l.stats.Inc("load.rejected")
		return l, err
	}
	return l, nil
}

func (l *loader) run() {
	l.stats.Inc("load.files")
	trav := traversalFor(l.v)
	for !l.halted {
		tag, ok := trav.next(l)
		if !ok {
			if tag > TagEnd && !tag.Known() {
				l.log.Printf("worldfile: unknown section tag %d, stopping", int(tag))
				l.stats.Inc("load.unknown_tags")
			}
			break
		}
		l.section(tag)
		l.seen = append(l.seen, tag)
		l.stats.Inc("sections." + tag.String())

		if l.r.Exhausted() {
			l.truncated = true
			l.log.Printf("worldfile: stream ended inside %s section: %v", tag, l.r.Err())
			l.stats.Inc("load.truncated")
			break
		}
	}
}

func (l *loader) section(tag Tag) {
	switch tag {
	case TagShapes:
		l.shapes()
	case TagBody:
		l.bodies()
	case TagLandscape:
		l.landscape()
	case TagConstraints:
		l.constraints()
	case TagScripts:
		l.scripts()
	case TagEvents:
		l.events()
	case TagWorld:
		l.params()
	case TagParticles:
		l.emitters()
	}
}

// --- Helpers ---

// count reads an element count; loops using it also stop on exhaustion
func (l *loader) count() int32 {
	return l.r.ReadInt32()
}

// more reports whether another element should be decoded
func (l *loader) more(i, n int32) bool {
	return i < n && !l.r.Exhausted() && !l.halted
}

// capHint bounds preallocation so a corrupt count cannot reserve gigabytes
func capHint(n int32) int {
	const maxHint = 1024
	if n <= 0 {
		return 0
	}
	if n > maxHint {
		return maxHint
	}
	return int(n)
}

// userData reads the trailing string and hands it to the builder
// A null string leaves the entity without user data
func (l *loader) userData(ref world.Ref) {
	s, ok := l.r.ReadUTF()
	if !ok {
		l.stats.Inc("sentinel.null_strings")
		return
	}
	l.b.UserData(ref, s)
}

func (l *loader) entity(kind world.Kind) {
	l.stats.Inc("entities." + kind.String())
}

// --- Sections ---

func (l *loader) shapes() {
	n := l.count()
	for i := int32(0); l.more(i, n); i++ {
		vc := l.count()
		verts := make([]vmath.Vec2FX, 0, capHint(vc))
		for j := int32(0); l.more(j, vc); j++ {
			verts = append(verts, l.r.ReadVec2())
		}
		s := world.Shape{
			Vertices:   verts,
			Elasticity: l.r.ReadFX(),
			Friction:   l.r.ReadFX(),
			Mass:       l.r.ReadFX(),
		}
		idx := l.b.AddShape(s)
		l.userData(world.Ref{Kind: world.KindShape, Index: idx})
		l.entity(world.KindShape)
	}

	if !l.v.hasMultiShapes() || l.r.Exhausted() {
		return
	}
	n = l.count()
	for i := int32(0); l.more(i, n); i++ {
		pc := l.count()
		parts := make([]int32, 0, capHint(pc))
		for j := int32(0); l.more(j, pc); j++ {
			parts = append(parts, l.r.ReadInt32())
		}
		idx := l.b.AddMultiShape(world.MultiShape{Parts: parts})
		l.userData(world.Ref{Kind: world.KindMultiShape, Index: idx})
		l.entity(world.KindMultiShape)
	}
}

func (l *loader) bodies() {
	n := l.count()
	for i := int32(0); l.more(i, n); i++ {
		b := world.Body{
			Position:        l.r.ReadVec2(),
			Velocity:        l.r.ReadVec2(),
			Rotation:        l.r.ReadInt32(),
			AngularVelocity: l.r.ReadInt32(),
			Shape:           l.r.ReadInt32(),
			Flags:           world.BodyFlags(l.r.ReadU8()),
			CollisionLayers: l.r.ReadInt32(),
		}
		idx := l.b.AddBody(b)
		l.userData(world.Ref{Kind: world.KindBody, Index: idx})
		l.entity(world.KindBody)
	}
}

func (l *loader) landscape() {
	n := l.count()
	segs := make([]world.Segment, 0, capHint(n))
	for i := int32(0); l.more(i, n); i++ {
		segs = append(segs, world.Segment{
			Start: l.r.ReadVec2(),
			End:   l.r.ReadVec2(),
			Face:  uint8(l.r.ReadU8()),
		})
	}
	l.b.SetLandscape(world.Landscape{
		Segments:   segs,
		Elasticity: l.r.ReadFX(),
		Friction:   l.r.ReadFX(),
		Mass:       l.r.ReadFX(),
	})
	l.userData(world.Ref{Kind: world.KindLandscape})
	l.entity(world.KindLandscape)
}

func (l *loader) constraints() {
	n := l.count()
	for i := int32(0); l.more(i, n); i++ {
		kind := l.r.ReadU8()
		var c world.Constraint
		switch world.ConstraintKind(kind) {
		case world.ConstraintJoint:
			c = &world.Joint{
				BodyA:   l.r.ReadInt32(),
				BodyB:   l.r.ReadInt32(),
				AnchorA: l.r.ReadVec2(),
				AnchorB: l.r.ReadVec2(),
				Collide: l.r.ReadBool(),
			}
		case world.ConstraintSpring:
			c = &world.Spring{
				BodyA:       l.r.ReadInt32(),
				BodyB:       l.r.ReadInt32(),
				AnchorA:     l.r.ReadVec2(),
				AnchorB:     l.r.ReadVec2(),
				RestLength:  l.r.ReadFX(),
				Coefficient: l.r.ReadFX(),
			}
		case world.ConstraintMotor:
			c = &world.Motor{
				BodyA:            l.r.ReadInt32(),
				BodyB:            l.r.ReadInt32(),
				TargetVelocity:   l.r.ReadInt32(),
				MaxForce:         l.r.ReadFX(),
				FixedOrientation: l.r.ReadBool(),
			}
		default:
			// Payload size is unknown, the rest of the stream cannot be framed
			if kind >= 0 {
				l.log.Printf("worldfile: unknown constraint kind %d at %d, stopping", kind, i)
				l.stats.Inc("load.unknown_constraints")
			}
			l.halted = true
			return
		}
		idx := l.b.AddConstraint(c)
		l.userData(world.Ref{Kind: world.KindConstraint, Index: idx})
		l.entity(world.KindConstraint)
	}
}

func (l *loader) scripts() {
	n := l.count()
	for i := int32(0); l.more(i, n); i++ {
		ec := l.count()
		elems := make([]world.ScriptElement, 0, capHint(ec))
		for j := int32(0); l.more(j, ec); j++ {
			elems = append(elems, world.ScriptElement{
				Type:      uint8(l.r.ReadU8()),
				TargetA:   l.r.ReadFX(),
				TargetB:   l.r.ReadFX(),
				Timesteps: l.r.ReadInt32(),
			})
		}
		l.b.AddScript(world.Script{Elements: elems})
		l.stats.Inc("entities.script")
	}

	n = l.count()
	for i := int32(0); l.more(i, n); i++ {
		l.b.BindScript(world.ScriptBinding{
			Script: l.r.ReadInt32(),
			Body:   l.r.ReadInt32(),
		})
	}
}

func (l *loader) events() {
	n := l.count()
	for i := int32(0); l.more(i, n); i++ {
		e := world.Event{
			Type:             world.EventType(l.r.ReadU8()),
			TriggerOnce:      l.r.ReadBool(),
			BodyFilter:       l.r.ReadInt32(),
			ShapeFilter:      l.r.ReadInt32(),
			ConstraintFilter: l.r.ReadInt32(),
		}
		for k := range e.Targets {
			e.Targets[k] = l.r.ReadFX()
		}

		// Only area events are materialized; the rest are consumed and dropped
		if e.Type != world.EventArea {
			l.r.ReadUTF()
			l.log.Printf("worldfile: dropping event %d of type %d", i, e.Type)
			l.stats.Inc("events.dropped")
			continue
		}
		idx := l.b.AddEvent(e)
		l.userData(world.Ref{Kind: world.KindEvent, Index: idx})
		l.entity(world.KindEvent)
	}
}

func (l *loader) params() {
	p := world.Params{Gravity: l.r.ReadVec2()}
	if l.v.legacyDamping() {
		d := l.r.ReadFX()
		p.LateralDamping = vmath.OneFX - d
		p.RotationalDamping = vmath.OneFX - d
	} else {
		p.LateralDamping = l.r.ReadFX()
		p.RotationalDamping = l.r.ReadFX()
	}
	l.b.SetParams(p)
	if l.v.hasParamsUserData() {
		l.userData(world.Ref{Kind: world.KindParams})
	}
	l.entity(world.KindParams)
}

func (l *loader) emitters() {
	n := l.count()
	for i := int32(0); l.more(i, n); i++ {
		e := world.ParticleEmitter{
			Body:                  l.r.ReadInt32(),
			AxisFixed:             l.r.ReadBool(),
			AnchorA:               l.r.ReadVec2(),
			AnchorB:               l.r.ReadVec2(),
			Angle:                 l.r.ReadInt32(),
			AngleDeviation:        l.r.ReadInt32(),
			Speed:                 l.r.ReadFX(),
			SpeedDeviation:        l.r.ReadFX(),
			CreationRate:          l.r.ReadFX(),
			CreationRateDeviation: l.r.ReadFX(),
			AvgLifetime:           l.r.ReadInt32(),
			LifetimeDeviation:     l.r.ReadInt32(),
			MaxParticles:          l.r.ReadInt32(),
			Elasticity:            l.r.ReadFX(),
			GravityEffect:         l.r.ReadFX(),
			Damping:               l.r.ReadFX(),
		}
		idx := l.b.AddEmitter(e)
		l.userData(world.Ref{Kind: world.KindEmitter, Index: idx})
		l.entity(world.KindEmitter)
	}
}
