package world

// Kind names the entity family a Ref points into
type Kind uint8

const (
	KindShape Kind = iota
	KindMultiShape
	KindBody
	KindLandscape
	KindConstraint
	KindEvent
	KindEmitter
	KindParams
)

var kindNames = [...]string{
	KindShape:      "shape",
	KindMultiShape: "multishape",
	KindBody:       "body",
	KindLandscape:  "landscape",
	KindConstraint: "constraint",
	KindEvent:      "event",
	KindEmitter:    "emitter",
	KindParams:     "params",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Ref addresses one entity; Index is ignored for singletons
type Ref struct {
	Kind  Kind
	Index int
}

// Builder receives entities as a world file is decoded
// Add* methods return the index assigned to the entity. UserData is the
// create-or-update hook for the string attached to an already added entity.
// *World is the default implementation; the simulation layer may supply its
// own to construct live objects directly.
type Builder interface {
	AddShape(Shape) int
	AddMultiShape(MultiShape) int
	AddBody(Body) int
	SetLandscape(Landscape)
	AddConstraint(Constraint) int
	AddScript(Script) int
	BindScript(ScriptBinding)
	AddEvent(Event) int
	SetParams(Params)
	AddEmitter(ParticleEmitter) int
	UserData(ref Ref, data string)
}

var _ Builder = (*World)(nil)

func (w *World) AddShape(s Shape) int {
	w.Shapes = append(w.Shapes, s)
	return len(w.Shapes) - 1
}

func (w *World) AddMultiShape(m MultiShape) int {
	w.MultiShapes = append(w.MultiShapes, m)
	return len(w.MultiShapes) - 1
}

func (w *World) AddBody(b Body) int {
	w.Bodies = append(w.Bodies, b)
	return len(w.Bodies) - 1
}

func (w *World) SetLandscape(l Landscape) {
	w.Landscape = &l
}

func (w *World) AddConstraint(c Constraint) int {
	w.Constraints = append(w.Constraints, c)
	return len(w.Constraints) - 1
}

func (w *World) AddScript(s Script) int {
	w.Scripts = append(w.Scripts, s)
	return len(w.Scripts) - 1
}

func (w *World) BindScript(b ScriptBinding) {
	w.ScriptBindings = append(w.ScriptBindings, b)
}

func (w *World) AddEvent(e Event) int {
	w.Events = append(w.Events, e)
	return len(w.Events) - 1
}

func (w *World) SetParams(p Params) {
	w.Params = &p
}

func (w *World) AddEmitter(e ParticleEmitter) int {
	w.Emitters = append(w.Emitters, e)
	return len(w.Emitters) - 1
}

// UserData stores data on the referenced entity; unknown refs are ignored
func (w *World) UserData(ref Ref, data string) {
	i := ref.Index
	switch ref.Kind {
	case KindShape:
		if i >= 0 && i < len(w.Shapes) {
			w.Shapes[i].UserData = data
		}
	case KindMultiShape:
		if i >= 0 && i < len(w.MultiShapes) {
			w.MultiShapes[i].UserData = data
		}
	case KindBody:
		if i >= 0 && i < len(w.Bodies) {
			w.Bodies[i].UserData = data
		}
	case KindLandscape:
		if w.Landscape != nil {
			w.Landscape.UserData = data
		}
	case KindConstraint:
		if i >= 0 && i < len(w.Constraints) {
			w.Constraints[i].setData(data)
		}
	case KindEvent:
		if i >= 0 && i < len(w.Events) {
			w.Events[i].UserData = data
		}
	case KindEmitter:
		if i >= 0 && i < len(w.Emitters) {
			w.Emitters[i].UserData = data
		}
	case KindParams:
		if w.Params != nil {
			w.Params.UserData = data
		}
	}
}

// ShapeCount returns the number of addressable shapes, simple then composite
func (w *World) ShapeCount() int {
	return len(w.Shapes) + len(w.MultiShapes)
}
