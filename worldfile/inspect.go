package worldfile

import (
	"io"

	"github.com/lixenwraith/fxworld/world"
)

// Summary describes a decoded world file
type Summary struct {
	Version     Version
	Sections    []Tag
	Shapes      int
	MultiShapes int
	Bodies      int
	Segments    int
	Joints      int
	Springs     int
	Motors      int
	Scripts     int
	Bindings    int
	Events      int
	Emitters    int
	HasParams   bool
	Truncated   bool
}

// Inspect decodes r and reports what it holds
func Inspect(r io.Reader, opts ...Option) (Summary, *world.World, error) {
	w := world.New()
	l, err := newLoader(r, w, buildOptions(opts))
	if err != nil {
		return Summary{Version: l.v}, nil, err
	}
	l.run()

	sum := Summary{
		Version:     l.v,
		Sections:    l.seen,
		Shapes:      len(w.Shapes),
		MultiShapes: len(w.MultiShapes),
		Bodies:      len(w.Bodies),
		Scripts:     len(w.Scripts),
		Bindings:    len(w.ScriptBindings),
		Events:      len(w.Events),
		Emitters:    len(w.Emitters),
		HasParams:   w.Params != nil,
		Truncated:   l.truncated,
	}
	if w.Landscape != nil {
		sum.Segments = len(w.Landscape.Segments)
	}
	for _, c := range w.Constraints {
		switch c.Kind() {
		case world.ConstraintJoint:
			sum.Joints++
		case world.ConstraintSpring:
			sum.Springs++
		case world.ConstraintMotor:
			sum.Motors++
		}
	}
	return sum, w, nil
}
