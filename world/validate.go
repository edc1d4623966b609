package world

import (
	"errors"
	"fmt"
)

// ErrDanglingIndex is wrapped by Validate for references outside their target slice
var ErrDanglingIndex = errors.New("world: dangling index")

// Validate checks every cross-entity index
// Decoding never calls it; files are loaded as-is, sentinel values included
func (w *World) Validate() error {
	for i, m := range w.MultiShapes {
		for _, p := range m.Parts {
			if !inRange(p, len(w.Shapes)) {
				return fmt.Errorf("multishape %d part %d: %w", i, p, ErrDanglingIndex)
			}
		}
	}
	for i, b := range w.Bodies {
		if !inRange(b.Shape, w.ShapeCount()) {
			return fmt.Errorf("body %d shape %d: %w", i, b.Shape, ErrDanglingIndex)
		}
	}
	for i, c := range w.Constraints {
		a, b := c.Bodies()
		if !optionalInRange(a, len(w.Bodies)) || !optionalInRange(b, len(w.Bodies)) {
			return fmt.Errorf("%s %d bodies (%d, %d): %w", c.Kind(), i, a, b, ErrDanglingIndex)
		}
	}
	for i, sb := range w.ScriptBindings {
		if !inRange(sb.Script, len(w.Scripts)) || !inRange(sb.Body, len(w.Bodies)) {
			return fmt.Errorf("script binding %d: %w", i, ErrDanglingIndex)
		}
	}
	for i, e := range w.Events {
		if !optionalInRange(e.BodyFilter, len(w.Bodies)) ||
			!optionalInRange(e.ShapeFilter, w.ShapeCount()) ||
			!optionalInRange(e.ConstraintFilter, len(w.Constraints)) {
			return fmt.Errorf("event %d filter: %w", i, ErrDanglingIndex)
		}
	}
	for i, pe := range w.Emitters {
		if !optionalInRange(pe.Body, len(w.Bodies)) {
			return fmt.Errorf("emitter %d body %d: %w", i, pe.Body, ErrDanglingIndex)
		}
	}
	return nil
}

func inRange(i int32, n int) bool { return i >= 0 && int(i) < n }

func optionalInRange(i int32, n int) bool { return i == NoIndex || inRange(i, n) }
