package worldfile

// Tag is the 1-byte section discriminant
type Tag int

const (
	TagShapes      Tag = 1
	TagBody        Tag = 2
	TagConstraints Tag = 3
	TagScripts     Tag = 4
	TagEvents      Tag = 5
	TagLandscape   Tag = 6
	TagWorld       Tag = 7
	TagParticles   Tag = 8

	// TagEnd ends a load, as do end of stream and any unknown tag
	TagEnd Tag = 0
)

var tagNames = map[Tag]string{
	TagShapes:      "shapes",
	TagBody:        "bodies",
	TagConstraints: "constraints",
	TagScripts:     "scripts",
	TagEvents:      "events",
	TagLandscape:   "landscape",
	TagWorld:       "world",
	TagParticles:   "particles",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "end"
}

// Known reports whether t selects a section
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

// positionalOrder is the implicit section sequence of version 1
// Scripts postdate it and events close the file
var positionalOrder = []Tag{TagShapes, TagBody, TagConstraints, TagEvents}

// writeOrder is the section sequence Save emits for tagged versions
var writeOrder = []Tag{
	TagShapes, TagBody, TagLandscape, TagConstraints,
	TagScripts, TagEvents, TagWorld, TagParticles,
}

// traversal yields the next section to decode
// One implementation is chosen per stream from the version header
type traversal interface {
	next(l *loader) (Tag, bool)
}

func traversalFor(v Version) traversal {
	if v.Tagged() {
		return &taggedTraversal{}
	}
	return &positionalTraversal{order: positionalOrder}
}

// positionalTraversal walks a fixed order without reading tag bytes
type positionalTraversal struct {
	order []Tag
	pos   int
}

func (p *positionalTraversal) next(_ *loader) (Tag, bool) {
	if p.pos >= len(p.order) {
		return TagEnd, false
	}
	t := p.order[p.pos]
	p.pos++
	return t, true
}

// taggedTraversal reads a tag byte before each section
// Stops on exhaustion (-1), the end marker, or any unknown value
type taggedTraversal struct{}

func (taggedTraversal) next(l *loader) (Tag, bool) {
	t := Tag(l.r.ReadU8())
	if t <= TagEnd || !t.Known() {
		return t, false
	}
	return t, true
}
