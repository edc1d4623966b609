package worldfile

import (
	"errors"
	"fmt"
)

// Version is the 4-byte header of a world file
type Version int32

// Known format versions
//
//	1  positional layout, no tags: shapes, bodies, constraints, events
//	2  section tags, landscape section
//	3  scripts section
//	4  world parameters section
//	5  motor constraints
//	6  particle emitters section
//	7  collision-layer mask honoured by the simulation (layout unchanged)
//	8  world parameter user data
//	9  composite shapes after the simple shape list
//	10 separate lateral and rotational damping
const (
	MinVersion     Version = 1
	CurrentVersion Version = 10
)

var (
	// ErrUnsupportedVersion is returned before any section is read
	ErrUnsupportedVersion = errors.New("worldfile: unsupported version")

	// ErrNotRepresentable is returned by Save when the target version cannot carry the world
	ErrNotRepresentable = errors.New("worldfile: world not representable in target version")
)

// Supported reports whether v is within the known range
func (v Version) Supported() bool { return v >= MinVersion && v <= CurrentVersion }

func (v Version) check() error {
	if !v.Supported() {
		return fmt.Errorf("%w: %d (known %d..%d)", ErrUnsupportedVersion, int32(v), MinVersion, CurrentVersion)
	}
	return nil
}

// Feature gates; every version comparison in the package goes through these

// Tagged reports whether sections are preceded by a tag byte
func (v Version) Tagged() bool { return v > 1 }

func (v Version) hasLandscape() bool      { return v >= 2 }
func (v Version) hasScripts() bool        { return v >= 3 }
func (v Version) hasParams() bool         { return v >= 4 }
func (v Version) hasMotors() bool         { return v >= 5 }
func (v Version) hasEmitters() bool       { return v >= 6 }
func (v Version) hasParamsUserData() bool { return v > 7 }
func (v Version) hasMultiShapes() bool    { return v > 8 }
func (v Version) legacyDamping() bool     { return v <= 9 }
