package scene

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/dshills/scenepick/internal/geom"
)

// Object is one pickable item with screen-space bounds.
type Object struct {
	// ID uniquely identifies the object.
	ID uuid.UUID

	// Name is unique within a scene.
	Name string

	// Bounds is the projected screen rectangle.
	Bounds geom.Rect

	// Depth orders objects front to back; smaller is nearer.
	Depth float64

	// Parent is the enclosing object, nil for roots.
	Parent *Object

	// Base marks the object as a group root for selection.
	Base bool

	// Hidden objects are never picked.
	Hidden bool

	// order is the insertion index; later objects draw over earlier ones at
	// equal depth.
	order int
}

// Fingerprint implements pick.Candidate. It is derived from the ID.
func (o *Object) Fingerprint() int {
	return int(binary.BigEndian.Uint64(o.ID[:8]) >> 1)
}

// String returns the object name.
func (o *Object) String() string {
	return o.Name
}

// Path returns the names from the root down to o, joined with '/'.
func (o *Object) Path() string {
	if o.Parent == nil {
		return o.Name
	}
	return o.Parent.Path() + "/" + o.Name
}

// nearer reports whether o is drawn in front of other.
func (o *Object) nearer(other *Object) bool {
	if o.Depth != other.Depth {
		return o.Depth < other.Depth
	}
	return o.order > other.order
}
