package pick

import "github.com/dshills/scenepick/internal/geom"

// Candidate is an opaque handle for one pickable scene object.
//
// Implementations must be comparable with == and must return the same
// fingerprint for the lifetime of a pick. Fingerprints are only used to
// detect change; identity is always decided with ==.
type Candidate interface {
	Fingerprint() int
}

// Picker is the nearest-candidate query: the frontmost candidate under p that
// is not in exclude. ok is false when nothing remains.
type Picker interface {
	Nearest(p geom.Point, exclude []Candidate) (c Candidate, ok bool)
}

// Prober is optionally implemented by a Picker that can test whether one
// specific candidate is under p without enumerating everything in front of it.
type Prober interface {
	Reaches(p geom.Point, c Candidate) bool
}

// RectQuerier is the rect-overlap query: every candidate whose projected
// bounds intersect r.
type RectQuerier interface {
	RectOverlap(r geom.Rect) []Candidate
}

// BaseLookup maps a candidate to its logical group root. The result may be
// the candidate itself; ok is false when the candidate has no root.
type BaseLookup interface {
	SelectionBase(c Candidate) (base Candidate, ok bool)
}

// Hierarchy exposes the parent chain used when deselecting through the
// piercing menu.
type Hierarchy interface {
	Parent(c Candidate) (parent Candidate, ok bool)
}

// Selection is the read view of the active selection the resolver needs.
type Selection interface {
	// Objects returns the selected candidates in order.
	Objects() []Candidate
	// Primary returns the active element, or nil.
	Primary() Candidate
}

// Contains reports whether c is in list.
func Contains(list []Candidate, c Candidate) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

// Roll folds fp into a running prefix fingerprint.
func Roll(prefix, fp int) int {
	return prefix*33 + fp
}
