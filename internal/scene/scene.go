// Package scene is an in-memory scene of rectangular objects that answers
// the picking queries: nearest candidate, rectangle overlap, selection base
// and parent lookup.
//
// It stands in for a renderer's hit testing in the command-line tools and
// in tests.
package scene

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/pick"
)

// Scene holds objects in insertion order.
type Scene struct {
	objects []*Object
	byName  map[string]*Object
	byID    map[uuid.UUID]*Object
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		byName: make(map[string]*Object),
		byID:   make(map[uuid.UUID]*Object),
	}
}

// Add inserts o. A zero ID is replaced with a random one. The parent, if
// set, must already be in the scene.
func (s *Scene) Add(o *Object) error {
	if o.Name == "" {
		return fmt.Errorf("add object: %w", ErrEmptyName)
	}
	if _, ok := s.byName[o.Name]; ok {
		return fmt.Errorf("add %q: %w", o.Name, ErrDuplicateName)
	}
	if o.Bounds.Canon().Empty() {
		return fmt.Errorf("add %q: %w: %s", o.Name, ErrInvalidBounds, o.Bounds)
	}
	if o.Parent != nil && s.byName[o.Parent.Name] != o.Parent {
		return fmt.Errorf("add %q: %w", o.Name, ErrForeignParent)
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	o.Bounds = o.Bounds.Canon()
	o.order = len(s.objects)
	s.objects = append(s.objects, o)
	s.byName[o.Name] = o
	s.byID[o.ID] = o
	return nil
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns all objects in insertion order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Lookup finds an object by name.
func (s *Scene) Lookup(name string) (*Object, bool) {
	o, ok := s.byName[name]
	return o, ok
}

// ByID finds an object by ID.
func (s *Scene) ByID(id uuid.UUID) (*Object, bool) {
	o, ok := s.byID[id]
	return o, ok
}

// Candidates resolves names to candidates in the given order.
func (s *Scene) Candidates(names ...string) ([]pick.Candidate, error) {
	out := make([]pick.Candidate, 0, len(names))
	for _, n := range names {
		o, ok := s.byName[n]
		if !ok {
			return nil, fmt.Errorf("%q: %w", n, ErrObjectNotFound)
		}
		out = append(out, o)
	}
	return out, nil
}

// DrawOrder returns visible objects back to front.
func (s *Scene) DrawOrder() []*Object {
	out := s.visible(func(*Object) bool { return true })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Stack returns the visible objects under p, front to back.
func (s *Scene) Stack(p geom.Point) []*Object {
	return s.visible(func(o *Object) bool { return o.Bounds.Contains(p) })
}

// Nearest implements pick.Picker.
func (s *Scene) Nearest(p geom.Point, exclude []pick.Candidate) (pick.Candidate, bool) {
	var best *Object
	for _, o := range s.objects {
		if o.Hidden || !o.Bounds.Contains(p) || pick.Contains(exclude, o) {
			continue
		}
		if best == nil || o.nearer(best) {
			best = o
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Reaches implements pick.Prober.
func (s *Scene) Reaches(p geom.Point, c pick.Candidate) bool {
	o, ok := s.own(c)
	return ok && !o.Hidden && o.Bounds.Contains(p)
}

// RectOverlap implements pick.RectQuerier. Results are front to back.
func (s *Scene) RectOverlap(r geom.Rect) []pick.Candidate {
	hits := s.visible(func(o *Object) bool { return o.Bounds.Overlaps(r) })
	out := make([]pick.Candidate, len(hits))
	for i, o := range hits {
		out[i] = o
	}
	return out
}

// SelectionBase implements pick.BaseLookup: the nearest ancestor-or-self
// marked Base.
func (s *Scene) SelectionBase(c pick.Candidate) (pick.Candidate, bool) {
	o, ok := s.own(c)
	if !ok {
		return nil, false
	}
	for ; o != nil; o = o.Parent {
		if o.Base {
			return o, true
		}
	}
	return nil, false
}

// Parent implements pick.Hierarchy.
func (s *Scene) Parent(c pick.Candidate) (pick.Candidate, bool) {
	o, ok := s.own(c)
	if !ok || o.Parent == nil {
		return nil, false
	}
	return o.Parent, true
}

func (s *Scene) own(c pick.Candidate) (*Object, bool) {
	o, ok := c.(*Object)
	if !ok || o == nil {
		return nil, false
	}
	return o, s.byName[o.Name] == o
}

// visible returns the non-hidden objects matching keep, front to back.
func (s *Scene) visible(keep func(*Object) bool) []*Object {
	var out []*Object
	for _, o := range s.objects {
		if !o.Hidden && keep(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].nearer(out[j])
	})
	return out
}
