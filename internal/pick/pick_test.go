package pick

import (
	"fmt"

	"github.com/dshills/scenepick/internal/geom"
)

// obj is a test candidate.
type obj struct {
	name string
	fp   int
}

func (o *obj) Fingerprint() int { return o.fp }

func (o *obj) String() string { return o.name }

func newObj(name string, fp int) *obj {
	return &obj{name: name, fp: fp}
}

// stackPicker answers nearest-candidate queries from fixed front-to-back stacks.
type stackPicker struct {
	stacks map[geom.Point][]Candidate
	calls  int
}

func newStackPicker() *stackPicker {
	return &stackPicker{stacks: make(map[geom.Point][]Candidate)}
}

func (s *stackPicker) set(p geom.Point, cs ...Candidate) {
	s.stacks[p] = cs
}

func (s *stackPicker) Nearest(p geom.Point, exclude []Candidate) (Candidate, bool) {
	s.calls++
	for _, c := range s.stacks[p] {
		if !Contains(exclude, c) {
			return c, true
		}
	}
	return nil, false
}

// probingPicker adds an exact Prober.
type probingPicker struct {
	*stackPicker
}

func (p probingPicker) Reaches(pt geom.Point, c Candidate) bool {
	return Contains(p.stacks[pt], c)
}

// liarPicker claims every candidate is reachable.
type liarPicker struct {
	*stackPicker
}

func (liarPicker) Reaches(geom.Point, Candidate) bool { return true }

// stuckPicker ignores its exclusion set.
type stuckPicker struct {
	c     Candidate
	calls int
}

func (s *stuckPicker) Nearest(geom.Point, []Candidate) (Candidate, bool) {
	s.calls++
	return s.c, true
}

// mapBases is a BaseLookup backed by a map.
type mapBases map[Candidate]Candidate

func (m mapBases) SelectionBase(c Candidate) (Candidate, bool) {
	b, ok := m[c]
	return b, ok
}

// testSelection is a minimal Selection.
type testSelection struct {
	items   []Candidate
	primary Candidate
}

func (s testSelection) Objects() []Candidate { return s.items }
func (s testSelection) Primary() Candidate   { return s.primary }

func only(c Candidate) testSelection {
	return testSelection{items: []Candidate{c}, primary: c}
}

// session drives a resolver the way the viewport does: commit the pick,
// notify on change, settle.
type session struct {
	r     *Resolver
	sel   testSelection
	state CycleState
}

func (s *session) click(p geom.Point) Candidate {
	c, ok := s.r.Pick(p, s.sel, &s.state)
	if ok {
		s.commit(only(c))
	}
	s.state.Settle()
	return c
}

// commit replaces the selection and fires the change notification if it changed.
func (s *session) commit(next testSelection) {
	if fmt.Sprint(next.items) == fmt.Sprint(s.sel.items) && next.primary == s.sel.primary {
		return
	}
	s.sel = next
	s.state.SelectionChanged()
}

// external replaces the selection without a retain mark.
func (s *session) external(next testSelection) {
	s.sel = next
	s.state.SelectionChanged()
}

func names(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.(*obj).name
	}
	return out
}
