package selection

import "github.com/dshills/scenepick/internal/pick"

type item struct {
	name string
}

func (i *item) Fingerprint() int { return len(i.name) }

func (i *item) String() string { return i.name }

func items(names ...string) []*item {
	out := make([]*item, len(names))
	for i, n := range names {
		out[i] = &item{name: n}
	}
	return out
}

func cands(is ...*item) []pick.Candidate {
	out := make([]pick.Candidate, len(is))
	for i, it := range is {
		out[i] = it
	}
	return out
}

func namesOf(s Set) []string {
	out := make([]string, len(s.Items))
	for i, c := range s.Items {
		out[i] = c.(*item).name
	}
	return out
}

// tree is a Hierarchy and BaseLookup over parent links.
type tree struct {
	parent map[pick.Candidate]pick.Candidate
	base   map[pick.Candidate]pick.Candidate
}

func (t tree) Parent(c pick.Candidate) (pick.Candidate, bool) {
	p, ok := t.parent[c]
	return p, ok
}

func (t tree) SelectionBase(c pick.Candidate) (pick.Candidate, bool) {
	b, ok := t.base[c]
	return b, ok
}
