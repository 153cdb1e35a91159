package selection

import (
	"fmt"
	"strings"

	"github.com/dshills/scenepick/internal/pick"
)

// Set is an ordered selection with unique membership.
//
// Active is the primary element. It is nil only when Items is empty.
type Set struct {
	Items  []pick.Candidate
	Active pick.Candidate
}

// NewSet builds a Set from items, dropping duplicates and nil entries.
// The first item becomes active.
func NewSet(items ...pick.Candidate) Set {
	var s Set
	for _, c := range items {
		if c == nil || pick.Contains(s.Items, c) {
			continue
		}
		s.Items = append(s.Items, c)
	}
	if len(s.Items) > 0 {
		s.Active = s.Items[0]
	}
	return s
}

// Objects implements pick.Selection.
func (s Set) Objects() []pick.Candidate {
	return s.Items
}

// Primary implements pick.Selection.
func (s Set) Primary() pick.Candidate {
	return s.Active
}

// Len returns the number of selected candidates.
func (s Set) Len() int {
	return len(s.Items)
}

// Empty reports whether nothing is selected.
func (s Set) Empty() bool {
	return len(s.Items) == 0
}

// Contains reports whether c is selected.
func (s Set) Contains(c pick.Candidate) bool {
	return pick.Contains(s.Items, c)
}

// Equal reports whether both sets hold the same candidates in the same order
// with the same active element.
func (s Set) Equal(other Set) bool {
	if len(s.Items) != len(other.Items) || s.Active != other.Active {
		return false
	}
	for i := range s.Items {
		if s.Items[i] != other.Items[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share the backing array.
func (s Set) Clone() Set {
	if s.Items == nil {
		return Set{Active: s.Active}
	}
	items := make([]pick.Candidate, len(s.Items))
	copy(items, s.Items)
	return Set{Items: items, Active: s.Active}
}

// String renders the set for logs, marking the active element with '*'.
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range s.Items {
		if i > 0 {
			b.WriteByte(' ')
		}
		if c == s.Active {
			b.WriteByte('*')
		}
		fmt.Fprint(&b, c)
	}
	b.WriteByte(']')
	return b.String()
}
