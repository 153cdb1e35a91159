package selection

import (
	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/pick"
)

// Type is the way incoming candidates are folded into a selection.
type Type int

const (
	// Normal replaces the selection.
	Normal Type = iota
	// Additive appends to the selection.
	Additive
	// Subtractive removes from the selection.
	Subtractive
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Normal:
		return "normal"
	case Additive:
		return "additive"
	case Subtractive:
		return "subtractive"
	default:
		return "unknown"
	}
}

// TypeFor derives the rectangle-selection type from held modifiers.
// Shift adds, the platform action modifier subtracts, anything else replaces.
func TypeFor(mods, action key.Modifier) Type {
	switch {
	case mods.HasShift():
		return Additive
	case !action.IsEmpty() && mods.Has(action):
		return Subtractive
	default:
		return Normal
	}
}

// Combine folds incoming into existing. Neither input is modified.
//
// fromRect selects how the active element is chosen for Additive: a single
// click makes incoming[0] active, a rectangle keeps the first element of the
// combined list.
func Combine(existing Set, incoming []pick.Candidate, mode Type, fromRect bool) Set {
	switch mode {
	case Additive:
		return add(existing, incoming, fromRect)
	case Subtractive:
		out, _ := subtract(existing, incoming)
		return out
	default:
		return NewSet(incoming...)
	}
}

// CombineHierarchical is Combine for a single candidate chosen from the
// piercing menu.
//
// In Subtractive mode it removes c and also the nearest ancestor of c that is
// selected, walking parents up to but not including the SelectionBase of c.
// When neither removal applies the candidate is added instead. h and bases
// may be nil.
func CombineHierarchical(existing Set, c pick.Candidate, mode Type, h pick.Hierarchy, bases pick.BaseLookup) Set {
	if c == nil {
		return existing.Clone()
	}
	if mode != Subtractive {
		return Combine(existing, []pick.Candidate{c}, mode, false)
	}

	remove := []pick.Candidate{c}
	if ancestor, ok := selectedAncestor(existing, c, h, bases); ok {
		remove = append(remove, ancestor)
	}

	out, removed := subtract(existing, remove)
	if !removed {
		return add(existing, []pick.Candidate{c}, false)
	}
	return out
}

func selectedAncestor(existing Set, c pick.Candidate, h pick.Hierarchy, bases pick.BaseLookup) (pick.Candidate, bool) {
	if h == nil {
		return nil, false
	}
	var base pick.Candidate
	if bases != nil {
		if b, ok := bases.SelectionBase(c); ok {
			base = b
		}
	}

	seen := map[pick.Candidate]bool{c: true}
	for p, ok := h.Parent(c); ok && p != nil; p, ok = h.Parent(p) {
		if p == base || seen[p] {
			break
		}
		seen[p] = true
		if existing.Contains(p) {
			return p, true
		}
	}
	return nil, false
}

func add(existing Set, incoming []pick.Candidate, fromRect bool) Set {
	if len(incoming) == 0 {
		return existing.Clone()
	}

	out := existing.Clone()
	for _, c := range incoming {
		if c == nil || out.Contains(c) {
			continue
		}
		out.Items = append(out.Items, c)
	}
	if len(out.Items) == 0 {
		return Set{}
	}

	if fromRect {
		out.Active = out.Items[0]
	} else if incoming[0] != nil {
		out.Active = incoming[0]
	}
	return out
}

// subtract returns existing without any of remove, reporting whether
// anything was removed. The active element is kept when it survives.
func subtract(existing Set, remove []pick.Candidate) (Set, bool) {
	var out Set
	removed := false
	for _, c := range existing.Items {
		if pick.Contains(remove, c) {
			removed = true
			continue
		}
		out.Items = append(out.Items, c)
	}

	switch {
	case len(out.Items) == 0:
		out.Active = nil
	case existing.Active != nil && out.Contains(existing.Active):
		out.Active = existing.Active
	default:
		out.Active = out.Items[0]
	}
	return out, removed
}
