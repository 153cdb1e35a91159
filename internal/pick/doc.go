// Package pick resolves which object a click in the viewport means when
// several objects overlap under the pointer.
//
// The package never computes geometry. It consumes opaque Candidate values
// from collaborator queries (Picker, BaseLookup) and only orders, hashes
// and compares them.
//
// # Overlap Enumeration
//
// An Overlap is a pull iterator over everything under a screen point, front
// to back. Each Next issues one nearest-candidate query excluding every
// candidate already yielded:
//
//	seq := enum.Overlap(p)
//	for c, ok := seq.Next(); ok; c, ok = seq.Next() {
//	    ...
//	}
//
// A query that returns an excluded candidate violates its contract; the
// sequence logs ErrExclusionIgnored and ends instead of looping.
//
// # Click Cycling
//
// Resolver.Pick decides which single candidate a click selects. The first
// click selects the topmost object's selection base (group root) if it has
// one, otherwise the topmost object. Clicking again at the same spot walks
// down the stack one candidate at a time, visiting the base once, then wraps
// around. Clicking somewhere whose topmost object differs restarts.
//
// Between clicks only two integers are remembered in CycleState: the
// fingerprint of the previous topmost candidate and a rolling fingerprint of
// the stack prefix up to the previous choice. Any selection change that did
// not come from the resolver must call CycleState.SelectionChanged so the
// next click starts over.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Enumerators, resolvers
// and cycle state are driven from the viewport's input goroutine.
package pick
