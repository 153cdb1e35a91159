package pick

import "errors"

// Diagnostics logged by the picking paths. They are never returned to
// callers: every failure recovers to a deterministic default.
var (
	// ErrExclusionIgnored means the nearest-candidate query returned a
	// candidate that was in its exclusion set.
	ErrExclusionIgnored = errors.New("nearest-candidate query ignored its exclusion set")

	// ErrPrimaryNotInStack means the active element was reported reachable
	// at the point but the overlap sequence ended before reaching it.
	ErrPrimaryNotInStack = errors.New("active selection not found in overlap sequence")
)
