package pick

// CycleState is the memory the resolver keeps between clicks.
//
// The zero value is ready to use and behaves as if no click has happened.
// One CycleState belongs to one viewport.
type CycleState struct {
	previousTopmost int
	previousPrefix  int

	// valid is false until the first store and after every reset, so a real
	// fingerprint of zero is never mistaken for "unchanged".
	valid bool

	// retain suppresses exactly one SelectionChanged reset: the one caused
	// by committing the resolver's own choice.
	retain bool
}

// Fingerprints returns the stored topmost and prefix fingerprints.
func (s *CycleState) Fingerprints() (topmost, prefix int) {
	return s.previousTopmost, s.previousPrefix
}

// Valid reports whether the state holds fingerprints from a previous pick.
func (s *CycleState) Valid() bool {
	return s.valid
}

// Reset forgets the previous pick.
func (s *CycleState) Reset() {
	s.previousTopmost = 0
	s.previousPrefix = 0
	s.valid = false
	s.retain = false
}

// Retain marks the next selection change as originating from the resolver.
func (s *CycleState) Retain() {
	s.retain = true
}

// Retained reports whether a resolver commit is pending.
func (s *CycleState) Retained() bool {
	return s.retain
}

// SelectionChanged must be called for every observed selection change. It
// resets the state unless the change was announced with Retain, in which
// case it only consumes the retain mark.
func (s *CycleState) SelectionChanged() {
	if s.retain {
		s.retain = false
		return
	}
	s.previousTopmost = 0
	s.previousPrefix = 0
	s.valid = false
}

// Settle drops a retain mark that no selection change consumed, which
// happens when a click re-selects what was already selected.
func (s *CycleState) Settle() {
	s.retain = false
}

func (s *CycleState) store(topmost, prefix int) {
	s.previousTopmost = topmost
	s.previousPrefix = prefix
	s.valid = true
}

func (s *CycleState) sameTopmost(fp int) bool {
	return s.valid && s.previousTopmost == fp
}

func (s *CycleState) samePrefix(fp int) bool {
	return s.valid && s.previousPrefix == fp
}
