package pick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleState_ZeroValue(t *testing.T) {
	var s CycleState
	assert.False(t, s.Valid())
	assert.False(t, s.Retained())
	assert.False(t, s.sameTopmost(0), "zero value never matches")
}

func TestCycleState_RetainSurvivesOneChange(t *testing.T) {
	var s CycleState
	s.store(1, 2)

	s.Retain()
	s.SelectionChanged()
	assert.True(t, s.Valid(), "retained change keeps fingerprints")
	assert.False(t, s.Retained(), "retain mark is consumed")

	s.SelectionChanged()
	assert.False(t, s.Valid(), "second change resets")
	top, prefix := s.Fingerprints()
	assert.Zero(t, top)
	assert.Zero(t, prefix)
}

func TestCycleState_Settle(t *testing.T) {
	var s CycleState
	s.store(1, 2)
	s.Retain()
	s.Settle()

	s.SelectionChanged()
	assert.False(t, s.Valid(), "settled retain no longer shields a later external change")
}

func TestCycleState_Reset(t *testing.T) {
	var s CycleState
	s.store(3, 4)
	s.Retain()
	s.Reset()

	assert.False(t, s.Valid())
	assert.False(t, s.Retained())
}

func TestRoll(t *testing.T) {
	assert.Equal(t, 7*33+5, Roll(7, 5))
	assert.NotEqual(t, Roll(Roll(1, 2), 3), Roll(Roll(1, 3), 2), "order matters")
}
