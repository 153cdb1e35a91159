package replay

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/scene"
)

func loadCycle(t *testing.T) (*Script, *scene.Scene) {
	t.Helper()
	script, err := Load(filepath.Join("testdata", "cycle.yaml"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("testdata", "group.yaml"), script.ScenePath())

	sc, err := scene.Load(script.ScenePath())
	require.NoError(t, err)
	return script, sc
}

func TestRunner_CycleScript(t *testing.T) {
	script, sc := loadCycle(t)

	report, err := NewRunner().Run(context.Background(), sc, script)
	require.NoError(t, err)
	require.Len(t, report.Steps, len(script.Steps))

	for _, st := range report.Steps {
		assert.True(t, st.OK, "step %d (%s): got %v want %v", st.Index, st.Kind, st.Selection, st.Want)
	}
	assert.True(t, report.Passed())
}

func TestRunner_ReportsMismatch(t *testing.T) {
	_, sc := loadCycle(t)
	script, err := Parse([]byte(`
steps:
  - click: [15, 15]
    expect: [Leaf1]
  - click: [100, 100]
    expect: []
`))
	require.NoError(t, err)

	report, err := NewRunner().Run(context.Background(), sc, script)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failures)
	assert.False(t, report.Passed())

	first := report.Steps[0]
	assert.False(t, first.OK)
	assert.Equal(t, []string{"Root"}, first.Selection)
	assert.Equal(t, "Root", first.Active)

	assert.True(t, report.Steps[1].OK, "empty expectation matches empty selection")
}

func TestRunner_UnknownObject(t *testing.T) {
	_, sc := loadCycle(t)
	script, err := Parse([]byte("steps:\n  - select: [Nope]\n"))
	require.NoError(t, err)

	_, err = NewRunner().Run(context.Background(), sc, script)
	assert.ErrorIs(t, err, scene.ErrObjectNotFound)
}

func TestRunner_MenuEntryOutOfRange(t *testing.T) {
	_, sc := loadCycle(t)
	script, err := Parse([]byte("steps:\n  - menu: {at: [15, 15], choose: 9}\n"))
	require.NoError(t, err)

	_, err = NewRunner().Run(context.Background(), sc, script)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestRunner_Cancelled(t *testing.T) {
	script, sc := loadCycle(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner().Run(ctx, sc, script)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Steps)
}

func TestParse_InvalidSteps(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"two actions", "steps:\n  - click: [1, 1]\n    blur: true\n"},
		{"no action", "steps:\n  - mods: shift\n"},
		{"short point", "steps:\n  - click: [1]\n"},
		{"bad drag", "steps:\n  - drag: {from: [0, 0], to: [1]}\n"},
		{"bad menu", "steps:\n  - menu: {at: []}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidStep)
		})
	}
}

func TestStep_Modifiers(t *testing.T) {
	tests := []struct {
		mods string
		want key.Modifier
	}{
		{"", key.ModNone},
		{"shift", key.ModShift},
		{"action", key.ModMeta},
		{"action+shift", key.ModMeta | key.ModShift},
		{"ctrl, alt", key.ModCtrl | key.ModAlt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Step{Mods: tt.mods}.Modifiers(key.ModMeta), tt.mods)
	}
}
