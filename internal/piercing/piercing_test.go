package piercing

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/metrics"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/selection"
)

type node struct {
	name string
}

func (n *node) Fingerprint() int { return len(n.name) }

func (n *node) String() string { return n.name }

// stack answers every point with the same front-to-back list.
type stack []pick.Candidate

func (s stack) Nearest(_ geom.Point, exclude []pick.Candidate) (pick.Candidate, bool) {
	for _, c := range s {
		if !pick.Contains(exclude, c) {
			return c, true
		}
	}
	return nil, false
}

type family map[pick.Candidate]pick.Candidate

func (f family) Parent(c pick.Candidate) (pick.Candidate, bool) {
	p, ok := f[c]
	return p, ok
}

func (f family) SelectionBase(c pick.Candidate) (pick.Candidate, bool) {
	for {
		p, ok := f[c]
		if !ok {
			return c, true
		}
		c = p
	}
}

type recordingSink struct {
	parents  []pick.Candidate
	children []pick.Candidate
	previews int
	clears   int
}

func (r *recordingSink) Preview(parents, children []pick.Candidate) {
	r.parents, r.children = parents, children
	r.previews++
}

func (r *recordingSink) ClearPreview() {
	r.parents, r.children = nil, nil
	r.clears++
}

type fixture struct {
	ctx   *Context
	store *selection.Store
	sink  *recordingSink
	reg   *prometheus.Registry

	root, group, leaf, other *node
}

// root > group > leaf overlap at every point, other stands alone.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		root:  &node{name: "root"},
		group: &node{name: "group"},
		leaf:  &node{name: "leaf"},
		other: &node{name: "other"},
		store: selection.NewStore(),
		sink:  &recordingSink{},
		reg:   prometheus.NewRegistry(),
	}
	h := family{f.leaf: f.group, f.group: f.root}
	enum := pick.NewEnumerator(stack{f.leaf, f.group, f.root})
	f.ctx = New(enum, f.store,
		WithHierarchy(h, h),
		WithPreviewSink(f.sink),
		WithMetrics(metrics.New(f.reg)),
	)
	return f
}

func TestContext_Open(t *testing.T) {
	f := newFixture(t)
	f.store.Replace(selection.NewSet(f.other), selection.SourceScript)

	snap := f.ctx.Open(geom.Pt(3, 4))
	require.True(t, f.ctx.IsOpen())
	assert.Equal(t, geom.Pt(3, 4), snap.Point)
	assert.Equal(t, []pick.Candidate{f.leaf, f.group, f.root}, f.ctx.Items())
	assert.True(t, snap.Prior.Equal(selection.NewSet(f.other)))
}

func TestContext_PreviewDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	f.store.Replace(selection.NewSet(f.other), selection.SourceScript)
	f.ctx.Open(geom.Pt(0, 0))

	got := f.ctx.Preview(f.group, selection.Additive)
	assert.Equal(t, []pick.Candidate{f.other, f.group}, got.Items)
	assert.Equal(t, []pick.Candidate{f.other, f.group}, f.sink.parents)
	assert.Equal(t, []pick.Candidate{f.group}, f.sink.children)
	assert.True(t, f.store.Current().Equal(selection.NewSet(f.other)))
}

func TestContext_Rollback(t *testing.T) {
	f := newFixture(t)
	prior := selection.Set{Items: []pick.Candidate{f.other, f.root}, Active: f.root}
	f.store.Replace(prior, selection.SourceScript)

	f.ctx.Open(geom.Pt(0, 0))
	f.ctx.Preview(f.leaf, selection.Normal)
	f.ctx.Dispose()

	assert.True(t, f.store.Current().Equal(prior), "selection restored verbatim")
	assert.Nil(t, f.sink.parents, "preview cleared")
	assert.Equal(t, 1, f.sink.clears)
	assert.False(t, f.ctx.IsOpen())

	expected := `
# HELP scenepick_piercing_menu_total Piercing menu sessions by result
# TYPE scenepick_piercing_menu_total counter
scenepick_piercing_menu_total{result="rollback"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(expected), "scenepick_piercing_menu_total"))
}

func TestContext_RollbackAfterExternalChange(t *testing.T) {
	f := newFixture(t)
	f.ctx.Open(geom.Pt(0, 0))

	// Something else changed the selection while the menu was open.
	f.store.Replace(selection.NewSet(f.other), selection.SourceScript)
	f.ctx.Dispose()

	assert.True(t, f.store.Current().Empty(), "prior selection wins on rollback")
}

func TestContext_Commit(t *testing.T) {
	f := newFixture(t)
	f.store.Replace(selection.NewSet(f.other), selection.SourceScript)
	f.ctx.Open(geom.Pt(0, 0))

	f.ctx.Preview(f.group, selection.Normal)
	assert.True(t, f.ctx.Commit(f.group, selection.Normal))
	assert.True(t, f.ctx.Committed())
	assert.True(t, f.store.Current().Equal(selection.NewSet(f.group)))

	f.ctx.Dispose()
	assert.True(t, f.store.Current().Equal(selection.NewSet(f.group)), "commit survives dispose")
	assert.Equal(t, 1, f.sink.clears)
}

func TestContext_CommitEmptyResult(t *testing.T) {
	f := newFixture(t)
	f.store.Replace(selection.NewSet(f.leaf), selection.SourceScript)
	f.ctx.Open(geom.Pt(0, 0))

	f.ctx.Commit(f.leaf, selection.Subtractive)
	f.ctx.Dispose()

	assert.True(t, f.store.Current().Empty(), "empty commit is not rolled back")
	assert.Equal(t, 1, f.sink.clears)
}

func TestContext_CommitAgainstPrior(t *testing.T) {
	f := newFixture(t)
	f.store.Replace(selection.NewSet(f.other), selection.SourceScript)
	f.ctx.Open(geom.Pt(0, 0))

	f.ctx.Commit(f.leaf, selection.Additive)
	f.ctx.Commit(f.group, selection.Additive)

	assert.Equal(t, []pick.Candidate{f.other, f.group}, f.store.Current().Items)
}

func TestContext_SubtractiveWalksAncestors(t *testing.T) {
	f := newFixture(t)
	f.store.Replace(selection.NewSet(f.group, f.other), selection.SourceScript)
	f.ctx.Open(geom.Pt(0, 0))

	got := f.ctx.Preview(f.leaf, selection.Subtractive)
	assert.Equal(t, []pick.Candidate{f.other}, got.Items)
}

func TestContext_ClosedIsNoop(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.ctx.Preview(f.leaf, selection.Normal).Empty())
	assert.False(t, f.ctx.Commit(f.leaf, selection.Normal))
	f.ctx.Dispose()

	assert.Zero(t, f.sink.previews)
	assert.Zero(t, f.sink.clears)
	assert.True(t, f.store.Current().Empty())
}

func TestContext_ReopenDisposes(t *testing.T) {
	f := newFixture(t)
	f.ctx.Open(geom.Pt(0, 0))
	f.ctx.Preview(f.leaf, selection.Normal)
	f.ctx.Open(geom.Pt(1, 1))

	assert.Equal(t, 1, f.sink.clears)
	assert.True(t, f.ctx.IsOpen())
	assert.Equal(t, geom.Pt(1, 1), f.ctx.Snapshot().Point)
}
