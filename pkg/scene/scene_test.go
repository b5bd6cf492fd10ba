package scene

import (
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/intersect"
	"github.com/chazu/loft/pkg/surface"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

type builder struct {
	s   *Scene
	gen *ids.Generator
}

func newBuilder() *builder {
	return &builder{s: New(), gen: ids.NewGenerator()}
}

func (b *builder) point(x, y, z float64) ids.ID {
	id := b.gen.Next()
	b.s.Points[id] = &Point{ID: id, Name: "p" + id.String(), Position: v3.Vec{X: x, Y: y, Z: z}}
	return id
}

func (b *builder) points(ps []v3.Vec) []ids.ID {
	out := make([]ids.ID, len(ps))
	for i, p := range ps {
		out[i] = b.point(p.X, p.Y, p.Z)
	}
	return out
}

func (b *builder) surfaceC0(size surface.Size, cylinder bool) ids.ID {
	var ps []v3.Vec
	if cylinder {
		ps = surface.Cylinder(surface.KindC0, size, 1, 1, v3.Vec{})
	} else {
		ps = surface.Flat(surface.KindC0, size, 1, 1, v3.Vec{})
	}
	pts := b.points(ps)
	id := b.gen.Next()
	b.s.SurfacesC0[id] = &Surface{ID: id, Size: size, Points: pts, Cylinder: cylinder}
	return id
}

func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

func TestSelectionHasNoDuplicates(t *testing.T) {
	s := New()
	assert.True(t, s.Select(PointRef(1)))
	assert.False(t, s.Select(PointRef(1)))
	assert.True(t, s.Select(TorusRef(1)))
	assert.Equal(t, []ObjectRef{PointRef(1), TorusRef(1)}, s.Selection)

	assert.True(t, s.Deselect(PointRef(1)))
	assert.False(t, s.Deselect(PointRef(1)))
	assert.Equal(t, []ids.ID{1}, s.SelectedOf(KindTorus))
	assert.Empty(t, s.SelectedOf(KindPoint))
}

func TestCenter(t *testing.T) {
	b := newBuilder()
	p := b.point(2, 0, 0)
	tid := b.gen.Next()
	b.s.Tori[tid] = &Torus{ID: tid, Transform: geom.At(v3.Vec{Y: 2})}
	c := b.point(0, 0, 0)
	cid := b.gen.Next()
	b.s.BezierC0s[cid] = &BezierC0{ID: cid, Points: []ids.ID{c}}

	_, ok := b.s.Center()
	assert.False(t, ok)

	b.s.Select(PointRef(p))
	b.s.Select(TorusRef(tid))
	b.s.Select(BezierC0Ref(cid))
	center, ok := b.s.Center()
	require.True(t, ok)
	assert.Equal(t, v3.Vec{X: 1, Y: 1}, center)
}

// ---------------------------------------------------------------------------
// References
// ---------------------------------------------------------------------------

func TestReferencesAndReplace(t *testing.T) {
	b := newBuilder()
	p1, p2 := b.point(0, 0, 0), b.point(1, 0, 0)
	c0 := b.gen.Next()
	b.s.BezierC0s[c0] = &BezierC0{ID: c0, Points: []ids.ID{p1, p2, p1}}
	c2 := b.gen.Next()
	b.s.BezierC2s[c2] = &BezierC2{ID: c2, Points: []ids.ID{p1}, SelectedBernstein: NoSelection}

	assert.Equal(t, []ObjectRef{BezierC0Ref(c0), BezierC2Ref(c2)}, b.s.References(p1))
	assert.Equal(t, []ObjectRef{BezierC0Ref(c0)}, b.s.References(p2))

	changed := b.s.ReplacePoint(p1, p2)
	assert.Len(t, changed, 2)
	assert.Equal(t, []ids.ID{p2, p2, p2}, b.s.BezierC0s[c0].Points)
	assert.Equal(t, []ids.ID{p2}, b.s.BezierC2s[c2].Points)
	assert.False(t, b.s.IsReferenced(p1))
}

func TestDeleteClearsSelection(t *testing.T) {
	b := newBuilder()
	p := b.point(0, 0, 0)
	b.s.Select(PointRef(p))
	b.s.Delete(PointRef(p))
	assert.False(t, b.s.Exists(PointRef(p)))
	assert.Empty(t, b.s.Selection)
}

func TestRename(t *testing.T) {
	b := newBuilder()
	p := b.point(0, 0, 0)
	assert.True(t, b.s.Rename(PointRef(p), "apex"))
	assert.Equal(t, "apex", b.s.Name(PointRef(p)))
	assert.False(t, b.s.Rename(TorusRef(99), "x"))
	assert.Equal(t, "", b.s.Name(TorusRef(99)))
}

// ---------------------------------------------------------------------------
// Derived data
// ---------------------------------------------------------------------------

func TestRebuildBezierC2DropsStaleSelection(t *testing.T) {
	b := newBuilder()
	pts := b.points([]v3.Vec{{}, {X: 1}, {X: 2}, {X: 3}, {X: 4}})
	c := &BezierC2{ID: b.gen.Next(), Points: pts, SelectedBernstein: 6}
	b.s.RebuildBezierC2(c)
	assert.Len(t, c.Bernstein, 7)
	assert.Equal(t, 6, c.SelectedBernstein)

	c.Points = pts[:4]
	b.s.RebuildBezierC2(c)
	assert.Len(t, c.Bernstein, 4)
	assert.Equal(t, NoSelection, c.SelectedBernstein)
}

func TestEvaluatorCylinderWraps(t *testing.T) {
	b := newBuilder()
	id := b.surfaceC0(surface.Size{U: 2, V: 1}, true)
	ev, err := b.s.Evaluator(SurfaceC0Ref(id))
	require.NoError(t, err)
	wu, wv := ev.Wrap()
	assert.True(t, wu)
	assert.False(t, wv)
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		assert.True(t, geom.NearlyEqual(ev.Eval(0, v), ev.Eval(2, v), 1e-12))
	}

	_, err = b.s.Evaluator(PointRef(1))
	assert.Error(t, err)
	_, err = b.s.Evaluator(TorusRef(1234))
	assert.Error(t, err)
}

func TestTextureComposesIntersections(t *testing.T) {
	b := newBuilder()
	tid := b.gen.Next()
	b.s.Tori[tid] = &Torus{ID: tid}
	torus := TorusRef(tid)

	half := &intersect.Bitmap{Size: 2, Bits: []bool{true, true, false, false}}
	left := &intersect.Bitmap{Size: 2, Bits: []bool{true, false, true, false}}
	b.s.Intersections[10] = &Intersection{ID: 10, First: torus, Second: torus, UVTexture: half, STTexture: left, UVDraw: intersect.DrawTrue, STDraw: intersect.DrawBoth}
	b.s.Intersections[11] = &Intersection{ID: 11, First: SurfaceC0Ref(5), Second: torus, STTexture: left, STDraw: intersect.DrawFalse}

	assert.Equal(t, []ids.ID{10, 11}, b.s.IntersectionsOf(torus))
	assert.Equal(t, []float32{0, 1, 0, 0}, b.s.Texture(torus, 2))
	assert.Equal(t, []float32{1, 1, 1, 1}, b.s.Texture(TorusRef(999), 2))
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestValidateCleanScene(t *testing.T) {
	b := newBuilder()
	b.surfaceC0(surface.Size{U: 1, V: 2}, false)
	pts := b.points([]v3.Vec{{}, {X: 1}, {X: 2, Y: 1}, {X: 3}})
	c := &BezierC2{ID: b.gen.Next(), Points: pts, SelectedBernstein: NoSelection}
	b.s.RebuildBezierC2(c)
	b.s.BezierC2s[c.ID] = c
	ci := &BezierInt{ID: b.gen.Next(), Points: pts}
	b.s.RebuildBezierInt(ci)
	b.s.BezierInts[ci.ID] = ci
	b.s.Select(BezierC2Ref(c.ID))

	assert.Empty(t, b.s.Validate())
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *builder)
		substr string
	}{
		{"missing point", func(b *builder) {
			id := b.gen.Next()
			b.s.BezierC0s[id] = &BezierC0{ID: id, Points: []ids.ID{999}}
		}, "missing point 999"},
		{"stale cache", func(b *builder) {
			pts := b.points([]v3.Vec{{}, {X: 1}, {X: 2}, {X: 3}})
			c := &BezierC2{ID: b.gen.Next(), Points: pts}
			b.s.RebuildBezierC2(c)
			b.s.BezierC2s[c.ID] = c
			b.s.Points[pts[0]].Position = v3.Vec{Y: 5}
		}, "Bernstein cache"},
		{"grid length", func(b *builder) {
			id := b.surfaceC0(surface.Size{U: 1, V: 1}, false)
			b.s.SurfacesC0[id].Size = surface.Size{U: 2, V: 1}
		}, "grid length"},
		{"duplicate id", func(b *builder) {
			p := b.point(0, 0, 0)
			b.s.Tori[p] = &Torus{ID: p}
		}, "id already used"},
		{"dangling intersection", func(b *builder) {
			id := b.gen.Next()
			b.s.Intersections[id] = &Intersection{ID: id, First: TorusRef(500), Second: TorusRef(500)}
		}, "intersects missing"},
		{"dangling selection", func(b *builder) {
			b.s.Selection = append(b.s.Selection, TorusRef(77))
		}, "does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder()
			tt.mutate(b)
			errs := b.s.Validate()
			assert.True(t, hasError(errs, tt.substr), "findings: %v", errs)
		})
	}
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

func TestSnapshotRoundTrip(t *testing.T) {
	b := newBuilder()
	b.surfaceC0(surface.Size{U: 1, V: 1}, false)
	pts := b.points([]v3.Vec{{}, {X: 1}, {X: 2, Y: 1}, {X: 3}})
	c := &BezierInt{ID: b.gen.Next(), Points: pts}
	b.s.RebuildBezierInt(c)
	b.s.BezierInts[c.ID] = c
	b.s.Cursor = v3.Vec{Z: 3}
	b.s.Select(BezierIntRef(c.ID))

	snap := b.s.Snapshot()
	again := FromSnapshot(snap).Snapshot()
	assert.Equal(t, snap, again)
	assert.Equal(t, c.ID, snap.MaxID())

	// The snapshot is detached from the scene.
	snap.BezierInts[0].Points[0] = 12345
	assert.Equal(t, pts[0], b.s.BezierInts[c.ID].Points[0])
}

func TestRefreshRecomputesCaches(t *testing.T) {
	b := newBuilder()
	pts := b.points([]v3.Vec{{}, {X: 1}, {X: 2}, {X: 3}})
	b.s.BezierC2s[100] = &BezierC2{ID: 100, Points: pts, SelectedBernstein: NoSelection}
	require.True(t, hasError(b.s.Validate(), "Bernstein cache"))
	b.s.Refresh()
	assert.Empty(t, Errors(b.s.Validate()))
}
