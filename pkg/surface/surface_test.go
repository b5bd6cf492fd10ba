package surface

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/loft/pkg/geom"
)

func mustPatches(t *testing.T, kind Kind, stored []v3.Vec, size Size, cylinder bool) *Patches {
	t.Helper()
	grid, err := Expand(kind, stored, size, cylinder)
	require.NoError(t, err)
	p, err := NewPatches(kind, grid, size, cylinder, false)
	require.NoError(t, err)
	return p
}

func TestGridLen(t *testing.T) {
	tests := []struct {
		kind     Kind
		size     Size
		cylinder bool
		want     int
	}{
		{KindC0, Size{1, 1}, false, 16},
		{KindC0, Size{2, 3}, false, 7 * 10},
		{KindC0, Size{2, 3}, true, 6 * 10},
		{KindC2, Size{1, 1}, false, 16},
		{KindC2, Size{3, 2}, false, 6 * 5},
		{KindC2, Size{3, 2}, true, 3 * 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GridLen(tt.kind, tt.size, tt.cylinder), "%s %v cylinder=%t", tt.kind, tt.size, tt.cylinder)
	}
}

func TestExpandRejectsWrongLength(t *testing.T) {
	_, err := Expand(KindC0, make([]int, 15), Size{1, 1}, false)
	assert.ErrorIs(t, err, ErrGridLength)
	_, err = Expand(KindC2, make([]int, 10), Size{2, 2}, true)
	assert.ErrorIs(t, err, ErrGridLength)
	_, err = Expand(KindC0, nil, Size{0, 1}, false)
	assert.ErrorIs(t, err, ErrGridLength)
}

func TestDetectWrap(t *testing.T) {
	ids := func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	size := Size{2, 1}

	flat, err := Expand(KindC0, ids(GridLen(KindC0, size, false)), size, false)
	require.NoError(t, err)
	u, v := DetectWrap(KindC0, flat, size)
	assert.False(t, u)
	assert.False(t, v)

	cyl, err := Expand(KindC0, ids(GridLen(KindC0, size, true)), size, true)
	require.NoError(t, err)
	u, v = DetectWrap(KindC0, cyl, size)
	assert.True(t, u)
	assert.False(t, v)

	size = Size{3, 1}
	cyl2, err := Expand(KindC2, ids(GridLen(KindC2, size, true)), size, true)
	require.NoError(t, err)
	u, v = DetectWrap(KindC2, cyl2, size)
	assert.True(t, u)
	assert.False(t, v)
}

func TestFlatC0IsBilinear(t *testing.T) {
	size := Size{2, 1}
	p := mustPatches(t, KindC0, Flat(KindC0, size, 2, 1, v3.Vec{}), size, false)
	for _, uv := range []geom.UV{{0, 0}, {0.5, 0.5}, {1.25, 0.1}, {2, 1}} {
		got := p.Eval(uv.U, uv.V)
		assert.True(t, geom.NearlyEqual(got, v3.Vec{X: uv.U, Y: uv.V}, 1e-12), "Eval(%v) = %v", uv, got)
	}
	assert.Equal(t, geom.UV{U: 2, V: 1}, p.Range())
}

func TestC0CylinderSeam(t *testing.T) {
	size := Size{2, 2}
	p := mustPatches(t, KindC0, Cylinder(KindC0, size, 1, 2, v3.Vec{}), size, true)
	wu, _ := p.Wrap()
	require.True(t, wu)
	for i := 0; i <= 20; i++ {
		v := float64(i) / 10
		assert.True(t, geom.NearlyEqual(p.Eval(0, v), p.Eval(2, v), 1e-12), "v=%v", v)
	}
}

func TestC2FlatStaysInPlane(t *testing.T) {
	size := Size{2, 2}
	p := mustPatches(t, KindC2, Flat(KindC2, size, 4, 4, v3.Vec{Z: 1}), size, false)
	prev := math.Inf(-1)
	for i := 0; i <= 20; i++ {
		got := p.Eval(float64(i)/10, 1)
		assert.InDelta(t, 1, got.Z, 1e-12)
		assert.Greater(t, got.X, prev)
		prev = got.X
	}
}

func TestC2CylinderSeamIsContinuous(t *testing.T) {
	size := Size{4, 1}
	p := mustPatches(t, KindC2, Cylinder(KindC2, size, 1, 1, v3.Vec{}), size, true)
	assert.True(t, geom.NearlyEqual(p.Eval(0, 0.5), p.Eval(4, 0.5), 1e-12))
}

func TestGradientAndNormalOnPlane(t *testing.T) {
	size := Size{1, 1}
	p := mustPatches(t, KindC0, Flat(KindC0, size, 1, 1, v3.Vec{}), size, false)
	for _, uv := range []geom.UV{{0, 0}, {0.5, 0.5}, {1, 1}} {
		du, dv := Gradient(p, uv.U, uv.V)
		assert.True(t, geom.NearlyEqual(du, v3.Vec{X: 1}, 1e-6), "du at %v = %v", uv, du)
		assert.True(t, geom.NearlyEqual(dv, v3.Vec{Y: 1}, 1e-6), "dv at %v = %v", uv, dv)
		assert.True(t, geom.NearlyEqual(Normal(p, uv.U, uv.V), v3.Vec{Z: 1}, 1e-6))
	}
}

func TestTorus(t *testing.T) {
	tr := Torus{Major: 1, Minor: 0.25, Transform: geom.At(v3.Vec{X: 1})}
	assert.True(t, geom.NearlyEqual(tr.Eval(0, 0), v3.Vec{X: 2.25}, 1e-12))
	assert.True(t, geom.NearlyEqual(tr.Eval(math.Pi/2, math.Pi/2), v3.Vec{X: 1, Y: 1, Z: 0.25}, 1e-12))
	wu, wv := tr.Wrap()
	assert.True(t, wu && wv)

	// Outward normal at the outer equator, across the seam.
	n := Normal(tr, 0, 0)
	assert.True(t, geom.NearlyEqual(n, v3.Vec{X: 1}, 1e-6), "normal %v", n)
	du, _ := Gradient(tr, 0, 0)
	assert.InDelta(t, 1.25, du.Length(), 1e-6)
}
