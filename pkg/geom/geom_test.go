package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/num/quat"
)

const tol = 1e-9

func randVec(rng *rand.Rand) v3.Vec {
	return v3.Vec{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2, Z: rng.Float64()*4 - 2}
}

func TestRotateAxisAngle(t *testing.T) {
	tests := []struct {
		name  string
		axis  v3.Vec
		angle float64
		in    v3.Vec
		want  v3.Vec
	}{
		{"z quarter turn", v3.Vec{Z: 1}, math.Pi / 2, v3.Vec{X: 1}, v3.Vec{Y: 1}},
		{"x half turn", v3.Vec{X: 1}, math.Pi, v3.Vec{Y: 1}, v3.Vec{Y: -1}},
		{"unnormalised axis", v3.Vec{Y: 5}, math.Pi / 2, v3.Vec{Z: 1}, v3.Vec{X: 1}},
		{"zero axis", v3.Vec{}, 1, v3.Vec{X: 1, Y: 2, Z: 3}, v3.Vec{X: 1, Y: 2, Z: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(AxisAngle(tt.axis, tt.angle), tt.in)
			assert.True(t, NearlyEqual(got, tt.want, tol), "got %v want %v", got, tt.want)
		})
	}
}

func TestRotatePreservesLength(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		q := AxisAngle(randVec(rng), rng.Float64()*2*math.Pi)
		p := randVec(rng)
		assert.InDelta(t, p.Length(), Rotate(q, p).Length(), 1e-9)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 500; i++ {
		x := (rng.Float64()*2 - 1) * math.Pi
		y := (rng.Float64()*2 - 1) * (math.Pi/2 - 0.01)
		z := (rng.Float64()*2 - 1) * math.Pi
		q := FromEuler(x, y, z)
		gx, gy, gz := ToEuler(q)
		assert.True(t, QuatNearlyEqual(q, FromEuler(gx, gy, gz), 1e-9))
	}
}

func TestFromEulerOrder(t *testing.T) {
	// Rz·Ry·Rx: x is applied first.
	q := FromEuler(math.Pi/2, 0, math.Pi/2)
	got := Rotate(q, v3.Vec{Y: 1})
	// Rx maps +Y to +Z, Rz leaves +Z alone.
	assert.True(t, NearlyEqual(got, v3.Vec{Z: 1}, tol), "got %v", got)
}

func TestToAxisAngle(t *testing.T) {
	axis, angle := ToAxisAngle(AxisAngle(v3.Vec{X: 1, Y: 1}, 0.7))
	assert.InDelta(t, 0.7, angle, tol)
	assert.True(t, NearlyEqual(axis, v3.Vec{X: 1, Y: 1}.Normalize(), tol))

	axis, angle = ToAxisAngle(Identity)
	assert.Equal(t, 0.0, angle)
	assert.Equal(t, v3.Vec{Z: 1}, axis)
}

func TestNormalize(t *testing.T) {
	q, ok := Normalize(quat.Number{Real: 2})
	assert.True(t, ok)
	assert.Equal(t, Identity, q)

	_, ok = Normalize(quat.Number{})
	assert.False(t, ok)
}

func TestTransformApply(t *testing.T) {
	tr := Transform{
		Translation: v3.Vec{X: 1},
		Rotation:    AxisAngle(v3.Vec{Z: 1}, math.Pi/2),
		Scale:       v3.Vec{X: 2, Y: 1, Z: 1},
	}
	got := tr.Apply(v3.Vec{X: 1})
	assert.True(t, NearlyEqual(got, v3.Vec{X: 1, Y: 2}, tol), "got %v", got)
	assert.Equal(t, v3.Vec{X: 3, Y: 4, Z: 5}, IdentityTransform().Apply(v3.Vec{X: 3, Y: 4, Z: 5}))
}

func TestGroupTransformComposition(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 200; i++ {
		center := randVec(rng)
		p := randVec(rng)
		s1, s2 := 0.5+rng.Float64(), 0.5+rng.Float64()
		g1 := GroupTransform{Translation: randVec(rng), Rotation: AxisAngle(randVec(rng), rng.Float64()), Scale: Ones.MulScalar(s1)}
		g2 := GroupTransform{Translation: randVec(rng), Rotation: AxisAngle(randVec(rng), rng.Float64()), Scale: Ones.MulScalar(s2)}

		twice := g2.ApplyPosition(g1.ApplyPosition(p, center), center)

		// With uniform scale, R2·(R1·x·s1 + y)·s2 collapses into a single
		// rotation R2R1 and scale s1s2 after folding the first stage's
		// offset into the translation.
		q := quat.Mul(g2.Rotation, g1.Rotation)
		shift := Rotate(quat.Conj(g1.Rotation), g2.Translation.MulScalar(1/s1))
		composed := GroupTransform{
			Translation: g1.Translation.Add(shift),
			Rotation:    q,
			Scale:       Ones.MulScalar(s1 * s2),
		}
		once := composed.ApplyPosition(p, center)
		assert.True(t, NearlyEqual(twice, once, 1e-6), "twice %v once %v", twice, once)
	}
}

func TestGroupTransformApplyTo(t *testing.T) {
	g := GroupTransform{Translation: v3.Vec{X: 1}, Rotation: AxisAngle(v3.Vec{Z: 1}, math.Pi/2), Scale: Ones.MulScalar(2)}
	tr := g.ApplyTo(IdentityTransform(), v3.Vec{})
	assert.True(t, NearlyEqual(tr.Translation, v3.Vec{Y: 2}, tol), "got %v", tr.Translation)
	assert.True(t, QuatNearlyEqual(tr.Rotation, g.Rotation, tol))
	assert.Equal(t, v3.Vec{X: 2, Y: 2, Z: 2}, tr.Scale)
}

func TestWrapParam(t *testing.T) {
	tests := []struct {
		in, period, want float64
	}{
		{0.5, 1, 0.5},
		{1.25, 1, 0.25},
		{-0.25, 1, 0.75},
		{0, 2, 0},
		{2, 2, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapParam(tt.in, tt.period), tol, "WrapParam(%v, %v)", tt.in, tt.period)
	}
}

func TestPeriodicDistance(t *testing.T) {
	assert.InDelta(t, 0.2, PeriodicDistance(0.1, 0.9, 1), tol)
	assert.InDelta(t, 0.8, PeriodicDistance(0.1, 0.9, 0), tol)
}

func TestMean(t *testing.T) {
	_, ok := Mean(nil)
	assert.False(t, ok)
	m, ok := Mean([]v3.Vec{{X: 1}, {X: 3, Y: 2}})
	assert.True(t, ok)
	assert.Equal(t, v3.Vec{X: 2, Y: 1}, m)
}
