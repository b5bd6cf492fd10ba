package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Ones is the identity scale.
var Ones = v3.Vec{X: 1, Y: 1, Z: 1}

// Lerp returns a + t*(b-a).
func Lerp(a, b v3.Vec, t float64) v3.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Mean returns the arithmetic mean of ps and false when ps is empty.
func Mean(ps []v3.Vec) (v3.Vec, bool) {
	if len(ps) == 0 {
		return v3.Vec{}, false
	}
	var sum v3.Vec
	for _, p := range ps {
		sum = sum.Add(p)
	}
	return sum.DivScalar(float64(len(ps))), true
}

// Distance returns |a-b|.
func Distance(a, b v3.Vec) float64 {
	return a.Sub(b).Length()
}

// MulElem multiplies a and b component-wise.
func MulElem(a, b v3.Vec) v3.Vec {
	return v3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// NearlyEqual reports whether a and b differ by at most tol in every component.
func NearlyEqual(a, b v3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// IsFinite reports whether no component of v is NaN or infinite.
func IsFinite(v v3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
