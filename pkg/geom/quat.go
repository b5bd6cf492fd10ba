package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/num/quat"
)

// Identity is the quaternion of the null rotation.
var Identity = quat.Number{Real: 1}

// AxisAngle returns the unit quaternion rotating by angle radians about axis.
func AxisAngle(axis v3.Vec, angle float64) quat.Number {
	n := axis.Length()
	if n == 0 {
		return Identity
	}
	axis = axis.DivScalar(n)
	s := math.Sin(angle / 2)
	return quat.Number{Real: math.Cos(angle / 2), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// Normalize scales q to unit length and reports false for the zero quaternion.
func Normalize(q quat.Number) (quat.Number, bool) {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return Identity, false
	}
	return quat.Scale(1/n, q), true
}

// Rotate applies the rotation q to p. q is assumed to be a unit quaternion.
func Rotate(q quat.Number, p v3.Vec) v3.Vec {
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: p.X, Jmag: p.Y, Kmag: p.Z}), quat.Conj(q))
	return v3.Vec{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// ToAxisAngle decomposes a unit quaternion. The axis of the null rotation is
// reported as +Z with a zero angle.
func ToAxisAngle(q quat.Number) (v3.Vec, float64) {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	s := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if s < 1e-12 {
		return v3.Vec{Z: 1}, 0
	}
	angle := 2 * math.Atan2(s, q.Real)
	return v3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}, angle
}

// FromEuler builds the rotation Rz(z)·Ry(y)·Rx(x) from angles in radians.
func FromEuler(x, y, z float64) quat.Number {
	qx := AxisAngle(v3.Vec{X: 1}, x)
	qy := AxisAngle(v3.Vec{Y: 1}, y)
	qz := AxisAngle(v3.Vec{Z: 1}, z)
	return quat.Mul(qz, quat.Mul(qy, qx))
}

// ToEuler is the inverse of FromEuler. Near gimbal lock the y angle is
// clamped to ±π/2.
func ToEuler(q quat.Number) (x, y, z float64) {
	w, i, j, k := q.Real, q.Imag, q.Jmag, q.Kmag
	x = math.Atan2(2*(w*i+j*k), 1-2*(i*i+j*j))
	sy := 2 * (w*j - k*i)
	sy = math.Max(-1, math.Min(1, sy))
	y = math.Asin(sy)
	z = math.Atan2(2*(w*k+i*j), 1-2*(j*j+k*k))
	return x, y, z
}

// QuatNearlyEqual compares two rotations, treating q and -q as equal.
func QuatNearlyEqual(a, b quat.Number, tol float64) bool {
	d1 := quat.Abs(quat.Sub(a, b))
	d2 := quat.Abs(quat.Add(a, b))
	return math.Min(d1, d2) <= tol
}
