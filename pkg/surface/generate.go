package surface

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Flat lays out a stored control grid on a width×length rectangle in the
// z = origin.Z plane with its first corner at origin. u runs along x.
func Flat(kind Kind, size Size, width, length float64, origin v3.Vec) []v3.Vec {
	rows, cols := Dims(kind, size, false)
	out := make([]v3.Vec, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, origin.Add(v3.Vec{
				X: width * float64(r) / float64(rows-1),
				Y: length * float64(c) / float64(cols-1),
			}))
		}
	}
	return out
}

// Cylinder lays out a stored control grid around the z axis through
// origin. u runs around the circle and v along the axis; the seam rows are
// not stored.
func Cylinder(kind Kind, size Size, radius, height float64, origin v3.Vec) []v3.Vec {
	rows, cols := Dims(kind, size, true)
	out := make([]v3.Vec, 0, rows*cols)
	for r := 0; r < rows; r++ {
		a := 2 * math.Pi * float64(r) / float64(rows)
		for c := 0; c < cols; c++ {
			out = append(out, origin.Add(v3.Vec{
				X: radius * math.Cos(a),
				Y: radius * math.Sin(a),
				Z: height * float64(c) / float64(cols-1),
			}))
		}
	}
	return out
}
