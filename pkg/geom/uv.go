package geom

import "math"

// UV is a point in a two-parameter domain.
type UV struct {
	U, V float64
}

// Sub returns a-b.
func (a UV) Sub(b UV) UV {
	return UV{a.U - b.U, a.V - b.V}
}

// WrapParam maps x into [0, period). Values already inside are returned
// unchanged so that exact boundaries survive the round trip.
func WrapParam(x, period float64) float64 {
	if x >= 0 && x < period {
		return x
	}
	x = math.Mod(x, period)
	if x < 0 {
		x += period
	}
	if x >= period {
		x = 0
	}
	return x
}

// ClampParam clamps x into [0, max] and reports whether clamping occurred.
func ClampParam(x, max float64) (float64, bool) {
	switch {
	case x < 0:
		return 0, true
	case x > max:
		return max, true
	}
	return x, false
}

// PeriodicDistance is |a-b| measured on a circle of the given period.
func PeriodicDistance(a, b, period float64) float64 {
	d := math.Abs(a - b)
	if period > 0 {
		d = math.Mod(d, period)
		if period-d < d {
			d = period - d
		}
	}
	return d
}
