package curve

import v3 "github.com/deadsy/sdfx/vec/v3"

// Segments splits a Bernstein polygon into cubic segments that share their
// end points. A trailing remainder of two or three points becomes a linear
// or quadratic segment. A single point yields no segment.
func Segments(ps []v3.Vec) [][]v3.Vec {
	if len(ps) < 2 {
		return nil
	}
	var segs [][]v3.Vec
	for i := 0; i < len(ps)-1; i += 3 {
		end := min(i+4, len(ps))
		segs = append(segs, ps[i:end])
	}
	return segs
}

// SegmentCount is ⌈max(n-1, 0)/3⌉.
func SegmentCount(n int) int {
	if n < 2 {
		return 0
	}
	return (n - 1 + 2) / 3
}

// Eval evaluates a Bézier segment of any degree at t by de Casteljau.
func Eval(ctrl []v3.Vec, t float64) v3.Vec {
	if len(ctrl) == 0 {
		return v3.Vec{}
	}
	w := append([]v3.Vec(nil), ctrl...)
	for k := len(w) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			w[i] = w[i].MulScalar(1 - t).Add(w[i+1].MulScalar(t))
		}
	}
	return w[0]
}

// Split divides a cubic segment at t into its left and right halves.
func Split(ctrl [4]v3.Vec, t float64) (left, right [4]v3.Vec) {
	lerp := func(a, b v3.Vec) v3.Vec { return a.MulScalar(1 - t).Add(b.MulScalar(t)) }
	p01 := lerp(ctrl[0], ctrl[1])
	p12 := lerp(ctrl[1], ctrl[2])
	p23 := lerp(ctrl[2], ctrl[3])
	p012 := lerp(p01, p12)
	p123 := lerp(p12, p23)
	mid := lerp(p012, p123)
	return [4]v3.Vec{ctrl[0], p01, p012, mid}, [4]v3.Vec{mid, p123, p23, ctrl[3]}
}

// EvalPolygon evaluates a Bernstein polygon at a global parameter in
// [0, SegmentCount]. Integer values land on segment joins.
func EvalPolygon(ps []v3.Vec, s float64) v3.Vec {
	segs := Segments(ps)
	if len(segs) == 0 {
		if len(ps) == 1 {
			return ps[0]
		}
		return v3.Vec{}
	}
	i := int(s)
	if i < 0 {
		i, s = 0, 0
	}
	if i >= len(segs) {
		i = len(segs) - 1
		s = float64(len(segs))
	}
	return Eval(segs[i], s-float64(i))
}
