package intersect

import (
	"math"

	"github.com/chazu/loft/pkg/geom"
)

// Bitmap is a square trimming mask over one parameter domain. Pixel (x, y)
// covers u in [x·U/Size, (x+1)·U/Size) and likewise y for v; it is stored at
// Bits[y*Size+x].
type Bitmap struct {
	Size int    `json:"size"`
	Bits []bool `json:"bits"`
}

// NewBitmap returns an all-clear bitmap.
func NewBitmap(size int) *Bitmap {
	return &Bitmap{Size: size, Bits: make([]bool, size*size)}
}

// At reports whether pixel (x, y) is set.
func (b *Bitmap) At(x, y int) bool { return b.Bits[y*b.Size+x] }

func (b *Bitmap) set(x, y int) { b.Bits[y*b.Size+x] = true }

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Bits {
		if v {
			n++
		}
	}
	return n
}

// Domain describes the parameter rectangle a polyline is drawn in.
type Domain struct {
	Range        geom.UV
	WrapU, WrapV bool
}

type pixel struct{ x, y int }

func (d Domain) pixelOf(p geom.UV, size int) pixel {
	x := int(math.Floor(float64(size) * p.U / d.Range.U))
	y := int(math.Floor(float64(size) * p.V / d.Range.V))
	return pixel{d.fold(x, size, d.WrapU), d.fold(y, size, d.WrapV)}
}

func (Domain) fold(i, size int, wrap bool) int {
	if wrap {
		i %= size
		if i < 0 {
			i += size
		}
		return i
	}
	return max(0, min(size-1, i))
}

// Rasterize draws the polyline into a size×size grid and flood-fills the
// region containing the first undrawn pixel. The returned bitmap holds the
// flooded region; drawn pixels act as walls and stay clear. closed adds the
// segment from the last point back to the first.
func Rasterize(params []geom.UV, d Domain, closed bool, size int) *Bitmap {
	walls := NewBitmap(size)
	n := len(params)
	if n == 0 {
		return walls
	}
	pts := make([]pixel, n)
	for i, p := range params {
		pts[i] = d.pixelOf(p, size)
	}
	walls.set(pts[0].x, pts[0].y)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		d.line(walls, a, d.nearestReplica(a, b, size), size)
	}
	return d.flood(walls, size)
}

// nearestReplica picks, among b shifted by whole domain periods along the
// wrapped axes, the one closest to a in L1 distance.
func (d Domain) nearestReplica(a, b pixel, size int) pixel {
	du := []int{0}
	if d.WrapU {
		du = []int{0, -size, size}
	}
	dv := []int{0}
	if d.WrapV {
		dv = []int{0, -size, size}
	}
	best := b
	bestDist := math.MaxInt
	for _, sx := range du {
		for _, sy := range dv {
			c := pixel{b.x + sx, b.y + sy}
			dist := abs(c.x-a.x) + abs(c.y-a.y)
			if dist < bestDist {
				best, bestDist = c, dist
			}
		}
	}
	return best
}

// line draws a Bresenham segment, folding each pixel back into the grid.
func (d Domain) line(bm *Bitmap, a, b pixel, size int) {
	dx, dy := abs(b.x-a.x), -abs(b.y-a.y)
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}
	err := dx + dy
	x, y := a.x, a.y
	for {
		bm.set(d.fold(x, size, d.WrapU), d.fold(y, size, d.WrapV))
		if x == b.x && y == b.y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// flood fills 4-connected from the first clear pixel in storage order.
func (d Domain) flood(walls *Bitmap, size int) *Bitmap {
	out := NewBitmap(size)
	start := -1
	for i, w := range walls.Bits {
		if !w {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}
	stack := []pixel{{start % size, start / size}}
	out.set(start%size, start/size)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range [4]pixel{{p.x + 1, p.y}, {p.x - 1, p.y}, {p.x, p.y + 1}, {p.x, p.y - 1}} {
			if n.x < 0 || n.x >= size {
				if !d.WrapU {
					continue
				}
				n.x = d.fold(n.x, size, true)
			}
			if n.y < 0 || n.y >= size {
				if !d.WrapV {
					continue
				}
				n.y = d.fold(n.y, size, true)
			}
			if walls.At(n.x, n.y) || out.At(n.x, n.y) {
				continue
			}
			out.set(n.x, n.y)
			stack = append(stack, n)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
