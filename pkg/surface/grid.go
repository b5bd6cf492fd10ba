package surface

import (
	"errors"
	"fmt"
)

// Kind tells the two control-grid topologies apart.
type Kind int

const (
	KindC0 Kind = iota // bicubic Bézier patches sharing boundary rows
	KindC2             // uniform cubic B-spline
)

func (k Kind) String() string {
	switch k {
	case KindC0:
		return "C0"
	case KindC2:
		return "C2"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Size counts patches in each parameter direction.
type Size struct {
	U int `json:"u"`
	V int `json:"v"`
}

// ErrGridLength reports a control grid whose length does not match its size.
var ErrGridLength = errors.New("surface: control grid length mismatch")

// Dims returns the rows (u) and columns (v) of the stored control grid.
// Cylinders omit the rows that repeat across the seam.
func Dims(kind Kind, size Size, cylinder bool) (rows, cols int) {
	switch kind {
	case KindC2:
		rows, cols = size.U+3, size.V+3
		if cylinder {
			rows = size.U
		}
	default:
		rows, cols = 3*size.U+1, 3*size.V+1
		if cylinder {
			rows = 3 * size.U
		}
	}
	return rows, cols
}

// GridLen is the length a stored control grid must have.
func GridLen(kind Kind, size Size, cylinder bool) int {
	r, c := Dims(kind, size, cylinder)
	return r * c
}

// seamRows is how many leading rows a cylinder repeats after its last row.
func seamRows(kind Kind) int {
	if kind == KindC2 {
		return 3
	}
	return 1
}

// Expand returns the full control grid of a stored grid, repeating the seam
// rows of a cylinder so that every patch can be read with a fixed stride.
// The expanded grid always has the flat dimensions.
func Expand[T any](kind Kind, stored []T, size Size, cylinder bool) ([]T, error) {
	if size.U < 1 || size.V < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrGridLength, size.U, size.V)
	}
	if kind == KindC2 && cylinder && size.U < 3 {
		return nil, fmt.Errorf("%w: C2 cylinder needs at least 3 patches around, got %d", ErrGridLength, size.U)
	}
	rows, cols := Dims(kind, size, cylinder)
	if len(stored) != rows*cols {
		return nil, fmt.Errorf("%w: want %d points for %s %dx%d (cylinder=%t), got %d",
			ErrGridLength, rows*cols, kind, size.U, size.V, cylinder, len(stored))
	}
	out := append([]T(nil), stored...)
	if cylinder {
		out = append(out, stored[:seamRows(kind)*cols]...)
	}
	return out, nil
}

// DetectWrap compares the first and last row and column of an expanded
// grid. Seam sharing is decided by identity, not by position.
func DetectWrap[T comparable](kind Kind, grid []T, size Size) (u, v bool) {
	rows, cols := Dims(kind, size, false)
	if len(grid) != rows*cols {
		return false, false
	}
	k := seamRows(kind)
	u = true
	for r := 0; r < k && u; r++ {
		for c := 0; c < cols; c++ {
			if grid[r*cols+c] != grid[(rows-k+r)*cols+c] {
				u = false
				break
			}
		}
	}
	v = true
	for c := 0; c < k && v; c++ {
		for r := 0; r < rows; r++ {
			if grid[r*cols+c] != grid[r*cols+cols-k+c] {
				v = false
				break
			}
		}
	}
	return u, v
}
