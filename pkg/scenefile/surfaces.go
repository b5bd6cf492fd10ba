package scenefile

import (
	"fmt"

	"github.com/chazu/loft/pkg/ids"
	"github.com/chazu/loft/pkg/scene"
	"github.com/chazu/loft/pkg/surface"
)

// stride is the grid distance between the first rows of neighbouring
// patches.
func stride(kind surface.Kind) int {
	if kind == surface.KindC2 {
		return 1
	}
	return 3
}

func surfaceKind(k scene.Kind) surface.Kind {
	if k == scene.KindSurfaceC2 {
		return surface.KindC2
	}
	return surface.KindC0
}

func patchType(k surface.Kind) string {
	if k == surface.KindC2 {
		return TypePatchC2
	}
	return TypePatchC0
}

func surfaceType(k surface.Kind) string {
	if k == surface.KindC2 {
		return TypeSurfaceC2
	}
	return TypeSurfaceC0
}

// surfaceGeometry splits a surface into its 4×4 patches, u-outer. Patch ids
// are taken from next.
func surfaceGeometry(k scene.Kind, s scene.Surface, next *ids.ID) (Geometry, error) {
	kind := surfaceKind(k)
	grid, err := surface.Expand(kind, s.Points, s.Size, s.Cylinder)
	if err != nil {
		return Geometry{}, fmt.Errorf("scenefile: surface %d: %w", s.ID, err)
	}
	_, cols := surface.Dims(kind, s.Size, false)
	st := stride(kind)
	g := Geometry{
		ObjectType:       surfaceType(kind),
		ID:               uint64(s.ID),
		Name:             s.Name,
		Size:             &Samples{X: s.Size.U, Y: s.Size.V},
		ParameterWrapped: &Wrapped{U: s.Cylinder},
	}
	for pu := 0; pu < s.Size.U; pu++ {
		for pv := 0; pv < s.Size.V; pv++ {
			cps := make([]Ref, 16)
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					cps[r*4+c] = Ref{ID: uint64(grid[(st*pu+r)*cols+st*pv+c])}
				}
			}
			g.Patches = append(g.Patches, Patch{
				ObjectType:    patchType(kind),
				ID:            uint64(*next),
				Name:          fmt.Sprintf("%s-%d-%d", s.Name, pu, pv),
				ControlPoints: cps,
				Samples:       Samples{X: PatchSamples, Y: PatchSamples},
			})
			*next++
		}
	}
	return g, nil
}

// surface reassembles the control grid from the patches. A surface wrapped
// in v is transposed so that its seam runs along u.
func (g *Geometry) surface(k scene.Kind) (scene.Surface, error) {
	kind := surfaceKind(k)
	if g.Size == nil {
		return scene.Surface{}, fmt.Errorf("scenefile: surface %d: missing size", g.ID)
	}
	size := surface.Size{U: g.Size.X, V: g.Size.Y}
	if size.U < 1 || size.V < 1 {
		return scene.Surface{}, fmt.Errorf("scenefile: surface %d: bad size %dx%d", g.ID, size.U, size.V)
	}
	if len(g.Patches) != size.U*size.V {
		return scene.Surface{}, fmt.Errorf("scenefile: surface %d: want %d patches, got %d",
			g.ID, size.U*size.V, len(g.Patches))
	}
	rows, cols := surface.Dims(kind, size, false)
	grid := make([]ids.ID, rows*cols)
	st := stride(kind)
	for i, p := range g.Patches {
		if p.ObjectType != patchType(kind) {
			return scene.Surface{}, fmt.Errorf("scenefile: surface %d: patch %d has objectType %q", g.ID, p.ID, p.ObjectType)
		}
		if len(p.ControlPoints) != 16 {
			return scene.Surface{}, fmt.Errorf("scenefile: surface %d: patch %d has %d control points",
				g.ID, p.ID, len(p.ControlPoints))
		}
		pu, pv := i/size.V, i%size.V
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				at := (st*pu+r)*cols + st*pv + c
				id := ids.ID(p.ControlPoints[r*4+c].ID)
				if grid[at] != 0 && grid[at] != id {
					return scene.Surface{}, fmt.Errorf("scenefile: surface %d: patches disagree on a shared control point", g.ID)
				}
				grid[at] = id
			}
		}
	}

	wrapU, wrapV := surface.DetectWrap(kind, grid, size)
	if g.ParameterWrapped != nil && (g.ParameterWrapped.U && !wrapU || g.ParameterWrapped.V && !wrapV) {
		return scene.Surface{}, fmt.Errorf("scenefile: surface %d: parameterWrapped does not match its control grid", g.ID)
	}
	switch {
	case wrapU && wrapV:
		return scene.Surface{}, fmt.Errorf("scenefile: surface %d: wrapped in both directions", g.ID)
	case wrapV:
		grid = transpose(grid, rows, cols)
		size.U, size.V = size.V, size.U
		rows, cols = cols, rows
		fallthrough
	case wrapU:
		seam := 1
		if kind == surface.KindC2 {
			seam = 3
		}
		return scene.Surface{
			ID: ids.ID(g.ID), Name: g.Name, Size: size, Cylinder: true,
			Points: grid[:(rows-seam)*cols],
		}, nil
	}
	return scene.Surface{ID: ids.ID(g.ID), Name: g.Name, Size: size, Points: grid}, nil
}

func transpose[T any](grid []T, rows, cols int) []T {
	out := make([]T, len(grid))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c*rows+r] = grid[r*cols+c]
		}
	}
	return out
}
