package intersect

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/loft/pkg/surface"
)

// Result is a traced curve together with its trimming bitmaps.
type Result struct {
	*Curve
	UVTexture *Bitmap
	STTexture *Bitmap
}

// DomainOf returns the raster domain of s.
func DomainOf(s surface.Surface) Domain {
	wu, wv := s.Wrap()
	return Domain{Range: s.Range(), WrapU: wu, WrapV: wv}
}

// Find seeds, traces and rasterises the intersection of a and b. self
// marks a and b as the same surface so that trivial coincidences are not
// taken as seeds.
func Find(a, b surface.Surface, self bool, cursor v3.Vec, p Params) (*Result, error) {
	uv, st, err := Seed(a, b, self, cursor, p)
	if err != nil {
		return nil, err
	}
	c, err := Trace(a, b, uv, st, p)
	if err != nil {
		return nil, err
	}
	return &Result{
		Curve:     c,
		UVTexture: Rasterize(c.UV, DomainOf(a), c.Wrap, p.TextureSize),
		STTexture: Rasterize(c.ST, DomainOf(b), c.Wrap, p.TextureSize),
	}, nil
}
