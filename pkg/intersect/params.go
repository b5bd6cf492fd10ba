// Package intersect traces the intersection curve of two parametric
// surfaces and rasterises it into trimming textures over each parameter
// domain.
package intersect

import "errors"

var (
	// ErrNoSeed means no pair of samples came close enough to start tracing.
	ErrNoSeed = errors.New("intersect: no starting point found")
	// ErrDiverged means continuation could not take a single step from the seed.
	ErrDiverged = errors.New("intersect: continuation diverged")
)

// Params tunes the search. The zero value is not useful; start from
// DefaultParams.
type Params struct {
	TextureSize      int     // trimming bitmap side in pixels
	Damping          float64 // Newton step factor in (0, 1]
	Rough            bool    // accept clamped points at domain borders
	Epsilon          float64 // residual below which a Newton iterate is accepted
	Step             float64 // initial arc-length step
	MinStep          float64 // step below which a pass ends
	MaxPoints        int     // polyline cap
	NewtonIterations int     // per continuation step
	SeedSamples      int     // samples per parameter during seeding
	SeedMaxDistance  float64 // farthest sample pair considered as a seed
}

// DefaultParams returns the stock settings.
func DefaultParams() Params {
	return Params{
		TextureSize:      200,
		Damping:          1,
		Epsilon:          1e-6,
		Step:             0.05,
		MinStep:          1e-4,
		MaxPoints:        1_000_000,
		NewtonIterations: 150,
		SeedSamples:      100,
		SeedMaxDistance:  0.1,
	}
}
