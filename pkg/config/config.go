// Package config holds the tunable defaults of the kernel and loads them
// from TOML.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/chazu/loft/pkg/intersect"
)

// Config is the root of a loft.toml file. Missing keys keep their
// defaults.
type Config struct {
	CheckInvariants bool   `toml:"check_invariants"`
	LogLevel        string `toml:"log_level"`

	Intersection Intersection `toml:"intersection"`
	Gregory      Gregory      `toml:"gregory"`
	Torus        Torus        `toml:"torus"`
	Surface      Surface      `toml:"surface"`
}

// Intersection mirrors intersect.Params.
type Intersection struct {
	TextureSize      int     `toml:"texture_size"`
	Damping          float64 `toml:"damping"`
	Rough            bool    `toml:"rough"`
	Epsilon          float64 `toml:"epsilon"`
	InitialStep      float64 `toml:"initial_step"`
	MinStep          float64 `toml:"min_step"`
	MaxPoints        int     `toml:"max_points"`
	NewtonIterations int     `toml:"newton_iterations"`
	SeedSamples      int     `toml:"seed_samples"`
	SeedMaxDistance  float64 `toml:"seed_max_distance"`
}

// Gregory holds the tessellation level given to new Gregory patches.
type Gregory struct {
	TessLevel int `toml:"tess_level"`
}

// Torus holds the shape given to tori created without explicit radii.
type Torus struct {
	MajorRadius   float64 `toml:"major_radius"`
	MinorRadius   float64 `toml:"minor_radius"`
	MajorSegments int     `toml:"major_segments"`
	MinorSegments int     `toml:"minor_segments"`
}

// Surface holds the extent of generated surfaces. Flat surfaces span
// Width×Length; cylinders have Radius and Height.
type Surface struct {
	Width  float64 `toml:"width"`
	Length float64 `toml:"length"`
	Radius float64 `toml:"radius"`
	Height float64 `toml:"height"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := intersect.DefaultParams()
	return Config{
		LogLevel: "info",
		Intersection: Intersection{
			TextureSize:      p.TextureSize,
			Damping:          p.Damping,
			Rough:            p.Rough,
			Epsilon:          p.Epsilon,
			InitialStep:      p.Step,
			MinStep:          p.MinStep,
			MaxPoints:        p.MaxPoints,
			NewtonIterations: p.NewtonIterations,
			SeedSamples:      p.SeedSamples,
			SeedMaxDistance:  p.SeedMaxDistance,
		},
		Gregory: Gregory{TessLevel: 4},
		Torus: Torus{
			MajorRadius:   1,
			MinorRadius:   0.5,
			MajorSegments: 100,
			MinorSegments: 100,
		},
		Surface: Surface{Width: 3, Length: 3, Radius: 1, Height: 3},
	}
}

// Load reads TOML from r on top of the defaults and validates the result.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile is Load on the file at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	in := c.Intersection
	switch {
	case in.TextureSize < 2:
		return fmt.Errorf("config: intersection.texture_size must be at least 2, got %d", in.TextureSize)
	case in.Damping <= 0 || in.Damping > 1:
		return fmt.Errorf("config: intersection.damping must be in (0, 1], got %g", in.Damping)
	case in.Epsilon <= 0:
		return fmt.Errorf("config: intersection.epsilon must be positive, got %g", in.Epsilon)
	case in.MinStep <= 0 || in.InitialStep < in.MinStep:
		return fmt.Errorf("config: intersection steps must satisfy 0 < min_step <= initial_step")
	case in.MaxPoints < 2:
		return fmt.Errorf("config: intersection.max_points must be at least 2, got %d", in.MaxPoints)
	case in.NewtonIterations < 1:
		return fmt.Errorf("config: intersection.newton_iterations must be positive, got %d", in.NewtonIterations)
	case in.SeedSamples < 1:
		return fmt.Errorf("config: intersection.seed_samples must be positive, got %d", in.SeedSamples)
	case in.SeedMaxDistance <= 0:
		return fmt.Errorf("config: intersection.seed_max_distance must be positive, got %g", in.SeedMaxDistance)
	case c.Gregory.TessLevel < 1 || c.Gregory.TessLevel > 64:
		return fmt.Errorf("config: gregory.tess_level must be in [1, 64], got %d", c.Gregory.TessLevel)
	}
	t := c.Torus
	if t.MinorRadius <= 0 || t.MajorRadius <= t.MinorRadius {
		return fmt.Errorf("config: torus radii must satisfy 0 < minor_radius < major_radius")
	}
	if t.MajorSegments < 1 || t.MajorSegments > 1000 || t.MinorSegments < 1 || t.MinorSegments > 1000 {
		return fmt.Errorf("config: torus segments must be in [1, 1000]")
	}
	s := c.Surface
	if s.Width <= 0 || s.Length <= 0 || s.Radius <= 0 || s.Height <= 0 {
		return fmt.Errorf("config: surface extents must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Params converts the intersection section to search parameters.
func (c Config) Params() intersect.Params {
	in := c.Intersection
	return intersect.Params{
		TextureSize:      in.TextureSize,
		Damping:          in.Damping,
		Rough:            in.Rough,
		Epsilon:          in.Epsilon,
		Step:             in.InitialStep,
		MinStep:          in.MinStep,
		MaxPoints:        in.MaxPoints,
		NewtonIterations: in.NewtonIterations,
		SeedSamples:      in.SeedSamples,
		SeedMaxDistance:  in.SeedMaxDistance,
	}
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log_level %q", s)
}
