package ids

import (
	"math/rand/v2"
	"testing"
)

func TestGeneratorStartsAtOne(t *testing.T) {
	g := NewGenerator()
	if got := g.Next(); got != 1 {
		t.Fatalf("first Next() = %d, want 1", got)
	}
	if got := g.Next(); got != 2 {
		t.Fatalf("second Next() = %d, want 2", got)
	}
}

func TestZeroValueGenerator(t *testing.T) {
	var g Generator
	if got := g.Next(); got != 1 {
		t.Fatalf("zero-value Next() = %d, want 1", got)
	}
}

func TestReserve(t *testing.T) {
	tests := []struct {
		name     string
		issued   int
		reserve  ID
		wantNext ID
	}{
		{"ahead of counter", 0, 10, 11},
		{"behind counter", 5, 3, 6},
		{"equal to next", 2, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator()
			for i := 0; i < tt.issued; i++ {
				g.Next()
			}
			g.Reserve(tt.reserve)
			if got := g.Next(); got != tt.wantNext {
				t.Errorf("Next() after Reserve(%d) = %d, want %d", tt.reserve, got, tt.wantNext)
			}
		})
	}
}

func TestMonotonicUnderRandomReserves(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := NewGenerator()
	var last ID
	for i := 0; i < 10000; i++ {
		if rng.IntN(10) == 0 {
			g.Reserve(ID(rng.IntN(20000)))
			continue
		}
		id := g.Next()
		if id <= last {
			t.Fatalf("id %d issued after %d", id, last)
		}
		last = id
	}
}
