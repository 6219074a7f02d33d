package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/flappy-evo/internal/config"
)

func newTestGenerator(seed int64) *PipeGenerator {
	return NewPipeGenerator(rand.NewSource(seed), config.DefaultFlappyConfig().Pipes, 104, 640)
}

func TestPipePlacement(t *testing.T) {
	g := newTestGenerator(1)
	p := g.Place(700, 300)

	if p.Top != -340 {
		t.Errorf("Top = %v, want -340", p.Top)
	}
	if p.Bottom != 460 {
		t.Errorf("Bottom = %v, want 460", p.Bottom)
	}
	if p.Passed {
		t.Error("new pipe should not be passed")
	}
}

func TestPipeGapRange(t *testing.T) {
	g := newTestGenerator(42)
	for i := 0; i < 1000; i++ {
		p := g.New(600)
		if p.GapY < 50 || p.GapY >= 450 {
			t.Fatalf("gap %v outside [50, 450)", p.GapY)
		}
		if p.Bottom-p.GapY != 160 {
			t.Fatalf("gap size = %v, want 160", p.Bottom-p.GapY)
		}
		if p.X != 600 {
			t.Fatalf("X = %v, want 600", p.X)
		}
	}
}

func TestPipeGeneratorDeterminism(t *testing.T) {
	a := newTestGenerator(7)
	b := newTestGenerator(7)
	for i := 0; i < 50; i++ {
		pa, pb := a.New(600), b.New(600)
		if pa.GapY != pb.GapY {
			t.Fatalf("pipe %d: gaps differ %v vs %v", i, pa.GapY, pb.GapY)
		}
	}
}

func TestPipeAdvanceAndRetire(t *testing.T) {
	g := newTestGenerator(1)

	tests := []struct {
		x       float64
		retired bool
	}{
		{0, false},
		{-103, false},
		{-104, false}, // Right edge exactly on the boundary
		{-105, true},
	}
	for _, tt := range tests {
		p := g.Place(tt.x+5, 300)
		g.Advance(p)
		if p.X != tt.x {
			t.Fatalf("X after advance = %v, want %v", p.X, tt.x)
		}
		if got := g.Retired(p); got != tt.retired {
			t.Errorf("Retired at x=%v = %v, want %v", tt.x, got, tt.retired)
		}
	}
}

func TestGroundLeapfrog(t *testing.T) {
	g := NewGround(730, 672, 5)

	g.Advance()
	if g.X1 != -5 || g.X2 != 667 {
		t.Fatalf("after one tick: X1=%v X2=%v", g.X1, g.X2)
	}

	for i := 0; i < 1000; i++ {
		g.Advance()
		diff := g.X2 - g.X1
		if diff != g.Width && diff != -g.Width {
			t.Fatalf("tick %d: tiles %v apart, want %v", i, diff, g.Width)
		}
		if g.X1+g.Width < 0 || g.X2+g.Width < 0 {
			t.Fatalf("tick %d: tile left the screen without wrapping", i)
		}
	}
}
