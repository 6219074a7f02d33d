package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/core"
)

func newTestCollider() (Collider, *PipeGenerator) {
	s := DefaultSprites()
	cfg := config.DefaultFlappyConfig().Pipes
	return NewCollider(s), NewPipeGenerator(rand.NewSource(1), cfg, s.PipeWidth(), s.PipeHeight())
}

func TestCollidesInsideGap(t *testing.T) {
	c, g := newTestCollider()
	p := g.Place(200, 300) // Gap spans [300, 460)

	b := NewBird(230, 350) // Occupies rows 350..397
	if c.Collides(&b, p) {
		t.Error("bird inside the gap should not collide")
	}

	b.Y = 420 // Bottom rows reach into the lower pipe
	if !c.Collides(&b, p) {
		t.Error("bird overlapping the lower pipe should collide")
	}

	b.Y = 280 // Top rows reach into the upper pipe
	if !c.Collides(&b, p) {
		t.Error("bird overlapping the upper pipe should collide")
	}
}

func TestCollidesUsesSilhouettes(t *testing.T) {
	c, g := newTestCollider()
	w, h := DefaultSprites().BirdSize()
	b := NewBird(230, 350)

	// The lower pipe's corner sits on the bird's transparent bottom-right corner
	p := g.Place(b.X+float64(w)-2, b.Y+float64(h)-2-160)
	birdBox := core.NewRect(230, 350, w, h)
	pipeBox := core.NewRect(int(p.X), int(p.Bottom), DefaultSprites().PipeWidth(), DefaultSprites().PipeHeight())
	if !birdBox.Intersects(pipeBox) {
		t.Fatal("test setup: bounding boxes should intersect")
	}
	if c.Collides(&b, p) {
		t.Error("bounding-box overlap without pixel overlap should not collide")
	}

	// Move the pipe into the body
	p = g.Place(b.X, b.Y+30-160)
	if !c.Collides(&b, p) {
		t.Error("pixel overlap should collide")
	}
}

func TestCollidesIsIdempotent(t *testing.T) {
	c, g := newTestCollider()
	p := g.Place(250, 300)
	b := NewBird(230, 430)
	before, beforePipe := b, *p

	first := c.Collides(&b, p)
	for i := 0; i < 5; i++ {
		if got := c.Collides(&b, p); got != first {
			t.Fatalf("call %d returned %v, first returned %v", i, got, first)
		}
	}
	if b != before || *p != beforePipe {
		t.Error("Collides modified its arguments")
	}
}

func TestCollidesBothHalvesReportsOnce(t *testing.T) {
	c, g := newTestCollider()
	// A gap narrower than the bird touches both halves
	p := g.Place(230, 360)
	p.Bottom = p.GapY + 10
	b := NewBird(230, 350)

	if !c.Collides(&b, p) {
		t.Error("overlap with both halves should collide")
	}
}
