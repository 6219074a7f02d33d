package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flappy-evo/internal/config"
)

// Pipe is a pair of barriers with a vertical gap between them.
type Pipe struct {
	X      float64 // Left edge
	GapY   float64 // Upper edge of the gap
	Top    float64 // Y at which the upside-down top image is placed
	Bottom float64 // Lower edge of the gap, where the bottom image starts
	Passed bool
}

// PipeGenerator creates, scrolls and retires pipes. Placement is random but
// fully determined by the injected source.
type PipeGenerator struct {
	rng       *rand.Rand
	cfg       config.PipesConfig
	width     float64
	topHeight float64
}

// NewPipeGenerator creates a generator drawing gap heights from src.
// width and topHeight are the pipe image dimensions.
func NewPipeGenerator(src rand.Source, cfg config.PipesConfig, width, topHeight int) *PipeGenerator {
	return &PipeGenerator{
		rng:       rand.New(src),
		cfg:       cfg,
		width:     float64(width),
		topHeight: float64(topHeight),
	}
}

// New creates a pipe at spawnX with a gap drawn from [MinGapY, MaxGapY).
func (g *PipeGenerator) New(spawnX float64) *Pipe {
	gapY := float64(g.cfg.MinGapY + g.rng.Intn(g.cfg.MaxGapY-g.cfg.MinGapY))
	return g.Place(spawnX, gapY)
}

// Place creates a pipe with a fixed gap position.
func (g *PipeGenerator) Place(x, gapY float64) *Pipe {
	return &Pipe{
		X:      x,
		GapY:   gapY,
		Top:    gapY - g.topHeight,
		Bottom: gapY + g.cfg.Gap,
	}
}

// Advance scrolls the pipe left by one tick.
func (g *PipeGenerator) Advance(p *Pipe) {
	p.X -= g.cfg.Velocity
}

// Right returns the x-coordinate of the pipe's right edge.
func (g *PipeGenerator) Right(p *Pipe) float64 {
	return p.X + g.width
}

// Retired reports whether the pipe has scrolled fully past the left boundary.
func (g *PipeGenerator) Retired(p *Pipe) bool {
	return g.Right(p) < 0
}
