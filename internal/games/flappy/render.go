package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/core"
)

// Visual characters for rendering
const (
	BirdChar   = '█'
	PipeChar   = '█'
	GroundChar = '▒'
	StripeChar = '░'
	LineChar   = '·'
)

// Renderer draws snapshots onto a character screen. Each cell samples the
// playfield pixel at its centre, so the picture is a downscaled silhouette
// of what the collision detector sees.
type Renderer struct {
	sprites   *Sprites
	drawLines bool
}

// NewRenderer creates a renderer. Debug lines are drawn only when enabled.
func NewRenderer(sprites *Sprites, debug config.DebugConfig) *Renderer {
	if sprites == nil {
		sprites = DefaultSprites()
	}
	return &Renderer{sprites: sprites, drawLines: debug.DrawLines}
}

// Render draws the snapshot and its HUD. It never modifies the snapshot.
func (r *Renderer) Render(dst *core.Screen, snap Snapshot) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 || snap.Width == 0 || snap.Height == 0 {
		return
	}
	sx := float64(snap.Width) / float64(w)
	sy := float64(snap.Height) / float64(h)

	for cy := 0; cy < h; cy++ {
		py := (float64(cy) + 0.5) * sy
		for cx := 0; cx < w; cx++ {
			px := (float64(cx) + 0.5) * sx
			if ch, color, ok := r.sample(snap, px, py); ok {
				dst.SetColor(cx, cy, ch, color)
			}
		}
	}

	if r.drawLines {
		r.renderLines(dst, snap, sx, sy)
	}

	dst.DrawTextColor(1, 0, fmt.Sprintf(" Gens: %d ", snap.Generation), core.ColorWhite)
	dst.DrawTextColor(1, 1, fmt.Sprintf(" Alive: %d ", snap.Alive), core.ColorWhite)
	score := fmt.Sprintf(" Score: %d ", snap.Score)
	dst.DrawTextColor(w-len(score)-1, 0, score, core.ColorBrightYellow)
}

// sample returns what occupies the playfield pixel (px, py). Birds are drawn
// over pipes, pipes over the ground.
func (r *Renderer) sample(snap Snapshot, px, py float64) (rune, core.Color, bool) {
	for _, b := range snap.Birds {
		m := r.sprites.Bird[b.Frame].Mask
		if m.Get(floor(px-b.X), floor(py-b.Y)) {
			return BirdChar, core.ColorBrightYellow, true
		}
	}

	for _, p := range snap.Pipes {
		x := floor(px - p.X)
		if x < 0 || x >= r.sprites.PipeWidth() {
			continue
		}
		if r.sprites.PipeTop.Mask.Get(x, floor(py-p.Top)) ||
			r.sprites.PipeBottom.Mask.Get(x, floor(py-p.Bottom)) {
			return PipeChar, core.ColorGreen, true
		}
	}

	if py >= snap.FloorY {
		return groundRune(snap, px), core.ColorOrange, true
	}
	return 0, core.ColorDefault, false
}

// groundRune alternates stripes that scroll with the floor tiles.
func groundRune(snap Snapshot, px float64) rune {
	if snap.GroundWidth <= 0 {
		return GroundChar
	}
	offset := math.Mod(px-snap.GroundX1, snap.GroundWidth)
	if offset < 0 {
		offset += snap.GroundWidth
	}
	if int(offset/24)%2 == 0 {
		return GroundChar
	}
	return StripeChar
}

// renderLines connects every bird's centre to the gap edges of the
// obstacle it is steering for.
func (r *Renderer) renderLines(dst *core.Screen, snap Snapshot, sx, sy float64) {
	if snap.Reference < 0 || snap.Reference >= len(snap.Pipes) {
		return
	}
	p := snap.Pipes[snap.Reference]
	bw, bh := r.sprites.BirdSize()
	tx := int((p.X + float64(r.sprites.PipeWidth())/2) / sx)

	for _, b := range snap.Birds {
		bx := int((b.X + float64(bw)/2) / sx)
		by := int((b.Y + float64(bh)/2) / sy)
		dst.DrawLine(bx, by, tx, int(p.GapY/sy), LineChar, core.ColorRed)
		dst.DrawLine(bx, by, tx, int(p.Bottom/sy), LineChar, core.ColorRed)
	}
}

func floor(v float64) int {
	return int(math.Floor(v))
}
