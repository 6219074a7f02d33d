package flappy

import "math"

// Collider tests bird silhouettes against pipe silhouettes.
type Collider struct {
	sprites *Sprites
}

// NewCollider creates a collider for the given sprite set.
func NewCollider(sprites *Sprites) Collider {
	return Collider{sprites: sprites}
}

// Collides reports whether the bird's current frame overlaps either half of
// the pipe. It reads but never modifies its arguments.
func (c Collider) Collides(b *Bird, p *Pipe) bool {
	birdMask := c.sprites.Bird[b.Frame].Mask
	bx := int(math.RoundToEven(b.X))
	by := int(math.RoundToEven(b.Y))
	px := int(math.RoundToEven(p.X)) - bx

	if _, _, hit := birdMask.Overlap(c.sprites.PipeBottom.Mask, px, int(math.RoundToEven(p.Bottom))-by); hit {
		return true
	}
	_, _, hit := birdMask.Overlap(c.sprites.PipeTop.Mask, px, int(math.RoundToEven(p.Top))-by)
	return hit
}
