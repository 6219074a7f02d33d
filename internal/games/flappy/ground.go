package flappy

// Ground is the scrolling floor, drawn as two tiles that leapfrog each other.
// It is cosmetic; the kill plane is the configured floor line.
type Ground struct {
	Y        float64
	X1, X2   float64
	Width    float64
	Velocity float64
}

// NewGround creates a floor at height y with tiles of the given width.
func NewGround(y, width, velocity float64) Ground {
	return Ground{Y: y, X1: 0, X2: width, Width: width, Velocity: velocity}
}

// Advance scrolls both tiles and wraps any tile that left the screen.
func (g *Ground) Advance() {
	g.X1 -= g.Velocity
	g.X2 -= g.Velocity

	if g.X1+g.Width < 0 {
		g.X1 = g.X2 + g.Width
	}
	if g.X2+g.Width < 0 {
		g.X2 = g.X1 + g.Width
	}
}
