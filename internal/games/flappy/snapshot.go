package flappy

// BirdView is the render state of one bird.
type BirdView struct {
	ID    int
	X, Y  float64
	Tilt  float64
	Frame int
}

// PipeView is the render state of one obstacle.
type PipeView struct {
	X      float64
	GapY   float64
	Top    float64
	Bottom float64
	Passed bool
}

// Snapshot is a read-only copy of a round taken between ticks.
type Snapshot struct {
	Width, Height int
	FloorY        float64
	GroundX1      float64
	GroundX2      float64
	GroundWidth   float64

	Tick       int
	Score      int
	Generation int
	Alive      int
	Over       bool

	Birds     []BirdView
	Pipes     []PipeView
	Reference int // Index into Pipes of the obstacle the birds steer for
}

// Snapshot copies the renderable state of the round.
func (r *Round) Snapshot() Snapshot {
	pf := r.sim.cfg.Playfield
	s := Snapshot{
		Width:       pf.Width,
		Height:      pf.Height,
		FloorY:      r.ground.Y,
		GroundX1:    r.ground.X1,
		GroundX2:    r.ground.X2,
		GroundWidth: r.ground.Width,
		Tick:        r.tick,
		Score:       r.score,
		Generation:  r.generation,
		Alive:       len(r.agents),
		Over:        r.over,
		Birds:       make([]BirdView, len(r.agents)),
		Pipes:       make([]PipeView, len(r.pipes)),
		Reference:   r.referencePipe(),
	}
	for i, a := range r.agents {
		s.Birds[i] = BirdView{ID: a.ID, X: a.Bird.X, Y: a.Bird.Y, Tilt: a.Bird.Tilt, Frame: a.Bird.Frame}
	}
	for i, p := range r.pipes {
		s.Pipes[i] = PipeView{X: p.X, GapY: p.GapY, Top: p.Top, Bottom: p.Bottom, Passed: p.Passed}
	}
	return s
}
