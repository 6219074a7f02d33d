// Package policy defines the decision-function boundary between the
// simulation and whatever controls a bird: a trained network, a human at a
// keyboard or a scripted heuristic.
package policy

import "sync/atomic"

// Decider maps the observed state of one bird to a jump signal.
// The simulation treats any value above its jump threshold as a jump.
type Decider interface {
	Decide(y, distTop, distBottom float64) float64
}

// Func adapts an ordinary function to the Decider interface.
type Func func(y, distTop, distBottom float64) float64

// Decide calls f.
func (f Func) Decide(y, distTop, distBottom float64) float64 {
	return f(y, distTop, distBottom)
}

// Constant always returns the same value.
type Constant float64

// Never is a Decider that never jumps.
const Never Constant = 0

// Decide returns c.
func (c Constant) Decide(_, _, _ float64) float64 {
	return float64(c)
}

// Periodic jumps once every Every queries, starting with the first.
type Periodic struct {
	Every int
	n     int
}

// Decide returns 1 on every Every-th call.
func (p *Periodic) Decide(_, _, _ float64) float64 {
	hit := p.Every > 0 && p.n%p.Every == 0
	p.n++
	if hit {
		return 1
	}
	return 0
}

// Heuristic is a scripted autopilot: it flaps whenever the bird sinks to
// within Margin pixels of the lower gap edge while still nearer to it than
// to the upper edge.
type Heuristic struct {
	Margin float64
}

// NewHeuristic returns an autopilot tuned for the default sprite size.
func NewHeuristic() Heuristic {
	return Heuristic{Margin: 70}
}

// Decide implements Decider.
func (h Heuristic) Decide(_, distTop, distBottom float64) float64 {
	if distBottom < h.Margin && distBottom < distTop {
		return 1
	}
	return 0
}

// Human translates key presses into decisions. Press may be called from the
// input goroutine; the latch is consumed by the next Decide.
type Human struct {
	pressed atomic.Bool
}

// Press records a flap request for the next tick.
func (h *Human) Press() {
	h.pressed.Store(true)
}

// Decide returns 1 if a press arrived since the previous query.
func (h *Human) Decide(_, _, _ float64) float64 {
	if h.pressed.Swap(false) {
		return 1
	}
	return 0
}
