package flappy

import (
	"errors"
	"math"
	"math/rand"
	"sync"

	"github.com/vovakirdan/flappy-evo/internal/policy"
)

// ErrNoObstacle is raised when a decision would be queried with no obstacle
// on the playfield. Rounds always spawn one before the first tick, so seeing
// it means the round state was corrupted.
var ErrNoObstacle = errors.New("flappy: decision queried with no obstacle present")

// Agent binds a bird to the decider steering it and its fitness accumulator.
type Agent struct {
	ID      int
	Bird    Bird
	Decider policy.Decider
	Fitness float64
}

// Round is the state of one simulation round. It is owned by whoever created
// it and must only be advanced from one goroutine.
type Round struct {
	sim        *Simulator
	gen        *PipeGenerator
	seed       int64
	generation int

	agents   []*Agent // Active, in spawn order
	pipes    []*Pipe  // In spawn order
	ground   Ground
	score    int
	tick     int
	outcomes []Outcome

	over             bool
	stoppedByCeiling bool

	jumps []bool
}

// Step advances the round by exactly one tick and returns the events it
// produced. Calling Step on a finished round is a no-op.
func (r *Round) Step() []Event {
	if r.over {
		return nil
	}
	if len(r.pipes) == 0 {
		panic(ErrNoObstacle)
	}

	cfg := r.sim.cfg
	kin := r.sim.kin
	r.tick++
	var events []Event

	target := r.pipes[r.referencePipe()]
	for _, a := range r.agents {
		a.Fitness += cfg.Scoring.SurvivalReward
		kin.Advance(&a.Bird)
	}
	r.decide(target)

	r.ground.Advance()

	spawn := false
	for _, p := range r.pipes {
		r.gen.Advance(p)
		r.filterAgents(func(a *Agent) bool {
			if !r.sim.collider.Collides(&a.Bird, p) {
				return true
			}
			a.Fitness -= cfg.Scoring.CollisionPenalty
			events = append(events, r.eliminate(a, CauseCollision, EventCollided))
			return false
		})
		if !p.Passed && r.crossed(p) {
			p.Passed = true
			spawn = true
		}
	}

	if spawn {
		r.score++
		for _, a := range r.agents {
			a.Fitness += cfg.Scoring.PassBonus
			events = append(events, Event{Kind: EventPassed, Agent: a.ID, Tick: r.tick, Fitness: a.Fitness})
		}
		r.pipes = append(r.pipes, r.gen.New(cfg.Pipes.SpawnX))
	}

	kept := r.pipes[:0]
	for _, p := range r.pipes {
		if !r.gen.Retired(p) {
			kept = append(kept, p)
		}
	}
	clear(r.pipes[len(kept):])
	r.pipes = kept

	r.filterAgents(func(a *Agent) bool {
		if r.inBounds(&a.Bird) {
			return true
		}
		events = append(events, r.eliminate(a, CauseOutOfBounds, EventOutOfBounds))
		return false
	})

	for _, a := range r.agents {
		kin.Animate(&a.Bird)
	}

	ceiling := cfg.Scoring.ScoreCeiling
	if ceiling > 0 && r.score > ceiling {
		r.stoppedByCeiling = true
		r.over = true
	}
	if len(r.agents) == 0 {
		r.over = true
	}
	if r.over {
		events = append(events, Event{Kind: EventRoundOver, Agent: -1, Tick: r.tick})
	}
	return events
}

// referencePipe returns the index of the obstacle the birds steer for: the
// first one, unless the lead bird is already past it and another exists.
func (r *Round) referencePipe() int {
	if len(r.agents) == 0 || len(r.pipes) < 2 {
		return 0
	}
	if r.agents[0].Bird.X > r.gen.Right(r.pipes[0]) {
		return 1
	}
	return 0
}

// decide queries every decider with its own bird's post-advance state and
// applies jumps in spawn order.
func (r *Round) decide(target *Pipe) {
	n := len(r.agents)
	if cap(r.jumps) < n {
		r.jumps = make([]bool, n)
	}
	jumps := r.jumps[:n]
	threshold := r.sim.cfg.Scoring.JumpThreshold

	eval := func(i int, a *Agent) {
		y := a.Bird.Y
		jumps[i] = a.Decider.Decide(y, math.Abs(y-target.GapY), math.Abs(y-target.Bottom)) > threshold
	}

	if r.sim.Parallel && n > 1 {
		var wg sync.WaitGroup
		for i, a := range r.agents {
			wg.Add(1)
			go func() {
				defer wg.Done()
				eval(i, a)
			}()
		}
		wg.Wait()
	} else {
		for i, a := range r.agents {
			eval(i, a)
		}
	}

	for i, a := range r.agents {
		if jumps[i] {
			r.sim.kin.Jump(&a.Bird)
		}
	}
}

// crossed reports whether the pipe's right edge is behind any active bird.
func (r *Round) crossed(p *Pipe) bool {
	right := r.gen.Right(p)
	for _, a := range r.agents {
		if right < a.Bird.X {
			return true
		}
	}
	return false
}

func (r *Round) inBounds(b *Bird) bool {
	pf := r.sim.cfg.Playfield
	_, h := r.sim.sprites.BirdSize()
	if b.Y+float64(h)-pf.FloorTolerance >= pf.FloorY {
		return false
	}
	return b.Y >= pf.TopBound
}

// filterAgents keeps the agents for which keep returns true, preserving order.
func (r *Round) filterAgents(keep func(*Agent) bool) {
	kept := r.agents[:0]
	for _, a := range r.agents {
		if keep(a) {
			kept = append(kept, a)
		}
	}
	clear(r.agents[len(kept):])
	r.agents = kept
}

func (r *Round) eliminate(a *Agent, cause Cause, kind EventKind) Event {
	r.outcomes[a.ID] = Outcome{ID: a.ID, Fitness: a.Fitness, Cause: cause, Tick: r.tick}
	return Event{Kind: kind, Agent: a.ID, Tick: r.tick, Fitness: a.Fitness}
}

// Over reports whether the round has finished.
func (r *Round) Over() bool { return r.over }

// Score returns the number of obstacles cleared so far.
func (r *Round) Score() int { return r.score }

// Tick returns the number of ticks processed.
func (r *Round) Tick() int { return r.tick }

// Generation returns the generation counter the round was created with.
func (r *Round) Generation() int { return r.generation }

// Seed returns the seed of the obstacle generator.
func (r *Round) Seed() int64 { return r.seed }

// Alive returns the number of active birds.
func (r *Round) Alive() int { return len(r.agents) }

// Result reports the terminal fitness and cause of every agent. Agents
// still flying are reported with CauseNone and their current fitness.
func (r *Round) Result() RoundResult {
	outcomes := make([]Outcome, len(r.outcomes))
	copy(outcomes, r.outcomes)
	for _, a := range r.agents {
		outcomes[a.ID] = Outcome{ID: a.ID, Fitness: a.Fitness, Cause: CauseNone, Tick: r.tick}
	}
	return RoundResult{
		Generation:       r.generation,
		Score:            r.score,
		Ticks:            r.tick,
		StoppedByCeiling: r.stoppedByCeiling,
		Outcomes:         outcomes,
	}
}

func newRound(s *Simulator, deciders []policy.Decider, seed int64, generation int) *Round {
	cfg := s.cfg
	r := &Round{
		sim:        s,
		gen:        NewPipeGenerator(rand.NewSource(seed), cfg.Pipes, s.sprites.PipeWidth(), s.sprites.PipeHeight()),
		seed:       seed,
		generation: generation,
		agents:     make([]*Agent, 0, len(deciders)),
		ground:     NewGround(cfg.Playfield.FloorY, float64(s.sprites.BaseWidth()), cfg.Floor.Velocity),
		outcomes:   make([]Outcome, len(deciders)),
	}
	for i, d := range deciders {
		r.agents = append(r.agents, &Agent{
			ID:      i,
			Bird:    NewBird(cfg.Bird.SpawnX, cfg.Bird.SpawnY),
			Decider: d,
		})
	}
	r.pipes = append(r.pipes, r.gen.New(cfg.Pipes.FirstSpawnX))
	r.over = len(r.agents) == 0
	return r
}
