package flappy

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/policy"
)

// hover flaps whenever the bird sinks below a fixed line, keeping it
// between roughly 270 and 380.
type hover struct {
	calls int
}

func (h *hover) Decide(y, _, _ float64) float64 {
	h.calls++
	if y > 360 {
		return 1
	}
	return 0
}

// wideGapConfig places every gap at [50, 650) so a hovering bird never hits
// a pipe.
func wideGapConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Pipes.MinGapY = 50
	cfg.Pipes.MaxGapY = 51
	cfg.Pipes.Gap = 600
	return cfg
}

func runRound(t *testing.T, sim *Simulator, deciders []policy.Decider, seed int64) RoundResult {
	t.Helper()
	r := sim.NewRound(deciders, seed, 0)
	res, err := sim.Run(context.Background(), r, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func TestFallingBirdLeavesBounds(t *testing.T) {
	sim := NewSimulator(config.DefaultFlappyConfig(), nil)
	res := runRound(t, sim, []policy.Decider{policy.Never}, 1)

	if len(res.Outcomes) != 1 {
		t.Fatalf("got %d outcomes, want 1", len(res.Outcomes))
	}
	o := res.Outcomes[0]
	if o.Cause != CauseOutOfBounds {
		t.Errorf("Cause = %v, want out-of-bounds", o.Cause)
	}
	if o.Tick != 24 {
		t.Errorf("eliminated at tick %d, want 24", o.Tick)
	}
	if !approxEqual(o.Fitness, 2.4) {
		t.Errorf("Fitness = %v, want 2.4 (survival only)", o.Fitness)
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
}

func TestScoreOncePerPipe(t *testing.T) {
	cfg := wideGapConfig()
	cfg.Scoring.ScoreCeiling = 3
	sim := NewSimulator(cfg, nil)

	for _, n := range []int{1, 5} {
		deciders := make([]policy.Decider, n)
		for i := range deciders {
			deciders[i] = &hover{}
		}
		r := sim.NewRound(deciders, 1, 0)

		passed := 0
		for !r.Over() {
			before := r.Score()
			for _, ev := range r.Step() {
				if ev.Kind == EventPassed {
					passed++
				}
			}
			if d := r.Score() - before; d < 0 || d > 1 {
				t.Fatalf("n=%d: score jumped by %d in one tick", n, d)
			}
		}

		res := r.Result()
		if res.Score != 4 || !res.StoppedByCeiling {
			t.Fatalf("n=%d: score=%d stopped=%v, want 4 by ceiling", n, res.Score, res.StoppedByCeiling)
		}
		// Pipes are passed at ticks 115, 210, 305 and 400
		if res.Ticks != 400 {
			t.Errorf("n=%d: ticks = %d, want 400", n, res.Ticks)
		}
		if passed != 4*n {
			t.Errorf("n=%d: %d pass events, want %d", n, passed, 4*n)
		}
		for _, o := range res.Outcomes {
			if o.Cause != CauseNone {
				t.Errorf("n=%d: agent %d eliminated (%v)", n, o.ID, o.Cause)
			}
			if !approxEqual(o.Fitness, 400*0.1+4*5) {
				t.Errorf("n=%d: agent %d fitness = %v, want 60", n, o.ID, o.Fitness)
			}
		}
	}
}

func TestEliminationKeepsBindings(t *testing.T) {
	cfg := wideGapConfig()
	cfg.Scoring.ScoreCeiling = 1
	sim := NewSimulator(cfg, nil)

	hovers := []*hover{{}, {}}
	deciders := []policy.Decider{
		policy.Never,
		hovers[0],
		policy.Never,
		hovers[1],
		policy.Never,
	}

	r := sim.NewRound(deciders, 3, 0)
	for r.Tick() < 24 {
		r.Step()
	}

	snap := r.Snapshot()
	if snap.Alive != 2 || len(snap.Birds) != 2 {
		t.Fatalf("alive = %d, want 2", snap.Alive)
	}
	if snap.Birds[0].ID != 1 || snap.Birds[1].ID != 3 {
		t.Errorf("surviving IDs = %d, %d; want 1, 3", snap.Birds[0].ID, snap.Birds[1].ID)
	}

	res, err := sim.Run(context.Background(), r, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []int{0, 2, 4} {
		o := res.Outcomes[id]
		if o.Cause != CauseOutOfBounds || o.Tick != 24 || !approxEqual(o.Fitness, 2.4) {
			t.Errorf("agent %d: %+v, want out-of-bounds at 24 with 2.4", id, o)
		}
	}
	for i, id := range []int{1, 3} {
		o := res.Outcomes[id]
		if o.Cause != CauseNone {
			t.Errorf("agent %d: cause = %v, want survived", id, o.Cause)
		}
		if hovers[i].calls != res.Ticks {
			t.Errorf("agent %d decider called %d times, want %d", id, hovers[i].calls, res.Ticks)
		}
	}
	best, ok := res.Best()
	if !ok || best.ID != 1 {
		t.Errorf("Best() = %+v, want agent 1 (ties go to the lower ID)", best)
	}
}

func TestCollisionPenalty(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Pipes.MinGapY = 50
	cfg.Pipes.MaxGapY = 51 // Lower pipe starts at 210, below the hover band
	sim := NewSimulator(cfg, nil)

	r := sim.NewRound([]policy.Decider{&hover{}}, 1, 0)
	var collided []Event
	for !r.Over() {
		for _, ev := range r.Step() {
			if ev.Kind == EventCollided {
				collided = append(collided, ev)
			}
		}
	}

	res := r.Result()
	o := res.Outcomes[0]
	if o.Cause != CauseCollision {
		t.Fatalf("Cause = %v, want collision", o.Cause)
	}
	if len(collided) != 1 {
		t.Fatalf("got %d collision events, want 1", len(collided))
	}
	if want := float64(o.Tick)*0.1 - 1; !approxEqual(o.Fitness, want) {
		t.Errorf("Fitness = %v, want %v", o.Fitness, want)
	}
}

func TestRoundDeterminism(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Scoring.ScoreCeiling = 0

	play := func(parallel bool) ([]float64, RoundResult) {
		sim := NewSimulator(cfg, nil)
		sim.Parallel = parallel
		deciders := []policy.Decider{
			policy.Never,
			&policy.Periodic{Every: 7},
			&policy.Periodic{Every: 9},
			policy.NewHeuristic(),
			&hover{},
		}
		var gaps []float64
		score := 0
		r := sim.NewRound(deciders, 99, 0)
		res, err := sim.Run(context.Background(), r, ObserverFunc(func(s Snapshot, _ []Event) {
			if s.Tick == 1 {
				gaps = append(gaps, s.Pipes[0].GapY)
			}
			// A new pipe is appended whenever the score moves
			if s.Score != score {
				score = s.Score
				gaps = append(gaps, s.Pipes[len(s.Pipes)-1].GapY)
			}
		}))
		if err != nil {
			t.Fatal(err)
		}
		return gaps, res
	}

	gapsA, resA := play(false)
	gapsB, resB := play(false)
	gapsC, resC := play(true)

	for _, other := range []struct {
		gaps []float64
		res  RoundResult
	}{{gapsB, resB}, {gapsC, resC}} {
		if len(other.gaps) != len(gapsA) {
			t.Fatalf("spawned %d pipes, want %d", len(other.gaps), len(gapsA))
		}
		for i := range gapsA {
			if other.gaps[i] != gapsA[i] {
				t.Errorf("pipe %d gap = %v, want %v", i, other.gaps[i], gapsA[i])
			}
		}
		if other.res.Ticks != resA.Ticks || other.res.Score != resA.Score {
			t.Errorf("ticks/score = %d/%d, want %d/%d", other.res.Ticks, other.res.Score, resA.Ticks, resA.Score)
		}
		for i, o := range resA.Outcomes {
			if other.res.Outcomes[i] != o {
				t.Errorf("outcome %d = %+v, want %+v", i, other.res.Outcomes[i], o)
			}
		}
	}
}

func TestReferencePipeSwitches(t *testing.T) {
	sim := NewSimulator(wideGapConfig(), nil)
	r := sim.NewRound([]policy.Decider{&hover{}}, 1, 0)

	for r.Tick() < 114 {
		r.Step()
	}
	if s := r.Snapshot(); s.Reference != 0 || len(s.Pipes) != 1 {
		t.Fatalf("tick 114: reference=%d pipes=%d, want 0 and 1", s.Reference, len(s.Pipes))
	}

	r.Step()
	s := r.Snapshot()
	if len(s.Pipes) != 2 || s.Score != 1 {
		t.Fatalf("tick 115: pipes=%d score=%d, want 2 and 1", len(s.Pipes), s.Score)
	}
	if s.Reference != 1 {
		t.Errorf("tick 115: reference = %d, want 1", s.Reference)
	}
}

func TestRunCancelled(t *testing.T) {
	sim := NewSimulator(config.DefaultFlappyConfig(), nil)
	r := sim.NewRound([]policy.Decider{policy.Never}, 1, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := sim.Run(ctx, r, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.Ticks != 0 || r.Over() {
		t.Errorf("cancelled run advanced: ticks=%d over=%v", res.Ticks, r.Over())
	}
}

func TestRunObservesEveryTick(t *testing.T) {
	sim := NewSimulator(config.DefaultFlappyConfig(), nil)
	r := sim.NewRound([]policy.Decider{policy.Never, policy.Never}, 1, 5)

	observed := 0
	var last []Event
	res, err := sim.Run(context.Background(), r, ObserverFunc(func(s Snapshot, ev []Event) {
		observed++
		if s.Tick != observed {
			t.Errorf("snapshot tick %d at observation %d", s.Tick, observed)
		}
		if s.Generation != 5 {
			t.Errorf("Generation = %d, want 5", s.Generation)
		}
		last = ev
	}))
	if err != nil {
		t.Fatal(err)
	}
	if observed != res.Ticks {
		t.Errorf("observed %d ticks, result has %d", observed, res.Ticks)
	}
	if len(last) == 0 || last[len(last)-1].Kind != EventRoundOver {
		t.Errorf("last events = %v, want trailing round-over", last)
	}
	if r.Step() != nil {
		t.Error("Step() on a finished round should be a no-op")
	}
}

func TestEmptyRoundIsOver(t *testing.T) {
	sim := NewSimulator(config.DefaultFlappyConfig(), nil)
	r := sim.NewRound(nil, 1, 0)
	if !r.Over() {
		t.Error("round without agents should start over")
	}
	if _, ok := r.Result().Best(); ok {
		t.Error("Best() on an empty result should report false")
	}
}

func TestStepWithoutObstaclePanics(t *testing.T) {
	sim := NewSimulator(config.DefaultFlappyConfig(), nil)
	r := sim.NewRound([]policy.Decider{policy.Never}, 1, 0)
	r.pipes = nil

	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrNoObstacle) {
			t.Errorf("recovered %v, want ErrNoObstacle", rec)
		}
	}()
	r.Step()
}
