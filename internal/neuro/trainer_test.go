package neuro

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/games/flappy"
)

func newTestTrainer(t *testing.T, popSize int) (*Trainer, *flappy.Simulator) {
	t.Helper()
	opts, err := LoadOptions("")
	if err != nil {
		t.Fatalf("LoadOptions() failed: %v", err)
	}
	opts.PopSize = popSize

	sim := flappy.NewSimulator(config.DefaultFlappyConfig(), nil)
	return NewTrainer(sim, nil, opts, nil), sim
}

func TestTrainPersistsChampionAndStats(t *testing.T) {
	store := openTestStore(t)
	tr, _ := newTestTrainer(t, 12)
	tr.store = store
	tr.Generations = 2
	tr.Seed = 3

	champion, err := tr.Train(context.Background())
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	if champion == nil || champion.ID == 0 {
		t.Fatalf("champion = %+v, want a saved controller", champion)
	}
	if champion.Lineage.RunID != tr.RunID || champion.Lineage.Population == 0 {
		t.Errorf("lineage = %+v", champion.Lineage)
	}

	gens, err := store.Generations(tr.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) == 0 || len(gens) > 2 {
		t.Fatalf("saved %d generations, want 1 or 2", len(gens))
	}
	for _, g := range gens {
		if g.Population == 0 || g.BestFitness < g.MeanFitness {
			t.Errorf("generation stats = %+v", g)
		}
	}

	loaded, err := LoadChampion(store, champion.ID)
	if err != nil {
		t.Fatalf("LoadChampion() failed: %v", err)
	}
	if _, err := loaded.Policy(); err != nil {
		t.Errorf("Policy() failed: %v", err)
	}
}

func TestTrainObserverSeesRounds(t *testing.T) {
	tr, _ := newTestTrainer(t, 5)
	tr.Generations = 1

	ticks := 0
	tr.Observer = flappy.ObserverFunc(func(s flappy.Snapshot, _ []flappy.Event) {
		ticks++
		if s.Generation != 0 {
			t.Errorf("Generation = %d, want 0", s.Generation)
		}
	})

	champion, err := tr.Train(context.Background())
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	if champion == nil || champion.ID != 0 {
		t.Fatalf("champion = %+v, want unsaved champion without a store", champion)
	}
	if ticks == 0 || champion.Lineage.Ticks > ticks {
		t.Errorf("observed %d ticks, champion lasted %d", ticks, champion.Lineage.Ticks)
	}
}

func TestTrainCancelled(t *testing.T) {
	tr, _ := newTestTrainer(t, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	champion, err := tr.Train(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if champion != nil {
		t.Errorf("champion = %+v, want nil before any round finished", champion)
	}
}
