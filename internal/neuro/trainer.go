package neuro

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"

	"github.com/vovakirdan/flappy-evo/internal/games/flappy"
	"github.com/vovakirdan/flappy-evo/internal/policy"
	"github.com/vovakirdan/flappy-evo/internal/storage"
)

// Store is the persistence a training run needs.
type Store interface {
	ControllerSaver
	SaveGeneration(g storage.GenerationStats) error
}

// Trainer evolves a fresh population, one simulation round per generation.
type Trainer struct {
	sim    *flappy.Simulator
	store  Store
	opts   *neat.Options
	logger *log.Logger

	// Generations caps the run; zero uses the NEAT options.
	Generations int
	// Seed of generation g's obstacles is Seed+g.
	Seed int64
	// Observer, if set, sees every tick of every round.
	Observer flappy.Observer
	// RunID tags everything the run persists. Generated when empty.
	RunID string
}

// NewTrainer creates a trainer. store may be nil to train without saving.
func NewTrainer(sim *flappy.Simulator, store Store, opts *neat.Options, logger *log.Logger) *Trainer {
	if logger == nil {
		logger = log.Default()
	}
	return &Trainer{sim: sim, store: store, opts: opts, logger: logger}
}

// Train runs generations until the score ceiling is reached, the
// generation cap is hit or ctx is cancelled. The best controller seen is
// saved and returned in every case where at least one round finished.
func (t *Trainer) Train(ctx context.Context) (*Champion, error) {
	if t.RunID == "" {
		t.RunID = uuid.NewString()
	}
	generations := t.Generations
	if generations <= 0 {
		generations = t.opts.NumGenerations
	}

	start, err := StartGenome()
	if err != nil {
		return nil, err
	}
	pop, err := genetics.NewPopulation(start, t.opts)
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to create population: %w", err)
	}
	executor, err := newEpochExecutor(t.opts)
	if err != nil {
		return nil, err
	}

	neatCtx := neat.NewContext(ctx, t.opts)
	logger := t.logger.With("run", t.RunID)
	logger.Info("training started", "population", len(pop.Organisms), "generations", generations)

	var champion *Champion
	var runErr error
	for gen := 0; gen < generations; gen++ {
		res, err := t.evaluate(ctx, gen, pop)
		if err != nil {
			runErr = err
			break
		}

		best, stats := t.summarise(gen, pop, res)
		logger.Info("generation",
			"gen", gen,
			"best", fmt.Sprintf("%.1f", stats.BestFitness),
			"mean", fmt.Sprintf("%.1f", stats.MeanFitness),
			"score", stats.Score,
			"ticks", stats.Ticks,
			"survivors", res.Survivors(),
		)
		if t.store != nil {
			if err := t.store.SaveGeneration(stats); err != nil {
				logger.Warn("failed to save generation stats", "err", err)
			}
		}

		if best != nil && (champion == nil || best.Lineage.Fitness > champion.Lineage.Fitness || res.StoppedByCeiling) {
			champion = best
		}
		if res.StoppedByCeiling {
			logger.Info("score ceiling reached", "gen", gen, "score", res.Score)
			break
		}
		if gen == generations-1 {
			break
		}

		if err := executor.NextEpoch(neatCtx, gen, pop); err != nil {
			runErr = fmt.Errorf("neuro: epoch %d: %w", gen, err)
			break
		}
	}

	if champion != nil && t.store != nil {
		if err := SaveChampion(t.store, champion); err != nil {
			logger.Error("failed to save champion", "err", err)
			return champion, errors.Join(runErr, err)
		}
		logger.Info("champion saved",
			"id", champion.ID,
			"gen", champion.Lineage.Generation,
			"fitness", fmt.Sprintf("%.1f", champion.Lineage.Fitness),
			"score", champion.Lineage.Score,
		)
	}
	return champion, runErr
}

// evaluate plays one round with every organism and writes back fitness.
func (t *Trainer) evaluate(ctx context.Context, gen int, pop *genetics.Population) (flappy.RoundResult, error) {
	deciders := make([]policy.Decider, len(pop.Organisms))
	for i, org := range pop.Organisms {
		net, err := org.Phenotype()
		if err != nil {
			return flappy.RoundResult{}, fmt.Errorf("neuro: organism %d: %w", i, err)
		}
		p, err := NewNetworkPolicy(net)
		if err != nil {
			return flappy.RoundResult{}, fmt.Errorf("neuro: organism %d: %w", i, err)
		}
		deciders[i] = p
	}

	round := t.sim.NewRound(deciders, t.Seed+int64(gen), gen)
	res, err := t.sim.Run(ctx, round, t.Observer)
	if err != nil {
		return res, err
	}

	for _, o := range res.Outcomes {
		org := pop.Organisms[o.ID]
		// NEAT selection expects non-negative fitness
		org.Fitness = math.Max(o.Fitness, 0)
		org.IsWinner = res.StoppedByCeiling && o.Cause == flappy.CauseNone
	}
	for i, d := range deciders {
		if err := d.(*NetworkPolicy).Err(); err != nil {
			t.logger.Debug("network failed to activate", "organism", i, "err", err)
		}
	}
	return res, nil
}

// summarise computes generation statistics and snapshots the best organism.
func (t *Trainer) summarise(gen int, pop *genetics.Population, res flappy.RoundResult) (*Champion, storage.GenerationStats) {
	stats := storage.GenerationStats{
		RunID:      t.RunID,
		Generation: gen,
		Population: len(res.Outcomes),
		Score:      res.Score,
		Ticks:      res.Ticks,
	}

	top, ok := res.Best()
	if !ok {
		return nil, stats
	}
	sum := 0.0
	for _, o := range res.Outcomes {
		sum += o.Fitness
	}
	stats.BestFitness = top.Fitness
	stats.MeanFitness = sum / float64(len(res.Outcomes))

	genome := pop.Organisms[top.ID].Genotype
	data, err := EncodeGenome(genome)
	if err != nil {
		t.logger.Warn("failed to encode best genome", "gen", gen, "err", err)
		return nil, stats
	}

	return &Champion{
		Genome: data,
		Lineage: Lineage{
			RunID:      t.RunID,
			GenomeID:   genome.Id,
			Generation: gen,
			Fitness:    top.Fitness,
			Score:      res.Score,
			Ticks:      top.Tick,
			Seed:       t.Seed + int64(gen),
			Population: len(res.Outcomes),
			Nodes:      len(genome.Nodes),
			Genes:      len(genome.Genes),
			Ceiling:    res.StoppedByCeiling,
			SavedAt:    time.Now(),
		},
	}, stats
}
