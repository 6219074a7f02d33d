package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-evo/internal/config"
	"github.com/vovakirdan/flappy-evo/internal/core"
	"github.com/vovakirdan/flappy-evo/internal/games/flappy"
	"github.com/vovakirdan/flappy-evo/internal/neuro"
	"github.com/vovakirdan/flappy-evo/internal/platform/tui"
	"github.com/vovakirdan/flappy-evo/internal/policy"
	"github.com/vovakirdan/flappy-evo/internal/storage"
)

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// loadConfig loads the simulation config and applies the difficulty preset.
func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, continuing without it", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// scoreSaver keeps a nil store from becoming a non-nil interface.
func scoreSaver(store *storage.Store) tui.ScoreSaver {
	if store == nil {
		return nil
	}
	return store
}

// trainingSeed picks the seed of generation zero.
func trainingSeed(cfg config.FlappyConfig) int64 {
	switch {
	case flagSeed != 0:
		return flagSeed
	case cfg.Training.Seed != 0:
		return cfg.Training.Seed
	default:
		return time.Now().UnixNano()
	}
}

// trainOptions are the knobs of one training session.
type trainOptions struct {
	generations int
	parallel    bool
	watch       bool
}

// train evolves a fresh population and returns its champion.
func train(ctx context.Context, cfg config.FlappyConfig, store *storage.Store, logger *log.Logger, o trainOptions) (*neuro.Champion, error) {
	if o.generations > 0 {
		cfg.Training.Generations = o.generations
	}
	cfg.Training.Parallel = cfg.Training.Parallel || o.parallel

	sprites, err := flappy.LoadSprites(cfg.Sprites.Dir)
	if err != nil {
		return nil, err
	}
	opts, err := neuro.LoadOptions(cfg.Training.NeatOptions)
	if err != nil {
		return nil, err
	}

	var dst neuro.Store
	if store != nil {
		dst = store
	}
	if o.watch {
		// The viewer owns the terminal; keep log lines out of it
		logger = logger.With()
		logger.SetLevel(log.ErrorLevel)
	}
	sim := flappy.NewSimulator(cfg, sprites)
	trainer := neuro.NewTrainer(sim, dst, opts, logger)
	trainer.Generations = cfg.Training.Generations
	trainer.Seed = trainingSeed(cfg)

	if !o.watch {
		return trainer.Train(ctx)
	}
	return tui.WatchTraining(ctx, trainer, flappy.NewRenderer(sprites, cfg.Debug), runtimeConfig())
}

// loadOrTrain loads the requested controller. Without a usable stored
// controller it falls back to training a fresh population.
func loadOrTrain(ctx context.Context, cfg config.FlappyConfig, store *storage.Store, logger *log.Logger, id int64, watch bool) (*neuro.Champion, error) {
	var champion *neuro.Champion
	var err error
	if store == nil {
		err = &neuro.PersistenceError{Op: "load", Err: errors.New("no database")}
	} else {
		champion, err = neuro.LoadChampion(store, id)
	}
	if err == nil {
		return champion, nil
	}

	var perr *neuro.PersistenceError
	if !errors.As(err, &perr) {
		return nil, err
	}
	logger.Warn("no usable stored controller, training a new population", "err", err)
	champion, err = train(ctx, cfg, store, logger, trainOptions{watch: watch})
	if champion == nil {
		if err == nil {
			err = errors.New("training produced no controller")
		}
		return nil, err
	}
	if err != nil {
		logger.Warn("training stopped early", "err", err)
	}
	return champion, nil
}

// replayHeadless runs one round of champion without a terminal UI.
func replayHeadless(ctx context.Context, cfg config.FlappyConfig, champion *neuro.Champion) (flappy.RoundResult, error) {
	sprites, err := flappy.LoadSprites(cfg.Sprites.Dir)
	if err != nil {
		return flappy.RoundResult{}, err
	}
	pol, err := champion.Policy()
	if err != nil {
		return flappy.RoundResult{}, err
	}

	sim := flappy.NewSimulator(cfg, sprites)
	seed := flagSeed
	if seed == 0 {
		seed = champion.Lineage.Seed
	}
	round := sim.NewRound([]policy.Decider{pol}, seed, champion.Lineage.Generation)
	res, err := sim.Run(ctx, round, nil)
	if pol.Err() != nil {
		return res, fmt.Errorf("controller failed: %w", pol.Err())
	}
	return res, err
}

// replayInteractive shows champion flying in the play loop.
func replayInteractive(champion *neuro.Champion) (backToMenu bool, err error) {
	pol, err := champion.Policy()
	if err != nil {
		return false, err
	}
	title := fmt.Sprintf("Replay #%d (gen %d)", champion.ID, champion.Lineage.Generation)
	game := flappy.NewAgentGame("flappy-replay", title, pol)
	return tui.Run(game, nil, runtimeConfig())
}
