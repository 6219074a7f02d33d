package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagGenerations int
	flagWatch       bool
	flagParallel    bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Evolve a fresh population of controllers",
	Long: `Evolve controllers with NEAT, one simulated round per generation.

Training stops when the score ceiling is reached, the generation cap is
hit or the run is interrupted. The best controller is saved in every
case and can be watched with 'flappy replay'.

Examples:
  flappy train
  flappy train --generations 100 --seed 42
  flappy train --watch --fps 60
  flappy train --parallel --log-level debug`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagGenerations, "generations", 0, "Generation cap (0 = config value)")
	trainCmd.Flags().BoolVar(&flagWatch, "watch", false, "Draw every round while training")
	trainCmd.Flags().BoolVar(&flagParallel, "parallel", false, "Evaluate decisions concurrently within a tick")
}

func runTrain(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	champion, err := train(ctx, cfg, store, logger, trainOptions{
		generations: flagGenerations,
		parallel:    flagParallel,
		watch:       flagWatch,
	})
	if champion != nil {
		fmt.Printf("Champion #%d: generation %d, score %d, fitness %.1f\n",
			champion.ID, champion.Lineage.Generation, champion.Lineage.Score, champion.Lineage.Fitness)
	}
	if err != nil && ctx.Err() != nil {
		logger.Info("training interrupted")
		return nil
	}
	return err
}
