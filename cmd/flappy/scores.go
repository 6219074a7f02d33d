package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-evo/internal/registry"
	"github.com/vovakirdan/flappy-evo/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and stored controllers",
	Long: `Display the top 10 high scores for a game. Without a game, show
the best score of every game, the stored controllers and recent
training runs.

Examples:
  flappy scores
  flappy scores flappy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		return printGameScores(store, args[0])
	}
	return printOverview(store)
}

func printGameScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("unknown game %q, run 'flappy list' to see available games", gameID)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d\n", stats.HighScore, stats.GamesCount)
	}
	return nil
}

func printOverview(store *storage.Store) error {
	fmt.Println("Best scores")
	for _, g := range registry.List() {
		best, err := store.HighScore(g.ID)
		if err != nil {
			return fmt.Errorf("retrieving scores: %w", err)
		}
		fmt.Printf("  %-20s  %d\n", g.Title, best)
	}

	controllers, err := store.ListControllers(10)
	if err != nil {
		return fmt.Errorf("retrieving controllers: %w", err)
	}
	fmt.Println()
	fmt.Println("Controllers")
	if len(controllers) == 0 {
		fmt.Println("  none yet, run 'flappy train'")
	}
	for _, c := range controllers {
		fmt.Printf("  #%-4d  score %-4d  fitness %-8.1f  gen %-4d  %s\n",
			c.ID, c.Score, c.Fitness, c.Generation, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent training runs")
	}
	for _, r := range runs {
		fmt.Printf("  %s  %3d generations  best score %d\n", r.RunID, r.Generations, r.BestScore)
	}
	return nil
}
