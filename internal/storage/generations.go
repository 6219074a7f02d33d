package storage

import (
	"fmt"
	"time"
)

// GenerationStats summarises one evaluated generation of a training run.
type GenerationStats struct {
	RunID       string
	Generation  int
	Population  int
	BestFitness float64
	MeanFitness float64
	Score       int
	Ticks       int
	CreatedAt   time.Time
}

// RunSummary aggregates the generations of one training run.
type RunSummary struct {
	RunID       string
	Generations int
	BestFitness float64
	BestScore   int
	LastUpdate  time.Time
}

// SaveGeneration appends a generation record.
func (s *Store) SaveGeneration(g GenerationStats) error {
	_, err := s.db.Exec(
		`INSERT INTO generations
		 (run_id, generation, population, best_fitness, mean_fitness, score, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.RunID, g.Generation, g.Population, g.BestFitness, g.MeanFitness, g.Score, g.Ticks,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save generation: %w", err)
	}
	return nil
}

// Generations returns the generations of a run in order.
func (s *Store) Generations(runID string) ([]GenerationStats, error) {
	rows, err := s.db.Query(
		`SELECT run_id, generation, population, best_fitness, mean_fitness, score, ticks, created_at
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var stats []GenerationStats
	for rows.Next() {
		var g GenerationStats
		var createdAt any
		if err := rows.Scan(&g.RunID, &g.Generation, &g.Population, &g.BestFitness,
			&g.MeanFitness, &g.Score, &g.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		stats = append(stats, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// RecentRuns summarises the most recently updated training runs.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT run_id, COUNT(*), MAX(best_fitness), MAX(score), MAX(created_at)
		 FROM generations
		 GROUP BY run_id
		 ORDER BY MAX(id) DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var last any
		if err := rows.Scan(&r.RunID, &r.Generations, &r.BestFitness, &r.BestScore, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run row: %w", err)
		}
		r.LastUpdate = parseTime(last)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
