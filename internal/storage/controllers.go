package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ControllerRecord is a persisted trained controller. Genome and Lineage
// are opaque blobs owned by the training package.
type ControllerRecord struct {
	ID         int64
	RunID      string
	Generation int
	Fitness    float64
	Score      int
	Genome     []byte
	Lineage    []byte
	CreatedAt  time.Time
}

const controllerColumns = `id, run_id, generation, fitness, score, genome, lineage, created_at`

// SaveController stores a controller and returns its ID.
func (s *Store) SaveController(rec ControllerRecord) (int64, error) {
	if len(rec.Genome) == 0 {
		return 0, fmt.Errorf("storage: cannot save controller: empty genome")
	}

	res, err := s.db.Exec(
		`INSERT INTO controllers (run_id, generation, fitness, score, genome, lineage)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Generation, rec.Fitness, rec.Score, rec.Genome, rec.Lineage,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save controller: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// ControllerByID loads one controller. Returns ErrNotFound if it does not exist.
func (s *Store) ControllerByID(id int64) (*ControllerRecord, error) {
	return s.queryController(
		`SELECT `+controllerColumns+` FROM controllers WHERE id = ?`, id,
	)
}

// BestController loads the controller with the highest score, breaking
// ties by fitness and then recency. Returns ErrNotFound if none are saved.
func (s *Store) BestController() (*ControllerRecord, error) {
	return s.queryController(
		`SELECT ` + controllerColumns + ` FROM controllers
		 ORDER BY score DESC, fitness DESC, id DESC
		 LIMIT 1`,
	)
}

// LatestController loads the most recently saved controller.
// Returns ErrNotFound if none are saved.
func (s *Store) LatestController() (*ControllerRecord, error) {
	return s.queryController(
		`SELECT ` + controllerColumns + ` FROM controllers ORDER BY id DESC LIMIT 1`,
	)
}

func (s *Store) queryController(query string, args ...any) (*ControllerRecord, error) {
	var rec ControllerRecord
	var createdAt any

	err := s.db.QueryRow(query, args...).Scan(
		&rec.ID,
		&rec.RunID,
		&rec.Generation,
		&rec.Fitness,
		&rec.Score,
		&rec.Genome,
		&rec.Lineage,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query controller: %w", err)
	}

	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

// ListControllers returns the best controllers without their blobs.
func (s *Store) ListControllers(limit int) ([]ControllerRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, generation, fitness, score, created_at
		 FROM controllers
		 ORDER BY score DESC, fitness DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query controllers: %w", err)
	}
	defer rows.Close()

	var records []ControllerRecord
	for rows.Next() {
		var rec ControllerRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Generation, &rec.Fitness, &rec.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}
