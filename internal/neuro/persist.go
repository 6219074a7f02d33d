package neuro

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/yaricom/goNEAT/v4/neat/genetics"

	"github.com/vovakirdan/flappy-evo/internal/storage"
)

// PersistenceError reports a missing or unreadable saved controller.
// Callers are expected to fall back to training a fresh population.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("neuro: %s controller: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Lineage is the metadata saved next to a controller genome.
type Lineage struct {
	RunID      string    `msgpack:"run_id"`
	GenomeID   int       `msgpack:"genome_id"`
	Generation int       `msgpack:"generation"`
	Fitness    float64   `msgpack:"fitness"`
	Score      int       `msgpack:"score"`
	Ticks      int       `msgpack:"ticks"`
	Seed       int64     `msgpack:"seed"`
	Population int       `msgpack:"population"`
	Nodes      int       `msgpack:"nodes"`
	Genes      int       `msgpack:"genes"`
	Ceiling    bool      `msgpack:"ceiling"` // Round ended at the score ceiling
	SavedAt    time.Time `msgpack:"saved_at"`
}

// EncodeGenome serialises a genome in goNEAT's plain text format.
func EncodeGenome(g *genetics.Genome) ([]byte, error) {
	var buf bytes.Buffer
	w, err := genetics.NewGenomeWriter(&buf, genetics.PlainGenomeEncoding)
	if err != nil {
		return nil, fmt.Errorf("neuro: genome writer: %w", err)
	}
	if err := w.WriteGenome(g); err != nil {
		return nil, fmt.Errorf("neuro: encode genome: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeGenome parses a genome written by EncodeGenome.
func DecodeGenome(data []byte) (*genetics.Genome, error) {
	if len(data) == 0 {
		return nil, errors.New("neuro: empty genome")
	}
	r, err := genetics.NewGenomeReader(bytes.NewReader(data), genetics.PlainGenomeEncoding)
	if err != nil {
		return nil, fmt.Errorf("neuro: genome reader: %w", err)
	}
	g, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("neuro: decode genome: %w", err)
	}
	// The plain reader skips lines it does not understand
	if len(g.Nodes) == 0 || len(g.Genes) == 0 {
		return nil, errors.New("neuro: decode genome: no nodes or genes")
	}
	return g, nil
}

// EncodeLineage serialises lineage metadata with msgpack.
func EncodeLineage(l Lineage) ([]byte, error) {
	data, err := msgpack.Marshal(&l)
	if err != nil {
		return nil, fmt.Errorf("neuro: encode lineage: %w", err)
	}
	return data, nil
}

// DecodeLineage parses metadata written by EncodeLineage.
func DecodeLineage(data []byte) (Lineage, error) {
	var l Lineage
	if err := msgpack.Unmarshal(data, &l); err != nil {
		return Lineage{}, fmt.Errorf("neuro: decode lineage: %w", err)
	}
	return l, nil
}

// Champion is a controller selected for persistence or replay.
type Champion struct {
	ID      int64 // Storage ID, zero until saved
	Genome  []byte
	Lineage Lineage
}

// Policy builds a fresh decision function from the champion's genome.
func (c *Champion) Policy() (*NetworkPolicy, error) {
	g, err := DecodeGenome(c.Genome)
	if err != nil {
		return nil, err
	}
	return PolicyFromGenome(g)
}

// ControllerSaver persists trained controllers.
type ControllerSaver interface {
	SaveController(rec storage.ControllerRecord) (int64, error)
}

// ControllerSource loads persisted controllers.
type ControllerSource interface {
	ControllerByID(id int64) (*storage.ControllerRecord, error)
	BestController() (*storage.ControllerRecord, error)
}

// SaveChampion stores the champion and records its new ID.
func SaveChampion(dst ControllerSaver, c *Champion) error {
	lineage, err := EncodeLineage(c.Lineage)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	id, err := dst.SaveController(storage.ControllerRecord{
		RunID:      c.Lineage.RunID,
		Generation: c.Lineage.Generation,
		Fitness:    c.Lineage.Fitness,
		Score:      c.Lineage.Score,
		Genome:     c.Genome,
		Lineage:    lineage,
	})
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	c.ID = id
	return nil
}

// LoadChampion loads the controller with the given ID, or the best saved
// controller when id is zero. The genome is validated by building its
// network. Every failure is a *PersistenceError.
func LoadChampion(src ControllerSource, id int64) (*Champion, error) {
	var rec *storage.ControllerRecord
	var err error
	if id == 0 {
		rec, err = src.BestController()
	} else {
		rec, err = src.ControllerByID(id)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	c := &Champion{ID: rec.ID, Genome: rec.Genome}
	if len(rec.Lineage) > 0 {
		if c.Lineage, err = DecodeLineage(rec.Lineage); err != nil {
			return nil, &PersistenceError{Op: "load", Err: err}
		}
	} else {
		c.Lineage = Lineage{RunID: rec.RunID, Generation: rec.Generation, Fitness: rec.Fitness, Score: rec.Score}
	}

	if _, err := c.Policy(); err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return c, nil
}
