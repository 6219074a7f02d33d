// Package neuro evolves flappy controllers with NEAT and turns genomes into
// decision functions for the simulation.
//
// Training and replay are separate entry points: Trainer always starts from
// a fresh population, LoadChampion rebuilds one persisted controller.
package neuro

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
)

//go:embed defaults/neat.yml
var defaultOptionsYAML []byte

//go:embed defaults/startgenes
var defaultStartGenome []byte

// Sensor layout of every controller network: bias, bird height, distance to
// the upper gap edge, distance to the lower gap edge.
const (
	numSensors = 4
	numOutputs = 1
)

// LoadOptions reads NEAT options from path, or the embedded defaults when
// path is empty.
func LoadOptions(path string) (*neat.Options, error) {
	data := defaultOptionsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("neuro: failed to read options %s: %w", path, err)
		}
		data = b
	}

	opts, err := neat.LoadYAMLOptions(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to parse options: %w", err)
	}
	if opts.PopSize <= 0 {
		return nil, fmt.Errorf("neuro: pop_size must be positive, got %d", opts.PopSize)
	}
	return opts, nil
}

// StartGenome returns the minimal genome every population grows from: all
// sensors wired straight to a tanh output.
func StartGenome() (*genetics.Genome, error) {
	g, err := DecodeGenome(defaultStartGenome)
	if err != nil {
		return nil, fmt.Errorf("neuro: embedded start genome: %w", err)
	}
	return g, nil
}

func newEpochExecutor(opts *neat.Options) (genetics.PopulationEpochExecutor, error) {
	switch opts.EpochExecutorType {
	case neat.EpochExecutorTypeSequential:
		return &genetics.SequentialPopulationEpochExecutor{}, nil
	case neat.EpochExecutorTypeParallel:
		return &genetics.ParallelPopulationEpochExecutor{}, nil
	default:
		return nil, fmt.Errorf("neuro: unsupported epoch executor %q", opts.EpochExecutorType)
	}
}
