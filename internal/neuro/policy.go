package neuro

import (
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// NetworkPolicy is a decision function backed by an evolved network.
// It is not safe for concurrent use; each bird gets its own.
type NetworkPolicy struct {
	net   *network.Network
	depth int
	err   error
}

// NewNetworkPolicy wraps a phenotype network.
func NewNetworkPolicy(net *network.Network) (*NetworkPolicy, error) {
	if net == nil {
		return nil, fmt.Errorf("neuro: nil network")
	}
	if n := len(net.Outputs); n != numOutputs {
		return nil, fmt.Errorf("neuro: network has %d outputs, want %d", n, numOutputs)
	}
	depth, err := net.MaxActivationDepthWithCap(0)
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to measure network depth: %w", err)
	}
	if depth < 1 {
		depth = 1
	}
	return &NetworkPolicy{net: net, depth: depth}, nil
}

// PolicyFromGenome builds a fresh network from a genome.
func PolicyFromGenome(g *genetics.Genome) (*NetworkPolicy, error) {
	net, err := g.Genesis(g.Id)
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to build network: %w", err)
	}
	return NewNetworkPolicy(net)
}

// Decide activates the network on the bird's view of the next gap.
// A network that fails to activate never flaps; Err reports why.
func (p *NetworkPolicy) Decide(y, distTop, distBottom float64) float64 {
	if p.err != nil {
		return 0
	}
	out, err := p.activate(y, distTop, distBottom)
	if err != nil {
		p.err = err
		return 0
	}
	return out
}

func (p *NetworkPolicy) activate(y, distTop, distBottom float64) (float64, error) {
	in := [numSensors]float64{1.0, y, distTop, distBottom}
	if err := p.net.LoadSensors(in[:]); err != nil {
		return 0, fmt.Errorf("neuro: load sensors: %w", err)
	}
	if _, err := p.net.ForwardSteps(p.depth); err != nil {
		return 0, fmt.Errorf("neuro: activate: %w", err)
	}
	out := p.net.Outputs[0].Activation
	if _, err := p.net.Flush(); err != nil {
		return 0, fmt.Errorf("neuro: flush: %w", err)
	}
	return out, nil
}

// Err returns the first activation error, if any.
func (p *NetworkPolicy) Err() error {
	return p.err
}
