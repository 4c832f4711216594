package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"parcel-robot-sim/internal/domain"
	"sync"
)

// RandomPolicy walks to a uniformly random neighbor every turn and keeps no memory.
// It has no progress guarantee. It is safe for concurrent use.
type RandomPolicy struct {
	seed uint64

	mu  sync.Mutex
	rng *rand.Rand
}

const streamMix = 0x9e3779b97f4a7c15

// NewRandomPolicy seeds the policy's source so runs can be replayed.
func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{seed: seed, rng: rand.New(rand.NewPCG(seed, seed^streamMix))}
}

// ForSample returns a policy drawing from its own stream for sample i of a
// comparison, so results do not depend on the order samples are run in.
func (p *RandomPolicy) ForSample(i int) Policy {
	return &RandomPolicy{seed: p.seed, rng: rand.New(rand.NewPCG(p.seed^streamMix, uint64(i)))}
}

func (p *RandomPolicy) Name() string { return PolicyRandom }

func (p *RandomPolicy) Decide(_ context.Context, state domain.WorldState, memory Memory) (Action, error) {
	neighbors, err := state.Topology().Neighbors(state.Place())
	if err != nil {
		return Action{}, fmt.Errorf("random decide: %w", err)
	}
	if len(neighbors) == 0 {
		return Action{}, errors.New("random decide: no neighbors")
	}

	p.mu.Lock()
	pick := p.rng.IntN(len(neighbors))
	p.mu.Unlock()

	return Action{Direction: neighbors[pick], Memory: memory}, nil
}
