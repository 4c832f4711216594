package statefactory

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"parcel-robot-sim/internal/domain"
	"sync"
)

// RandomStateFactory generates initial states with the robot at a fixed start
// and parcels scattered uniformly over the topology.
// Every parcel gets an address different from its place.
type RandomStateFactory struct {
	topo        *domain.Topology
	start       domain.Location
	parcelCount int
	locations   []domain.Location

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomStateFactory(
	topo *domain.Topology,
	start domain.Location,
	parcelCount int,
	seed uint64,
) (*RandomStateFactory, error) {
	if topo == nil {
		return nil, errors.New("random state factory: topology is nil")
	}
	if !topo.Has(start) {
		return nil, fmt.Errorf("random state factory: start: %w", &domain.UnknownLocationError{Location: start})
	}
	if parcelCount < 0 {
		return nil, fmt.Errorf("random state factory: parcel count %d must not be negative", parcelCount)
	}

	locations := topo.Locations()
	if len(locations) < 2 && parcelCount > 0 {
		return nil, errors.New("random state factory: need at least two locations to place parcels")
	}

	return &RandomStateFactory{
		topo:        topo,
		start:       start,
		parcelCount: parcelCount,
		locations:   locations,
		rng:         rand.New(rand.NewPCG(seed, seed+1)),
	}, nil
}

// NewState draws a fresh initial state.
func (f *RandomStateFactory) NewState() (domain.WorldState, error) {
	f.mu.Lock()
	parcels := make([]domain.Parcel, 0, f.parcelCount)
	for i := 0; i < f.parcelCount; i++ {
		place := f.pick()
		address := f.pick()
		for address == place {
			address = f.pick()
		}
		parcels = append(parcels, domain.Parcel{Place: place, Address: address})
	}
	f.mu.Unlock()

	state, err := domain.NewWorldState(f.topo, f.start, parcels)
	if err != nil {
		return domain.WorldState{}, fmt.Errorf("random state factory: %w", err)
	}
	return state, nil
}

func (f *RandomStateFactory) pick() domain.Location {
	return f.locations[f.rng.IntN(len(f.locations))]
}
