package statefactory

import (
	"errors"
	"parcel-robot-sim/internal/domain"
	"sync"
)

// FixedStateFactory replays a predeclared list of states, cycling when exhausted.
type FixedStateFactory struct {
	mu     sync.Mutex
	states []domain.WorldState
	next   int
}

func NewFixedStateFactory(states ...domain.WorldState) (*FixedStateFactory, error) {
	if len(states) == 0 {
		return nil, errors.New("fixed state factory: no states")
	}
	return &FixedStateFactory{states: states}, nil
}

func (f *FixedStateFactory) NewState() (domain.WorldState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.states[f.next]
	f.next = (f.next + 1) % len(f.states)
	return s, nil
}
