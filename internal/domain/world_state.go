package domain

import (
	"errors"
	"fmt"
	"slices"
)

// WorldState is an immutable snapshot of the robot's location and the parcels
// that still need delivering. Every transition returns a new value; the
// receiver and its parcel slice are never modified.
type WorldState struct {
	topology *Topology
	place    Location
	parcels  []Parcel
}

// NewWorldState validates and builds an initial state on topo.
// The robot's place and both endpoints of every parcel must be declared in
// topo, and no parcel may already be at its address.
func NewWorldState(topo *Topology, place Location, parcels []Parcel) (WorldState, error) {
	if topo == nil {
		return WorldState{}, errors.New("new world state: topology is nil")
	}

	if !topo.Has(place) {
		return WorldState{}, fmt.Errorf("new world state: robot place: %w", &UnknownLocationError{Location: place})
	}

	for i, p := range parcels {
		for _, loc := range []Location{p.Place, p.Address} {
			if !topo.Has(loc) {
				return WorldState{}, fmt.Errorf("new world state: parcel #%d: %w", i+1, &UnknownLocationError{Location: loc})
			}
		}
		if p.Delivered() {
			return WorldState{}, fmt.Errorf("new world state: parcel #%d at %q: %w", i+1, p.Place, ErrDeliveredParcel)
		}
	}

	return WorldState{
		topology: topo,
		place:    place,
		parcels:  slices.Clone(parcels),
	}, nil
}

// Place returns the robot's current location.
func (s WorldState) Place() Location { return s.place }

// Parcels returns a copy of the undelivered parcels in their original order.
func (s WorldState) Parcels() []Parcel { return slices.Clone(s.parcels) }

// Parcel returns the i-th undelivered parcel without copying the whole set.
func (s WorldState) Parcel(i int) Parcel { return s.parcels[i] }

func (s WorldState) ParcelCount() int { return len(s.parcels) }

// Done reports whether every parcel has been delivered.
func (s WorldState) Done() bool { return len(s.parcels) == 0 }

func (s WorldState) Topology() *Topology { return s.topology }

// Move drives the robot to direction, carrying every parcel at its current
// place along and dropping the ones that arrive at their address.
//
// A direction that is not adjacent to the current place is not an error: the
// state is returned unchanged. Callers that need strict validation must check
// Topology().Adjacent first.
func (s WorldState) Move(direction Location) WorldState {
	if s.topology == nil || !s.topology.Adjacent(s.place, direction) {
		return s
	}

	parcels := make([]Parcel, 0, len(s.parcels))
	for _, p := range s.parcels {
		if p.Place == s.place {
			p = Parcel{Place: direction, Address: p.Address}
		}
		if p.Delivered() {
			continue
		}
		parcels = append(parcels, p)
	}

	return WorldState{
		topology: s.topology,
		place:    direction,
		parcels:  parcels,
	}
}

func (s WorldState) String() string {
	return fmt.Sprintf("place=%s parcels=%d", s.place, len(s.parcels))
}
