package ports

import "parcel-robot-sim/internal/domain"

// Supplies initial world states for simulations and comparisons.
// Implementations must only produce parcels whose place differs from their
// address, on locations that exist in the topology.
type StateFactory interface {
	NewState() (domain.WorldState, error)
}
