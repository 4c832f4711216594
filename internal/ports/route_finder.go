package ports

import (
	"context"
	"parcel-robot-sim/internal/domain"
)

// Contract for computing shortest routes between two locations.
type RouteFinder interface {
	// Return the route from origin to destination, excluding origin.
	FindRoute(ctx context.Context, origin, destination domain.Location) (domain.Route, error)
}
