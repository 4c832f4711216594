package ports

import (
	"context"
	"parcel-robot-sim/internal/domain"
)

// Storage for previously computed routes, keyed by origin and destination.
// Implementations must return ok=false (and no error) on a miss.
type RouteCache interface {
	GetRoute(ctx context.Context, origin, destination domain.Location) (domain.Route, bool, error)
	PutRoute(ctx context.Context, origin, destination domain.Location, route domain.Route) error
}
