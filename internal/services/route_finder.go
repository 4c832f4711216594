package services

import (
	"context"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
)

// NoRouteError reports that the destination is not reachable from the origin.
// It is distinct from the empty route returned when origin == destination.
type NoRouteError struct {
	From domain.Location
	To   domain.Location
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("find route: no route from %q to %q", e.From, e.To)
}

// searchItem is a discovered location and the route that first reached it.
type searchItem struct {
	at    domain.Location
	route domain.Route
}

// FindRoute returns a shortest route from `from` to `to` using breadth-first search.
//
// The frontier is expanded in FIFO order and each location is visited at most
// once, so the first discovery of `to` is a shortest path. Ties between
// shortest paths are broken by the topology's adjacency order.
func FindRoute(topo *domain.Topology, from, to domain.Location) (domain.Route, error) {
	if topo == nil {
		return nil, errors.New("find route: topology is nil")
	}
	if !topo.Has(from) {
		return nil, fmt.Errorf("find route: origin: %w", &domain.UnknownLocationError{Location: from})
	}
	if !topo.Has(to) {
		return nil, fmt.Errorf("find route: destination: %w", &domain.UnknownLocationError{Location: to})
	}
	if from == to {
		return domain.Route{}, nil
	}

	visited := map[domain.Location]bool{from: true}
	work := []searchItem{{at: from}}

	for i := 0; i < len(work); i++ {
		item := work[i]

		var found domain.Route
		err := topo.Walk(item.at, func(next domain.Location) bool {
			if visited[next] {
				return true
			}
			visited[next] = true

			// Full slice expression so siblings never share a backing array.
			route := append(item.route[:len(item.route):len(item.route)], next)
			if next == to {
				found = route
				return false
			}
			work = append(work, searchItem{at: next, route: route})
			return true
		})
		if err != nil {
			return nil, fmt.Errorf("find route: expand %q: %w", item.at, err)
		}
		if found != nil {
			return found, nil
		}
	}

	return nil, &NoRouteError{From: from, To: to}
}

// BFSRouteFinder answers route queries over a fixed topology.
type BFSRouteFinder struct {
	Topology *domain.Topology
}

func NewBFSRouteFinder(topo *domain.Topology) *BFSRouteFinder {
	return &BFSRouteFinder{Topology: topo}
}

func (f *BFSRouteFinder) FindRoute(_ context.Context, origin, destination domain.Location) (domain.Route, error) {
	return FindRoute(f.Topology, origin, destination)
}
