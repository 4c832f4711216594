package ports

import "context"

// Port: a boundary for retrieving road declarations ("<from>-<to>") from a data source.
type RoadRepository interface {
	// Retrieve all roads in declaration order.
	ListRoads(ctx context.Context) ([]string, error)
}
