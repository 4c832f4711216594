package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"strings"
)

// SQLite backed cache for origin->destination routes.
// Routes are stored as JSON arrays alongside their hop count, scoped by the
// fingerprint of the topology they were computed on.
type SqliteRouteCache struct {
	DB       *sql.DB
	Topology string
}

func NewSqliteRouteCache(db *sql.DB, topology string) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db, Topology: topology}
}

// Fetch a cached route; ok is false on a miss.
func (s *SqliteRouteCache) GetRoute(
	ctx context.Context,
	origin, destination domain.Location,
) (_ domain.Route, ok bool, err error) {
	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	if origin == "" || destination == "" {
		return nil, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT route
    FROM route_cache
    WHERE topology = ?
        AND origin = ?
        AND destination = ?;
	`

	var raw string
	err = s.DB.QueryRowContext(ctx, q, s.Topology, string(origin), string(destination)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	route, err := decodeRoute(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache %s: %w", routeKey(origin, destination), err)
	}
	return route, true, nil
}

// Store a route, replacing any previous entry for the same pair.
func (s *SqliteRouteCache) PutRoute(
	ctx context.Context,
	origin, destination domain.Location,
	route domain.Route,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if strings.TrimSpace(string(origin)) == "" || strings.TrimSpace(string(destination)) == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	raw, err := encodeRoute(route)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (
        topology,
        origin,
        destination,
        route,
        hops
    )
    VALUES (?, ?, ?, ?, ?)
	`, s.Topology, string(origin), string(destination), raw, route.Len())
	if err != nil {
		return fmt.Errorf("insert route cache %s: %w", routeKey(origin, destination), err)
	}

	return nil
}
