package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/platform/obs"
	"strings"

	"go.uber.org/zap"
)

// SQLRouteCache is a Postgres-backed cache for origin->destination routes,
// scoped by topology fingerprint.
type SQLRouteCache struct {
	DB       *sql.DB
	Topology string
	Log      *zap.Logger
}

func NewSQLRouteCache(db *sql.DB, topology string, log *zap.Logger) *SQLRouteCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLRouteCache{DB: db, Topology: topology, Log: log}
}

// Fetch a cached route; ok is false on a miss.
func (s *SQLRouteCache) GetRoute(
	ctx context.Context,
	origin, destination domain.Location,
) (_ domain.Route, ok bool, err error) {
	defer obs.Time(ctx, s.Log, "route.cache.GetRoute")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	if origin == "" || destination == "" {
		return nil, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT route
    FROM route_cache
    WHERE topology = $1
        AND origin = $2
        AND destination = $3;
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

// Store a route, updating any previous entry for the same pair.
func (s *SQLRouteCache) PutRoute(
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
	INSERT INTO route_cache (topology, origin, destination, route, hops)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (topology, origin, destination) DO UPDATE
	SET route = EXCLUDED.route,
		hops = EXCLUDED.hops;
	`, s.Topology, string(origin), string(destination), raw, route.Len())
	if err != nil {
		return fmt.Errorf("insert route cache %s: %w", routeKey(origin, destination), err)
	}

	return nil
}
