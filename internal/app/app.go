// Package app is the composition root shared by the commands: it picks
// concrete adapters from configuration and wires them behind the ports.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/adapters/cache"
	"parcel-robot-sim/internal/adapters/repositories"
	"parcel-robot-sim/internal/adapters/statefactory"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/platform/db"
	"parcel-robot-sim/internal/ports"
	"parcel-robot-sim/internal/services"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired core and the resources that must be released.
type App struct {
	Scenario   config.Scenario
	Topology   *domain.Topology
	Finder     ports.RouteFinder
	Runner     *services.Runner
	Comparator *services.Comparator
	Recorder   ports.ComparisonRecorder
	Log        *zap.Logger

	closers []func() error
}

// Options selects which optional backends to use.
type Options struct {
	Settings config.Settings
	Scenario config.Scenario
	// UseDB loads roads from and records comparisons to the configured database.
	UseDB bool
}

// New wires the application. Roads come from the database when UseDB is set
// and the roads table is not empty, otherwise from the scenario.
func New(ctx context.Context, opts Options, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Scenario: opts.Scenario, Log: log}

	var conn *sql.DB
	var dialect repositories.Dialect
	if opts.UseDB {
		var err error
		dialect, err = repositories.DialectFor(opts.Settings.DBDriver)
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		conn, err = db.Open(opts.Settings.DBDriver, opts.Settings.DSN())
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		a.closers = append(a.closers, conn.Close)

		if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("new app: %w", err)
		}

		roads, err := repositories.NewSQLRoadRepository(conn).ListRoads(ctx)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("new app: %w", err)
		}
		if len(roads) > 0 {
			log.Info("roads loaded from database", zap.Int("roads", len(roads)))
			a.Scenario.Roads = roads
		}
		a.Recorder = repositories.NewSQLComparisonRepository(conn, dialect)
	}

	topo, err := a.Scenario.Topology()
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("new app: %w", err)
	}
	a.Topology = topo

	if !routeFollowsRoads(topo, domain.Location(a.Scenario.Start), a.Scenario.Route()) {
		log.Warn("mail route does not follow the roads; fixed route policy disabled")
		a.Scenario.MailRoute = nil
	}

	routeCache, err := a.routeCache(ctx, opts.Settings, conn, dialect, topo.Fingerprint())
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("new app: %w", err)
	}
	a.Finder = services.NewCachedRouteFinder(services.NewBFSRouteFinder(topo), routeCache, log)

	a.Runner = services.NewRunner(log)
	a.Comparator = services.NewComparator(a.Runner, opts.Settings.Workers, log)
	a.Comparator.Recorder = a.Recorder

	return a, nil
}

func (a *App) routeCache(
	ctx context.Context,
	s config.Settings,
	conn *sql.DB,
	dialect repositories.Dialect,
	topology string,
) (ports.RouteCache, error) {
	if addr := strings.TrimSpace(s.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("route cache: ping redis %q: %w", addr, err)
		}
		a.closers = append(a.closers, client.Close)
		a.Log.Info("route cache: redis", zap.String("addr", addr), zap.String("topology", topology))
		return cache.NewRedisRouteCache(client, "", topology, 0), nil
	}

	if conn != nil {
		a.Log.Info("route cache: database", zap.String("driver", s.DBDriver), zap.String("topology", topology))
		if dialect == repositories.Postgres {
			return cache.NewSQLRouteCache(conn, topology, a.Log), nil
		}
		return cache.NewSqliteRouteCache(conn, topology), nil
	}

	return cache.NewMemoryRouteCache(), nil
}

// routeFollowsRoads reports whether route is a closed walk starting at start.
func routeFollowsRoads(topo *domain.Topology, start domain.Location, route domain.Route) bool {
	if route.Empty() {
		return true
	}
	at := start
	for _, step := range route {
		if !topo.Adjacent(at, step) {
			return false
		}
		at = step
	}
	return at == start
}

// Policy builds a policy by name using the app's finder and mail route.
func (a *App) Policy(name string, seed uint64) (services.Policy, error) {
	return services.NewPolicy(name, services.PolicyDeps{
		Finder:    a.Finder,
		MailRoute: a.Scenario.Route(),
		Seed:      seed,
	})
}

// StateFactory returns a random state factory over the app's topology.
func (a *App) StateFactory(parcelCount int, seed uint64) (ports.StateFactory, error) {
	return statefactory.NewRandomStateFactory(a.Topology, domain.Location(a.Scenario.Start), parcelCount, seed)
}

// Close releases every opened resource.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
