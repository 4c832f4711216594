package services

import (
	"context"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/platform/obs"
	"parcel-robot-sim/internal/ports"

	"go.uber.org/zap"
)

// CachedRouteFinder consults a RouteCache before delegating to the wrapped finder.
//
// Routes are deterministic for a fixed topology, so entries never go stale as
// long as Cache is scoped to the topology Next searches (the persistent caches
// take a Topology.Fingerprint for that). Cache failures are logged and the
// search falls through to Next; NoRouteError results are not cached.
type CachedRouteFinder struct {
	Next  ports.RouteFinder
	Cache ports.RouteCache
	Log   *zap.Logger
}

func NewCachedRouteFinder(next ports.RouteFinder, cache ports.RouteCache, log *zap.Logger) *CachedRouteFinder {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedRouteFinder{Next: next, Cache: cache, Log: log}
}

func (c *CachedRouteFinder) FindRoute(ctx context.Context, origin, destination domain.Location) (domain.Route, error) {
	cached, ok, err := c.Cache.GetRoute(ctx, origin, destination)
	switch {
	case err != nil:
		obs.RouteCacheLookups.WithLabelValues("error").Inc()
		c.Log.Warn("route cache lookup failed",
			zap.String("origin", string(origin)),
			zap.String("destination", string(destination)),
			zap.Error(err),
		)
	case ok:
		obs.RouteCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		obs.RouteCacheLookups.WithLabelValues("miss").Inc()
	}

	route, err := c.Next.FindRoute(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if err := c.Cache.PutRoute(ctx, origin, destination, route); err != nil {
		c.Log.Warn("route cache store failed",
			zap.String("origin", string(origin)),
			zap.String("destination", string(destination)),
			zap.Error(err),
		)
	}

	return route, nil
}
