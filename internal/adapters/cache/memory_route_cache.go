package cache

import (
	"context"
	"parcel-robot-sim/internal/domain"
	"sync"
)

// MemoryRouteCache keeps routes in process memory. It is safe for concurrent use.
type MemoryRouteCache struct {
	mu     sync.RWMutex
	routes map[string]domain.Route
}

func NewMemoryRouteCache() *MemoryRouteCache {
	return &MemoryRouteCache{routes: make(map[string]domain.Route)}
}

func (c *MemoryRouteCache) GetRoute(_ context.Context, origin, destination domain.Location) (domain.Route, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.routes[routeKey(origin, destination)]
	if !ok {
		return nil, false, nil
	}
	return r.Clone(), true, nil
}

func (c *MemoryRouteCache) PutRoute(_ context.Context, origin, destination domain.Location, route domain.Route) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.routes[routeKey(origin, destination)] = route.Clone()
	return nil
}

// Len returns the number of cached routes.
func (c *MemoryRouteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.routes)
}
