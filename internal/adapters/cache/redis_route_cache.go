package cache

import (
	"context"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache stores routes as JSON strings under
// "<prefix><topology>:<route key>", so topologies sharing one server never
// see each other's routes.
type RedisRouteCache struct {
	Client *redis.Client
	Prefix string
	// Topology is the fingerprint of the graph the routes belong to.
	Topology string
	// TTL of zero keeps entries until evicted.
	TTL time.Duration
}

func NewRedisRouteCache(client *redis.Client, prefix, topology string, ttl time.Duration) *RedisRouteCache {
	if prefix == "" {
		prefix = "robotsim:route:"
	}
	return &RedisRouteCache{Client: client, Prefix: prefix, Topology: topology, TTL: ttl}
}

func (c *RedisRouteCache) key(origin, destination domain.Location) string {
	return c.Prefix + c.Topology + ":" + routeKey(origin, destination)
}

// Fetch a cached route; ok is false on a miss.
func (c *RedisRouteCache) GetRoute(
	ctx context.Context,
	origin, destination domain.Location,
) (domain.Route, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("route cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, c.key(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: redis get: %w", err)
	}

	route, err := decodeRoute(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache %s: %w", routeKey(origin, destination), err)
	}
	return route, true, nil
}

// Store a route.
func (c *RedisRouteCache) PutRoute(
	ctx context.Context,
	origin, destination domain.Location,
	route domain.Route,
) error {
	if c.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	raw, err := encodeRoute(route)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	if err := c.Client.Set(ctx, c.key(origin, destination), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert route cache: redis set: %w", err)
	}
	return nil
}
