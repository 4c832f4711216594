package services

import (
	"context"
	"errors"
	"parcel-robot-sim/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubCache struct {
	routes map[string]domain.Route
	getErr error
	putErr error
	gets   int
	puts   int
}

func (c *stubCache) GetRoute(_ context.Context, o, d domain.Location) (domain.Route, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.routes[string(o)+"|"+string(d)]
	return r, ok, nil
}

func (c *stubCache) PutRoute(_ context.Context, o, d domain.Location, r domain.Route) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.routes[string(o)+"|"+string(d)] = r
	return nil
}

type countingFinder struct {
	next  *BFSRouteFinder
	calls int
}

func (f *countingFinder) FindRoute(ctx context.Context, o, d domain.Location) (domain.Route, error) {
	f.calls++
	return f.next.FindRoute(ctx, o, d)
}

func TestCachedRouteFinderReadsThrough(t *testing.T) {
	inner := &countingFinder{next: NewBFSRouteFinder(villageTopology(t))}
	cache := &stubCache{routes: map[string]domain.Route{}}
	finder := NewCachedRouteFinder(inner, cache, zaptest.NewLogger(t))

	first, err := finder.FindRoute(context.Background(), "Cabin", "Town Hall")
	require.NoError(t, err)
	second, err := finder.FindRoute(context.Background(), "Cabin", "Town Hall")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, cache.puts)
}

func TestCachedRouteFinderBypassesBrokenCache(t *testing.T) {
	inner := &countingFinder{next: NewBFSRouteFinder(villageTopology(t))}
	cache := &stubCache{routes: map[string]domain.Route{}, getErr: errors.New("down"), putErr: errors.New("down")}
	finder := NewCachedRouteFinder(inner, cache, nil)

	route, err := finder.FindRoute(context.Background(), "Post Office", "Cabin")
	require.NoError(t, err)
	assert.Equal(t, domain.Route{"Alice's House", "Cabin"}, route)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedRouteFinderDoesNotCacheNoRoute(t *testing.T) {
	topo := mustTopology(t, "A-B", "C-D")
	cache := &stubCache{routes: map[string]domain.Route{}}
	finder := NewCachedRouteFinder(NewBFSRouteFinder(topo), cache, nil)

	_, err := finder.FindRoute(context.Background(), "A", "C")
	var noRoute *NoRouteError
	require.True(t, errors.As(err, &noRoute))
	assert.Zero(t, cache.puts)
}
