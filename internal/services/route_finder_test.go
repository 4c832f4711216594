package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func villageTopology(t testing.TB) *domain.Topology {
	t.Helper()
	topo, err := domain.ParseTopology(config.VillageRoads)
	require.NoError(t, err)
	return topo
}

func TestFindRouteVillage(t *testing.T) {
	topo := villageTopology(t)

	tests := []struct {
		from, to domain.Location
		want     domain.Route
	}{
		{from: "Cabin", to: "Town Hall", want: domain.Route{"Alice's House", "Bob's House", "Town Hall"}},
		// Farm and Shop both reach Grete's House in three steps; Marketplace lists Farm first.
		{from: "Post Office", to: "Grete's House", want: domain.Route{"Marketplace", "Farm", "Grete's House"}},
		{from: "Post Office", to: "Marketplace", want: domain.Route{"Marketplace"}},
		{from: "Shop", to: "Shop", want: domain.Route{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			got, err := FindRoute(topo, tt.from, tt.to)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindRoute mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindRouteNoRoute(t *testing.T) {
	topo, err := domain.ParseTopology([]string{"A-B", "C-D"})
	require.NoError(t, err)

	route, err := FindRoute(topo, "A", "D")
	assert.Nil(t, route)

	var noRoute *NoRouteError
	require.True(t, errors.As(err, &noRoute), "err = %v", err)
	assert.Equal(t, domain.Location("A"), noRoute.From)
	assert.Equal(t, domain.Location("D"), noRoute.To)
}

func TestFindRouteUnknownLocation(t *testing.T) {
	topo := villageTopology(t)

	for _, pair := range [][2]domain.Location{{"Moon", "Shop"}, {"Shop", "Moon"}} {
		_, err := FindRoute(topo, pair[0], pair[1])
		var unknown *domain.UnknownLocationError
		require.True(t, errors.As(err, &unknown), "err = %v", err)
		assert.Equal(t, domain.Location("Moon"), unknown.Location)
	}
}

// floydWarshall returns all-pairs hop distances; -1 marks unreachable pairs.
func floydWarshall(n int, edges [][2]int) [][]int {
	const inf = 1 << 30
	d := make([][]int, n)
	for i := range d {
		d[i] = make([]int, n)
		for j := range d[i] {
			if i != j {
				d[i][j] = inf
			}
		}
	}
	for _, e := range edges {
		d[e[0]][e[1]] = 1
		d[e[1]][e[0]] = 1
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if d[i][k]+d[k][j] < d[i][j] {
					d[i][j] = d[i][k] + d[k][j]
				}
			}
		}
	}
	for i := range d {
		for j := range d[i] {
			if d[i][j] == inf {
				d[i][j] = -1
			}
		}
	}
	return d
}

func TestFindRouteMatchesGraphDistance(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	name := func(i int) domain.Location { return domain.Location(fmt.Sprintf("n%d", i)) }

	for round := 0; round < 50; round++ {
		n := 3 + rng.IntN(8)
		var edges [][2]int
		var roads []domain.Road
		// every node gets at least one road so it is declared
		for i := 0; i < n; i++ {
			j := rng.IntN(n)
			if j == i {
				j = (i + 1) % n
			}
			edges = append(edges, [2]int{i, j})
			roads = append(roads, domain.Road{From: name(i), To: name(j)})
		}
		for k := rng.IntN(n); k > 0; k-- {
			i, j := rng.IntN(n), rng.IntN(n)
			if i == j {
				continue
			}
			edges = append(edges, [2]int{i, j})
			roads = append(roads, domain.Road{From: name(i), To: name(j)})
		}

		topo := domain.NewTopology(roads)
		dist := floydWarshall(n, edges)

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				route, err := FindRoute(topo, name(i), name(j))
				if dist[i][j] < 0 {
					var noRoute *NoRouteError
					require.True(t, errors.As(err, &noRoute), "round %d %d->%d: err = %v", round, i, j, err)
					continue
				}

				require.NoError(t, err)
				require.Equal(t, dist[i][j], route.Len(), "round %d %d->%d", round, i, j)

				at := name(i)
				for _, step := range route {
					require.True(t, topo.Adjacent(at, step), "round %d: %s -> %s is not a road", round, at, step)
					at = step
				}
				require.Equal(t, name(j), at)
			}
		}
	}
}

func TestBFSRouteFinder(t *testing.T) {
	finder := NewBFSRouteFinder(villageTopology(t))

	route, err := finder.FindRoute(context.Background(), "Post Office", "Cabin")
	require.NoError(t, err)
	assert.Equal(t, domain.Route{"Alice's House", "Cabin"}, route)
}

func BenchmarkFindRouteVillage(b *testing.B) {
	topo := villageTopology(b)
	locations := topo.Locations()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := locations[i%len(locations)]
		to := locations[(i*7+3)%len(locations)]
		_, _ = FindRoute(topo, from, to)
	}
}
