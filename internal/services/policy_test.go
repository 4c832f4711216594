package services

import (
	"context"
	"errors"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustState(t testing.TB, topo *domain.Topology, place domain.Location, parcels ...domain.Parcel) domain.WorldState {
	t.Helper()
	s, err := domain.NewWorldState(topo, place, parcels)
	require.NoError(t, err)
	return s
}

func mustTopology(t testing.TB, edges ...string) *domain.Topology {
	t.Helper()
	topo, err := domain.ParseTopology(edges)
	require.NoError(t, err)
	return topo
}

func TestRandomPolicyPicksNeighbor(t *testing.T) {
	topo := villageTopology(t)
	state := mustState(t, topo, "Town Hall", domain.Parcel{Place: "Cabin", Address: "Farm"})
	neighbors, err := topo.Neighbors("Town Hall")
	require.NoError(t, err)

	p := NewRandomPolicy(11)
	seen := map[domain.Location]bool{}
	for i := 0; i < 200; i++ {
		action, err := p.Decide(context.Background(), state, "untouched")
		require.NoError(t, err)
		assert.Contains(t, neighbors, action.Direction)
		assert.Equal(t, Memory("untouched"), action.Memory)
		seen[action.Direction] = true
	}
	assert.Len(t, seen, len(neighbors), "every neighbor should come up in 200 draws")
}

func TestFixedRoutePolicyCycles(t *testing.T) {
	topo := mustTopology(t, "A-B", "B-C")
	state := mustState(t, topo, "A", domain.Parcel{Place: "C", Address: "A"})

	p, err := NewFixedRoutePolicy(domain.Route{"B", "C", "B", "A"})
	require.NoError(t, err)

	var memory Memory
	var got []domain.Location
	for i := 0; i < 6; i++ {
		action, err := p.Decide(context.Background(), state, memory)
		require.NoError(t, err)
		got = append(got, action.Direction)
		memory = action.Memory
	}
	assert.Equal(t, []domain.Location{"B", "C", "B", "A", "B", "C"}, got)

	_, err = NewFixedRoutePolicy(nil)
	assert.Error(t, err)
}

func TestGoalOrientedPolicyFetchesThenDelivers(t *testing.T) {
	topo := mustTopology(t, "A-B", "B-C", "C-D")
	finder := NewBFSRouteFinder(topo)
	p, err := NewGoalOrientedPolicy(finder)
	require.NoError(t, err)

	// first parcel is elsewhere: go fetch it
	state := mustState(t, topo, "A",
		domain.Parcel{Place: "D", Address: "A"},
		domain.Parcel{Place: "B", Address: "C"},
	)
	action, err := p.Decide(context.Background(), state, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Location("B"), action.Direction)
	assert.Equal(t, domain.Route{"C", "D"}, action.Memory)

	// following: memory is consumed without replanning
	action, err = p.Decide(context.Background(), state.Move("B"), action.Memory)
	require.NoError(t, err)
	assert.Equal(t, domain.Location("C"), action.Direction)
	assert.Equal(t, domain.Route{"D"}, action.Memory)

	// robot holds the first parcel: go deliver it
	held := mustState(t, topo, "D", domain.Parcel{Place: "D", Address: "B"})
	action, err = p.Decide(context.Background(), held, domain.Route{})
	require.NoError(t, err)
	assert.Equal(t, domain.Location("C"), action.Direction)
	assert.Equal(t, domain.Route{"B"}, action.Memory)
}

func TestEfficientPolicyPicksShortestCandidate(t *testing.T) {
	topo := mustTopology(t, "A-B", "B-C", "C-D")
	p, err := NewEfficientPolicy(NewBFSRouteFinder(topo))
	require.NoError(t, err)

	state := mustState(t, topo, "A",
		domain.Parcel{Place: "D", Address: "A"},
		domain.Parcel{Place: "B", Address: "C"},
	)
	action, err := p.Decide(context.Background(), state, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Location("B"), action.Direction)
	assert.Equal(t, domain.Route{}, action.Memory)
}

func TestEfficientPolicyTieGoesToEarliestParcel(t *testing.T) {
	topo := mustTopology(t, "X-A", "X-B")
	p, err := NewEfficientPolicy(NewBFSRouteFinder(topo))
	require.NoError(t, err)

	state := mustState(t, topo, "X",
		domain.Parcel{Place: "B", Address: "A"},
		domain.Parcel{Place: "A", Address: "B"},
	)
	action, err := p.Decide(context.Background(), state, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Location("B"), action.Direction)
}

func TestPlanningPoliciesPropagateNoRoute(t *testing.T) {
	topo := mustTopology(t, "A-B", "C-D")
	state := mustState(t, topo, "A", domain.Parcel{Place: "C", Address: "D"})
	finder := NewBFSRouteFinder(topo)

	goal, err := NewGoalOrientedPolicy(finder)
	require.NoError(t, err)
	efficient, err := NewEfficientPolicy(finder)
	require.NoError(t, err)

	for _, p := range []Policy{goal, efficient} {
		_, err := p.Decide(context.Background(), state, nil)
		var noRoute *NoRouteError
		assert.True(t, errors.As(err, &noRoute), "%s: err = %v", p.Name(), err)
	}
}

func TestPlanningPoliciesRejectForeignMemory(t *testing.T) {
	topo := mustTopology(t, "A-B")
	state := mustState(t, topo, "A", domain.Parcel{Place: "B", Address: "A"})
	finder := NewBFSRouteFinder(topo)

	goal, err := NewGoalOrientedPolicy(finder)
	require.NoError(t, err)
	efficient, err := NewEfficientPolicy(finder)
	require.NoError(t, err)
	route, err := NewFixedRoutePolicy(domain.Route{"B", "A"})
	require.NoError(t, err)

	_, err = goal.Decide(context.Background(), state, 42)
	assert.EqualError(t, err, "goal oriented decide: unexpected memory type int")
	_, err = efficient.Decide(context.Background(), state, "plan")
	assert.EqualError(t, err, "efficient decide: unexpected memory type string")
	_, err = route.Decide(context.Background(), state, 42)
	assert.EqualError(t, err, "fixed route decide: unexpected memory type int")

	_, err = goal.Decide(context.Background(), mustState(t, topo, "A"), nil)
	assert.ErrorIs(t, err, ErrNoParcels)
	assert.EqualError(t, err, "goal oriented decide: no parcels to plan for")
}

func TestRandomPolicyForSampleIsIndependentOfCallOrder(t *testing.T) {
	topo := villageTopology(t)
	state := mustState(t, topo, "Town Hall", domain.Parcel{Place: "Cabin", Address: "Farm"})
	p := NewRandomPolicy(3)

	draws := func(sp Policy) []domain.Location {
		var out []domain.Location
		for i := 0; i < 20; i++ {
			action, err := sp.Decide(context.Background(), state, nil)
			require.NoError(t, err)
			out = append(out, action.Direction)
		}
		return out
	}

	// burn draws on the shared source; per-sample streams must not notice
	draws(p)
	first := draws(p.ForSample(7))
	draws(p.ForSample(8))
	assert.Equal(t, first, draws(p.ForSample(7)))
	assert.NotEqual(t, first, draws(p.ForSample(8)))
}

func TestNewPolicyByName(t *testing.T) {
	topo := villageTopology(t)
	deps := PolicyDeps{
		Finder:    NewBFSRouteFinder(topo),
		MailRoute: config.DefaultScenario().Route(),
		Seed:      1,
	}

	for _, name := range PolicyNames {
		p, err := NewPolicy(name, deps)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}

	_, err := NewPolicy("teleport", deps)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
