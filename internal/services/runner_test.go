package services

import (
	"context"
	"errors"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func allPolicies(t testing.TB, topo *domain.Topology, mailRoute domain.Route) []Policy {
	t.Helper()
	deps := PolicyDeps{Finder: NewBFSRouteFinder(topo), MailRoute: mailRoute, Seed: 5}
	var out []Policy
	for _, name := range PolicyNames {
		p, err := NewPolicy(name, deps)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestRunGoalOrientedLineScenario(t *testing.T) {
	topo := mustTopology(t, "A-B", "B-C")
	state := mustState(t, topo, "A", domain.Parcel{Place: "B", Address: "C"})
	goal, err := NewGoalOrientedPolicy(NewBFSRouteFinder(topo))
	require.NoError(t, err)

	var events []TurnEvent
	runner := NewRunner(zaptest.NewLogger(t))
	runner.Trace = func(e TurnEvent) { events = append(events, e) }

	turns, err := runner.Run(context.Background(), state, goal, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, turns)

	assert.Equal(t, []TurnEvent{
		{Turn: 1, Direction: "B", Place: "B", Remaining: 1},
		{Turn: 2, Direction: "C", Place: "C", Remaining: 0},
	}, events)
}

func TestRunWithoutParcelsTakesNoTurns(t *testing.T) {
	topo := mustTopology(t, "A-B", "B-C")
	state := mustState(t, topo, "A")

	for _, p := range allPolicies(t, topo, domain.Route{"B", "C", "B", "A"}) {
		turns, err := NewRunner(nil).Run(context.Background(), state, p, nil)
		require.NoError(t, err, p.Name())
		assert.Equal(t, 0, turns, p.Name())
	}
}

func TestRunEveryPolicyFinishesOnVillage(t *testing.T) {
	sc := config.DefaultScenario()
	topo := villageTopology(t)
	state := mustState(t, topo, "Post Office",
		domain.Parcel{Place: "Cabin", Address: "Shop"},
		domain.Parcel{Place: "Farm", Address: "Bob's House"},
		domain.Parcel{Place: "Town Hall", Address: "Post Office"},
	)

	for _, p := range allPolicies(t, topo, sc.Route()) {
		turns, err := NewRunner(nil).Run(context.Background(), state, p, nil)
		require.NoError(t, err, p.Name())
		assert.Positive(t, turns, p.Name())
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	topo := mustTopology(t, "A-B", "B-C")
	state := mustState(t, topo, "A", domain.Parcel{Place: "B", Address: "C"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	turns, err := NewRunner(nil).Run(ctx, state, NewRandomPolicy(1), nil)
	assert.Equal(t, 0, turns)
	assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
}

func TestRunPropagatesPolicyError(t *testing.T) {
	topo := mustTopology(t, "A-B", "C-D")
	state := mustState(t, topo, "A", domain.Parcel{Place: "C", Address: "D"})
	goal, err := NewGoalOrientedPolicy(NewBFSRouteFinder(topo))
	require.NoError(t, err)

	_, err = NewRunner(nil).Run(context.Background(), state, goal, nil)
	var noRoute *NoRouteError
	assert.True(t, errors.As(err, &noRoute), "err = %v", err)
}
