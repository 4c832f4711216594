package services

import (
	"context"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/ports"
	"strings"
)

var (
	// ErrNoParcels is returned when a planning policy is asked to decide for a
	// state with nothing left to deliver.
	ErrNoParcels = errors.New("no parcels to plan for")

	ErrUnknownPolicy = errors.New("unknown policy")
)

// Memory is a policy-private value carried from one decision to the next.
// Only the policy that produced it may interpret it; nil is the neutral
// starting memory for every policy.
type Memory any

// Action is the outcome of a single decision.
type Action struct {
	Direction domain.Location
	Memory    Memory
}

// Policy decides where the robot goes next.
type Policy interface {
	Name() string
	Decide(ctx context.Context, state domain.WorldState, memory Memory) (Action, error)
}

// SamplePolicy is implemented by policies with internal state, such as a
// random source. The comparator runs each sample against ForSample(i) instead
// of the shared policy, so a seeded comparison gives the same result however
// many workers run it.
type SamplePolicy interface {
	Policy
	ForSample(i int) Policy
}

// Policy names accepted by NewPolicy.
const (
	PolicyRandom    = "random"
	PolicyRoute     = "route"
	PolicyGoal      = "goal"
	PolicyEfficient = "efficient"
)

// PolicyNames lists every policy known to NewPolicy.
var PolicyNames = []string{PolicyRandom, PolicyRoute, PolicyGoal, PolicyEfficient}

// PolicyDeps carries what the policies need to be built by name.
type PolicyDeps struct {
	Finder    ports.RouteFinder
	MailRoute domain.Route
	Seed      uint64
}

// NewPolicy builds a policy by name.
func NewPolicy(name string, deps PolicyDeps) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyRandom:
		return NewRandomPolicy(deps.Seed), nil
	case PolicyRoute:
		return NewFixedRoutePolicy(deps.MailRoute)
	case PolicyGoal:
		return NewGoalOrientedPolicy(deps.Finder)
	case PolicyEfficient:
		return NewEfficientPolicy(deps.Finder)
	default:
		return nil, fmt.Errorf("new policy %q: %w", name, ErrUnknownPolicy)
	}
}

// routeMemory interprets memory produced by a route-following policy.
func routeMemory(memory Memory) (domain.Route, error) {
	switch m := memory.(type) {
	case nil:
		return domain.Route{}, nil
	case domain.Route:
		return m, nil
	default:
		return nil, fmt.Errorf("unexpected memory type %T", memory)
	}
}

// follow emits the head of route and keeps the rest as memory.
func follow(route domain.Route) (Action, error) {
	head, ok := route.Head()
	if !ok {
		return Action{}, errors.New("planned route is empty")
	}
	return Action{Direction: head, Memory: route.Tail()}, nil
}
