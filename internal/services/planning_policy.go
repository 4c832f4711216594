package services

import (
	"context"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/ports"
)

// Both planning policies are two-state machines: with empty memory they plan a
// route and immediately start following it; with non-empty memory they emit
// the next precomputed step.

// GoalOrientedPolicy always works on the first pending parcel: it walks to the
// parcel if it is elsewhere, otherwise to the parcel's address.
type GoalOrientedPolicy struct {
	finder ports.RouteFinder
}

func NewGoalOrientedPolicy(finder ports.RouteFinder) (*GoalOrientedPolicy, error) {
	if finder == nil {
		return nil, errors.New("new goal oriented policy: route finder is nil")
	}
	return &GoalOrientedPolicy{finder: finder}, nil
}

func (p *GoalOrientedPolicy) Name() string { return PolicyGoal }

func (p *GoalOrientedPolicy) Decide(ctx context.Context, state domain.WorldState, memory Memory) (Action, error) {
	route, err := routeMemory(memory)
	if err != nil {
		return Action{}, fmt.Errorf("goal oriented decide: %w", err)
	}

	if route.Empty() {
		if state.Done() {
			return Action{}, fmt.Errorf("goal oriented decide: %w", ErrNoParcels)
		}
		route, err = parcelRoute(ctx, p.finder, state.Place(), state.Parcel(0))
		if err != nil {
			return Action{}, fmt.Errorf("goal oriented decide: %w", err)
		}
	}

	action, err := follow(route)
	if err != nil {
		return Action{}, fmt.Errorf("goal oriented decide: %w", err)
	}
	return action, nil
}

// EfficientPolicy plans towards whichever parcel has the shortest candidate
// route, preferring the earliest parcel on ties.
type EfficientPolicy struct {
	finder ports.RouteFinder
}

func NewEfficientPolicy(finder ports.RouteFinder) (*EfficientPolicy, error) {
	if finder == nil {
		return nil, errors.New("new efficient policy: route finder is nil")
	}
	return &EfficientPolicy{finder: finder}, nil
}

func (p *EfficientPolicy) Name() string { return PolicyEfficient }

func (p *EfficientPolicy) Decide(ctx context.Context, state domain.WorldState, memory Memory) (Action, error) {
	route, err := routeMemory(memory)
	if err != nil {
		return Action{}, fmt.Errorf("efficient decide: %w", err)
	}

	if route.Empty() {
		if state.Done() {
			return Action{}, fmt.Errorf("efficient decide: %w", ErrNoParcels)
		}

		var best domain.Route
		for i := 0; i < state.ParcelCount(); i++ {
			candidate, err := parcelRoute(ctx, p.finder, state.Place(), state.Parcel(i))
			if err != nil {
				return Action{}, fmt.Errorf("efficient decide: parcel #%d: %w", i+1, err)
			}
			if best == nil || candidate.Len() < best.Len() {
				best = candidate
			}
		}
		route = best
	}

	action, err := follow(route)
	if err != nil {
		return Action{}, fmt.Errorf("efficient decide: %w", err)
	}
	return action, nil
}

// parcelRoute returns the route to fetch p, or to deliver it when the robot
// already holds it.
func parcelRoute(ctx context.Context, finder ports.RouteFinder, place domain.Location, p domain.Parcel) (domain.Route, error) {
	target := p.Address
	if p.Place != place {
		target = p.Place
	}
	return finder.FindRoute(ctx, place, target)
}
