package services

import (
	"context"
	"errors"
	"fmt"
	"parcel-robot-sim/internal/domain"
)

// FixedRoutePolicy loops over a predeclared route forever, ignoring parcels.
type FixedRoutePolicy struct {
	route domain.Route
}

func NewFixedRoutePolicy(route domain.Route) (*FixedRoutePolicy, error) {
	if route.Empty() {
		return nil, errors.New("new fixed route policy: route must not be empty")
	}
	return &FixedRoutePolicy{route: route.Clone()}, nil
}

func (p *FixedRoutePolicy) Name() string { return PolicyRoute }

func (p *FixedRoutePolicy) Decide(_ context.Context, _ domain.WorldState, memory Memory) (Action, error) {
	route, err := routeMemory(memory)
	if err != nil {
		return Action{}, fmt.Errorf("fixed route decide: %w", err)
	}
	if route.Empty() {
		route = p.route
	}
	action, err := follow(route)
	if err != nil {
		return Action{}, fmt.Errorf("fixed route decide: %w", err)
	}
	return action, nil
}
