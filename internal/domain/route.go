package domain

import "slices"

// Represents a shortest path through the topology.
// The source location is not included; the destination is the last element.
// Routes are treated as immutable values: Tail shares the backing array.
type Route []Location

// Head returns the next step of the route. ok is false for an empty route.
func (r Route) Head() (loc Location, ok bool) {
	if len(r) == 0 {
		return "", false
	}
	return r[0], true
}

// Tail returns the route without its first step.
func (r Route) Tail() Route {
	if len(r) <= 1 {
		return Route{}
	}
	return r[1:]
}

func (r Route) Len() int { return len(r) }

func (r Route) Empty() bool { return len(r) == 0 }

// Clone returns a copy that does not alias r.
func (r Route) Clone() Route {
	if r == nil {
		return nil
	}
	return slices.Clone(r)
}
