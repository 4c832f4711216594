package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Topology is the static road graph. It is immutable once built and safe
// for concurrent readers.
//
// Adjacency lists keep the order in which roads were declared, and duplicate
// roads produce duplicate entries. Route search and the policies rely on that
// order for deterministic tie-breaking.
type Topology struct {
	roads     []Road
	adjacency map[Location][]Location
	locations []Location
}

// NewTopology builds a Topology from undirected road declarations.
func NewTopology(roads []Road) *Topology {
	t := &Topology{
		roads:     slices.Clone(roads),
		adjacency: make(map[Location][]Location),
	}

	for _, r := range roads {
		t.addEdge(r.From, r.To)
		t.addEdge(r.To, r.From)
	}

	return t
}

// ParseTopology parses "<from>-<to>" declarations and builds a Topology.
// Nothing is built if any declaration is malformed.
func ParseTopology(edges []string) (*Topology, error) {
	roads := make([]Road, 0, len(edges))
	for i, e := range edges {
		r, err := ParseRoad(e)
		if err != nil {
			var perr *TopologyParseError
			if errors.As(err, &perr) {
				perr.Index = i
			}
			return nil, err
		}
		roads = append(roads, r)
	}

	return NewTopology(roads), nil
}

func (t *Topology) addEdge(from, to Location) {
	if _, ok := t.adjacency[from]; !ok {
		t.locations = append(t.locations, from)
	}
	t.adjacency[from] = append(t.adjacency[from], to)
}

// Neighbors returns the locations directly reachable from loc, in declaration order.
func (t *Topology) Neighbors(loc Location) ([]Location, error) {
	adj, ok := t.adjacency[loc]
	if !ok {
		return nil, &UnknownLocationError{Location: loc}
	}
	return slices.Clone(adj), nil
}

// Has reports whether loc was declared as an endpoint of any road.
func (t *Topology) Has(loc Location) bool {
	_, ok := t.adjacency[loc]
	return ok
}

// Adjacent reports whether a road leads from a to b.
func (t *Topology) Adjacent(a, b Location) bool {
	return slices.Contains(t.adjacency[a], b)
}

// Locations returns every declared location in first-seen order.
func (t *Topology) Locations() []Location { return slices.Clone(t.locations) }

// Roads returns the road declarations the topology was built from.
func (t *Topology) Roads() []Road { return slices.Clone(t.roads) }

// Walk calls fn for each neighbor of loc in declaration order without copying
// the adjacency list. It stops early when fn returns false.
func (t *Topology) Walk(loc Location, fn func(Location) bool) error {
	adj, ok := t.adjacency[loc]
	if !ok {
		return &UnknownLocationError{Location: loc}
	}
	for _, n := range adj {
		if !fn(n) {
			return nil
		}
	}
	return nil
}

// Fingerprint identifies the road list, in declaration order. Two topologies
// built from the same roads share a fingerprint, and any change to the list
// changes it. Persistent caches namespace their keys with it.
func (t *Topology) Fingerprint() string {
	d := xxhash.New()
	for _, r := range t.roads {
		// Length prefixes keep "A-BC" and "AB-C" apart.
		for _, loc := range []Location{r.From, r.To} {
			_, _ = d.WriteString(strconv.Itoa(len(loc)))
			_, _ = d.WriteString(":")
			_, _ = d.WriteString(string(loc))
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
