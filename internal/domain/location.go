package domain

import "strings"

// Location is an opaque place label such as "Post Office".
type Location string

// RoadSeparator delimits the two endpoints of a textual road declaration.
const RoadSeparator = "-"

// Road is an undirected edge declaration between two locations.
type Road struct {
	From Location
	To   Location
}

func (r Road) String() string { return string(r.From) + RoadSeparator + string(r.To) }

// ParseRoad splits a declaration like "Alice's House-Cabin" into a Road.
// Both labels are trimmed and must be non-empty.
func ParseRoad(s string) (Road, error) {
	parts := strings.Split(s, RoadSeparator)
	if len(parts) != 2 {
		return Road{}, &TopologyParseError{Input: s}
	}

	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])
	if from == "" || to == "" {
		return Road{}, &TopologyParseError{Input: s}
	}

	return Road{From: Location(from), To: Location(to)}, nil
}
