package domain

import (
	"errors"
	"fmt"
)

// ErrDeliveredParcel is returned when a parcel whose place already equals its
// address is handed to a WorldState.
var ErrDeliveredParcel = errors.New("world state: parcel is already delivered")

// UnknownLocationError reports a location that was never declared as a road endpoint.
type UnknownLocationError struct {
	Location Location
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("topology: unknown location %q", e.Location)
}

// TopologyParseError reports a road declaration that cannot be split into two labels.
type TopologyParseError struct {
	Index int
	Input string
}

func (e *TopologyParseError) Error() string {
	return fmt.Sprintf("topology: parse road #%d %q: want \"<from>-<to>\"", e.Index+1, e.Input)
}
