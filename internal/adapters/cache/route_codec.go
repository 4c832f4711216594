package cache

import (
	"encoding/json"
	"fmt"
	"parcel-robot-sim/internal/domain"
	"strconv"
)

func encodeRoute(r domain.Route) (string, error) {
	if r == nil {
		r = domain.Route{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode route: %w", err)
	}
	return string(b), nil
}

func decodeRoute(s string) (domain.Route, error) {
	var r domain.Route
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, fmt.Errorf("decode route: %w", err)
	}
	if r == nil {
		r = domain.Route{}
	}
	return r, nil
}

// routeKey joins origin and destination as "<len(origin)>:<origin>|<destination>".
// Labels may contain "|", so the length prefix keeps keys unambiguous.
func routeKey(origin, destination domain.Location) string {
	return strconv.Itoa(len(origin)) + ":" + string(origin) + "|" + string(destination)
}
