package handlers

import (
	"net/http"
	"parcel-robot-sim/internal/api/dto"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/ports"
	"strings"

	"go.uber.org/zap"
)

// TopologyHandler exposes read-only views of the road graph and route queries.
type TopologyHandler struct {
	Topology *domain.Topology
	Finder   ports.RouteFinder
	Log      *zap.Logger
}

func (h *TopologyHandler) Roads(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, h.Log, http.MethodGet) {
		return
	}

	roads := h.Topology.Roads()
	locations := h.Topology.Locations()
	res := dto.ListRoadsResponse{
		Roads:     make([]string, 0, len(roads)),
		Locations: make([]string, 0, len(locations)),
	}
	for _, road := range roads {
		res.Roads = append(res.Roads, road.String())
	}
	for _, loc := range locations {
		res.Locations = append(res.Locations, string(loc))
	}

	writeJSON(w, r, h.Log, http.StatusOK, res)
}

func (h *TopologyHandler) Neighbors(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, h.Log, http.MethodGet) {
		return
	}

	place := strings.TrimSpace(r.URL.Query().Get("place"))
	if place == "" {
		writeError(w, r, h.Log, http.StatusBadRequest, "place is required")
		return
	}

	adj, err := h.Topology.Neighbors(domain.Location(place))
	if err != nil {
		writeServiceError(w, r, h.Log, "neighbors", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, dto.NeighborsResponse{Place: place, Neighbors: locationStrings(adj)})
}

// Route answers GET /routes?from=&to= with a shortest route.
func (h *TopologyHandler) Route(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, h.Log, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		writeError(w, r, h.Log, http.StatusBadRequest, "from and to are required")
		return
	}

	route, err := h.Finder.FindRoute(r.Context(), domain.Location(from), domain.Location(to))
	if err != nil {
		writeServiceError(w, r, h.Log, "find route", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, dto.RouteResponse{
		From:  from,
		To:    to,
		Route: locationStrings(route),
		Hops:  route.Len(),
	})
}

func locationStrings(locs []domain.Location) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, string(l))
	}
	return out
}
