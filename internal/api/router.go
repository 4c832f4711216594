package api

import (
	"net/http"
	"parcel-robot-sim/internal/api/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(topo *handlers.TopologyHandler, sim *handlers.SimulationHandler, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handlers.Health(log))
	mux.HandleFunc("/roads", topo.Roads)
	mux.HandleFunc("/neighbors", topo.Neighbors)
	mux.HandleFunc("/routes", topo.Route)
	mux.HandleFunc("/simulations", sim.Simulate)
	mux.HandleFunc("/comparisons", sim.Compare)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(log, mux)
}
