package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robotsim_simulations_total",
		Help: "Completed simulation runs by policy and outcome.",
	}, []string{"policy", "outcome"})

	SimulationTurns = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "robotsim_simulation_turns",
		Help:    "Turns needed to deliver every parcel, by policy.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512 turns
	}, []string{"policy"})

	RouteCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robotsim_route_cache_lookups_total",
		Help: "Route cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
