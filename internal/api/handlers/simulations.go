package handlers

import (
	"math/rand/v2"
	"net/http"
	"parcel-robot-sim/internal/api/dto"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/ports"
	"parcel-robot-sim/internal/services"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StateFactoryFunc builds a random state factory for a parcel count and seed.
type StateFactoryFunc func(parcelCount int, seed uint64) (ports.StateFactory, error)

const (
	maxSamples     = 10000
	maxParcelCount = 50
)

// SimulationHandler runs single simulations and policy comparisons.
type SimulationHandler struct {
	Topology    *domain.Topology
	Finder      ports.RouteFinder
	MailRoute   domain.Route
	ParcelCount int
	NewFactory  StateFactoryFunc
	Runner      *services.Runner
	Comparator  *services.Comparator
	Recorder    ports.ComparisonRecorder
	Log         *zap.Logger
}

func (h *SimulationHandler) policy(name string, seed uint64) (services.Policy, error) {
	return services.NewPolicy(name, services.PolicyDeps{
		Finder:    h.Finder,
		MailRoute: h.MailRoute,
		Seed:      seed,
	})
}

func seedOrNow(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return uint64(time.Now().UnixNano()) ^ rand.Uint64()
}

// Simulate handles POST /simulations: run one policy to completion.
// Without explicit parcels a random state is generated.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, h.Log, http.MethodPost) {
		return
	}

	var req dto.SimulationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, err.Error())
		return
	}

	seed := seedOrNow(req.Seed)
	policy, err := h.policy(req.Policy, seed)
	if err != nil {
		writeServiceError(w, r, h.Log, "simulate", err)
		return
	}

	var state domain.WorldState
	if len(req.Parcels) > 0 {
		start := strings.TrimSpace(req.Start)
		if start == "" {
			writeError(w, r, h.Log, http.StatusBadRequest, "start is required with explicit parcels")
			return
		}
		parcels := make([]domain.Parcel, 0, len(req.Parcels))
		for _, p := range req.Parcels {
			parcels = append(parcels, domain.Parcel{Place: domain.Location(p.Place), Address: domain.Location(p.Address)})
		}
		state, err = domain.NewWorldState(h.Topology, domain.Location(start), parcels)
	} else {
		var factory ports.StateFactory
		factory, err = h.NewFactory(h.ParcelCount, seed)
		if err == nil {
			state, err = factory.NewState()
		}
	}
	if err != nil {
		writeServiceError(w, r, h.Log, "simulate", err)
		return
	}

	// Runner.Trace is per run, so trace through a copy.
	runner := *h.Runner
	var moves []string
	if req.Trace {
		runner.Trace = func(e services.TurnEvent) { moves = append(moves, string(e.Direction)) }
	}

	turns, err := runner.Run(r.Context(), state, policy, nil)
	if err != nil {
		writeServiceError(w, r, h.Log, "simulate", err)
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, dto.SimulationResponse{
		Policy: policy.Name(),
		Turns:  turns,
		Moves:  moves,
	})
}

// Compare handles POST /comparisons and GET /comparisons.
func (h *SimulationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listComparisons(w, r)
	case http.MethodPost:
		h.runComparison(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, h.Log, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SimulationHandler) runComparison(w http.ResponseWriter, r *http.Request) {
	var req dto.ComparisonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, err.Error())
		return
	}

	names := req.Policies
	if len(names) == 0 {
		names = []string{services.PolicyGoal, services.PolicyEfficient}
	}

	samples := req.Samples
	if samples == 0 {
		samples = 100
	}
	if samples < 1 || samples > maxSamples {
		writeError(w, r, h.Log, http.StatusBadRequest, "samples must be between 1 and 10000")
		return
	}

	parcelCount := req.ParcelCount
	if parcelCount == 0 {
		parcelCount = h.ParcelCount
	}
	if parcelCount < 1 || parcelCount > maxParcelCount {
		writeError(w, r, h.Log, http.StatusBadRequest, "parcel_count must be between 1 and 50")
		return
	}

	seed := seedOrNow(req.Seed)
	contenders := make([]services.Contender, 0, len(names))
	for i, name := range names {
		p, err := h.policy(name, seed+uint64(i))
		if err != nil {
			writeServiceError(w, r, h.Log, "compare", err)
			return
		}
		contenders = append(contenders, services.Contender{Policy: p})
	}

	factory, err := h.NewFactory(parcelCount, seed)
	if err != nil {
		writeServiceError(w, r, h.Log, "compare", err)
		return
	}

	res, err := h.Comparator.CompareAll(r.Context(), contenders, samples, factory)
	if err != nil {
		writeServiceError(w, r, h.Log, "compare", err)
		return
	}

	out := dto.ComparisonResponse{
		RunID:   res.RunID,
		Samples: res.Samples,
		Results: make([]dto.PolicyResultResponse, 0, len(res.Results)),
	}
	for _, pr := range res.Results {
		out.Results = append(out.Results, dto.PolicyResultResponse{
			Policy:       pr.Policy,
			TotalTurns:   pr.TotalTurns,
			AverageTurns: pr.AverageTurns,
		})
	}

	writeJSON(w, r, h.Log, http.StatusOK, out)
}

func (h *SimulationHandler) listComparisons(w http.ResponseWriter, r *http.Request) {
	if h.Recorder == nil {
		writeJSON(w, r, h.Log, http.StatusOK, dto.ListComparisonsResponse{Comparisons: []dto.ComparisonResponse{}})
		return
	}

	reports, err := h.Recorder.ListComparisons(r.Context(), 20)
	if err != nil {
		writeServiceError(w, r, h.Log, "list comparisons", err)
		return
	}

	res := dto.ListComparisonsResponse{Comparisons: make([]dto.ComparisonResponse, 0, len(reports))}
	for _, rep := range reports {
		c := dto.ComparisonResponse{
			RunID:   rep.RunID,
			Samples: rep.Samples,
			RanAt:   rep.RanAt.Format(time.RFC3339),
			Results: make([]dto.PolicyResultResponse, 0, len(rep.Policies)),
		}
		for _, p := range rep.Policies {
			c.Results = append(c.Results, dto.PolicyResultResponse{
				Policy:       p.Policy,
				TotalTurns:   p.TotalTurns,
				AverageTurns: p.AverageTurns,
			})
		}
		res.Comparisons = append(res.Comparisons, c)
	}

	writeJSON(w, r, h.Log, http.StatusOK, res)
}
