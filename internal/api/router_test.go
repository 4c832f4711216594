package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"parcel-robot-sim/internal/adapters/statefactory"
	"parcel-robot-sim/internal/api/dto"
	"parcel-robot-sim/internal/api/handlers"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/domain"
	"parcel-robot-sim/internal/ports"
	"parcel-robot-sim/internal/services"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := zaptest.NewLogger(t)
	sc := config.DefaultScenario()

	topo, err := sc.Topology()
	require.NoError(t, err)
	finder := services.NewBFSRouteFinder(topo)
	runner := services.NewRunner(log)

	topoHandler := &handlers.TopologyHandler{Topology: topo, Finder: finder, Log: log}
	simHandler := &handlers.SimulationHandler{
		Topology:    topo,
		Finder:      finder,
		MailRoute:   sc.Route(),
		ParcelCount: sc.ParcelCount,
		NewFactory: func(n int, seed uint64) (ports.StateFactory, error) {
			return statefactory.NewRandomStateFactory(topo, domain.Location(sc.Start), n, seed)
		},
		Runner:     runner,
		Comparator: services.NewComparator(runner, 2, log),
		Log:        log,
	}

	return NewRouter(topoHandler, simHandler, log)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoads(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/roads", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListRoadsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, config.VillageRoads, res.Roads)
	assert.Len(t, res.Locations, 11)
}

func TestNeighbors(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/neighbors?place="+url.QueryEscape("Post Office"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"place":"Post Office","neighbors":["Alice's House","Marketplace"]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/neighbors?place=Moon", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/neighbors", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes(t *testing.T) {
	h := newTestRouter(t)

	q := url.Values{"from": {"Cabin"}, "to": {"Town Hall"}}
	rec := do(t, h, http.MethodGet, "/routes?"+q.Encode(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"Alice's House", "Bob's House", "Town Hall"}, res.Route)
	assert.Equal(t, 3, res.Hops)

	q = url.Values{"from": {"Cabin"}, "to": {"Moon"}}
	rec = do(t, h, http.MethodGet, "/routes?"+q.Encode(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulateExplicitState(t *testing.T) {
	body := `{
		"policy": "goal",
		"start": "Post Office",
		"parcels": [{"place": "Marketplace", "address": "Shop"}],
		"trace": true
	}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/simulations", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.SimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "goal", res.Policy)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, []string{"Marketplace", "Shop"}, res.Moves)
}

func TestSimulateRejectsBadInput(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/simulations", `{"policy":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/simulations", `{"policy":"goal","start":"Shop","parcels":[{"place":"Shop","address":"Shop"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/simulations", `{"policy":"goal","unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompare(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/comparisons", `{"policies":["goal","efficient"],"samples":50,"seed":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.ComparisonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 50, res.Samples)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "goal", res.Results[0].Policy)
	assert.Equal(t, "efficient", res.Results[1].Policy)

	rec = do(t, h, http.MethodPost, "/comparisons", `{"samples":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/comparisons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"comparisons":[]}`, rec.Body.String())
}
