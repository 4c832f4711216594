package config

import (
	"errors"
	"fmt"
	"os"
	"parcel-robot-sim/internal/domain"

	"gopkg.in/yaml.v3"
)

// Scenario describes a simulation setup: the road graph, the fixed mail
// route, and how random initial states and comparisons are generated.
type Scenario struct {
	Roads       []string `yaml:"roads"`
	MailRoute   []string `yaml:"mail_route"`
	Start       string   `yaml:"start"`
	ParcelCount int      `yaml:"parcel_count"`
	Samples     int      `yaml:"samples"`
	Seed        uint64   `yaml:"seed"`
	Policies    []string `yaml:"policies"`
}

// VillageRoads is the road network of the default village.
var VillageRoads = []string{
	"Alice's House-Bob's House", "Alice's House-Cabin",
	"Alice's House-Post Office", "Bob's House-Town Hall",
	"Daria's House-Ernie's House", "Daria's House-Town Hall",
	"Ernie's House-Grete's House", "Grete's House-Farm",
	"Grete's House-Shop", "Marketplace-Farm",
	"Marketplace-Post Office", "Marketplace-Shop",
	"Marketplace-Town Hall", "Shop-Town Hall",
}

// VillageMailRoute visits every village location, starting and ending next
// to the post office.
var VillageMailRoute = []string{
	"Alice's House", "Cabin", "Alice's House", "Bob's House",
	"Town Hall", "Daria's House", "Ernie's House",
	"Grete's House", "Farm", "Marketplace", "Shop",
	"Marketplace", "Post Office",
}

// DefaultScenario returns the village setup.
func DefaultScenario() Scenario {
	return Scenario{
		Roads:       append([]string(nil), VillageRoads...),
		MailRoute:   append([]string(nil), VillageMailRoute...),
		Start:       "Post Office",
		ParcelCount: 5,
		Samples:     100,
		Seed:        1,
		Policies:    []string{"goal", "efficient"},
	}
}

// LoadScenario reads a YAML scenario; unset fields keep the village defaults.
func LoadScenario(path string) (Scenario, error) {
	sc := DefaultScenario()
	if path == "" {
		return sc, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("load scenario: read %q: %w", path, err)
	}

	var file Scenario
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Scenario{}, fmt.Errorf("load scenario: parse %q: %w", path, err)
	}

	if len(file.Roads) > 0 {
		sc.Roads = file.Roads
		// A custom graph invalidates the village mail route.
		sc.MailRoute = nil
	}
	if len(file.MailRoute) > 0 {
		sc.MailRoute = file.MailRoute
	}
	if file.Start != "" {
		sc.Start = file.Start
	}
	if file.ParcelCount > 0 {
		sc.ParcelCount = file.ParcelCount
	}
	if file.Samples > 0 {
		sc.Samples = file.Samples
	}
	if file.Seed != 0 {
		sc.Seed = file.Seed
	}
	if len(file.Policies) > 0 {
		sc.Policies = file.Policies
	}

	if err := sc.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("load scenario %q: %w", path, err)
	}
	return sc, nil
}

// Validate checks the scenario against its own road graph.
func (s Scenario) Validate() error {
	topo, err := s.Topology()
	if err != nil {
		return err
	}
	if !topo.Has(domain.Location(s.Start)) {
		return fmt.Errorf("validate scenario: start: %w", &domain.UnknownLocationError{Location: domain.Location(s.Start)})
	}
	if len(topo.Locations()) < 2 {
		return errors.New("validate scenario: need at least two locations")
	}
	for _, loc := range s.MailRoute {
		if !topo.Has(domain.Location(loc)) {
			return fmt.Errorf("validate scenario: mail route: %w", &domain.UnknownLocationError{Location: domain.Location(loc)})
		}
	}
	return nil
}

// Topology parses the scenario's roads.
func (s Scenario) Topology() (*domain.Topology, error) {
	topo, err := domain.ParseTopology(s.Roads)
	if err != nil {
		return nil, fmt.Errorf("scenario topology: %w", err)
	}
	return topo, nil
}

// Route returns the mail route as a domain.Route.
func (s Scenario) Route() domain.Route {
	r := make(domain.Route, 0, len(s.MailRoute))
	for _, loc := range s.MailRoute {
		r = append(r, domain.Location(loc))
	}
	return r
}
