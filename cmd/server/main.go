package main

import (
	"context"
	"log"
	"net/http"
	"parcel-robot-sim/internal/api"
	"parcel-robot-sim/internal/api/handlers"
	"parcel-robot-sim/internal/app"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/platform/obs"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires the configured adapters (SQLite/Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	envLoaded := config.LoadEnv()
	settings := config.FromEnv()

	logger, err := obs.NewLogger(settings.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if !envLoaded {
		logger.Info("no .env file found (using environment variables)")
	}

	scenario, err := config.LoadScenario(settings.ScenarioPath)
	if err != nil {
		logger.Fatal("load scenario", zap.Error(err))
	}

	ctx := context.Background()
	a, err := app.New(ctx, app.Options{
		Settings: settings,
		Scenario: scenario,
		UseDB:    config.Get("DB_DISABLED", "") == "",
	}, logger)
	if err != nil {
		logger.Fatal("wire application", zap.Error(err))
	}
	defer a.Close()

	topoHandler := &handlers.TopologyHandler{Topology: a.Topology, Finder: a.Finder, Log: logger}
	simHandler := &handlers.SimulationHandler{
		Topology:    a.Topology,
		Finder:      a.Finder,
		MailRoute:   a.Scenario.Route(),
		ParcelCount: a.Scenario.ParcelCount,
		NewFactory:  a.StateFactory,
		Runner:      a.Runner,
		Comparator:  a.Comparator,
		Recorder:    a.Recorder,
		Log:         logger,
	}
	router := api.NewRouter(topoHandler, simHandler, logger)

	// Comparisons with many samples can take a while; the write timeout leaves room for them.
	logger.Info("server listening", zap.String("addr", ":"+settings.Port))
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
