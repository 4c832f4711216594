package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"parcel-robot-sim/internal/app"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/platform/obs"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	scenarioPath string
	verbose      bool
	useDB        bool
	workers      int

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "robotsim",
		Short: "Simulate parcel delivery robots and compare their policies",
		Long: `robotsim drives delivery robots over a road graph until every parcel
is delivered, and compares how many turns different policies need.

Policies: random, route (fixed mail route), goal (first parcel first),
efficient (nearest parcel first).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := config.Get("LOG_LEVEL", "warn")
			if opts.verbose {
				level = "debug"
			}
			logger, err := obs.NewLogger(level)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.scenarioPath, "scenario", config.Get("SCENARIO_PATH", ""), "YAML scenario file (default: built-in village)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every move")
	root.PersistentFlags().BoolVar(&opts.useDB, "db", false, "load roads from and record results to the configured database")
	root.PersistentFlags().IntVar(&opts.workers, "workers", config.GetInt("WORKERS", 4), "samples evaluated in parallel")

	root.AddCommand(newCompareCmd(opts), newRunCmd(opts), newRouteCmd(opts))
	return root
}

// build wires the application for a subcommand.
func (o *rootOptions) build(ctx context.Context) (*app.App, error) {
	scenario, err := config.LoadScenario(o.scenarioPath)
	if err != nil {
		return nil, err
	}

	settings := config.FromEnv()
	settings.Workers = o.workers

	return app.New(ctx, app.Options{Settings: settings, Scenario: scenario, UseDB: o.useDB}, o.logger)
}

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
