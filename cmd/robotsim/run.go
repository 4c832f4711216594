package main

import (
	"fmt"
	"parcel-robot-sim/internal/services"

	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		parcelCount int
		seed        uint64
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "run <policy>",
		Short: "Run one policy on a random state and print every move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("parcels") {
				parcelCount = a.Scenario.ParcelCount
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.Scenario.Seed
			}

			policy, err := a.Policy(args[0], seed)
			if err != nil {
				return err
			}
			factory, err := a.StateFactory(parcelCount, seed)
			if err != nil {
				return err
			}
			state, err := factory.NewState()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Start at %s with %d parcels\n", state.Place(), state.ParcelCount())
			for _, p := range state.Parcels() {
				fmt.Fprintf(out, "  %s -> %s\n", p.Place, p.Address)
			}

			runner := *a.Runner
			if !quiet {
				runner.Trace = func(e services.TurnEvent) {
					fmt.Fprintf(out, "Moved to %s (%d left)\n", e.Direction, e.Remaining)
				}
			}

			turns, err := runner.Run(cmd.Context(), state, policy, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Done in %d turns\n", turns)
			return nil
		},
	}

	cmd.Flags().IntVar(&parcelCount, "parcels", 5, "parcels in the initial state")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the turn count")
	return cmd
}
