package main

import (
	"fmt"
	"parcel-robot-sim/internal/services"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCompareCmd(root *rootOptions) *cobra.Command {
	var (
		samples     int
		parcelCount int
		seed        uint64
	)

	cmd := &cobra.Command{
		Use:   "compare [policy...]",
		Short: "Run policies on the same random states and report average turns",
		Example: `  robotsim compare goal efficient
  robotsim compare --samples 1000 --seed 7 route goal efficient`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			names := args
			if len(names) == 0 {
				names = a.Scenario.Policies
			}
			if !cmd.Flags().Changed("samples") {
				samples = a.Scenario.Samples
			}
			if !cmd.Flags().Changed("parcels") {
				parcelCount = a.Scenario.ParcelCount
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.Scenario.Seed
			}

			contenders := make([]services.Contender, 0, len(names))
			for i, name := range names {
				p, err := a.Policy(name, seed+uint64(i))
				if err != nil {
					return err
				}
				contenders = append(contenders, services.Contender{Policy: p})
			}

			factory, err := a.StateFactory(parcelCount, seed)
			if err != nil {
				return err
			}

			res, err := a.Comparator.CompareAll(cmd.Context(), contenders, samples, factory)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "POLICY\tAVG TURNS\tTOTAL\n")
			for _, r := range res.Results {
				fmt.Fprintf(tw, "%s\t%.2f\t%d\n", r.Policy, r.AverageTurns, r.TotalTurns)
			}
			fmt.Fprintf(tw, "\n%d samples, run %s\n", res.Samples, res.RunID)
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&samples, "samples", "n", 100, "number of random initial states")
	cmd.Flags().IntVar(&parcelCount, "parcels", 5, "parcels per initial state")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed for states and the random policy")
	return cmd
}
