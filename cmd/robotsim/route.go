package main

import (
	"fmt"
	"parcel-robot-sim/internal/domain"
	"strings"

	"github.com/spf13/cobra"
)

func newRouteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "route <from> <to>",
		Short:   "Print a shortest route between two locations",
		Example: `  robotsim route "Cabin" "Town Hall"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			route, err := a.Finder.FindRoute(cmd.Context(), domain.Location(args[0]), domain.Location(args[1]))
			if err != nil {
				return err
			}

			steps := make([]string, 0, route.Len()+1)
			steps = append(steps, args[0])
			for _, loc := range route {
				steps = append(steps, string(loc))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d hops)\n", strings.Join(steps, " -> "), route.Len())
			return nil
		},
	}
}
