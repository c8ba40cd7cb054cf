package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRouteCmd(opts *options) *cobra.Command {
	var batch int

	cmd := &cobra.Command{
		Use:   "route SOURCE TARGET",
		Short: "Print the cheapest route between two stars",
		Long: `Print the cheapest route between two star indices.

With --batch N, N random queries are routed first so the answer reflects
the reinforced lanes they leave behind.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("source: %w", err)
			}
			dst, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}

			ctx := cmd.Context()
			queries := opts.randomQueries(batch)
			g, r, err := opts.setup(ctx, queries)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if batch > 0 {
				rep, err := r.RouteAll(ctx, queries)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "batch %s: %d routed, %d dropped, %d jumps lightened in %s\n",
					rep.ID, rep.Found(), rep.Dropped, rep.EdgesLightened, rep.Duration)
			}

			route, err := r.GetRouteBetween(ctx, src, dst)
			if err != nil {
				return err
			}
			stars := g.Stars()
			names := make([]string, len(route.Path))
			for i, v := range route.Path {
				names[i] = stars[v].Name
			}
			fmt.Fprintf(out, "route: %s\n", strings.Join(names, " -> "))
			fmt.Fprintf(out, "cost: %.3f\n", route.Cost)
			d := route.Diagnostics
			fmt.Fprintf(out, "expanded: %d queued: %d pruned: %d b*: %.3f\n",
				d.Expanded, d.Queued, d.Pruned, d.BranchingFactor)

			return nil
		},
	}
	cmd.Flags().IntVar(&batch, "batch", 0, "random queries to route before answering")

	return cmd
}
