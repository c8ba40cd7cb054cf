package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLandmarksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "landmarks",
		Short: "List the landmarks chosen for each component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, r, err := opts.setup(cmd.Context(), nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, names := range r.LandmarkNames() {
				fmt.Fprintf(out, "slot %d: %s\n", i, formatSlot(names))
			}
			d := r.Diagnostics()
			fmt.Fprintf(out, "%d stars, %d jumps, %d landmarks in %d trees\n", d.Stars, d.Jumps, d.Landmarks, d.Trees)

			return nil
		},
	}
}
