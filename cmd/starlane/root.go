package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/galaxy"
	"github.com/katalvlaran/starlane/internal/telemetry"
	"github.com/katalvlaran/starlane/router"
)

// flags shared by every subcommand
type options struct {
	configPath string
	logLevel   string
	seed       int64
	stars      int
	radius     int
	reach      float64
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var shutdown func(context.Context) error

	root := &cobra.Command{
		Use:   "starlane",
		Short: "Landmark-accelerated routing over a generated star sector",
		Long: `Generate a deterministic random sector and route across it.

Examples:
  starlane landmarks --stars 400
  starlane route 0 17 --batch 200
  STARLANE_WORKERS=8 starlane route 3 99 --config starlane.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			var err error
			shutdown, err = telemetry.Init(cmd.Context(), telemetry.DefaultConfig())
			if err != nil {
				return fmt.Errorf("init telemetry: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(context.Background())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file (STARLANE_* env vars override it)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	f.Int64Var(&opts.seed, "seed", 1, "sector generator seed")
	f.IntVar(&opts.stars, "stars", 200, "number of stars")
	f.IntVar(&opts.radius, "radius", 12, "sector radius in hexes")
	f.Float64Var(&opts.reach, "reach", 2, "maximum jump length in parsecs")

	root.AddCommand(newRouteCmd(opts), newLandmarksCmd(opts))

	return root
}

// setup builds the sector and a prepared router.
func (o *options) setup(ctx context.Context, queries []galaxy.Query) (*galaxy.Graph, *router.Router, error) {
	cfg, err := router.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	g, err := builder.BuildGalaxy(
		[]builder.BuilderOption{
			builder.WithSeed(o.seed),
			builder.WithWeightFn(func(r *rand.Rand, d float64) float64 { return d * (1 + r.Float64()) }),
		},
		builder.RandomSector(o.stars, o.radius, o.reach),
	)
	if err != nil {
		return nil, nil, err
	}
	r, err := router.New(g, router.WithConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	if err := r.Prepare(ctx, queries); err != nil {
		return nil, nil, err
	}

	return g, r, nil
}

// randomQueries draws n queries with uniform priorities.
func (o *options) randomQueries(n int) []galaxy.Query {
	rng := rand.New(rand.NewSource(o.seed + 1))
	out := make([]galaxy.Query, 0, n)
	for len(out) < n {
		s, t := rng.Intn(o.stars), rng.Intn(o.stars)
		if s == t {
			continue
		}
		out = append(out, galaxy.Query{Source: s, Target: t, Priority: rng.Float64(), Trade: 1})
	}

	return out
}

func formatSlot(names map[int]string) string {
	comps := make([]int, 0, len(names))
	for c := range names {
		comps = append(comps, c)
	}
	sort.Ints(comps)
	parts := make([]string, len(comps))
	for i, c := range comps {
		parts[i] = fmt.Sprintf("c%d=%s", c, names[c])
	}

	return strings.Join(parts, " ")
}
