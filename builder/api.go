// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// api.go - public entry points.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/galaxy"
)

// Constructor applies a deterministic galaxy mutation using the resolved
// builderConfig. Constructors validate early and return sentinel errors.
type Constructor func(g *galaxy.Graph, cfg builderConfig) error

// BuildGalaxy creates a galaxy, resolves the configuration from bopts and
// applies all constructors in order. The first constructor error is wrapped
// with "BuildGalaxy: %w" and returned.
//
// Complexity: O(len(bopts)) plus the cost of every constructor.
func BuildGalaxy(bopts []BuilderOption, cons ...Constructor) (*galaxy.Graph, error) {
	g := galaxy.NewGraph()
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGalaxy: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGalaxy: %w", err)
		}
	}

	return g, nil
}

// ToStore builds the adjacency store for g from the current jump weights.
// Star i of the galaxy is node i of the store.
func ToStore(g *galaxy.Graph) (*adjacency.Store, error) {
	jumps := g.Jumps()
	edges := make([]adjacency.Edge, len(jumps))
	for i, j := range jumps {
		edges[i] = adjacency.Edge{U: j.U, V: j.V, Weight: j.Weight}
	}
	s, err := adjacency.New(g.StarCount(), edges)
	if err != nil {
		return nil, fmt.Errorf("ToStore: %w", err)
	}

	return s, nil
}

// addStar places one star using the configured name, region and priority.
func addStar(g *galaxy.Graph, cfg builderConfig, h galaxy.Hex) int {
	i := g.StarCount()

	return g.AddStar(galaxy.Star{
		Name:     cfg.nameFn(i),
		Region:   cfg.regionFn(h),
		Hex:      h,
		Priority: cfg.priorityFn(cfg.rng, i),
	})
}

// addJump connects u and v with the configured weight for distance d.
func addJump(g *galaxy.Graph, cfg builderConfig, method string, u, v int, d float64) error {
	if err := g.AddJump(u, v, d, cfg.weightFn(cfg.rng, d)); err != nil {
		return fmt.Errorf("%s: AddJump(%d,%d): %v: %w", method, u, v, err, ErrConstructFailed)
	}

	return nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
