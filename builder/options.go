// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// options.go - functional options for the builder package.
//
// Option constructors panic on meaningless inputs; constructors never do.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/starlane/galaxy"
)

// BuilderOption customizes the builder configuration before construction.
type BuilderOption func(*builderConfig)

// WithNameScheme sets the star name generator: global index -> name.
// Panics on nil.
func WithNameScheme(fn func(int) string) BuilderOption {
	if fn == nil {
		panic("builder: WithNameScheme(nil)")
	}
	return func(c *builderConfig) {
		c.nameFn = fn
	}
}

// WithRegionScheme sets the region assigned to each placed star. Panics on nil.
func WithRegionScheme(fn func(galaxy.Hex) string) BuilderOption {
	if fn == nil {
		panic("builder: WithRegionScheme(nil)")
	}
	return func(c *builderConfig) {
		c.regionFn = fn
	}
}

// WithWeightFn overrides the jump weight policy. The function receives the
// (possibly nil) RNG and the jump distance. Panics on nil.
func WithWeightFn(fn func(r *rand.Rand, distance float64) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithPriorityFn overrides the per-star priority policy. Panics on nil.
func WithPriorityFn(fn func(r *rand.Rand, i int) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithPriorityFn(nil)")
	}
	return func(c *builderConfig) {
		c.priorityFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic constructors. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a seeded RNG, the usual choice in tests.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}
