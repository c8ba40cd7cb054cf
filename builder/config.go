// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   - nameFn     = "S0", "S1", ...
//   - regionFn   = subsector of 8×10 hexes, "R<q>.<r>"
//   - weightFn   = weight equals jump distance
//   - priorityFn = 1.0 for every star
//   - rng        = nil (stochastic constructors refuse to run)

package builder

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/katalvlaran/starlane/galaxy"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	nameFn     func(int) string
	regionFn   func(galaxy.Hex) string
	weightFn   func(r *rand.Rand, distance float64) float64
	priorityFn func(r *rand.Rand, i int) float64
	rng        *rand.Rand
}

const (
	subsectorWidth  = 8
	subsectorHeight = 10
	defaultPriority = 1.0
)

// newBuilderConfig applies opts over the defaults; last option wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		nameFn:     defaultName,
		regionFn:   Subsector,
		weightFn:   func(_ *rand.Rand, d float64) float64 { return d },
		priorityFn: func(*rand.Rand, int) float64 { return defaultPriority },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func defaultName(i int) string { return "S" + strconv.Itoa(i) }

// Subsector names the 8×10 hex block containing h, the default region scheme.
func Subsector(h galaxy.Hex) string {
	return fmt.Sprintf("R%d.%d", floorDiv(h.Q, subsectorWidth), floorDiv(h.R, subsectorHeight))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
