// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// impl_random_sector.go - RandomSector(n, radius, reach).
//
// Contract:
//   - n ≥ 1 (else ErrTooFewStars); radius ≥ 1 and reach > 0 (else ErrBadParameter).
//   - n must fit in the disc: n ≤ 3·radius·(radius+1) + 1 (else ErrBadParameter).
//   - cfg.rng must be set (else ErrNeedRandSource).
//   - Stars occupy distinct hexes drawn uniformly from the disc of the given
//     radius around the origin. Every pair within reach hexes gets a jump whose
//     distance is the hex distance. Pairs are emitted for i asc, j asc (j > i).
//
// Complexity: O(n²) pair checks.

package builder

import (
	"fmt"

	"github.com/katalvlaran/starlane/galaxy"
)

const methodRandomSector = "RandomSector"

// RandomSector returns a Constructor that scatters n stars in a hex disc.
func RandomSector(n, radius int, reach float64) Constructor {
	return func(g *galaxy.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d: %w", methodRandomSector, n, ErrTooFewStars)
		}
		if radius < 1 || !positive(reach) {
			return fmt.Errorf("%s: radius=%d reach=%g: %w", methodRandomSector, radius, reach, ErrBadParameter)
		}
		if capacity := 3*radius*(radius+1) + 1; n > capacity {
			return fmt.Errorf("%s: n=%d exceeds %d hexes: %w", methodRandomSector, n, capacity, ErrBadParameter)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomSector, ErrNeedRandSource)
		}

		// enumerate the disc in a fixed order, then shuffle deterministically
		disc := make([]galaxy.Hex, 0, 3*radius*(radius+1)+1)
		for q := -radius; q <= radius; q++ {
			for r := -radius; r <= radius; r++ {
				h := galaxy.Hex{Q: q, R: r}
				if h.Distance(galaxy.Hex{}) <= radius {
					disc = append(disc, h)
				}
			}
		}
		cfg.rng.Shuffle(len(disc), func(i, j int) { disc[i], disc[j] = disc[j], disc[i] })

		first := g.StarCount()
		hexes := disc[:n]
		for _, h := range hexes {
			addStar(g, cfg, h)
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				d := float64(hexes[i].Distance(hexes[j]))
				if d > reach {
					continue
				}
				if err := addJump(g, cfg, methodRandomSector, first+i, first+j, d); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
