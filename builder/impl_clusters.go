// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// impl_clusters.go - Clusters(k, size, bridge).
//
// Contract:
//   - k ≥ 1 and size ≥ 2 (else ErrTooFewStars).
//   - Cluster c is a fan of size stars with its hub at Q = c·(size+bridge):
//     stars 1..size-1 sit on the row above, each jumping to the hub and to
//     its predecessor. Every star of cluster c gets region "C<c>".
//   - bridge > 0 chains consecutive hubs with one jump of that distance;
//     bridge ≤ 0 leaves the clusters as separate components.

package builder

import (
	"fmt"

	"github.com/katalvlaran/starlane/galaxy"
)

const (
	methodClusters  = "Clusters"
	minClusterStars = 2
)

// Clusters returns a Constructor for k small clusters.
func Clusters(k, size int, bridge float64) Constructor {
	return func(g *galaxy.Graph, cfg builderConfig) error {
		if k < 1 || size < minClusterStars {
			return fmt.Errorf("%s: k=%d size=%d: %w", methodClusters, k, size, ErrTooFewStars)
		}
		spacing := size
		if bridge > 0 {
			spacing += int(bridge)
		}
		prevHub := -1
		for c := 0; c < k; c++ {
			region := fmt.Sprintf("C%d", c)
			local := cfg
			local.regionFn = func(galaxy.Hex) string { return region }

			origin := galaxy.Hex{Q: c * spacing}
			hub := addStar(g, local, origin)
			prev := hub
			for i := 1; i < size; i++ {
				h := galaxy.Hex{Q: origin.Q + i - 1, R: 1}
				s := addStar(g, local, h)
				if err := addJump(g, cfg, methodClusters, hub, s, float64(origin.Distance(h))); err != nil {
					return err
				}
				if prev != hub {
					if err := addJump(g, cfg, methodClusters, prev, s, 1); err != nil {
						return err
					}
				}
				prev = s
			}
			if bridge > 0 && prevHub >= 0 {
				if err := addJump(g, cfg, methodClusters, prevHub, hub, bridge); err != nil {
					return err
				}
			}
			prevHub = hub
		}

		return nil
	}
}
