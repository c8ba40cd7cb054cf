// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// impl_path.go - Path(n, distance).
//
// Contract:
//   - n ≥ 2 (else ErrTooFewStars), distance > 0 (else ErrBadParameter).
//   - Stars are placed at Q = 0..n-1 on the R = 0 row, after any existing stars.
//   - Jumps i-1 <-> i are emitted in increasing i.

package builder

import (
	"fmt"

	"github.com/katalvlaran/starlane/galaxy"
)

const (
	methodPath   = "Path"
	minPathStars = 2
)

// Path returns a Constructor for a chain of n stars, distance parsecs apart.
func Path(n int, distance float64) Constructor {
	return func(g *galaxy.Graph, cfg builderConfig) error {
		if n < minPathStars {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathStars, ErrTooFewStars)
		}
		if !positive(distance) {
			return fmt.Errorf("%s: distance=%g: %w", methodPath, distance, ErrBadParameter)
		}
		first := g.StarCount()
		for i := 0; i < n; i++ {
			addStar(g, cfg, galaxy.Hex{Q: i})
		}
		for i := 1; i < n; i++ {
			if err := addJump(g, cfg, methodPath, first+i-1, first+i, distance); err != nil {
				return err
			}
		}

		return nil
	}
}
