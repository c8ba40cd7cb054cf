// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// impl_hexgrid.go - HexGrid(rows, cols).
//
// Contract:
//   - rows, cols ≥ 1 and rows*cols ≥ 2 (else ErrTooFewStars).
//   - Star (r, c) sits at axial Hex{Q: c, R: r} and has index first + r*cols + c.
//   - Each star jumps to its in-patch axial neighbours; every jump has distance 1.
//     Emission order: row-major, then directions (+1,0), (0,+1), (-1,+1).

package builder

import (
	"fmt"

	"github.com/katalvlaran/starlane/galaxy"
)

const methodHexGrid = "HexGrid"

// forward axial directions; the other three are their inverses
var hexForward = [3]galaxy.Hex{{Q: 1, R: 0}, {Q: 0, R: 1}, {Q: -1, R: 1}}

// HexGrid returns a Constructor for a rows×cols axial hex patch.
func HexGrid(rows, cols int) Constructor {
	return func(g *galaxy.Graph, cfg builderConfig) error {
		if rows < 1 || cols < 1 || rows*cols < 2 {
			return fmt.Errorf("%s: rows=%d cols=%d: %w", methodHexGrid, rows, cols, ErrTooFewStars)
		}
		first := g.StarCount()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				addStar(g, cfg, galaxy.Hex{Q: c, R: r})
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				for _, d := range hexForward {
					nc, nr := c+d.Q, r+d.R
					if nc < 0 || nc >= cols || nr >= rows {
						continue
					}
					u, v := first+r*cols+c, first+nr*cols+nc
					if err := addJump(g, cfg, methodHexGrid, u, v, 1); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
