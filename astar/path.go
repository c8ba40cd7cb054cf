package astar

import (
	"fmt"

	"github.com/katalvlaran/starlane/adjacency"
)

// PathCost sums the current weights along path. A single-node path costs 0.
func PathCost(g adjacency.View, path []int) (float64, error) {
	if len(path) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrBrokenPath)
	}
	total := 0.0
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		if !ok {
			return 0, fmt.Errorf("%w: no jump %d-%d at position %d", ErrBrokenPath, path[i-1], path[i], i)
		}
		total += w
	}

	return total, nil
}

// ValidatePath checks that path is non-empty, in range, connected and simple.
func ValidatePath(g adjacency.View, path []int) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty", ErrBrokenPath)
	}
	n := g.NodeCount()
	seen := make(map[int]int, len(path))
	for i, v := range path {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: %d at position %d", ErrNodeRange, v, i)
		}
		if j, dup := seen[v]; dup {
			return fmt.Errorf("%w: %d at positions %d and %d", ErrRevisitedNode, v, j, i)
		}
		seen[v] = i
		if i > 0 && !g.HasEdge(path[i-1], v) {
			return fmt.Errorf("%w: no jump %d-%d at position %d", ErrBrokenPath, path[i-1], v, i)
		}
	}

	return nil
}
