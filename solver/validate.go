package solver

import (
	"fmt"
	"math"
)

// ValidateLabels checks that dist is a plausible label vector for a graph of
// n nodes. The first offending index is named in the returned error.
func ValidateLabels(dist []float64, n int) error {
	if len(dist) != n {
		return fmt.Errorf("%w: got %d, want %d", ErrLabelLength, len(dist), n)
	}
	finite, zeros := 0, 0
	for i, d := range dist {
		switch {
		case math.IsNaN(d):
			return fmt.Errorf("%w: index %d", ErrLabelNaN, i)
		case d < 0:
			return fmt.Errorf("%w: index %d value %g", ErrLabelNegative, i, d)
		case math.IsInf(d, 1):
			continue
		}
		finite++
		if d == 0 {
			zeros++
		}
	}
	if n > 0 && finite == 0 {
		return ErrNoFiniteLabel
	}
	if n > 1 && zeros == n {
		return fmt.Errorf("%w: %d nodes", ErrAllZeroLabels, n)
	}

	return nil
}

// validateTree checks every vector of t against n.
func validateTree(t *Tree, n int) error {
	if t == nil {
		return ErrNilTree
	}
	if len(t.Parent) != n || len(t.MaxNeighbor) != n {
		return fmt.Errorf("%w: parent=%d maxNeighbor=%d, want %d",
			ErrLabelLength, len(t.Parent), len(t.MaxNeighbor), n)
	}

	return ValidateLabels(t.Dist, n)
}
