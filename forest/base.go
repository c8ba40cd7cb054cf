package forest

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/solver"
)

// New returns an empty forest of the requested kind bound to g. Trees are
// added with ExpandForest.
func New(g adjacency.View, kind Kind, opts ...Option) (Forest, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	b := base{g: g, opts: cfg, n: g.NodeCount()}
	switch kind {
	case KindTrees:
		return &treesForest{base: b}, nil
	case KindPacked:
		return &packedForest{base: b}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// base holds the state shared by both implementations: the graph view and
// the per-tree solver state that Implicit repairs in place.
type base struct {
	g     adjacency.View
	opts  Options
	n     int
	trees []*solver.Tree
}

func (b *base) Len() int                { return len(b.trees) }
func (b *base) Epsilon() float64        { return b.opts.Epsilon }
func (b *base) NodeCount() int          { return b.n }
func (b *base) Tree(i int) *solver.Tree { return b.trees[i] }

func (b *base) solverOpts() []solver.Option {
	return []solver.Option{solver.WithEpsilon(b.opts.Epsilon)}
}

// grow solves a new tree from seeds and appends it.
func (b *base) grow(seeds []int) (*solver.Tree, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	for _, s := range seeds {
		if s < 0 || s >= b.n {
			return nil, fmt.Errorf("%w: %d with %d nodes", ErrSeedRange, s, b.n)
		}
	}
	t, err := solver.Explicit(b.g, seeds, b.solverOpts()...)
	if err != nil {
		return nil, fmt.Errorf("forest: expand: %w", err)
	}
	if t.Len() != b.n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTreeLength, t.Len(), b.n)
	}
	b.trees = append(b.trees, t)
	b.opts.Logger.Debug("forest tree added",
		slog.Int("tree", len(b.trees)-1),
		slog.Int("seeds", len(seeds)),
	)

	return t, nil
}

// repair runs dirty-edge detection and Implicit repair over every tree.
// onChanged is told which labels of tree i dropped.
//
// Steps:
//  1. Resolve every edge's current weight; an unknown pair fails the whole
//     call before any tree is touched.
//  2. Per tree, collect both endpoints of every dirty edge.
//  3. Repair trees with a non-empty frontier.
func (b *base) repair(edges []adjacency.EdgeKey, onChanged func(i int, nodes []int)) (RepairStats, error) {
	var stats RepairStats
	if len(edges) == 0 {
		return stats, nil
	}

	// 1) Weights
	weights := make([]float64, len(edges))
	for j, e := range edges {
		w, ok := b.g.Weight(e.U, e.V)
		if !ok {
			return stats, fmt.Errorf("%w: (%d,%d)", ErrEdgeNotFound, e.U, e.V)
		}
		weights[j] = w
	}

	// 2) & 3) Per-tree frontier and repair
	frontier := make([]int, 0, 2*len(edges))
	for i, t := range b.trees {
		frontier = frontier[:0]
		for j, e := range edges {
			du, dv := t.Dist[e.U], t.Dist[e.V]
			if math.IsInf(du, 1) || math.IsInf(dv, 1) {
				continue
			}
			if math.Abs(du-dv) > weights[j] {
				frontier = append(frontier, e.U, e.V)
				stats.DirtyEdges++
			}
		}
		if len(frontier) == 0 {
			continue
		}
		changed, err := solver.Implicit(b.g, t, frontier, b.solverOpts()...)
		if err != nil {
			return stats, fmt.Errorf("forest: repair tree %d: %w", i, err)
		}
		stats.TreesTouched++
		stats.NodesRelabeled += len(changed)
		if onChanged != nil && len(changed) > 0 {
			onChanged(i, changed)
		}
	}

	return stats, nil
}

// cloneBase deep-copies the trees and rebinds to g.
func (b *base) cloneBase(g adjacency.View) (base, error) {
	if g.NodeCount() != b.n {
		return base{}, fmt.Errorf("%w: view has %d nodes, forest %d", ErrTreeLength, g.NodeCount(), b.n)
	}
	trees := make([]*solver.Tree, len(b.trees))
	for i, t := range b.trees {
		if t.Len() != b.n {
			return base{}, fmt.Errorf("%w: tree %d has %d nodes", ErrTreeLength, i, t.Len())
		}
		trees[i] = t.Clone()
	}

	return base{g: g, opts: b.opts, n: b.n, trees: trees}, nil
}

// buffer returns out when it can hold n values, a fresh slice otherwise.
func buffer(out []float64, n int) []float64 {
	if cap(out) >= n {
		return out[:n]
	}

	return make([]float64, n)
}
