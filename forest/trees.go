package forest

import (
	"math"

	"github.com/katalvlaran/starlane/adjacency"
)

// treesForest evaluates bounds tree by tree.
type treesForest struct {
	base
}

var _ Forest = (*treesForest)(nil)

func (f *treesForest) Kind() Kind { return KindTrees }

func (f *treesForest) LowerBound(u, v int) float64 {
	if u == v {
		return 0
	}
	best := 0.0
	for _, t := range f.trees {
		du, dv := t.Dist[u], t.Dist[v]
		if math.IsInf(du, 1) || math.IsInf(dv, 1) {
			continue
		}
		if d := math.Abs(du - dv); d > best {
			best = d
		}
	}

	return best
}

func (f *treesForest) UpperBound(u, v int) float64 {
	if u == v {
		return 0
	}
	best := math.Inf(1)
	for _, t := range f.trees {
		if s := t.Dist[u] + t.Dist[v]; s < best {
			best = s
		}
	}
	if math.IsInf(best, 1) {
		return Unbounded
	}

	return best * (1 + f.opts.Epsilon)
}

func (f *treesForest) LowerBoundBulk(target int, out []float64) []float64 {
	out = buffer(out, f.n)
	for v := range out {
		out[v] = 0
	}
	for _, t := range f.trees {
		dt := t.Dist[target]
		if math.IsInf(dt, 1) {
			continue
		}
		for v, dv := range t.Dist {
			if math.IsInf(dv, 1) {
				continue
			}
			if d := math.Abs(dv - dt); d > out[v] {
				out[v] = d
			}
		}
	}
	out[target] = 0

	return out
}

func (f *treesForest) UpperBoundBulk(target int, out []float64) []float64 {
	out = buffer(out, f.n)
	inf := math.Inf(1)
	for v := range out {
		out[v] = inf
	}
	for _, t := range f.trees {
		dt := t.Dist[target]
		if math.IsInf(dt, 1) {
			continue
		}
		for v, dv := range t.Dist {
			if s := dv + dt; s < out[v] {
				out[v] = s
			}
		}
	}
	scale := 1 + f.opts.Epsilon
	for v, s := range out {
		if math.IsInf(s, 1) {
			out[v] = Unbounded
		} else {
			out[v] = s * scale
		}
	}
	out[target] = 0

	return out
}

func (f *treesForest) UpdateEdges(edges []adjacency.EdgeKey) (RepairStats, error) {
	return f.repair(edges, nil)
}

func (f *treesForest) ExpandForest(seeds []int) error {
	_, err := f.grow(seeds)

	return err
}

func (f *treesForest) Clone(g adjacency.View) (Forest, error) {
	b, err := f.cloneBase(g)
	if err != nil {
		return nil, err
	}

	return &treesForest{base: b}, nil
}
