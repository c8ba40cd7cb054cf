package forest

import (
	"math"

	"github.com/katalvlaran/starlane/adjacency"
)

// packedForest mirrors the tree labels in a node-major matrix:
// labels[v*k+i] is d_Ti(v) for k trees. The per-tree vectors stay
// authoritative because Implicit repairs them in place; the mirror is
// patched from the changed-node lists it returns.
type packedForest struct {
	base
	labels []float64
}

var _ Forest = (*packedForest)(nil)

func (f *packedForest) Kind() Kind { return KindPacked }

func (f *packedForest) row(v int) []float64 {
	k := len(f.trees)

	return f.labels[v*k : (v+1)*k : (v+1)*k]
}

func (f *packedForest) LowerBound(u, v int) float64 {
	if u == v {
		return 0
	}
	return lowerRow(f.row(u), f.row(v))
}

func lowerRow(a, b []float64) float64 {
	best := 0.0
	for i, da := range a {
		db := b[i]
		if math.IsInf(da, 1) || math.IsInf(db, 1) {
			continue
		}
		if d := math.Abs(da - db); d > best {
			best = d
		}
	}

	return best
}

func minSumRow(a, b []float64) float64 {
	best := math.Inf(1)
	for i, da := range a {
		if s := da + b[i]; s < best {
			best = s
		}
	}

	return best
}

func (f *packedForest) UpperBound(u, v int) float64 {
	if u == v {
		return 0
	}
	best := minSumRow(f.row(u), f.row(v))
	if math.IsInf(best, 1) {
		return Unbounded
	}

	return best * (1 + f.opts.Epsilon)
}

func (f *packedForest) LowerBoundBulk(target int, out []float64) []float64 {
	out = buffer(out, f.n)
	rt := f.row(target)
	for v := range out {
		out[v] = lowerRow(f.row(v), rt)
	}
	out[target] = 0

	return out
}

func (f *packedForest) UpperBoundBulk(target int, out []float64) []float64 {
	out = buffer(out, f.n)
	rt := f.row(target)
	scale := 1 + f.opts.Epsilon
	for v := range out {
		s := minSumRow(f.row(v), rt)
		if math.IsInf(s, 1) {
			out[v] = Unbounded
		} else {
			out[v] = s * scale
		}
	}
	out[target] = 0

	return out
}

func (f *packedForest) UpdateEdges(edges []adjacency.EdgeKey) (RepairStats, error) {
	k := len(f.trees)

	return f.repair(edges, func(i int, nodes []int) {
		dist := f.trees[i].Dist
		for _, v := range nodes {
			f.labels[v*k+i] = dist[v]
		}
	})
}

// ExpandForest solves the new tree and repacks the matrix with one more column.
func (f *packedForest) ExpandForest(seeds []int) error {
	if _, err := f.grow(seeds); err != nil {
		return err
	}
	f.repack()

	return nil
}

func (f *packedForest) repack() {
	k := len(f.trees)
	labels := make([]float64, f.n*k)
	for i, t := range f.trees {
		for v, d := range t.Dist {
			labels[v*k+i] = d
		}
	}
	f.labels = labels
}

func (f *packedForest) Clone(g adjacency.View) (Forest, error) {
	b, err := f.cloneBase(g)
	if err != nil {
		return nil, err
	}

	return &packedForest{base: b, labels: append([]float64(nil), f.labels...)}, nil
}
