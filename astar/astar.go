package astar

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/starlane/adjacency"
)

// Searcher owns the per-node scratch vectors of a search so consecutive
// queries on the same graph do not reallocate them. A Searcher is not safe
// for concurrent use; give each goroutine its own.
type Searcher struct {
	g      adjacency.View
	bounds Bounds

	h      []float64
	best   []float64
	parent []int32
	closed []bool
	open   openPQ
	cands  []candidate
}

// NewSearcher binds a Searcher to g and bounds. bounds may be nil, in which
// case the search degrades to Dijkstra.
func NewSearcher(g adjacency.View, bounds Bounds) *Searcher {
	n := g.NodeCount()

	return &Searcher{
		g:      g,
		bounds: bounds,
		h:      make([]float64, n),
		best:   make([]float64, n),
		parent: make([]int32, n),
		closed: make([]bool, n),
	}
}

// Search is a one-shot convenience around NewSearcher(g, bounds).Search.
func Search(g adjacency.View, bounds Bounds, source, target int, opts ...Option) (*Result, error) {
	return NewSearcher(g, bounds).Search(source, target, opts...)
}

// Search returns the cheapest route from source to target under the
// current weights.
//
// Steps:
//  1. Validate endpoints; source == target is a zero-cost single-node route.
//  2. Fill h with one bulk lower-bound pass and reset the labels.
//  3. Pop OPEN until the target is popped with its best label (success) or
//     OPEN drains (ErrNoPath). Stale and over-incumbent entries are skipped.
//  4. Walk parents back from the target.
func (s *Searcher) Search(source, target int, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Endpoints
	n := s.g.NodeCount()
	if source < 0 || source >= n || target < 0 || target >= n {
		return nil, fmt.Errorf("%w: %d -> %d with %d nodes", ErrNodeRange, source, target, n)
	}
	if source == target {
		return &Result{Path: []int{source}}, nil
	}

	// 2) Heuristic and labels
	if s.bounds != nil {
		s.h = s.bounds.LowerBoundBulk(target, s.h)
	} else {
		for i := range s.h {
			s.h[i] = 0
		}
	}
	inf := math.Inf(1)
	for i := 0; i < n; i++ {
		s.best[i] = inf
		s.parent[i] = -1
		s.closed[i] = false
	}
	s.open = s.open[:0]

	r := &run{s: s, cfg: cfg, target: int32(target), upbound: cfg.UpperBound}
	s.best[source] = 0
	r.push(int32(source), 0, s.h[source])

	// 3) Main loop
	for s.open.Len() > 0 {
		it := heap.Pop(&s.open).(openItem)
		u := it.node
		if it.g != s.best[u] {
			continue
		}
		if r.above(it.f) {
			r.diag.Pruned++
			continue
		}
		if u == r.target {
			path := s.walk(source, target)
			r.diag.BranchingFactor = branchingFactor(r.diag.Queued, len(path)-1)

			return &Result{Path: path, Cost: it.g, Diagnostics: r.diag}, nil
		}
		if s.closed[u] {
			r.diag.Revisited++
		}
		s.closed[u] = true
		r.diag.Expanded++
		if cfg.Bulk {
			r.expandBulk(u, it.g)
		} else {
			r.expand(u, it.g)
		}
	}

	return nil, fmt.Errorf("%w: %d -> %d", ErrNoPath, source, target)
}

// run is the mutable state of one query.
type run struct {
	s       *Searcher
	cfg     Options
	target  int32
	upbound float64
	diag    Diagnostics
}

func (r *run) limit() float64 {
	return r.upbound + relTolerance*math.Max(1, r.upbound)
}

// above reports whether f cannot beat the incumbent.
func (r *run) above(f float64) bool { return f > r.limit() }

func (r *run) push(v int32, g, f float64) {
	heap.Push(&r.s.open, openItem{f: f, g: g, node: v})
	r.diag.Queued++
}

// estimate returns f for reaching v with cost g.
func (r *run) estimate(v int32, g float64) float64 {
	h := r.s.h[v]
	if r.cfg.CostFloors && v != r.target {
		floor := r.s.g.IndirectMinCost(int(v))
		if r.s.g.HasEdge(int(v), int(r.target)) {
			floor = r.s.g.MinCost(int(v))
		}
		if floor > h {
			h = floor
		}
	}

	return g + h
}

// relax offers g as a new label for v reached from u.
func (r *run) relax(u, v int32, g float64) {
	s := r.s
	if g >= s.best[v] {
		return
	}
	f := r.estimate(v, g)
	if r.above(f) {
		r.diag.Pruned++
		return
	}
	s.best[v] = g
	s.parent[v] = u
	if v == r.target && g < r.upbound {
		r.upbound = g
		r.purge()
	}
	r.push(v, g, f)
}

// expand relaxes u's neighbours one at a time.
func (r *run) expand(u int32, gu float64) {
	nb, ws := r.s.g.Neighbors(int(u))
	for i, v := range nb {
		r.relax(u, v, gu+ws[i])
	}
}

// expandBulk filters u's whole neighbour list against the slack first, then
// relaxes the survivors.
func (r *run) expandBulk(u int32, gu float64) {
	nb, ws := r.s.g.Neighbors(int(u))
	slack := r.limit() - gu
	cands := r.s.cands[:0]
	for i, w := range ws {
		if w > slack {
			continue
		}
		cands = append(cands, candidate{node: nb[i], g: gu + w})
	}
	r.diag.Pruned += len(nb) - len(cands)
	for _, c := range cands {
		r.relax(u, c.node, c.g)
	}
	r.s.cands = cands
}

// purge drops every queued entry whose f exceeds the incumbent.
func (r *run) purge() {
	open := r.s.open
	keep := open[:0]
	for _, it := range open {
		if r.above(it.f) {
			r.diag.Pruned++
			continue
		}
		keep = append(keep, it)
	}
	r.s.open = keep
	heap.Init(&r.s.open)
}

// walk follows parent pointers from target back to source.
func (s *Searcher) walk(source, target int) []int {
	var path []int
	for v := int32(target); v >= 0; v = s.parent[v] {
		path = append(path, int(v))
		if int(v) == source {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// branchingFactor solves queued = b + b² + … + b^d for b by bisection.
func branchingFactor(queued, depth int) float64 {
	if depth <= 0 || queued <= 0 {
		return 0
	}
	total := float64(queued)
	sum := func(b float64) float64 {
		acc, p := 0.0, 1.0
		for i := 0; i < depth; i++ {
			p *= b
			acc += p
			if acc > total {
				break
			}
		}
		return acc
	}
	lo, hi := 0.0, math.Max(1, total)
	for i := 0; i < 64; i++ {
		mid := (lo + hi) / 2
		if sum(mid) < total {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2
}

type candidate struct {
	node int32
	g    float64
}

// openItem is an OPEN entry.
type openItem struct {
	f, g float64
	node int32
}

// openPQ is a min-heap on f, ties broken towards larger g (deeper first).
type openPQ []openItem

func (pq openPQ) Len() int { return len(pq) }
func (pq openPQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].g > pq[j].g
}
func (pq openPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *openPQ) Push(x interface{}) { *pq = append(*pq, x.(openItem)) }
func (pq *openPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
