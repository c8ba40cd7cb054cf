package solver

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/starlane/adjacency"
)

// Explicit computes a fresh tree rooted at every node of seeds.
//
// Steps:
//  1. Apply options and validate seeds (ErrNoSeeds, ErrSeedRange).
//  2. Initialise every label to +Inf, seeds to 0 with Parent = Root.
//  3. Run the relaxation loop until the queue drains.
//
// Duplicate seeds are harmless.
//
// Complexity: O((V + E) log V).
func Explicit(g adjacency.View, seeds []int, opts ...Option) (*Tree, error) {
	// 1) Options and validation
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	n := g.NodeCount()
	for _, s := range seeds {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("%w: %d with %d nodes", ErrSeedRange, s, n)
		}
	}

	// 2) Initial labels
	t := NewTree(n)
	r := newRunner(g, t, cfg, false)
	for _, s := range seeds {
		if t.Dist[s] == 0 {
			continue
		}
		t.Dist[s] = 0
		t.Parent[s] = Root
		r.push(s, 0)
	}

	// 3) Relax
	r.process()

	return t, nil
}

// Implicit repairs t in place after edge weights decreased. Every frontier
// node with a finite label is rescanned; improvements propagate from there.
// It returns the nodes whose label decreased, in the order they first did.
//
// The tree's labels are validated first, so a corrupted vector is reported
// instead of silently propagated.
//
// Complexity: proportional to the re-relaxed region, O((V' + E') log V').
func Implicit(g adjacency.View, t *Tree, frontier []int, opts ...Option) ([]int, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	n := g.NodeCount()
	if err := validateTree(t, n); err != nil {
		return nil, err
	}
	for _, f := range frontier {
		if f < 0 || f >= n {
			return nil, fmt.Errorf("%w: %d with %d nodes", ErrFrontierRange, f, n)
		}
	}

	r := newRunner(g, t, cfg, true)
	for _, f := range frontier {
		if !t.Reached(f) {
			continue
		}
		r.push(f, t.Dist[f])
	}
	r.process()

	return r.changed, nil
}

// runner holds the mutable state of one solver pass.
type runner struct {
	g       adjacency.View
	t       *Tree
	divisor float64
	maxDist float64
	pq      nodePQ

	track   bool
	seen    map[int32]struct{}
	changed []int
}

func newRunner(g adjacency.View, t *Tree, cfg Options, track bool) *runner {
	r := &runner{
		g:       g,
		t:       t,
		divisor: cfg.Divisor(),
		maxDist: cfg.MaxDistance,
		pq:      make(nodePQ, 0, 64),
		track:   track,
	}
	if track {
		r.seen = make(map[int32]struct{})
	}
	heap.Init(&r.pq)

	return r
}

func (r *runner) push(u int, d float64) {
	heap.Push(&r.pq, nodeItem{id: int32(u), dist: d})
}

// process pops until the queue drains, discarding stale and exhausted entries.
func (r *runner) process() {
	dist := r.t.Dist
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(nodeItem)
		u := item.id
		if item.dist != dist[u] || item.dist > r.t.MaxNeighbor[u] {
			continue
		}
		r.relax(u)
	}
}

// relax scans u's neighbour list and records the largest neighbour label seen.
func (r *runner) relax(u int32) {
	dist, parent := r.t.Dist, r.t.Parent
	du := dist[u]
	nb, ws := r.g.Neighbors(int(u))
	maxSeen := 0.0
	for i, v := range nb {
		cand := du + ws[i]*r.divisor
		if cand < dist[v] && cand <= r.maxDist {
			dist[v] = cand
			parent[v] = u
			heap.Push(&r.pq, nodeItem{id: v, dist: cand})
			if r.track {
				if _, ok := r.seen[v]; !ok {
					r.seen[v] = struct{}{}
					r.changed = append(r.changed, int(v))
				}
			}
		}
		if dist[v] > maxSeen {
			maxSeen = dist[v]
		}
	}
	r.t.MaxNeighbor[u] = maxSeen
}

// nodeItem is a queue entry: a node and the label it was pushed with.
type nodeItem struct {
	id   int32
	dist float64
}

// nodePQ is a min-heap of nodeItem ordered by dist.
type nodePQ []nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
