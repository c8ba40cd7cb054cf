package adjacency

import (
	"fmt"
	"math"
	"sort"
)

// Store is a symmetric weighted graph in compressed sparse row form.
//
// offsets[u]..offsets[u+1] delimits u's slice of targets and weights.
// targets within one row are strictly increasing.
type Store struct {
	offsets []int32 // shared with snapshots, never mutated
	targets []int32 // shared with snapshots, never mutated

	weights  []float64
	minCost  []float64
	indirect []float64

	readOnly bool
}

var _ View = (*Store)(nil)

// New builds a Store with n nodes from an undirected edge list. Every edge is
// stored in both directions.
//
// Steps:
//  1. Validate endpoints and weights.
//  2. Count degrees and lay out row offsets.
//  3. Scatter both directions of every edge, then sort each row by target.
//  4. Reject duplicates (adjacent equal targets after sorting).
//  5. Fill the min-cost caches.
//
// Complexity: O(E log Δ) time where Δ is the maximum degree, O(V + E) space.
func New(n int, edges []Edge) (*Store, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrNodeRange, n)
	}

	// 1) Validation
	degree := make([]int32, n+1)
	for i, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("%w: edge #%d (%d,%d) with n=%d", ErrNodeRange, i, e.U, e.V, n)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("%w: edge #%d at node %d", ErrSelfLoop, i, e.U)
		}
		if !validWeight(e.Weight) {
			return nil, fmt.Errorf("%w: edge #%d (%d,%d) weight=%g", ErrBadWeight, i, e.U, e.V, e.Weight)
		}
		degree[e.U]++
		degree[e.V]++
	}

	// 2) Offsets
	offsets := make([]int32, n+1)
	for u := 0; u < n; u++ {
		offsets[u+1] = offsets[u] + degree[u]
	}

	// 3) Scatter
	targets := make([]int32, 2*len(edges))
	weights := make([]float64, 2*len(edges))
	cursor := make([]int32, n)
	copy(cursor, offsets[:n])
	for _, e := range edges {
		p := cursor[e.U]
		targets[p], weights[p] = int32(e.V), e.Weight
		cursor[e.U]++
		p = cursor[e.V]
		targets[p], weights[p] = int32(e.U), e.Weight
		cursor[e.V]++
	}
	s := &Store{offsets: offsets, targets: targets, weights: weights}
	for u := 0; u < n; u++ {
		sort.Sort(rowSorter{s: s, lo: int(offsets[u]), hi: int(offsets[u+1])})
	}

	// 4) Duplicates
	for u := 0; u < n; u++ {
		for p := offsets[u] + 1; p < offsets[u+1]; p++ {
			if targets[p] == targets[p-1] {
				return nil, fmt.Errorf("%w: (%d,%d)", ErrDuplicateEdge, u, targets[p])
			}
		}
	}

	// 5) Caches
	s.minCost = make([]float64, n)
	s.indirect = make([]float64, n)
	for u := 0; u < n; u++ {
		s.refreshMin(u)
	}
	for u := 0; u < n; u++ {
		s.refreshIndirect(u)
	}

	return s, nil
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.offsets) - 1 }

// EdgeCount returns the number of undirected edges.
func (s *Store) EdgeCount() int { return len(s.targets) / 2 }

// ReadOnly reports whether s is a snapshot.
func (s *Store) ReadOnly() bool { return s.readOnly }

// Neighbors returns u's neighbour indices and the matching weights.
// It panics if u is out of range; asking for a node that does not exist is a
// programming error.
func (s *Store) Neighbors(u int) ([]int32, []float64) {
	if u < 0 || u >= s.NodeCount() {
		panic(fmt.Sprintf("adjacency: Neighbors(%d) with %d nodes", u, s.NodeCount()))
	}
	lo, hi := s.offsets[u], s.offsets[u+1]

	return s.targets[lo:hi:hi], s.weights[lo:hi:hi]
}

// Weight returns the weight of (u,v) and whether the edge exists.
func (s *Store) Weight(u, v int) (float64, bool) {
	p, ok := s.slot(u, v)
	if !ok {
		return 0, false
	}

	return s.weights[p], true
}

// HasEdge reports whether u and v are adjacent.
func (s *Store) HasEdge(u, v int) bool {
	_, ok := s.slot(u, v)

	return ok
}

// MinCost returns the cheapest edge leaving u, or +Inf if u is isolated.
func (s *Store) MinCost(u int) float64 { return s.minCost[u] }

// IndirectMinCost returns min over neighbours v of w(u,v)+MinCost(v): a lower
// bound on any walk of two or more edges that starts at u. +Inf if u is
// isolated.
func (s *Store) IndirectMinCost(u int) float64 { return s.indirect[u] }

// slot locates (u,v) in u's row by binary search.
func (s *Store) slot(u, v int) (int, bool) {
	n := s.NodeCount()
	if u < 0 || u >= n || v < 0 || v >= n {
		return 0, false
	}
	lo, hi := int(s.offsets[u]), int(s.offsets[u+1])
	row := s.targets[lo:hi]
	i := sort.Search(len(row), func(i int) bool { return row[i] >= int32(v) })
	if i < len(row) && row[i] == int32(v) {
		return lo + i, true
	}

	return 0, false
}

// LightenEdge lowers the weight of (u,v) and (v,u) to w.
//
// Setting the current weight again is a no-op. The MinCost caches of u and v and
// the IndirectMinCost caches of u, v and their neighbours are refreshed.
//
// Errors:
//   - ErrReadOnly on a snapshot.
//   - ErrBadWeight if w is negative, NaN or infinite.
//   - ErrEdgeNotFound if u and v are not adjacent (including out-of-range indices).
//   - ErrWeightIncrease if w exceeds the current weight.
func (s *Store) LightenEdge(u, v int, w float64) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if !validWeight(w) {
		return fmt.Errorf("%w: (%d,%d) weight=%g", ErrBadWeight, u, v, w)
	}
	pu, ok := s.slot(u, v)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrEdgeNotFound, u, v)
	}
	if w > s.weights[pu] {
		return fmt.Errorf("%w: (%d,%d) %g -> %g", ErrWeightIncrease, u, v, s.weights[pu], w)
	}
	if w == s.weights[pu] {
		return nil
	}
	pv, _ := s.slot(v, u)
	s.weights[pu] = w
	s.weights[pv] = w

	if w < s.minCost[u] {
		s.minCost[u] = w
	}
	if w < s.minCost[v] {
		s.minCost[v] = w
	}
	// indirect(x) reads w(x,y) and MinCost(y): refresh u, v and everyone next to them
	s.refreshIndirect(u)
	s.refreshIndirect(v)
	for _, x := range s.targets[s.offsets[u]:s.offsets[u+1]] {
		s.refreshIndirect(int(x))
	}
	for _, x := range s.targets[s.offsets[v]:s.offsets[v+1]] {
		s.refreshIndirect(int(x))
	}

	return nil
}

func (s *Store) refreshMin(u int) {
	best := math.Inf(1)
	for _, w := range s.weights[s.offsets[u]:s.offsets[u+1]] {
		if w < best {
			best = w
		}
	}
	s.minCost[u] = best
}

func (s *Store) refreshIndirect(u int) {
	best := math.Inf(1)
	lo, hi := s.offsets[u], s.offsets[u+1]
	for p := lo; p < hi; p++ {
		if c := s.weights[p] + s.minCost[s.targets[p]]; c < best {
			best = c
		}
	}
	s.indirect[u] = best
}

// Snapshot returns a read-only copy of s. Topology arrays are shared; weights
// and caches are copied, so later LightenEdge calls on s are not visible in
// the snapshot.
//
// Complexity: O(V + E).
func (s *Store) Snapshot() *Store {
	return &Store{
		offsets:  s.offsets,
		targets:  s.targets,
		weights:  append([]float64(nil), s.weights...),
		minCost:  append([]float64(nil), s.minCost...),
		indirect: append([]float64(nil), s.indirect...),
		readOnly: true,
	}
}

// Edges returns every undirected edge once (u < v) with its current weight,
// ordered by u then v.
func (s *Store) Edges() []Edge {
	out := make([]Edge, 0, s.EdgeCount())
	for u := 0; u < s.NodeCount(); u++ {
		for p := s.offsets[u]; p < s.offsets[u+1]; p++ {
			if v := int(s.targets[p]); u < v {
				out = append(out, Edge{U: u, V: v, Weight: s.weights[p]})
			}
		}
	}

	return out
}

// rowSorter orders one CSR row by target, carrying weights along.
type rowSorter struct {
	s      *Store
	lo, hi int
}

func (r rowSorter) Len() int { return r.hi - r.lo }
func (r rowSorter) Less(i, j int) bool {
	return r.s.targets[r.lo+i] < r.s.targets[r.lo+j]
}
func (r rowSorter) Swap(i, j int) {
	a, b := r.lo+i, r.lo+j
	r.s.targets[a], r.s.targets[b] = r.s.targets[b], r.s.targets[a]
	r.s.weights[a], r.s.weights[b] = r.s.weights[b], r.s.weights[a]
}
