package solver

import (
	"errors"
	"math"
)

// Sentinel errors returned by the solver.
var (
	// ErrNoSeeds indicates Explicit was called with an empty seed set.
	ErrNoSeeds = errors.New("solver: seed set is empty")

	// ErrSeedRange indicates a seed outside [0, NodeCount()).
	ErrSeedRange = errors.New("solver: seed out of range")

	// ErrFrontierRange indicates a frontier node outside [0, NodeCount()).
	ErrFrontierRange = errors.New("solver: frontier node out of range")

	// ErrNilTree indicates Implicit was given a nil tree.
	ErrNilTree = errors.New("solver: tree is nil")

	// ErrLabelLength indicates a label vector whose length differs from the node count.
	ErrLabelLength = errors.New("solver: label vector length mismatch")

	// ErrLabelNaN indicates a NaN label.
	ErrLabelNaN = errors.New("solver: label is NaN")

	// ErrLabelNegative indicates a negative label.
	ErrLabelNegative = errors.New("solver: label is negative")

	// ErrNoFiniteLabel indicates that every label is +Inf, so the tree has no root.
	ErrNoFiniteLabel = errors.New("solver: no finite label")

	// ErrAllZeroLabels indicates that every label is zero on a graph with more
	// than one node, which no real shortest-path tree produces.
	ErrAllZeroLabels = errors.New("solver: all labels are zero")

	// ErrBadEpsilon is the panic message of WithEpsilon.
	ErrBadEpsilon = errors.New("solver: epsilon must be a non-negative number")

	// ErrBadMaxDistance is the panic message of WithMaxDistance.
	ErrBadMaxDistance = errors.New("solver: MaxDistance must be non-negative")
)

// Parent pointer sentinels.
const (
	// Root marks a seed node.
	Root int32 = -1

	// Unvisited marks a node never reached.
	Unvisited int32 = -2
)

// Tree is one shortest-path tree of the forest.
//
// Dist holds scaled path labels (+Inf when unreached). Parent[v] is the node
// v was last relaxed from, Root for seeds and Unvisited otherwise.
// MaxNeighbor[v] is an upper bound on the largest neighbour label observed
// when v was last scanned (+Inf until the first scan).
type Tree struct {
	Dist        []float64
	Parent      []int32
	MaxNeighbor []float64
}

// NewTree returns a tree of n unreached nodes.
func NewTree(n int) *Tree {
	t := &Tree{
		Dist:        make([]float64, n),
		Parent:      make([]int32, n),
		MaxNeighbor: make([]float64, n),
	}
	inf := math.Inf(1)
	for i := 0; i < n; i++ {
		t.Dist[i] = inf
		t.Parent[i] = Unvisited
		t.MaxNeighbor[i] = inf
	}

	return t
}

// Len returns the number of nodes the tree covers.
func (t *Tree) Len() int { return len(t.Dist) }

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	return &Tree{
		Dist:        append([]float64(nil), t.Dist...),
		Parent:      append([]int32(nil), t.Parent...),
		MaxNeighbor: append([]float64(nil), t.MaxNeighbor...),
	}
}

// Reached reports whether v has a finite label.
func (t *Tree) Reached(v int) bool { return !math.IsInf(t.Dist[v], 1) }

// Options configures a solver run.
//
// Epsilon     – approximation slack; edges relax with weight/(1+Epsilon).
//
//	Must be ≥ 0. Default 0 (exact).
//
// MaxDistance – labels above this cap are never assigned. Default +Inf.
type Options struct {
	Epsilon     float64
	MaxDistance float64
}

// Option represents a functional option for configuring the solver.
type Option func(*Options)

// WithEpsilon sets the approximation slack. Panics on negative or NaN.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(ErrBadEpsilon.Error())
	}

	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithMaxDistance caps the labels the solver assigns. Panics on negative or NaN.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}

	return func(o *Options) {
		o.MaxDistance = max
	}
}

// DefaultOptions returns exact relaxation with no distance cap.
func DefaultOptions() Options {
	return Options{
		Epsilon:     0,
		MaxDistance: math.Inf(1),
	}
}

// Divisor returns the relaxation scale 1/(1+Epsilon).
func (o Options) Divisor() float64 { return 1 / (1 + o.Epsilon) }
