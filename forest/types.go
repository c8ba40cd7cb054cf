package forest

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/solver"
)

// Sentinel errors returned by the forest.
var (
	// ErrNoSeeds indicates ExpandForest was called with an empty seed set.
	ErrNoSeeds = errors.New("forest: seed set is empty")

	// ErrSeedRange indicates a seed outside [0, NodeCount()).
	ErrSeedRange = errors.New("forest: seed out of range")

	// ErrTreeLength indicates a tree or view whose node count differs from the forest's.
	ErrTreeLength = errors.New("forest: tree length mismatch")

	// ErrUnknownKind indicates an unsupported Kind.
	ErrUnknownKind = errors.New("forest: unknown implementation kind")

	// ErrEdgeNotFound indicates UpdateEdges was given a pair that is not an edge.
	ErrEdgeNotFound = errors.New("forest: edge not found")

	// ErrBadEpsilon is the panic message of WithEpsilon.
	ErrBadEpsilon = errors.New("forest: epsilon must be a non-negative number")
)

// Unbounded is returned by UpperBound when no tree reaches both nodes.
const Unbounded = 1e30

// Kind selects a Forest implementation.
type Kind int

const (
	// KindTrees stores one label vector per tree.
	KindTrees Kind = iota

	// KindPacked mirrors every label in a node-major matrix.
	KindPacked
)

// String returns the config spelling of k.
func (k Kind) String() string {
	switch k {
	case KindTrees:
		return "trees"
	case KindPacked:
		return "packed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "trees" or "packed" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "trees", "":
		return KindTrees, nil
	case "packed":
		return KindPacked, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// RepairStats summarises one UpdateEdges call.
type RepairStats struct {
	TreesTouched   int // trees that had at least one dirty edge
	DirtyEdges     int // (tree, edge) pairs found dirty
	NodesRelabeled int // labels decreased, summed over trees
}

// Add accumulates o into s.
func (s *RepairStats) Add(o RepairStats) {
	s.TreesTouched += o.TreesTouched
	s.DirtyEdges += o.DirtyEdges
	s.NodesRelabeled += o.NodesRelabeled
}

// Forest is the approximate shortest-path forest.
//
// A Forest is not safe for concurrent mutation. Concurrent readers are safe
// as long as nobody calls UpdateEdges or ExpandForest; workers get their own
// Clone instead.
type Forest interface {
	// Kind reports the implementation.
	Kind() Kind

	// Len returns the number of trees.
	Len() int

	// Epsilon returns the approximation slack the trees were built with.
	Epsilon() float64

	// NodeCount returns the length of every tree vector.
	NodeCount() int

	// Tree returns tree i. The result must be treated as read-only.
	Tree(i int) *solver.Tree

	// LowerBound returns a value ≤ d(u,v).
	LowerBound(u, v int) float64

	// LowerBoundBulk fills out[v] = LowerBound(v, target) for every node.
	// out is reused when it has room for NodeCount() entries.
	LowerBoundBulk(target int, out []float64) []float64

	// UpperBound returns a value ≥ d(u,v), or Unbounded.
	UpperBound(u, v int) float64

	// UpperBoundBulk fills out[v] = UpperBound(v, target) for every node.
	UpperBoundBulk(target int, out []float64) []float64

	// UpdateEdges repairs the trees after the given edges were lightened.
	UpdateEdges(edges []adjacency.EdgeKey) (RepairStats, error)

	// ExpandForest adds one tree seeded at seeds. Existing trees are untouched.
	ExpandForest(seeds []int) error

	// Clone deep-copies the labels and binds the copy to g.
	Clone(g adjacency.View) (Forest, error)
}

// Options configures a forest.
type Options struct {
	Epsilon float64
	Logger  *slog.Logger
}

// Option represents a functional option for configuring a forest.
type Option func(*Options)

// WithEpsilon sets the approximation slack. Panics on negative, NaN or infinite values.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(ErrBadEpsilon.Error())
	}

	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithLogger sets the logger used for tree construction events.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns ε = 0 and slog.Default().
func DefaultOptions() Options {
	return Options{
		Epsilon: 0,
		Logger:  slog.Default(),
	}
}
