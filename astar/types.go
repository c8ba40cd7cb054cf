package astar

import (
	"errors"
	"math"
)

// Sentinel errors returned by the pathfinder.
var (
	// ErrNodeRange indicates a source or target outside the graph.
	ErrNodeRange = errors.New("astar: node out of range")

	// ErrNoPath indicates the target cannot be reached (within the upper bound).
	ErrNoPath = errors.New("astar: no path")

	// ErrBrokenPath indicates an empty path or consecutive nodes that are not adjacent.
	ErrBrokenPath = errors.New("astar: broken path")

	// ErrRevisitedNode indicates a path that visits a node twice.
	ErrRevisitedNode = errors.New("astar: path revisits a node")

	// ErrBadUpperBound is the panic message of WithUpperBound.
	ErrBadUpperBound = errors.New("astar: upper bound must be a non-negative number")
)

// relTolerance absorbs float rounding when comparing against the incumbent.
const relTolerance = 1e-9

// Bounds supplies the heuristic. forest.Forest satisfies it.
type Bounds interface {
	LowerBoundBulk(target int, out []float64) []float64
}

// Diagnostics are per-query search counters.
type Diagnostics struct {
	Expanded        int     // nodes popped and scanned
	Queued          int     // entries pushed onto OPEN
	Revisited       int     // scans of a node that had been scanned before
	Pruned          int     // candidates dropped or purged by the incumbent
	BranchingFactor float64 // effective branching factor b*
}

// Add accumulates o into d. BranchingFactor is not summed.
func (d *Diagnostics) Add(o Diagnostics) {
	d.Expanded += o.Expanded
	d.Queued += o.Queued
	d.Revisited += o.Revisited
	d.Pruned += o.Pruned
}

// Result is a found route.
type Result struct {
	Path        []int
	Cost        float64
	Diagnostics Diagnostics
}

// Options configures one search.
//
// UpperBound – cost of a known route; candidates above it are pruned. Default +Inf.
// Bulk       – expand whole neighbour lists per pop with slack pre-filtering.
// CostFloors – raise h with the store's MinCost / IndirectMinCost caches.
type Options struct {
	UpperBound float64
	Bulk       bool
	CostFloors bool
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithUpperBound seeds the incumbent. Panics on negative or NaN.
func WithUpperBound(ub float64) Option {
	if ub < 0 || math.IsNaN(ub) {
		panic(ErrBadUpperBound.Error())
	}

	return func(o *Options) {
		o.UpperBound = ub
	}
}

// WithBulkExpansion enables whole-list neighbour expansion.
func WithBulkExpansion() Option {
	return func(o *Options) {
		o.Bulk = true
	}
}

// WithCostFloors enables MinCost / IndirectMinCost pruning floors.
func WithCostFloors() Option {
	return func(o *Options) {
		o.CostFloors = true
	}
}

// DefaultOptions returns scalar expansion, no floors, no upper bound.
func DefaultOptions() Options {
	return Options{UpperBound: math.Inf(1)}
}
