package landmark

import (
	"errors"
	"log/slog"
	"math"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/forest"
	"github.com/katalvlaran/starlane/galaxy"
)

// Sentinel errors returned by the selector.
var (
	// ErrNilGraph indicates Input.Graph is nil.
	ErrNilGraph = errors.New("landmark: graph is nil")

	// ErrInputLength indicates Components or Coords do not match the node count.
	ErrInputLength = errors.New("landmark: input length mismatch")

	// ErrNoForest indicates Extend was given a Result without a forest.
	ErrNoForest = errors.New("landmark: result has no forest")

	// ErrBadMaxSlots is the panic message of WithMaxSlots.
	ErrBadMaxSlots = errors.New("landmark: MaxSlots must be at least 1")
)

const (
	// DefaultMaxSlots caps the per-component budget.
	DefaultMaxSlots = 15

	extremeSlots = 6
	trafficSlot  = 6
)

// Slot maps component id to the landmark chosen for it in one slot.
type Slot map[int]int

// Input is what the selector reads. Components[i] is star i's component id
// as produced by galaxy.CalculateComponents; Coords[i] is its hex.
type Input struct {
	Graph      adjacency.View
	Components []int
	Coords     []galaxy.Hex
	Queries    []galaxy.Query
}

// Result holds the chosen slots and the forest built from them.
type Result struct {
	Slots  []Slot
	Forest forest.Forest
}

// Landmarks returns every landmark of component c in slot order.
func (r *Result) Landmarks(c int) []int {
	var out []int
	for _, s := range r.Slots {
		if v, ok := s[c]; ok {
			out = append(out, v)
		}
	}

	return out
}

// Count returns the total number of landmarks.
func (r *Result) Count() int {
	n := 0
	for _, s := range r.Slots {
		n += len(s)
	}

	return n
}

// Options configures selection.
type Options struct {
	MaxSlots         int
	TrafficThreshold float64
	Epsilon          float64
	Kind             forest.Kind
	Logger           *slog.Logger
}

// Option represents a functional option for configuring selection.
type Option func(*Options)

// WithMaxSlots caps the per-component budget. Panics if max < 1.
func WithMaxSlots(max int) Option {
	if max < 1 {
		panic(ErrBadMaxSlots.Error())
	}

	return func(o *Options) {
		o.MaxSlots = max
	}
}

// WithTrafficThreshold sets the minimum query priority counted for the
// traffic candidate.
func WithTrafficThreshold(p float64) Option {
	return func(o *Options) {
		o.TrafficThreshold = p
	}
}

// WithEpsilon sets the forest approximation slack. Panics like forest.WithEpsilon.
func WithEpsilon(eps float64) Option {
	forest.WithEpsilon(eps)

	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithForestKind selects the forest implementation.
func WithForestKind(k forest.Kind) Option {
	return func(o *Options) {
		o.Kind = k
	}
}

// WithLogger sets the logger for selection summaries.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns 15 slots, threshold 0, exact trees of KindTrees.
func DefaultOptions() Options {
	return Options{
		MaxSlots:         DefaultMaxSlots,
		TrafficThreshold: 0,
		Epsilon:          0,
		Kind:             forest.KindTrees,
		Logger:           slog.Default(),
	}
}

// Budget returns the landmark budget of a component with n stars.
func Budget(n, maxSlots int) int {
	if n < 2 {
		return 0
	}
	// log10 of exact powers of ten may land a hair above the integer
	b := int(math.Ceil(3*math.Log10(float64(n)) - 1e-9))
	if b > maxSlots {
		b = maxSlots
	}
	if b < 1 {
		b = 1
	}

	return b
}
