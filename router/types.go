package router

import (
	"errors"
	"log/slog"
	"time"

	"github.com/katalvlaran/starlane/astar"
	"github.com/katalvlaran/starlane/forest"
)

// Sentinel errors returned by the router.
var (
	// ErrNotPrepared indicates a routing call before Prepare.
	ErrNotPrepared = errors.New("router: not prepared")

	// ErrNoPath indicates the query endpoints are not connected.
	ErrNoPath = errors.New("router: no path")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("router: invalid config")

	// ErrWorkerFailed indicates a worker goroutine panicked or errored.
	ErrWorkerFailed = errors.New("router: worker failed")

	// ErrBatchFailed indicates a batch that could not be completed.
	ErrBatchFailed = errors.New("router: batch failed")

	// ErrInconsistentRoute indicates a route that failed a consistency check
	// while StrictChecks is on.
	ErrInconsistentRoute = errors.New("router: inconsistent route")
)

// reverseTolerance is the largest accepted difference between a path's cost
// and the cost of the same path walked backwards.
const reverseTolerance = 1e-10

// Route is one answered query.
type Route struct {
	Source, Target int
	Path           []int
	// Cost is measured on the live store before the route's own reinforcement.
	Cost        float64
	Diagnostics astar.Diagnostics
}

// BatchReport summarises one RouteAll call.
type BatchReport struct {
	ID string

	Immediate   int
	IntraRegion int
	LongRange   int

	// Routes are in the order they were applied.
	Routes  []Route
	Dropped int

	EdgesLightened int
	Repair         forest.RepairStats
	Search         astar.Diagnostics
	Duration       time.Duration
}

// Found returns the number of routes applied.
func (b *BatchReport) Found() int { return len(b.Routes) }

// Diagnostics is a snapshot of the router's size and lifetime counters.
type Diagnostics struct {
	Stars     int
	Jumps     int
	Landmarks int
	Trees     int
	Routed    int
	Dropped   int
	Search    astar.Diagnostics
	Repair    forest.RepairStats
}

// Option configures a Router.
type Option func(*Router)

// WithConfig replaces the default configuration. It is validated by New.
func WithConfig(cfg Config) Option {
	return func(r *Router) {
		r.cfg = cfg
	}
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}
