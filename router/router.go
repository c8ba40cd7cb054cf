package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/astar"
	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/forest"
	"github.com/katalvlaran/starlane/galaxy"
	"github.com/katalvlaran/starlane/landmark"
)

// Router owns the live store and forest of one galaxy.
type Router struct {
	g      *galaxy.Graph
	store  *adjacency.Store
	cfg    Config
	logger *slog.Logger

	components []int
	landmarks  *landmark.Result
	forest     forest.Forest
	searcher   *astar.Searcher

	routed  int
	dropped int
	search  astar.Diagnostics
	repair  forest.RepairStats

	// beforeSearch runs in the searching goroutine ahead of each query.
	beforeSearch func(galaxy.Query)
}

// New builds the adjacency store from g. The galaxy must not gain stars or
// jumps afterwards; its jump usage is updated by routing.
//
// Errors: ErrInvalidConfig, or the store construction error.
func New(g *galaxy.Graph, opts ...Option) (*Router, error) {
	r := &Router{g: g, cfg: DefaultConfig(), logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := builder.ToStore(g)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	r.store = store

	return r, nil
}

// Config returns the active configuration.
func (r *Router) Config() Config { return r.cfg }

// Store returns the live adjacency store. Callers must not lighten it
// directly; use UpdateEdges so the forest stays valid.
func (r *Router) Store() adjacency.View { return r.store }

// CalculateComponents labels connected components. Prepare calls it; it is
// exported for callers that only need the labels.
func (r *Router) CalculateComponents() []int {
	r.components = r.g.CalculateComponents()

	out := make([]int, len(r.components))
	copy(out, r.components)

	return out
}

// Prepare selects landmarks and grows the forest. queries feed the traffic
// candidate and may be nil.
func (r *Router) Prepare(ctx context.Context, queries []galaxy.Query) error {
	ctx, span := tracer.Start(ctx, "router.Prepare",
		trace.WithAttributes(
			attribute.Int("stars", r.g.StarCount()),
			attribute.Int("queries", len(queries)),
		),
	)
	defer span.End()

	r.CalculateComponents()
	res, err := landmark.Select(ctx, landmark.Input{
		Graph:      r.store,
		Components: r.components,
		Coords:     r.g.Hexes(),
		Queries:    queries,
	},
		landmark.WithMaxSlots(r.cfg.MaxLandmarks),
		landmark.WithTrafficThreshold(r.cfg.TrafficThreshold),
		landmark.WithEpsilon(r.cfg.Epsilon),
		landmark.WithForestKind(r.cfg.Kind()),
		landmark.WithLogger(r.logger),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("router: prepare: %w", err)
	}
	r.landmarks = res
	r.forest = res.Forest
	r.searcher = astar.NewSearcher(r.store, r.forest)
	span.SetAttributes(attribute.Int("landmarks", res.Count()))

	return nil
}

func (r *Router) prepared() bool { return r.forest != nil }

// GetRouteBetween finds the current cheapest route from s to t on the live
// store. The route is not reinforced.
//
// Errors: ErrNotPrepared, galaxy.ErrStarNotFound, ErrNoPath,
// ErrInconsistentRoute (StrictChecks only).
func (r *Router) GetRouteBetween(ctx context.Context, s, t int) (*Route, error) {
	if !r.prepared() {
		return nil, ErrNotPrepared
	}
	q := galaxy.Query{Source: s, Target: t}
	if err := r.checkQuery(q); err != nil {
		return nil, err
	}
	res, err := r.find(r.searcher, r.forest, q)
	if err != nil {
		return nil, err
	}
	r.search.Add(res.Diagnostics)
	cost, err := r.check(ctx, res.Path)
	if err != nil {
		return nil, err
	}

	return &Route{Source: s, Target: t, Path: res.Path, Cost: cost, Diagnostics: res.Diagnostics}, nil
}

func (r *Router) checkQuery(q galaxy.Query) error {
	n := r.g.StarCount()
	if q.Source < 0 || q.Source >= n || q.Target < 0 || q.Target >= n {
		return fmt.Errorf("%w: query %d -> %d", galaxy.ErrStarNotFound, q.Source, q.Target)
	}

	return nil
}

// searchOptions maps the config onto astar options.
func (r *Router) searchOptions() []astar.Option {
	var opts []astar.Option
	if r.cfg.BulkExpansion {
		opts = append(opts, astar.WithBulkExpansion())
	}
	if r.cfg.CostFloors {
		opts = append(opts, astar.WithCostFloors())
	}

	return opts
}

// find runs one query against s, seeding the incumbent with the forest's
// upper bound. Disconnected endpoints fail fast with ErrNoPath.
func (r *Router) find(s *astar.Searcher, f forest.Forest, q galaxy.Query) (*astar.Result, error) {
	if r.beforeSearch != nil {
		r.beforeSearch(q)
	}
	if r.components[q.Source] != r.components[q.Target] {
		return nil, fmt.Errorf("%w: %d -> %d in different components", ErrNoPath, q.Source, q.Target)
	}
	opts := r.searchOptions()
	if ub := f.UpperBound(q.Source, q.Target); ub < forest.Unbounded {
		opts = append(opts, astar.WithUpperBound(ub))
	}
	res, err := s.Search(q.Source, q.Target, opts...)
	if errors.Is(err, astar.ErrNoPath) {
		return nil, fmt.Errorf("%w: %d -> %d", ErrNoPath, q.Source, q.Target)
	}
	if err != nil {
		return nil, err
	}

	return res, nil
}

// check validates path on the live store and returns its cost. Revisits and
// direction-dependent costs are warnings unless StrictChecks is set.
func (r *Router) check(ctx context.Context, path []int) (float64, error) {
	err := astar.ValidatePath(r.store, path)
	if errors.Is(err, astar.ErrBrokenPath) || errors.Is(err, astar.ErrNodeRange) {
		return 0, fmt.Errorf("%w: %v", ErrInconsistentRoute, err)
	}
	if err != nil {
		if r.cfg.StrictChecks {
			return 0, fmt.Errorf("%w: %v", ErrInconsistentRoute, err)
		}
		r.logger.WarnContext(ctx, "route revisits a star", slog.String("error", err.Error()))
	}

	cost, err := astar.PathCost(r.store, path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInconsistentRoute, err)
	}
	back := make([]int, len(path))
	for i, v := range path {
		back[len(path)-1-i] = v
	}
	rev, err := astar.PathCost(r.store, back)
	if err != nil {
		return 0, fmt.Errorf("%w: reversed: %v", ErrInconsistentRoute, err)
	}
	if diff := math.Abs(cost - rev); diff > reverseTolerance {
		if r.cfg.StrictChecks {
			return 0, fmt.Errorf("%w: forward %g, reverse %g", ErrInconsistentRoute, cost, rev)
		}
		r.logger.WarnContext(ctx, "route cost depends on direction",
			slog.Float64("forward", cost),
			slog.Float64("reverse", rev),
		)
	}

	return cost, nil
}

// LandmarkIndices returns the chosen landmarks per slot as component → star
// index maps.
func (r *Router) LandmarkIndices() []landmark.Slot {
	if r.landmarks == nil {
		return nil
	}
	out := make([]landmark.Slot, len(r.landmarks.Slots))
	for i, s := range r.landmarks.Slots {
		cp := make(landmark.Slot, len(s))
		for c, v := range s {
			cp[c] = v
		}
		out[i] = cp
	}

	return out
}

// LandmarkNames is LandmarkIndices with star names in place of indices.
func (r *Router) LandmarkNames() []map[int]string {
	idx := r.LandmarkIndices()
	stars := r.g.Stars()
	out := make([]map[int]string, len(idx))
	for i, s := range idx {
		m := make(map[int]string, len(s))
		for c, v := range s {
			m[c] = stars[v].Name
		}
		out[i] = m
	}

	return out
}

// UpdateEdges lowers the given jump weights on the live store and repairs
// the forest. An edge whose weight is unchanged is skipped.
//
// Errors: ErrNotPrepared, and the adjacency errors of LightenEdge.
func (r *Router) UpdateEdges(edges []adjacency.Edge) (forest.RepairStats, error) {
	if !r.prepared() {
		return forest.RepairStats{}, ErrNotPrepared
	}
	keys := make([]adjacency.EdgeKey, 0, len(edges))
	for _, e := range edges {
		w, ok := r.store.Weight(e.U, e.V)
		if ok && w == e.Weight {
			continue
		}
		if err := r.store.LightenEdge(e.U, e.V, e.Weight); err != nil {
			return forest.RepairStats{}, fmt.Errorf("router: update edges: %w", err)
		}
		keys = append(keys, adjacency.EdgeKey{U: e.U, V: e.V})
	}
	stats, err := r.forest.UpdateEdges(keys)
	if err != nil {
		return stats, fmt.Errorf("router: update edges: %w", err)
	}
	r.repair.Add(stats)

	return stats, nil
}

// Diagnostics reports graph sizes and lifetime counters.
func (r *Router) Diagnostics() Diagnostics {
	d := Diagnostics{
		Stars:   r.g.StarCount(),
		Jumps:   r.g.JumpCount(),
		Routed:  r.routed,
		Dropped: r.dropped,
		Search:  r.search,
		Repair:  r.repair,
	}
	if r.landmarks != nil {
		d.Landmarks = r.landmarks.Count()
		d.Trees = r.forest.Len()
	}

	return d
}
