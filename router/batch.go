package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/astar"
	"github.com/katalvlaran/starlane/forest"
	"github.com/katalvlaran/starlane/galaxy"
)

const (
	phaseImmediate   = "immediate"
	phaseIntraRegion = "intra_region"
	phaseLongRange   = "long_range"
)

// plan is a priority-sorted batch split into its three phases.
type plan struct {
	immediate []galaxy.Query
	regional  [][]galaxy.Query // one queue per worker
	longRange []galaxy.Query
}

// outcome is a worker's answer to one query; res is nil for a dropped query.
type outcome struct {
	q   galaxy.Query
	res *astar.Result
}

// RouteAll routes every query, reinforcing the jumps of each route found.
//
// The returned report is non-nil whenever the batch started, including on
// failure, and then holds whatever was applied before the failure.
//
// Errors: ErrNotPrepared, galaxy.ErrStarNotFound for a bad query, and
// ErrBatchFailed wrapping the first worker failure, timeout or apply error.
func (r *Router) RouteAll(ctx context.Context, queries []galaxy.Query) (*BatchReport, error) {
	if !r.prepared() {
		return nil, ErrNotPrepared
	}
	for _, q := range queries {
		if err := r.checkQuery(q); err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	start := time.Now()
	ctx, span := tracer.Start(ctx, "router.RouteAll",
		trace.WithAttributes(
			attribute.String("batch.id", id),
			attribute.Int("queries", len(queries)),
			attribute.Int("workers", r.cfg.Workers),
		),
	)
	defer span.End()
	if r.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.BatchTimeout)
		defer cancel()
	}
	logger := r.logger.With(slog.String("batch", id))

	p := r.partition(queries)
	rep := &BatchReport{ID: id, Immediate: len(p.immediate), LongRange: len(p.longRange)}
	for _, qs := range p.regional {
		rep.IntraRegion += len(qs)
	}
	logger.InfoContext(ctx, "batch started",
		slog.Int("immediate", rep.Immediate),
		slog.Int("intra_region", rep.IntraRegion),
		slog.Int("long_range", rep.LongRange),
	)

	err := r.runImmediate(ctx, rep, p.immediate)
	if err == nil && rep.IntraRegion > 0 {
		err = r.runPhase(ctx, rep, phaseIntraRegion, p.regional, false)
	}
	if err == nil && rep.LongRange > 0 {
		err = r.runPhase(ctx, rep, phaseLongRange, [][]galaxy.Query{p.longRange}, true)
	}

	rep.Duration = time.Since(start)
	recordBatch(ctx, rep.Duration, err == nil)
	span.SetAttributes(
		attribute.Int("found", rep.Found()),
		attribute.Int("dropped", rep.Dropped),
	)
	if err != nil {
		err = fmt.Errorf("%w: batch %s: %w", ErrBatchFailed, id, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "batch failed", slog.String("error", err.Error()))
		return rep, err
	}
	logger.InfoContext(ctx, "batch done",
		slog.Int("found", rep.Found()),
		slog.Int("dropped", rep.Dropped),
		slog.Int("edges_lightened", rep.EdgesLightened),
		slog.Int("nodes_relabeled", rep.Repair.NodesRelabeled),
		slog.Duration("duration", rep.Duration),
	)

	return rep, nil
}

// partition sorts by descending priority (stable) and splits the batch.
// Regions are dealt to workers round-robin in order of first appearance.
func (r *Router) partition(queries []galaxy.Query) plan {
	sorted := make([]galaxy.Query, len(queries))
	copy(sorted, queries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority > sorted[j].Priority })

	k := r.cfg.ImmediateBatch
	if k > len(sorted) {
		k = len(sorted)
	}
	p := plan{immediate: sorted[:k], regional: make([][]galaxy.Query, r.cfg.Workers)}

	owner := make(map[string]int)
	stars := r.g.Stars()
	for _, q := range sorted[k:] {
		region := stars[q.Source].Region
		if region != stars[q.Target].Region {
			p.longRange = append(p.longRange, q)
			continue
		}
		w, ok := owner[region]
		if !ok {
			w = len(owner) % r.cfg.Workers
			owner[region] = w
		}
		p.regional[w] = append(p.regional[w], q)
	}

	return p
}

// runImmediate solves queries one by one on the live store.
func (r *Router) runImmediate(ctx context.Context, rep *BatchReport, queries []galaxy.Query) error {
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := r.find(r.searcher, r.forest, q)
		if errors.Is(err, ErrNoPath) {
			r.drop(ctx, rep, phaseImmediate)
			continue
		}
		if err != nil {
			return err
		}
		if err := r.apply(ctx, rep, q, res); err != nil {
			return err
		}
	}

	return nil
}

// runPhase starts Workers goroutines over queues and applies their results
// in arrival order. With shared set every worker drains queues[0]; otherwise
// worker i owns queues[i].
func (r *Router) runPhase(ctx context.Context, rep *BatchReport, phase string, queues [][]galaxy.Query, shared bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var left atomic.Int64
	inputs := make([]chan galaxy.Query, len(queues))
	for i, qs := range queues {
		inputs[i] = make(chan galaxy.Query, r.cfg.Workers)
		left.Add(int64(len(qs)))
	}

	// views are taken before any goroutine starts, so they share one state
	views := make([]*adjacency.Store, r.cfg.Workers)
	forests := make([]forest.Forest, r.cfg.Workers)
	for w := range views {
		views[w] = r.store.Snapshot()
		f, err := r.forest.Clone(views[w])
		if err != nil {
			return fmt.Errorf("router: %s: clone forest: %w", phase, err)
		}
		forests[w] = f
	}

	eg, gctx := errgroup.WithContext(ctx)
	out := make(chan outcome, r.cfg.Workers)

	for i, qs := range queues {
		in, qs := inputs[i], qs
		eg.Go(func() error {
			defer close(in)
			for _, q := range qs {
				select {
				case in <- q:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	for w := 0; w < r.cfg.Workers; w++ {
		in := inputs[0]
		if !shared {
			in = inputs[w]
		}
		w, view, f := w, views[w], forests[w]
		eg.Go(func() error {
			return r.work(gctx, phase, w, in, view, f, &left, out)
		})
	}

	errc := make(chan error, 1)
	go func() {
		errc <- eg.Wait()
		close(out)
	}()

	var applyErr error
	for o := range out {
		if applyErr != nil {
			continue
		}
		if o.res == nil {
			r.drop(ctx, rep, phase)
			continue
		}
		if err := r.apply(ctx, rep, o.q, o.res); err != nil {
			applyErr = err
			cancel()
		}
	}
	werr := <-errc
	if applyErr != nil {
		return applyErr
	}
	if werr != nil {
		return werr
	}
	r.logger.DebugContext(ctx, "phase done", slog.String("phase", phase), slog.Int("workers", r.cfg.Workers))

	return nil
}

// work is one worker loop. It waits at most PollInterval per receive; a
// timeout ends the worker only once every submitted query has been taken.
func (r *Router) work(
	ctx context.Context,
	phase string,
	id int,
	in <-chan galaxy.Query,
	view *adjacency.Store,
	f forest.Forest,
	left *atomic.Int64,
	out chan<- outcome,
) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s worker %d: %v", ErrWorkerFailed, phase, id, p)
		}
	}()

	s := astar.NewSearcher(view, f)
	poll := time.NewTimer(r.cfg.PollInterval)
	defer poll.Stop()
	for {
		poll.Reset(r.cfg.PollInterval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case q, ok := <-in:
			if !ok {
				return nil
			}
			left.Add(-1)
			res, ferr := r.find(s, f, q)
			if ferr != nil && !errors.Is(ferr, ErrNoPath) {
				return fmt.Errorf("%w: %s worker %d: %w", ErrWorkerFailed, phase, id, ferr)
			}
			select {
			case out <- outcome{q: q, res: res}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-poll.C:
			if left.Load() == 0 {
				return nil
			}
		}
	}
}

// apply is the single write path: re-cost, reinforce, credit trade, repair.
func (r *Router) apply(ctx context.Context, rep *BatchReport, q galaxy.Query, res *astar.Result) error {
	cost, err := r.check(ctx, res.Path)
	if err != nil {
		return err
	}

	keys := make([]adjacency.EdgeKey, 0, len(res.Path))
	for i := 1; i < len(res.Path); i++ {
		u, v := res.Path[i-1], res.Path[i]
		j, err := r.g.Jump(u, v)
		if err != nil {
			return fmt.Errorf("router: apply: %w", err)
		}
		w, _ := r.store.Weight(u, v)
		if nw := w - (w-j.Distance)/r.cfg.RouteReuse; nw < w {
			if err := r.store.LightenEdge(u, v, nw); err != nil {
				return fmt.Errorf("router: apply: %w", err)
			}
			keys = append(keys, adjacency.EdgeKey{U: u, V: v})
		}
		if err := r.g.RecordUsage(u, v, q.Trade); err != nil {
			return fmt.Errorf("router: apply: %w", err)
		}
	}
	stats, err := r.forest.UpdateEdges(keys)
	if err != nil {
		return fmt.Errorf("router: apply: %w", err)
	}

	rep.Routes = append(rep.Routes, Route{
		Source:      q.Source,
		Target:      q.Target,
		Path:        res.Path,
		Cost:        cost,
		Diagnostics: res.Diagnostics,
	})
	rep.EdgesLightened += len(keys)
	rep.Repair.Add(stats)
	rep.Search.Add(res.Diagnostics)
	r.routed++
	r.repair.Add(stats)
	r.search.Add(res.Diagnostics)
	recordApply(ctx, len(keys), stats.NodesRelabeled)

	return nil
}

func (r *Router) drop(ctx context.Context, rep *BatchReport, phase string) {
	rep.Dropped++
	r.dropped++
	recordDrop(ctx, phase)
}
