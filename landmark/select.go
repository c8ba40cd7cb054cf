package landmark

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/starlane/forest"
	"github.com/katalvlaran/starlane/galaxy"
)

var tracer = otel.Tracer("starlane.landmark")

// Select chooses every component's landmarks and builds the forest, one tree
// per slot.
//
// Steps:
//  1. Validate the input and group stars by component.
//  2. For j = 0 .. max budget-1, pick slot j's candidate for every component
//     whose budget exceeds j (extreme, traffic or refinement).
//  3. Seed forest tree j with the slot's landmarks.
//
// Context cancellation is checked between slots.
func Select(ctx context.Context, in Input, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, span := tracer.Start(ctx, "landmark.Select",
		trace.WithAttributes(
			attribute.Int("landmark.max_slots", cfg.MaxSlots),
			attribute.Int("landmark.query_count", len(in.Queries)),
		),
	)
	defer span.End()

	res, err := runSelect(ctx, in, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("landmark.slots", len(res.Slots)),
		attribute.Int("landmark.count", res.Count()),
	)
	cfg.Logger.Info("landmarks selected",
		slog.Int("nodes", res.Forest.NodeCount()),
		slog.Int("slots", len(res.Slots)),
		slog.Int("landmarks", res.Count()),
		slog.String("forest", res.Forest.Kind().String()),
	)

	return res, nil
}

func runSelect(ctx context.Context, in Input, cfg Options) (*Result, error) {
	// 1) Validation and grouping
	if err := validate(in); err != nil {
		return nil, err
	}
	f, err := forest.New(in.Graph, cfg.Kind,
		forest.WithEpsilon(cfg.Epsilon),
		forest.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	s := newSelector(in, cfg, f)

	// 2) & 3) Slots
	rounds := 0
	for _, c := range s.comps {
		if b := s.budget[c]; b > rounds {
			rounds = b
		}
	}
	for j := 0; j < rounds; j++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("landmark: slot %d: %w", j, err)
		}
		if j == trafficSlot {
			s.traffic = s.trafficCandidates()
		}
		slot := Slot{}
		for _, c := range s.comps {
			if j >= s.budget[c] {
				continue
			}
			v, ok := s.candidate(j, c)
			if !ok {
				s.stopped[c] = true
				continue
			}
			slot[c] = v
		}
		if len(slot) == 0 {
			continue
		}
		if err := s.commit(slot); err != nil {
			return nil, err
		}
	}

	return &Result{Slots: s.slots, Forest: s.f}, nil
}

// Extend adds one refinement slot to res for every non-singleton component,
// ignoring budgets, and grows res.Forest by one tree. Components whose
// refinement weighs nothing are skipped; an all-empty slot adds no tree and
// is returned empty.
func Extend(ctx context.Context, res *Result, in Input, opts ...Option) (Slot, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	_, span := tracer.Start(ctx, "landmark.Extend")
	defer span.End()

	fail := func(err error) (Slot, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res == nil || res.Forest == nil {
		return fail(ErrNoForest)
	}
	if err := validate(in); err != nil {
		return fail(err)
	}
	if res.Forest.NodeCount() != in.Graph.NodeCount() {
		return fail(fmt.Errorf("%w: forest has %d nodes, graph %d",
			ErrInputLength, res.Forest.NodeCount(), in.Graph.NodeCount()))
	}

	s := newSelector(in, cfg, res.Forest)
	for j, slot := range res.Slots {
		s.slots = append(s.slots, slot)
		for c, v := range slot {
			s.chosen[v] = true
			s.lastSlot[c] = j
		}
	}
	slot := Slot{}
	for _, c := range s.comps {
		if _, ok := s.lastSlot[c]; !ok {
			continue
		}
		if v, ok := s.refine(c); ok {
			slot[c] = v
		}
	}
	if len(slot) == 0 {
		return slot, nil
	}
	if err := s.commit(slot); err != nil {
		return fail(err)
	}
	res.Slots = s.slots
	span.SetAttributes(attribute.Int("landmark.added", len(slot)))
	cfg.Logger.Info("landmarks extended",
		slog.Int("slot", len(res.Slots)-1),
		slog.Int("added", len(slot)),
	)

	return slot, nil
}

func validate(in Input) error {
	if in.Graph == nil {
		return ErrNilGraph
	}
	n := in.Graph.NodeCount()
	if len(in.Components) != n || len(in.Coords) != n {
		return fmt.Errorf("%w: nodes=%d components=%d coords=%d",
			ErrInputLength, n, len(in.Components), len(in.Coords))
	}

	return nil
}

// selector holds the mutable state of one selection run.
type selector struct {
	in  Input
	cfg Options
	f   forest.Forest

	comps    []int         // component ids with a positive budget, ascending
	members  map[int][]int // component -> stars, ascending
	budget   map[int]int
	chosen   []bool
	lastSlot map[int]int // component -> newest slot holding one of its landmarks
	stopped  map[int]bool
	traffic  map[int]int
	slots    []Slot
}

func newSelector(in Input, cfg Options, f forest.Forest) *selector {
	s := &selector{
		in:       in,
		cfg:      cfg,
		f:        f,
		members:  make(map[int][]int),
		budget:   make(map[int]int),
		chosen:   make([]bool, len(in.Components)),
		lastSlot: make(map[int]int),
		stopped:  make(map[int]bool),
	}
	for v, c := range in.Components {
		if c == galaxy.NoComponent {
			continue
		}
		s.members[c] = append(s.members[c], v)
	}
	for c, m := range s.members {
		if b := Budget(len(m), cfg.MaxSlots); b > 0 {
			s.budget[c] = b
			s.comps = append(s.comps, c)
		}
	}
	sort.Ints(s.comps)

	return s
}

// candidate returns round j's landmark for component c. Once refinement has
// come up empty for c, only extreme and traffic candidates are still taken.
func (s *selector) candidate(j, c int) (int, bool) {
	switch {
	case j < extremeSlots:
		if v := s.extreme(j, c); !s.chosen[v] {
			return v, true
		}
	case j == trafficSlot:
		if v, ok := s.traffic[c]; ok && !s.chosen[v] {
			return v, true
		}
	}
	if s.stopped[c] {
		return 0, false
	}

	return s.refine(c)
}

// commit records slot and seeds a new forest tree with its landmarks.
func (s *selector) commit(slot Slot) error {
	comps := make([]int, 0, len(slot))
	for c := range slot {
		comps = append(comps, c)
	}
	sort.Ints(comps)
	seeds := make([]int, len(comps))
	for i, c := range comps {
		seeds[i] = slot[c]
	}
	if err := s.f.ExpandForest(seeds); err != nil {
		return fmt.Errorf("landmark: slot %d: %w", len(s.slots), err)
	}
	j := len(s.slots)
	for c, v := range slot {
		s.chosen[v] = true
		s.lastSlot[c] = j
	}
	s.slots = append(s.slots, slot)

	return nil
}

// extreme returns the star of c maximising (even j) or minimising (odd j)
// axis j/2 of Q, R, S. Ties go to the lowest index.
func (s *selector) extreme(j, c int) int {
	axis, maximise := j/2, j%2 == 0
	coord := func(v int) int {
		h := s.in.Coords[v]
		switch axis {
		case 0:
			return h.Q
		case 1:
			return h.R
		default:
			return h.S()
		}
	}
	m := s.members[c]
	best, bestVal := m[0], coord(m[0])
	for _, v := range m[1:] {
		x := coord(v)
		if (maximise && x > bestVal) || (!maximise && x < bestVal) {
			best, bestVal = v, x
		}
	}

	return best
}

// trafficCandidates returns, per component, the most frequent source among
// queries at or above the priority threshold whose endpoints are both
// non-landmarks. Ties go to the source encountered first.
func (s *selector) trafficCandidates() map[int]int {
	n := len(s.in.Components)
	counts := make(map[int]int)
	var order []int
	for _, q := range s.in.Queries {
		if q.Priority < s.cfg.TrafficThreshold || q.Source == q.Target {
			continue
		}
		if q.Source < 0 || q.Source >= n || q.Target < 0 || q.Target >= n {
			continue
		}
		if s.chosen[q.Source] || s.chosen[q.Target] {
			continue
		}
		if counts[q.Source] == 0 {
			order = append(order, q.Source)
		}
		counts[q.Source]++
	}
	best := make(map[int]int)
	top := make(map[int]int)
	for _, v := range order {
		c := s.in.Components[v]
		if counts[v] > top[c] {
			best[c], top[c] = v, counts[v]
		}
	}

	return best
}
