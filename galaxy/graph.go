package galaxy

import (
	"fmt"
	"math"
)

// Graph is a star map: stars indexed densely in insertion order plus the
// undirected jumps between them.
type Graph struct {
	stars []Star
	jumps []Jump

	// index maps a normalised pair to its position in jumps.
	index map[pairKey]int

	// adjacent[u] lists jump positions incident to u.
	adjacent [][]int

	componentsValid bool
}

// NewGraph returns an empty star map.
func NewGraph() *Graph {
	return &Graph{index: make(map[pairKey]int)}
}

// AddStar appends s and returns its index. The Component field is reset to
// NoComponent and components must be recalculated.
func (g *Graph) AddStar(s Star) int {
	s.Component = NoComponent
	g.stars = append(g.stars, s)
	g.adjacent = append(g.adjacent, nil)
	g.componentsValid = false

	return len(g.stars) - 1
}

// AddJump connects u and v.
//
// Errors: ErrStarNotFound, ErrSelfJump, ErrDuplicateJump, ErrBadWeight.
func (g *Graph) AddJump(u, v int, distance, weight float64) error {
	if !g.has(u) || !g.has(v) {
		return fmt.Errorf("%w: jump %d-%d", ErrStarNotFound, u, v)
	}
	if u == v {
		return fmt.Errorf("%w: star %d", ErrSelfJump, u)
	}
	if !validWeight(distance) || !validWeight(weight) {
		return fmt.Errorf("%w: jump %d-%d distance=%g weight=%g", ErrBadWeight, u, v, distance, weight)
	}
	key := makeKey(u, v)
	if _, ok := g.index[key]; ok {
		return fmt.Errorf("%w: %d-%d", ErrDuplicateJump, u, v)
	}

	g.index[key] = len(g.jumps)
	g.adjacent[u] = append(g.adjacent[u], len(g.jumps))
	g.adjacent[v] = append(g.adjacent[v], len(g.jumps))
	g.jumps = append(g.jumps, Jump{U: key.a, V: key.b, Distance: distance, Weight: weight})
	g.componentsValid = false

	return nil
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

func (g *Graph) has(i int) bool { return i >= 0 && i < len(g.stars) }

// StarCount returns the number of stars.
func (g *Graph) StarCount() int { return len(g.stars) }

// JumpCount returns the number of jumps.
func (g *Graph) JumpCount() int { return len(g.jumps) }

// Star returns a copy of star i.
func (g *Graph) Star(i int) (Star, error) {
	if !g.has(i) {
		return Star{}, fmt.Errorf("%w: %d", ErrStarNotFound, i)
	}

	return g.stars[i], nil
}

// Stars returns a copy of all stars in index order.
func (g *Graph) Stars() []Star {
	out := make([]Star, len(g.stars))
	copy(out, g.stars)

	return out
}

// Jumps returns a copy of all jumps in insertion order.
func (g *Graph) Jumps() []Jump {
	out := make([]Jump, len(g.jumps))
	copy(out, g.jumps)

	return out
}

// Jump returns the jump between u and v in either orientation.
func (g *Graph) Jump(u, v int) (Jump, error) {
	pos, ok := g.index[makeKey(u, v)]
	if !ok {
		return Jump{}, fmt.Errorf("%w: %d-%d", ErrJumpNotFound, u, v)
	}

	return g.jumps[pos], nil
}

// Hexes returns every star's coordinate in index order.
func (g *Graph) Hexes() []Hex {
	out := make([]Hex, len(g.stars))
	for i := range g.stars {
		out[i] = g.stars[i].Hex
	}

	return out
}

// RecordUsage adds one route of the given trade value to the jump u-v.
func (g *Graph) RecordUsage(u, v int, trade float64) error {
	pos, ok := g.index[makeKey(u, v)]
	if !ok {
		return fmt.Errorf("%w: %d-%d", ErrJumpNotFound, u, v)
	}
	g.jumps[pos].Trade += trade
	g.jumps[pos].Count++

	return nil
}
