// Package adjacency provides the weighted adjacency store used by every
// routing algorithm in starlane.
//
// Overview:
//
//   - Topology is immutable after New: a compressed sparse row layout with one
//     neighbour list per node, sorted by neighbour index, stored for both
//     directions of every undirected edge.
//   - Weights are mutable, but only downwards: LightenEdge reduces (u,v) and
//     (v,u) together and never accepts an increase.
//   - Each node caches its minimum outgoing weight (MinCost) and the cheapest
//     two-edge walk leaving it (IndirectMinCost); both are refreshed locally on
//     every LightenEdge.
//
// Ownership:
//
//	The route orchestrator owns the single writable *Store. Workers receive a
//	Snapshot: a read-only copy of the weights that shares the immutable
//	topology arrays. LightenEdge on a snapshot returns ErrReadOnly.
//
// Complexity:
//
//   - Neighbors, MinCost, IndirectMinCost: O(1).
//   - Weight, HasEdge: O(log deg(u)).
//   - LightenEdge: O(log deg + deg(u)·deg + deg(v)·deg) for the indirect refresh.
//   - Snapshot: O(E) copy of weights.
//
// Errors (sentinel):
//
//   - ErrNodeRange, ErrSelfLoop, ErrDuplicateEdge, ErrBadWeight from New.
//   - ErrEdgeNotFound, ErrWeightIncrease, ErrBadWeight, ErrReadOnly from LightenEdge.
package adjacency
