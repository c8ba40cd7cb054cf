// Package astar finds cheapest point-to-point routes with A*, using a single
// bulk forest lower-bound pass as the heuristic.
//
// Overview:
//
//   - h(v) for every node is filled once per query by Bounds.LowerBoundBulk
//     against the target; each expansion then reads h in O(1).
//   - OPEN is a lazy heap of (f = g+h, g, node). Best-g labels let a node be
//     reopened when a cheaper g shows up, so the search stays optimal even
//     when the heuristic is merely admissible (for example with cost floors).
//   - An incumbent ("upbound") holds the cheapest complete route seen so far.
//     Any relaxation that reaches the target tightens it and purges every
//     queued entry whose f exceeds it; later candidates above it are never
//     queued. WithUpperBound seeds it before the first expansion.
//
// Variants:
//
//   - Scalar expansion relaxes neighbours one at a time.
//   - WithBulkExpansion relaxes a popped node's whole neighbour list in one
//     pass, first dropping every edge heavier than the remaining slack
//     (upbound − g).
//   - WithCostFloors raises h(v) to MinCost(v), or IndirectMinCost(v) when v
//     is not next to the target: no route leaves v for less than that.
//
// Diagnostics:
//
//	Expanded, Queued, Revisited and Pruned counters plus the effective
//	branching factor b* solving Queued = b + b² + … + b^d, where d is the
//	number of jumps on the route found.
//
// Complexity: O((V + E) log V) worst case plus O(k·V) for the heuristic pass.
//
// Errors:
//
//   - ErrNodeRange   source or target outside the graph.
//   - ErrNoPath      OPEN drained (or everything pruned) without reaching the target.
//   - ErrBrokenPath, ErrRevisitedNode from PathCost / ValidatePath.
package astar
