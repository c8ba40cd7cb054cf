// Package forest maintains the approximate shortest-path forest: one
// solver.Tree per landmark slot, each seeded with that slot's landmarks.
//
// Bounds:
//
//   - LowerBound(u, v) = max over trees T of |d_T(u) − d_T(v)|. Trees in
//     which either label is +Inf are skipped. Always 0 when u == v.
//   - UpperBound(u, v) = (1+ε) · min over trees T of (d_T(u) + d_T(v)), or
//     Unbounded when no tree reaches both nodes.
//
// Labels are scaled by 1/(1+ε) (see package solver), so both bounds bracket
// the true distance d(u,v): LowerBound ≤ d ≤ UpperBound.
//
// Repair:
//
//	After edge weights drop, UpdateEdges marks an edge dirty in tree T when
//	|d_T(u) − d_T(v)| exceeds the edge's new weight, which is exactly the
//	point at which T would stop being a valid lower-bound potential. Both
//	endpoints of every dirty edge form T's frontier and solver.Implicit
//	repairs T from there. Trees without a dirty edge are left alone: their
//	labels still bound every distance from both sides.
//
// Implementations:
//
//   - KindTrees keeps one label vector per tree (tree-major).
//   - KindPacked additionally mirrors all labels in one node-major matrix so
//     the bulk bounds for a target read each node's labels contiguously.
//
// Both satisfy Forest and produce identical bounds for identical inputs.
//
// Complexity (k trees, n nodes):
//
//   - LowerBound, UpperBound: O(k).
//   - LowerBoundBulk, UpperBoundBulk: O(k·n).
//   - ExpandForest: one solver.Explicit run, plus O(k·n) repacking for KindPacked.
//   - UpdateEdges: O(k·|edges| log Δ) to detect dirty edges, plus one
//     solver.Implicit run per dirty tree.
package forest
