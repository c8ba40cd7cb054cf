// Package galaxy is the hand-off shape between whatever builds a star map
// (sector-file parsers, generators, tests) and the routing core.
//
// A galaxy.Graph holds stars and the jumps between them:
//
//   - Star carries the per-node payload the routing core reads but never
//     owns: a display name, the region (sector) it belongs to, its axial hex
//     coordinate, a priority value and, after CalculateComponents, the id of
//     its connected component.
//   - Jump is an undirected edge with a base Distance (parsecs), the current
//     routing Weight and mutable usage annotations (Trade, Count) that the
//     route orchestrator updates while it reinforces busy lanes.
//
// Stars are addressed by dense integer indices in insertion order; that index
// is the node id used by every other package in this module.
//
// Components:
//
//	CalculateComponents labels every star with a component id by breadth-first
//	search over jumps. It is a precondition for landmark selection: bounds and
//	landmarks are scoped per component, singleton components get none.
//
// Complexity:
//
//   - AddStar O(1), AddJump O(1) amortised, Jump lookup O(1).
//   - CalculateComponents O(V + E) time, O(V) extra space.
//
// Concurrency:
//
//	A Graph is not safe for concurrent mutation. The route orchestrator is its
//	only writer; workers never see it.
package galaxy
