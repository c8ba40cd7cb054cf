// Package starlane is an approximate shortest-path engine for star maps that
// have to answer very large batches of route queries against one graph.
//
// What it does:
//
//	A forest of landmark shortest-path trees gives every pair of stars a
//	lower and an upper distance bound. A* uses the lower bound as its
//	heuristic and the upper bound as its first incumbent. Every route found
//	lightens the jumps it used, and the forest is repaired selectively
//	around the changed jumps instead of being rebuilt.
//
// Packages:
//
//	galaxy/     stars, jumps, hex coordinates and components
//	adjacency/  CSR weighted adjacency with min-cost caches and snapshots
//	solver/     label-correcting shortest paths with an approximation divisor
//	forest/     landmark trees with lower/upper bounds and selective repair
//	landmark/   per-component landmark selection
//	astar/      point-to-point search with incumbent pruning
//	router/     batch orchestration over a worker pool
//	builder/    deterministic galaxy fixtures
//
// Under the hood, only router runs goroutines. Everything else is
// single-threaded and allocation-conscious.
package starlane
