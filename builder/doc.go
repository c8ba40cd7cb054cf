// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// Package builder provides deterministic galaxy fixtures for tests,
// benchmarks, examples and the CLI.
//
// Overview:
//
//   - BuildGalaxy(bopts, cons...) creates an empty *galaxy.Graph, resolves the
//     builder configuration from functional options and applies every
//     Constructor in order.
//   - Constructors append stars after whatever the graph already holds, so they
//     compose: Clusters followed by Path yields one galaxy with both.
//   - ToStore converts a finished galaxy into the adjacency store every routing
//     algorithm consumes.
//
// Constructors:
//
//   - Path(n, distance)               a chain of n stars along the Q axis.
//   - HexGrid(rows, cols)             an axial hex patch with six-way jumps.
//   - RandomSector(n, radius, reach)  n random stars inside a hex disc, jumps between
//     every pair within reach parsecs.
//   - Clusters(k, size, bridge)       k dense clusters, optionally chained by one bridge jump.
//
// Determinism:
//
//	Same options, same seed and same constructor order produce identical
//	galaxies. Stochastic constructors require WithSeed or WithRand and fail
//	with ErrNeedRandSource otherwise.
//
// Errors:
//
//   - ErrTooFewStars       size parameters below the constructor minimum.
//   - ErrBadParameter      non-positive distances or radii.
//   - ErrNeedRandSource    stochastic constructor without an RNG.
//   - ErrConstructFailed   nil constructor or a galaxy insertion failure.
package builder
