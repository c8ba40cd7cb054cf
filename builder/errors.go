// SPDX-License-Identifier: MIT
// Package: starlane/builder
//
// errors.go - sentinel errors for the builder package.
//
// Callers branch with errors.Is; constructors attach context with %w.

package builder

import "errors"

// ErrTooFewStars indicates a size parameter (n, rows, cols, k) below the
// constructor minimum.
var ErrTooFewStars = errors.New("builder: parameter too small")

// ErrBadParameter indicates a non-positive or non-finite distance, radius or reach.
var ErrBadParameter = errors.New("builder: invalid parameter")

// ErrNeedRandSource indicates that a stochastic constructor ran without an RNG
// (WithSeed or WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or a failed galaxy insertion.
var ErrConstructFailed = errors.New("builder: construction failed")
