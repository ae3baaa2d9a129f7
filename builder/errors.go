// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; branch with errors.Is.
//   - Constructors attach context with %w, never by redefining sentinels.
//   - Option constructors panic on meaningless values; constructors do not.

package builder

import "errors"

// ErrTooFewVariables indicates that a size parameter (n, rows, cols, arity)
// is smaller than the constructor allows.
var ErrTooFewVariables = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor or potential
// needs an RNG (WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that no graph could be assembled, e.g. a nil
// constructor, an empty result, or a cardinality clash between constructors.
var ErrConstructFailed = errors.New("builder: construction failed")

// Priority when several validations fail:
//   - ErrTooFewVariables first (n, rows, cols, arity).
//   - then ErrInvalidProbability.
//   - then ErrNeedRandSource.
//   - ErrConstructFailed only for whole-graph failures.
