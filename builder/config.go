// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng         = nil                 (constructors needing one fail)
//   - card        = DefaultCardinality  (binary variables)
//   - maxCard     = 0                   (fixed cardinality)
//   - potentialFn = RandomPotential(DefaultMinPotential, DefaultMaxPotential)
//   - unaries     = true
//   - offset      = 0

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand

	// Fixed cardinality of new variables.
	card int
	// If > 0, new variables draw their cardinality from [2, maxCard].
	maxCard int

	// Table generator for every emitted factor.
	potentialFn PotentialFn
	// Emit a unary factor for every variable a constructor introduces.
	unaries bool

	// Added to every label a constructor emits.
	offset int
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		card:        DefaultCardinality,
		potentialFn: RandomPotential(DefaultMinPotential, DefaultMaxPotential),
		unaries:     true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
