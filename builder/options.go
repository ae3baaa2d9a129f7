// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math/rand"
)

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic constructors and
// potentials. Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithCardinality sets the number of states of every new variable.
// Panics if k < 1.
func WithCardinality(k int) BuilderOption {
	if k < 1 {
		panic(fmt.Sprintf("builder: WithCardinality(%d)", k))
	}
	return func(c *builderConfig) {
		c.card = k
		c.maxCard = 0
	}
}

// WithMaxCardinality draws the cardinality of every new variable uniformly
// from [2, k]. Requires an RNG at build time. Panics if k < 2.
func WithMaxCardinality(k int) BuilderOption {
	if k < 2 {
		panic(fmt.Sprintf("builder: WithMaxCardinality(%d)", k))
	}
	return func(c *builderConfig) {
		c.maxCard = k
	}
}

// WithPotentialFn overrides the table generator. Panics on nil.
func WithPotentialFn(fn PotentialFn) BuilderOption {
	if fn == nil {
		panic("builder: WithPotentialFn(nil)")
	}
	return func(c *builderConfig) {
		c.potentialFn = fn
	}
}

// WithUnaries toggles one unary factor per variable introduced by a
// constructor.
func WithUnaries(on bool) BuilderOption {
	return func(c *builderConfig) {
		c.unaries = on
	}
}

// WithLabelOffset shifts every label emitted by later constructors by k.
// Panics if k < 0.
func WithLabelOffset(k int) BuilderOption {
	if k < 0 {
		panic(fmt.Sprintf("builder: WithLabelOffset(%d)", k))
	}
	return func(c *builderConfig) {
		c.offset = k
	}
}
