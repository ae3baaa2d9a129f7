// Package builder generates synthetic factor graphs for tests, benchmarks and
// the `vemap generate` command.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildGraph(bopts, cons...): resolves options once, runs constructors in
//     order and returns a *factorgraph.Graph.
//     – Constructor: a closure adding variables and factors to the graph under
//     construction.
//   - Topologies (pairwise unless noted):
//     – Chain, Cycle, Star, Grid, Complete, Tree.
//     – RandomSparse: every pair independently with probability p.
//     – RandomFactors: m factors over random scopes of a fixed arity.
//   - Configuration primitives (BuilderOption):
//     – WithSeed, WithRand:       RNG for stochastic constructors and potentials.
//     – WithCardinality:          states per variable (default 2).
//     – WithMaxCardinality:       random cardinality in [2, k].
//     – WithPotentialFn:          table generator (default RandomPotential).
//     – WithUnaries:              one unary factor per new variable (default on).
//     – WithLabelOffset:          shifts labels so constructors can be composed.
//   - Potential generators (PotentialFn):
//     – UniformPotential, ConstantPotential, RandomPotential, AttractivePotential.
//
// Guarantees:
//
//   - Determinism: the same options, seed and constructor order yield the same
//     graph, table for table.
//   - Fast-fail on meaningless option values via panics in option constructors.
//   - Constructors return sentinel errors (ErrTooFewVariables,
//     ErrInvalidProbability, ErrNeedRandSource, ErrConstructFailed); they never
//     panic at runtime.
//
// Constructors sharing labels extend the same variables: BuildGraph(nil,
// Chain(5), RandomSparse(5, 0.3)) yields a chain with extra random couplings.
package builder
