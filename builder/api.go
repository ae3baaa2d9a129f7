// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(bopts, cons...). Resolves cfg once, runs
//     cons in order, then assembles the factor graph.
//   - Determinism: same options, seed and constructor order give identical
//     graphs.
//   - Safety: constructors never panic; they return sentinel errors.

package builder

import (
	"fmt"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
)

// Constructor adds variables and factors to the graph under construction
// using the resolved builderConfig. Constructors validate their parameters
// before emitting anything.
type Constructor func(acc *accumulator, cfg builderConfig) error

// BuildGraph resolves the builder configuration from bopts and applies all
// constructors in order. Any constructor error is wrapped with the context
// "BuildGraph: %w" and returned immediately.
//
// Errors:
//   - ErrConstructFailed for a nil constructor or when no factor was emitted.
//   - Constructor sentinels (ErrTooFewVariables, ErrInvalidProbability, ...).
//
// Complexity: Σ cost of each constructor + O(F·k) graph assembly.
func BuildGraph(bopts []BuilderOption, cons ...Constructor) (*factorgraph.Graph, error) {
	cfg := newBuilderConfig(bopts...)
	acc := newAccumulator()

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(acc, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}
	if len(acc.factors) == 0 {
		return nil, fmt.Errorf("BuildGraph: no factors emitted: %w", ErrConstructFailed)
	}

	g, err := factorgraph.New(acc.factors...)
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w: %w", ErrConstructFailed, err)
	}

	return g, nil
}

// Offset runs c with every label shifted by k more, so constructors can be
// placed side by side or overlap deliberately.
func Offset(k int, c Constructor) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		if c == nil {
			return fmt.Errorf("Offset: nil constructor: %w", ErrConstructFailed)
		}
		cfg.offset += k

		return c(acc, cfg)
	}
}

// accumulator collects variables and factors in emission order.
type accumulator struct {
	vars    map[int]factor.Var
	factors []factor.Factor
}

func newAccumulator() *accumulator {
	return &accumulator{vars: make(map[int]factor.Var)}
}

// variable returns the variable at local index i, creating it (and its unary
// factor, when enabled) on first use.
func (acc *accumulator) variable(method string, i int, cfg builderConfig) (factor.Var, error) {
	label := cfg.offset + i
	if v, ok := acc.vars[label]; ok {
		return v, nil
	}

	states := cfg.card
	if cfg.maxCard > 0 {
		if cfg.rng == nil {
			return factor.Var{}, fmt.Errorf("%s: random cardinality: %w", method, ErrNeedRandSource)
		}
		states = 2 + cfg.rng.Intn(cfg.maxCard-1)
	}
	v := factor.Var{Label: label, States: states}
	acc.vars[label] = v

	if cfg.unaries {
		if err := acc.emit(method, cfg, v); err != nil {
			return factor.Var{}, err
		}
	}

	return v, nil
}

// variables creates (or reuses) local indices 0..n-1 in ascending order.
func (acc *accumulator) variables(method string, n int, cfg builderConfig) ([]factor.Var, error) {
	out := make([]factor.Var, n)
	for i := range out {
		v, err := acc.variable(method, i, cfg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// emit appends one factor over vars with a table from cfg.potentialFn.
func (acc *accumulator) emit(method string, cfg builderConfig, vars ...factor.Var) error {
	vs, err := factor.NewVarSet(vars...)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", method, ErrConstructFailed, err)
	}
	p, err := cfg.potentialFn(vs, cfg.rng)
	if err != nil {
		return fmt.Errorf("%s: potential over %s: %w", method, vs, err)
	}
	f, err := factor.NewWithValues(vs, p)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", method, ErrConstructFailed, err)
	}
	acc.factors = append(acc.factors, f)

	return nil
}
