// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// impl_random_factors.go - RandomFactors(n, m, arity) constructor.
//
// Canonical model: m factors, each over arity distinct variables drawn
// uniformly without replacement from n.
//
// Contract:
//   - n >= MinVars, arity >= MinArity and arity <= n (else ErrTooFewVariables).
//   - m >= 0.
//   - cfg.rng is required.
//
// Complexity: O(m·n) for the partial permutations.

package builder

import "github.com/aschroede/vemap/factor"

// RandomFactors returns a Constructor emitting m factors over random scopes
// of exactly arity variables.
func RandomFactors(n, m, arity int) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		if err := validateMin(MethodRandomFactors, "n", n, MinVars); err != nil {
			return err
		}
		if err := validateMin(MethodRandomFactors, "arity", arity, MinArity); err != nil {
			return err
		}
		if err := validateMin(MethodRandomFactors, "n", n, arity); err != nil {
			return err
		}
		if err := validateMin(MethodRandomFactors, "m", m, 0); err != nil {
			return err
		}
		if err := requireRand(MethodRandomFactors, cfg); err != nil {
			return err
		}

		vars, err := acc.variables(MethodRandomFactors, n, cfg)
		if err != nil {
			return err
		}
		scope := make([]factor.Var, arity)
		for k := 0; k < m; k++ {
			for i, j := range cfg.rng.Perm(n)[:arity] {
				scope[i] = vars[j]
			}
			if err := acc.emit(MethodRandomFactors, cfg, scope...); err != nil {
				return err
			}
		}

		return nil
	}
}
