// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// impl_random_sparse.go - RandomSparse(n, p) constructor.
//
// Canonical model: Erdős–Rényi-like; each unordered pair {i, j} (i < j)
// receives a pairwise factor independently with probability p.
//
// Contract:
//   - n >= MinVars (else ErrTooFewVariables).
//   - 0 <= p <= 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil when 0 < p < 1 (else ErrNeedRandSource).
//   - Trials run in stable order: i asc, j asc.
//
// Complexity: O(n²) Bernoulli trials.

package builder

// RandomSparse returns a Constructor that samples pairwise couplings over n
// variables with independent probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		if err := validateMin(MethodRandomSparse, "n", n, MinVars); err != nil {
			return err
		}
		if err := validateProbability(MethodRandomSparse, p); err != nil {
			return err
		}
		stochastic := p > MinProbability && p < MaxProbability
		if stochastic {
			if err := requireRand(MethodRandomSparse, cfg); err != nil {
				return err
			}
		}

		vars, err := acc.variables(MethodRandomSparse, n, cfg)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				keep := p == MaxProbability
				if stochastic {
					keep = cfg.rng.Float64() < p
				}
				if !keep {
					continue
				}
				if err := acc.emit(MethodRandomSparse, cfg, vars[i], vars[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
