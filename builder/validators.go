// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// validators.go - parameter checks shared by the constructors.

package builder

import "fmt"

// validateMin ensures got >= min, reporting ErrTooFewVariables otherwise.
func validateMin(method, what string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: %s=%d < min=%d: %w", method, what, got, min, ErrTooFewVariables)
	}

	return nil
}

// validateProbability enforces p in [MinProbability, MaxProbability].
func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
			method, p, MinProbability, MaxProbability, ErrInvalidProbability)
	}

	return nil
}

// requireRand reports ErrNeedRandSource when cfg has no RNG.
func requireRand(method string, cfg builderConfig) error {
	if cfg.rng == nil {
		return fmt.Errorf("%s: rng is required: %w", method, ErrNeedRandSource)
	}

	return nil
}
