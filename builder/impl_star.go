// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// impl_star.go - Star(n) constructor.
//
// Contract:
//   - n >= MinStarVars; local index 0 is the center, 1..n-1 the leaves.
//   - Factors (0, i) for i asc.
//
// Complexity: O(n) factors.

package builder

// Star returns a Constructor coupling one center variable with n-1 leaves.
func Star(n int) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		if err := validateMin(MethodStar, "n", n, MinStarVars); err != nil {
			return err
		}
		vars, err := acc.variables(MethodStar, n, cfg)
		if err != nil {
			return err
		}
		for _, leaf := range vars[1:] {
			if err := acc.emit(MethodStar, cfg, vars[0], leaf); err != nil {
				return err
			}
		}

		return nil
	}
}
