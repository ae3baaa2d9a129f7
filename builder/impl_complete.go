// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// impl_complete.go - Complete(n) constructor.
//
// Contract:
//   - n >= MinVars; one factor per unordered pair (i, j), i < j, i asc then j asc.
//   - Complete(1) emits only the unary (if enabled).
//
// Complexity: O(n²) factors; any elimination order has a cluster of n.

package builder

// Complete returns a Constructor coupling every pair of n variables.
func Complete(n int) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		if err := validateMin(MethodComplete, "n", n, MinVars); err != nil {
			return err
		}
		vars, err := acc.variables(MethodComplete, n, cfg)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := acc.emit(MethodComplete, cfg, vars[i], vars[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
