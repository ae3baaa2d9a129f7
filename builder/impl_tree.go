// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// impl_tree.go - Tree(n) constructor.
//
// Canonical model: random recursive tree. Variable i >= 1 attaches to a
// parent drawn uniformly from 0..i-1.
//
// Contract:
//   - n >= MinVars.
//   - cfg.rng is required for n > 2 (smaller trees have one shape).
//   - Factors (parent(i), i) for i asc.
//
// Complexity: O(n) factors; treewidth 1.

package builder

// Tree returns a Constructor that builds a random spanning tree over n
// variables.
func Tree(n int) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		if err := validateMin(MethodTree, "n", n, MinVars); err != nil {
			return err
		}
		if n > 2 {
			if err := requireRand(MethodTree, cfg); err != nil {
				return err
			}
		}
		vars, err := acc.variables(MethodTree, n, cfg)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			parent := 0
			if i > 1 {
				parent = cfg.rng.Intn(i)
			}
			if err := acc.emit(MethodTree, cfg, vars[parent], vars[i]); err != nil {
				return err
			}
		}

		return nil
	}
}
