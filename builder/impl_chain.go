// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// impl_chain.go - Chain(n) and Cycle(n) constructors.
//
// Contract:
//   - Chain: n >= MinChainVars; factors (i, i+1) for i asc.
//   - Cycle: n >= MinCycleVars; the chain plus the closing factor (n-1, 0).
//   - Variables 0..n-1 are introduced in ascending order before any pair.
//
// Complexity: O(n) factors.

package builder

// Chain returns a Constructor that links n variables in a line.
func Chain(n int) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		return ring(acc, cfg, MethodChain, n, MinChainVars, false)
	}
}

// Cycle returns a Constructor that links n variables in a ring.
func Cycle(n int) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		return ring(acc, cfg, MethodCycle, n, MinCycleVars, true)
	}
}

func ring(acc *accumulator, cfg builderConfig, method string, n, min int, closed bool) error {
	if err := validateMin(method, "n", n, min); err != nil {
		return err
	}
	vars, err := acc.variables(method, n, cfg)
	if err != nil {
		return err
	}
	for i := 0; i+1 < n; i++ {
		if err := acc.emit(method, cfg, vars[i], vars[i+1]); err != nil {
			return err
		}
	}
	if closed {
		return acc.emit(method, cfg, vars[n-1], vars[0])
	}

	return nil
}
