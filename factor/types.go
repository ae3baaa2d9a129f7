// SPDX-License-Identifier: MIT
// Package: vemap/factor
//
// types.go - sentinel errors and limits shared by VarSet and Factor.

package factor

import "errors"

// MaxTableSize bounds the number of entries a single Factor may hold.
// 1<<28 float64 entries is 2 GiB of table.
const MaxTableSize = 1 << 28

// Sentinel errors for factor construction and algebra.
var (
	// ErrBadStates indicates a variable with fewer than one state.
	ErrBadStates = errors.New("factor: variable must have at least one state")

	// ErrStatesMismatch indicates one label used with two different cardinalities.
	ErrStatesMismatch = errors.New("factor: conflicting cardinality for label")

	// ErrSizeMismatch indicates a value table whose length differs from the state count.
	ErrSizeMismatch = errors.New("factor: table size does not match scope")

	// ErrNotInScope indicates a label that is not part of the factor's scope.
	ErrNotInScope = errors.New("factor: variable not in scope")

	// ErrStateOutOfRange indicates a state outside [0, States).
	ErrStateOutOfRange = errors.New("factor: state out of range")

	// ErrNotNormalizable indicates a factor whose total mass is zero or not finite.
	ErrNotNormalizable = errors.New("factor: cannot normalize zero or non-finite mass")

	// ErrTooLarge indicates a table that would exceed MaxTableSize entries.
	ErrTooLarge = errors.New("factor: table too large")
)
