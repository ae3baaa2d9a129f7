// SPDX-License-Identifier: MIT
// Package: vemap/factorgraph

package factorgraph

import "errors"

// Sentinel errors for graph construction, evidence and file I/O.
var (
	// ErrUnknownVariable indicates a label that no factor of the graph mentions.
	ErrUnknownVariable = errors.New("factorgraph: unknown variable")

	// ErrSyntax indicates a malformed .fg input.
	ErrSyntax = errors.New("factorgraph: syntax error")

	// ErrNilFactor indicates an empty (zero-value) factor passed to New.
	ErrNilFactor = errors.New("factorgraph: empty factor")
)
