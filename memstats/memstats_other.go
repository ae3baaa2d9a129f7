// SPDX-License-Identifier: MIT
// Package: vemap/memstats

//go:build !linux

package memstats

// Read is not available off Linux.
func Read() (Snapshot, error) {
	return Snapshot{}, ErrUnsupported
}
