// SPDX-License-Identifier: MIT
// Package: vemap/elimination
//
// simulate.go - scope-only dry run of an elimination order.

package elimination

import (
	"fmt"
	"math/big"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
)

// Cost is the resource footprint of an elimination order.
type Cost struct {
	// Treewidth is the largest number of variables in any formed cluster.
	Treewidth int
	// MaxStates is the largest joint state count of any formed cluster.
	MaxStates *big.Int
}

// scopeArena is the working collection of the simulator: append-only slots
// with tombstones.
type scopeArena struct {
	sets []factor.VarSet
	dead []bool
}

func (a *scopeArena) add(vs factor.VarSet) {
	a.sets = append(a.sets, vs)
	a.dead = append(a.dead, false)
}

// take tombstones every live slot containing label and returns the union of
// their scopes; ok is false when no live slot mentions label.
func (a *scopeArena) take(label int) (factor.VarSet, bool) {
	var u factor.VarSet
	ok := false
	for i, vs := range a.sets {
		if a.dead[i] || !vs.Contains(label) {
			continue
		}
		u = u.Union(vs)
		a.dead[i] = true
		ok = true
	}

	return u, ok
}

// rest returns the union of all live slots and whether any slot was live.
func (a *scopeArena) rest() (factor.VarSet, bool) {
	var u factor.VarSet
	ok := false
	for i, vs := range a.sets {
		if !a.dead[i] {
			u = u.Union(vs)
			ok = true
		}
	}

	return u, ok
}

// Simulate replays order on the factor scopes of fg without touching any
// table and reports the largest cluster it forms, including the final
// product of whatever survives the order.
//
// Steps per label:
//  1. Gather every live scope containing it; if none, skip the label.
//  2. Union them and record size and state count against the running maxima.
//  3. Tombstone the gathered scopes and append the union minus the label.
//
// Complexity: O(|order| · F · k) for F factors with scopes of size ≤ k.
func Simulate(fg *factorgraph.Graph, order []int) (Cost, error) {
	if err := checkOrder(fg, order); err != nil {
		return Cost{}, err
	}

	arena := &scopeArena{}
	for _, f := range fg.Factors() {
		arena.add(f.Vars())
	}

	cost := Cost{MaxStates: big.NewInt(0)}
	record := func(vs factor.VarSet) {
		if vs.Len() > cost.Treewidth {
			cost.Treewidth = vs.Len()
		}
		if n := vs.NrStates(); n.Cmp(cost.MaxStates) > 0 {
			cost.MaxStates = n
		}
	}

	for _, label := range order {
		cluster, ok := arena.take(label)
		if !ok {
			continue
		}
		record(cluster)
		arena.add(cluster.Remove(label))
	}
	if final, ok := arena.rest(); ok {
		record(final)
	}

	return cost, nil
}

// checkOrder rejects labels unknown to fg and labels listed twice.
func checkOrder(fg *factorgraph.Graph, order []int) error {
	seen := make(map[int]bool, len(order))
	for _, l := range order {
		if !fg.HasVar(l) {
			return fmt.Errorf("%w: x%d", ErrUnknownVariable, l)
		}
		if seen[l] {
			return fmt.Errorf("%w: x%d eliminated twice", ErrInvalidOrder, l)
		}
		seen[l] = true
	}

	return nil
}
