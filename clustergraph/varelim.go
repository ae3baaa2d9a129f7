// SPDX-License-Identifier: MIT
// Package: vemap/clustergraph

package clustergraph

import (
	"fmt"

	"github.com/aschroede/vemap/factor"
)

// Elimination is the outcome of VarElim.
type Elimination struct {
	// Cliques holds Delta(v) for every eliminated v, in elimination order.
	Cliques []factor.VarSet
	// Order is the elimination order chosen by the heuristic.
	Order []int
}

// VarElim eliminates every variable of a clone of g, asking h for the next
// one each round. maxStates > 0 bounds the state count of every clique;
// exceeding it aborts with ErrTooManyStates. g itself is not modified.
// Complexity: O(n² · cost) for n variables.
func VarElim(g *Graph, h Heuristic, maxStates int) (Elimination, error) {
	work := g.Clone()
	free := work.Vars()
	res := Elimination{
		Cliques: make([]factor.VarSet, 0, len(free)),
		Order:   make([]int, 0, len(free)),
	}

	for len(free) > 0 {
		v, err := h.Pick(work, free)
		if err != nil {
			return Elimination{}, fmt.Errorf("clustergraph: VarElim(%s): %w", h.Name(), err)
		}
		di, err := work.ElimVar(v)
		if err != nil {
			return Elimination{}, fmt.Errorf("clustergraph: VarElim(%s): %w", h.Name(), err)
		}
		if maxStates > 0 {
			if n, ok := di.NrStatesInt(); !ok || n > maxStates {
				return Elimination{}, fmt.Errorf("%w: %s has %s states (limit %d)",
					ErrTooManyStates, di, di.NrStates(), maxStates)
			}
		}
		res.Cliques = append(res.Cliques, di)
		res.Order = append(res.Order, v)
		free = remove(free, v)
	}

	return res, nil
}

// remove deletes x from the sorted slice xs, preserving order.
func remove(xs []int, x int) []int {
	for i, y := range xs {
		if y == x {
			return append(xs[:i], xs[i+1:]...)
		}
	}

	return xs
}
