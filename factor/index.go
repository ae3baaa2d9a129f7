// SPDX-License-Identifier: MIT
// Package: vemap/factor
//
// index.go - conversions between joint states and flat table indices.

package factor

import "fmt"

// strides returns the flat-index stride of every variable of vs:
// stride[0] = 1, stride[i] = stride[i-1] * States(i-1).
func strides(vs VarSet) []int {
	out := make([]int, len(vs.vars))
	s := 1
	for i, v := range vs.vars {
		out[i] = s
		s *= v.States
	}

	return out
}

// indexMap returns, for every flat index of outer, the flat index of the
// restriction of that joint state to inner. Variables of inner missing from
// outer are pinned at state 0; callers pass inner ⊆ outer.
// Complexity: O(|outer states| + |outer| + |inner|).
func indexMap(outer, inner VarSet, n int) []int {
	k := len(outer.vars)
	innerStride := strides(inner)

	// 1) Stride in inner for each outer variable (0 when absent).
	step := make([]int, k)
	j := 0
	for i, v := range outer.vars {
		for j < len(inner.vars) && inner.vars[j].Label < v.Label {
			j++
		}
		if j < len(inner.vars) && inner.vars[j].Label == v.Label {
			step[i] = innerStride[j]
		}
	}

	// 2) Odometer walk over outer, lowest label fastest.
	out := make([]int, n)
	counter := make([]int, k)
	cur := 0
	for idx := 0; idx < n; idx++ {
		out[idx] = cur
		for i := 0; i < k; i++ {
			counter[i]++
			cur += step[i]
			if counter[i] < outer.vars[i].States {
				break
			}
			cur -= step[i] * outer.vars[i].States
			counter[i] = 0
		}
	}

	return out
}

// CalcState decodes a flat index into a label -> state map.
// Panics if idx is outside [0, NrStates).
func CalcState(vs VarSet, idx int) map[int]int {
	states := StatesAt(vs, idx)
	out := make(map[int]int, len(states))
	for i, v := range vs.vars {
		out[v.Label] = states[i]
	}

	return out
}

// StatesAt decodes a flat index into per-variable states aligned with the
// label order of vs.
func StatesAt(vs VarSet, idx int) []int {
	if idx < 0 {
		panic(fmt.Sprintf("factor: negative flat index %d", idx))
	}
	out := make([]int, len(vs.vars))
	for i, v := range vs.vars {
		out[i] = idx % v.States
		idx /= v.States
	}
	if idx != 0 {
		panic("factor: flat index exceeds state space")
	}

	return out
}

// CalcLinearState encodes a label -> state map into a flat index over vs.
// Labels of the map that are not in vs are ignored; missing labels count as 0.
func CalcLinearState(vs VarSet, states map[int]int) (int, error) {
	idx, mul := 0, 1
	for _, v := range vs.vars {
		s := states[v.Label]
		if s < 0 || s >= v.States {
			return 0, fmt.Errorf("%w: x%d=%d (states %d)", ErrStateOutOfRange, v.Label, s, v.States)
		}
		idx += s * mul
		mul *= v.States
	}

	return idx, nil
}
