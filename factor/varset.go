// SPDX-License-Identifier: MIT
// Package: vemap/factor
//
// varset.go - Var and the immutable, label-sorted VarSet.

package factor

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Var is a discrete random variable: an integer label and its cardinality.
type Var struct {
	// Label identifies the variable inside its factor graph.
	Label int

	// States is the number of values the variable can take (>= 1).
	States int
}

// String renders the variable as "x<label>".
func (v Var) String() string {
	return fmt.Sprintf("x%d", v.Label)
}

// VarSet is an immutable set of variables sorted by ascending label.
// The zero value is the empty set.
type VarSet struct {
	vars []Var
}

// NewVarSet builds a VarSet from vars in any order. Duplicates collapse;
// a label repeated with a different cardinality yields ErrStatesMismatch.
// Complexity: O(k log k).
func NewVarSet(vars ...Var) (VarSet, error) {
	out := make([]Var, 0, len(vars))
	for _, v := range vars {
		if v.States < 1 {
			return VarSet{}, fmt.Errorf("%w: x%d has %d states", ErrBadStates, v.Label, v.States)
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	// Collapse duplicates in place, checking cardinalities agree.
	w := 0
	for i := range out {
		if w > 0 && out[w-1].Label == out[i].Label {
			if out[w-1].States != out[i].States {
				return VarSet{}, fmt.Errorf("%w: x%d has %d and %d states",
					ErrStatesMismatch, out[i].Label, out[w-1].States, out[i].States)
			}
			continue
		}
		out[w] = out[i]
		w++
	}

	return VarSet{vars: out[:w]}, nil
}

// MustVarSet is NewVarSet that panics on error. Intended for tests and fixtures.
func MustVarSet(vars ...Var) VarSet {
	vs, err := NewVarSet(vars...)
	if err != nil {
		panic(err)
	}

	return vs
}

// Len returns the number of variables in the set.
func (vs VarSet) Len() int { return len(vs.vars) }

// Empty reports whether the set has no variables.
func (vs VarSet) Empty() bool { return len(vs.vars) == 0 }

// At returns the i-th variable in label order.
func (vs VarSet) At(i int) Var { return vs.vars[i] }

// Vars returns a copy of the variables in label order.
func (vs VarSet) Vars() []Var {
	out := make([]Var, len(vs.vars))
	copy(out, vs.vars)

	return out
}

// Labels returns the labels in ascending order.
func (vs VarSet) Labels() []int {
	out := make([]int, len(vs.vars))
	for i, v := range vs.vars {
		out[i] = v.Label
	}

	return out
}

// IndexOf returns the position of label in the set, or -1.
// Complexity: O(log k).
func (vs VarSet) IndexOf(label int) int {
	i := sort.Search(len(vs.vars), func(i int) bool { return vs.vars[i].Label >= label })
	if i < len(vs.vars) && vs.vars[i].Label == label {
		return i
	}

	return -1
}

// Contains reports whether label is in the set.
func (vs VarSet) Contains(label int) bool { return vs.IndexOf(label) >= 0 }

// ContainsAll reports whether every variable of other is in vs.
// Complexity: O(k + m).
func (vs VarSet) ContainsAll(other VarSet) bool {
	i := 0
	for _, v := range other.vars {
		for i < len(vs.vars) && vs.vars[i].Label < v.Label {
			i++
		}
		if i == len(vs.vars) || vs.vars[i].Label != v.Label {
			return false
		}
	}

	return true
}

// Intersects reports whether vs and other share at least one variable.
func (vs VarSet) Intersects(other VarSet) bool {
	i, j := 0, 0
	for i < len(vs.vars) && j < len(other.vars) {
		switch {
		case vs.vars[i].Label < other.vars[j].Label:
			i++
		case vs.vars[i].Label > other.vars[j].Label:
			j++
		default:
			return true
		}
	}

	return false
}

// Equal reports whether both sets hold the same labels.
func (vs VarSet) Equal(other VarSet) bool {
	if len(vs.vars) != len(other.vars) {
		return false
	}
	for i := range vs.vars {
		if vs.vars[i].Label != other.vars[i].Label {
			return false
		}
	}

	return true
}

// Union returns vs ∪ other. On a shared label the cardinality from vs wins.
// Complexity: O(k + m).
func (vs VarSet) Union(other VarSet) VarSet {
	out := make([]Var, 0, len(vs.vars)+len(other.vars))
	i, j := 0, 0
	for i < len(vs.vars) && j < len(other.vars) {
		a, b := vs.vars[i], other.vars[j]
		switch {
		case a.Label < b.Label:
			out = append(out, a)
			i++
		case a.Label > b.Label:
			out = append(out, b)
			j++
		default:
			out = append(out, a)
			i++
			j++
		}
	}
	out = append(out, vs.vars[i:]...)
	out = append(out, other.vars[j:]...)

	return VarSet{vars: out}
}

// Intersect returns vs ∩ other.
func (vs VarSet) Intersect(other VarSet) VarSet {
	out := make([]Var, 0, min(len(vs.vars), len(other.vars)))
	i, j := 0, 0
	for i < len(vs.vars) && j < len(other.vars) {
		switch {
		case vs.vars[i].Label < other.vars[j].Label:
			i++
		case vs.vars[i].Label > other.vars[j].Label:
			j++
		default:
			out = append(out, vs.vars[i])
			i++
			j++
		}
	}

	return VarSet{vars: out}
}

// Minus returns vs \ other.
func (vs VarSet) Minus(other VarSet) VarSet {
	out := make([]Var, 0, len(vs.vars))
	j := 0
	for _, v := range vs.vars {
		for j < len(other.vars) && other.vars[j].Label < v.Label {
			j++
		}
		if j < len(other.vars) && other.vars[j].Label == v.Label {
			continue
		}
		out = append(out, v)
	}

	return VarSet{vars: out}
}

// Remove returns vs without label. Returns vs unchanged if label is absent.
func (vs VarSet) Remove(label int) VarSet {
	i := vs.IndexOf(label)
	if i < 0 {
		return vs
	}
	out := make([]Var, 0, len(vs.vars)-1)
	out = append(out, vs.vars[:i]...)
	out = append(out, vs.vars[i+1:]...)

	return VarSet{vars: out}
}

// Add returns vs ∪ {v}.
func (vs VarSet) Add(v Var) VarSet {
	return vs.Union(VarSet{vars: []Var{v}})
}

// NrStates returns the product of the cardinalities as an arbitrary-precision
// integer. The empty set has exactly one (empty) joint state.
func (vs VarSet) NrStates() *big.Int {
	n := big.NewInt(1)
	var tmp big.Int
	for _, v := range vs.vars {
		n.Mul(n, tmp.SetInt64(int64(v.States)))
	}

	return n
}

// NrStatesInt returns the state count as an int and whether it fits within
// MaxTableSize.
func (vs VarSet) NrStatesInt() (int, bool) {
	n := 1
	for _, v := range vs.vars {
		if n > MaxTableSize/v.States {
			return 0, false
		}
		n *= v.States
	}

	return n, true
}

// String renders the set as "{x0, x3, x7}".
func (vs VarSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range vs.vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')

	return sb.String()
}
