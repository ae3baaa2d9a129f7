// SPDX-License-Identifier: MIT
// Package: vemap/factor
//
// factor.go - dense factor tables and their algebra.

package factor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Factor is a non-negative table over the joint states of a VarSet.
// The zero value holds no table at all (Empty reports true); a factor over
// the empty VarSet is a scalar with exactly one entry.
type Factor struct {
	vars VarSet
	p    []float64
}

// New returns the factor over vs with every entry set to 1.
func New(vs VarSet) (Factor, error) {
	n, ok := vs.NrStatesInt()
	if !ok {
		return Factor{}, fmt.Errorf("%w: %s has %s states", ErrTooLarge, vs, vs.NrStates())
	}
	p := make([]float64, n)
	for i := range p {
		p[i] = 1
	}

	return Factor{vars: vs, p: p}, nil
}

// NewWithValues returns the factor over vs holding a copy of p.
// len(p) must equal the number of joint states of vs.
func NewWithValues(vs VarSet, p []float64) (Factor, error) {
	n, ok := vs.NrStatesInt()
	if !ok {
		return Factor{}, fmt.Errorf("%w: %s has %s states", ErrTooLarge, vs, vs.NrStates())
	}
	if len(p) != n {
		return Factor{}, fmt.Errorf("%w: %s needs %d entries, got %d", ErrSizeMismatch, vs, n, len(p))
	}
	cp := make([]float64, n)
	copy(cp, p)

	return Factor{vars: vs, p: cp}, nil
}

// Scalar returns the factor over the empty set holding v.
func Scalar(v float64) Factor {
	return Factor{p: []float64{v}}
}

// Vars returns the scope of f.
func (f Factor) Vars() VarSet { return f.vars }

// NrStates returns the number of table entries.
func (f Factor) NrStates() int { return len(f.p) }

// Empty reports whether f holds no table (the zero Factor).
func (f Factor) Empty() bool { return len(f.p) == 0 }

// Get returns the entry at flat index i.
func (f Factor) Get(i int) float64 { return f.p[i] }

// Values returns a copy of the table.
func (f Factor) Values() []float64 {
	out := make([]float64, len(f.p))
	copy(out, f.p)

	return out
}

// Product returns the pointwise product of f and g over vars(f) ∪ vars(g).
// Complexity: O(|result states|).
func (f Factor) Product(g Factor) (Factor, error) {
	u := f.vars.Union(g.vars)
	n, ok := u.NrStatesInt()
	if !ok {
		return Factor{}, fmt.Errorf("%w: product over %s has %s states", ErrTooLarge, u, u.NrStates())
	}

	// Fast path: identical scopes need no index translation.
	if f.vars.Equal(g.vars) {
		out := make([]float64, n)
		for i := range out {
			out[i] = f.p[i] * g.p[i]
		}

		return Factor{vars: u, p: out}, nil
	}

	fi := indexMap(u, f.vars, n)
	gi := indexMap(u, g.vars, n)
	out := make([]float64, n)
	for i := range out {
		out[i] = f.p[fi[i]] * g.p[gi[i]]
	}

	return Factor{vars: u, p: out}, nil
}

// Divide returns the pointwise quotient f/g over vars(f) ∪ vars(g) with the
// convention x/0 = 0.
func (f Factor) Divide(g Factor) (Factor, error) {
	u := f.vars.Union(g.vars)
	n, ok := u.NrStatesInt()
	if !ok {
		return Factor{}, fmt.Errorf("%w: quotient over %s has %s states", ErrTooLarge, u, u.NrStates())
	}
	fi := indexMap(u, f.vars, n)
	gi := indexMap(u, g.vars, n)
	out := make([]float64, n)
	for i := range out {
		if d := g.p[gi[i]]; d != 0 {
			out[i] = f.p[fi[i]] / d
		}
	}

	return Factor{vars: u, p: out}, nil
}

// Marginal sums out every variable of f not in keep. The result scope is
// vars(f) ∩ keep; the result is not normalized.
// Complexity: O(|f states|).
func (f Factor) Marginal(keep VarSet) Factor {
	r := f.vars.Intersect(keep)
	if r.Len() == f.vars.Len() {
		return Factor{vars: f.vars, p: f.Values()}
	}
	n, _ := r.NrStatesInt() // r ⊆ vars(f), so it fits
	im := indexMap(f.vars, r, len(f.p))
	out := make([]float64, n)
	for i, v := range f.p {
		out[im[i]] += v
	}

	return Factor{vars: r, p: out}
}

// MaxMarginal maximizes out every variable of f not in keep. The result
// scope is vars(f) ∩ keep; the result is not normalized.
func (f Factor) MaxMarginal(keep VarSet) Factor {
	r := f.vars.Intersect(keep)
	if r.Len() == f.vars.Len() {
		return Factor{vars: f.vars, p: f.Values()}
	}
	n, _ := r.NrStatesInt()
	im := indexMap(f.vars, r, len(f.p))
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Inf(-1)
	}
	for i, v := range f.p {
		if v > out[im[i]] {
			out[im[i]] = v
		}
	}

	return Factor{vars: r, p: out}
}

// MaxMarginalArg maximizes label out of f and also returns, for every entry
// of the result, the state of label that attained the maximum. Ties go to
// the lowest state.
func (f Factor) MaxMarginalArg(label int) (Factor, []int, error) {
	pos, err := f.locate(label, 0)
	if err != nil {
		return Factor{}, nil, err
	}
	r := f.vars.Remove(label)
	stride := strides(f.vars)[pos]
	card := f.vars.vars[pos].States
	n, _ := r.NrStatesInt()
	im := indexMap(f.vars, r, len(f.p))

	out := make([]float64, n)
	arg := make([]int, n)
	seen := make([]bool, n)
	for i, v := range f.p {
		j := im[i]
		if !seen[j] || v > out[j] {
			out[j] = v
			arg[j] = (i / stride) % card
			seen[j] = true
		}
	}

	return Factor{vars: r, p: out}, arg, nil
}

// MaxMask returns a 0/1 factor over vars(f) holding 1 exactly where the
// entry attains the maximum over label for the remaining states. tied
// reports whether any of those maxima is attained by more than one state
// of label.
func (f Factor) MaxMask(label int) (mask Factor, tied bool, err error) {
	if _, err := f.locate(label, 0); err != nil {
		return Factor{}, false, err
	}
	best := f.MaxMarginal(f.vars.Remove(label))
	im := indexMap(f.vars, best.vars, len(f.p))

	hits := make([]int, len(best.p))
	out := make([]float64, len(f.p))
	for i, v := range f.p {
		j := im[i]
		if v != best.p[j] {
			continue
		}
		out[i] = 1
		if hits[j]++; hits[j] > 1 {
			tied = true
		}
	}

	return Factor{vars: f.vars, p: out}, tied, nil
}

// Sum returns the total mass of f.
func (f Factor) Sum() float64 {
	var s float64
	for _, v := range f.p {
		s += v
	}

	return s
}

// Max returns the largest entry of f, or -Inf for the zero Factor.
func (f Factor) Max() float64 {
	m := math.Inf(-1)
	for _, v := range f.p {
		if v > m {
			m = v
		}
	}

	return m
}

// Normalize returns f divided by its total mass.
func (f Factor) Normalize() (Factor, error) {
	z := f.Sum()
	if z == 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return Factor{}, fmt.Errorf("%w: mass %g over %s", ErrNotNormalizable, z, f.vars)
	}
	out := make([]float64, len(f.p))
	for i, v := range f.p {
		out[i] = v / z
	}

	return Factor{vars: f.vars, p: out}, nil
}

// Scale returns f multiplied by c.
func (f Factor) Scale(c float64) Factor {
	out := make([]float64, len(f.p))
	for i, v := range f.p {
		out[i] = v * c
	}

	return Factor{vars: f.vars, p: out}
}

// Slice conditions f on label=state and drops label from the scope.
func (f Factor) Slice(label, state int) (Factor, error) {
	pos, err := f.locate(label, state)
	if err != nil {
		return Factor{}, err
	}
	r := f.vars.Remove(label)
	stride := strides(f.vars)[pos]
	card := f.vars.vars[pos].States
	n, _ := r.NrStatesInt()
	im := indexMap(f.vars, r, len(f.p))
	out := make([]float64, n)
	for i, v := range f.p {
		if (i/stride)%card == state {
			out[im[i]] = v
		}
	}

	return Factor{vars: r, p: out}, nil
}

// Clamp zeroes every entry of f in which label≠state. The scope is unchanged.
func (f Factor) Clamp(label, state int) (Factor, error) {
	pos, err := f.locate(label, state)
	if err != nil {
		return Factor{}, err
	}
	stride := strides(f.vars)[pos]
	card := f.vars.vars[pos].States
	out := make([]float64, len(f.p))
	for i, v := range f.p {
		if (i/stride)%card == state {
			out[i] = v
		}
	}

	return Factor{vars: f.vars, p: out}, nil
}

// locate validates label/state against the scope and returns the position
// of label in vars(f).
func (f Factor) locate(label, state int) (int, error) {
	pos := f.vars.IndexOf(label)
	if pos < 0 {
		return 0, fmt.Errorf("%w: x%d not in %s", ErrNotInScope, label, f.vars)
	}
	if states := f.vars.vars[pos].States; state < 0 || state >= states {
		return 0, fmt.Errorf("%w: x%d=%d (states %d)", ErrStateOutOfRange, label, state, states)
	}

	return pos, nil
}

// String renders f as "({x0, x1}, (p0, p1, ...))".
func (f Factor) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(f.vars.String())
	sb.WriteString(", (")
	for i, v := range f.p {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteString("))")

	return sb.String()
}

// Table renders f one joint state per line, e.g. "x0=1 x2=0 : 0.25",
// in flat-index order. Used for verbose trace output.
func (f Factor) Table() string {
	var sb strings.Builder
	for i, v := range f.p {
		states := StatesAt(f.vars, i)
		for j, s := range states {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "x%d=%d", f.vars.vars[j].Label, s)
		}
		if len(states) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(": ")
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteByte('\n')
	}

	return sb.String()
}
