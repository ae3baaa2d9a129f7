// SPDX-License-Identifier: MIT
// Package: vemap/elimination
//
// traceback.go - arg-max bookkeeping for max-eliminated variables.

package elimination

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aschroede/vemap/factor"
)

// ErrTraceback indicates a traceback that cannot be decoded from the given
// partial assignment.
var ErrTraceback = errors.New("elimination: incomplete traceback")

// traceStep records, for one max-eliminated variable, the best state of that
// variable for every joint state of the scope it was maximized onto. When
// the maximum is tied somewhere, mask marks every maximizing entry of the
// cluster; otherwise mask is empty and arg says it all.
type traceStep struct {
	v    factor.Var
	keep factor.VarSet
	arg  []int
	mask factor.Factor
}

// Traceback collects the arg-max tables produced while target variables are
// max-eliminated, so the maximizing assignment can be recovered once the
// run has reduced the targets to a scalar.
type Traceback struct {
	steps []traceStep
}

// Len returns the number of recorded max-eliminations.
func (t *Traceback) Len() int { return len(t.steps) }

// Labels returns the max-eliminated labels in elimination order.
func (t *Traceback) Labels() []int {
	out := make([]int, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.v.Label
	}

	return out
}

// Tied reports whether any recorded maximum was attained by more than one
// state.
func (t *Traceback) Tied() bool {
	for _, s := range t.steps {
		if !s.mask.Empty() {
			return true
		}
	}

	return false
}

func (t *Traceback) record(v factor.Var, keep factor.VarSet, arg []int, mask factor.Factor) {
	t.steps = append(t.steps, traceStep{v: v, keep: keep, arg: arg, mask: mask})
}

// Decode extends known (states of the variables left in the final factor)
// with the maximizing state of every max-eliminated label, walking the
// recorded steps backwards. Each step settles its own ties on the lowest
// state. known is not modified.
func (t *Traceback) Decode(known map[int]int) (map[int]int, error) {
	out := make(map[int]int, len(known)+len(t.steps))
	for l, s := range known {
		out[l] = s
	}
	for i := len(t.steps) - 1; i >= 0; i-- {
		st := t.steps[i]
		for _, l := range st.keep.Labels() {
			if _, ok := out[l]; !ok {
				return nil, fmt.Errorf("%w: x%d needs x%d", ErrTraceback, st.v.Label, l)
			}
		}
		idx, err := factor.CalcLinearState(st.keep, out)
		if err != nil {
			return nil, fmt.Errorf("%w: x%d: %v", ErrTraceback, st.v.Label, err)
		}
		out[st.v.Label] = st.arg[idx]
	}

	return out, nil
}

// DecodeLowest is Decode with ties settled jointly: among all maximizing
// assignments of the recorded labels it returns the one with the lowest
// flat index (the highest label is the most significant), which is what a
// strict first-maximum scan of the joint table over those labels returns.
//
// Without ties the maximizer is unique and DecodeLowest costs no more than
// Decode. With ties, labels are fixed from the highest down, each to the
// lowest state that still admits a maximizing completion; one completion
// check is a 0/1 max-product pass over the recorded steps.
func (t *Traceback) DecodeLowest(known map[int]int) (map[int]int, error) {
	if !t.Tied() {
		return t.Decode(known)
	}
	for _, st := range t.steps {
		for _, l := range st.keep.Labels() {
			if _, ok := known[l]; !ok && !t.recorded(l) {
				return nil, fmt.Errorf("%w: x%d needs x%d", ErrTraceback, st.v.Label, l)
			}
		}
	}

	cons := make([]factor.Factor, len(t.steps))
	for i, st := range t.steps {
		c, err := st.constraint()
		if err != nil {
			return nil, fmt.Errorf("%w: x%d: %v", ErrTraceback, st.v.Label, err)
		}
		cons[i] = c
	}

	vars := make([]factor.Var, len(t.steps))
	for i, st := range t.steps {
		vars[i] = st.v
	}
	slices.SortFunc(vars, func(a, b factor.Var) int { return b.Label - a.Label })

	out := make(map[int]int, len(known)+len(t.steps))
	maps.Copy(out, known)
	for _, v := range vars {
		found := false
		for s := 0; s < v.States && !found; s++ {
			out[v.Label] = s
			ok, err := t.completes(cons, out)
			if err != nil {
				return nil, fmt.Errorf("%w: x%d: %v", ErrTraceback, v.Label, err)
			}
			found = ok
		}
		if !found {
			return nil, fmt.Errorf("%w: no maximizing state for x%d", ErrTraceback, v.Label)
		}
	}

	return out, nil
}

func (t *Traceback) recorded(label int) bool {
	for _, st := range t.steps {
		if st.v.Label == label {
			return true
		}
	}

	return false
}

// constraint returns the 0/1 table over {v} ∪ keep marking the maximizing
// entries of the step.
func (st traceStep) constraint() (factor.Factor, error) {
	if !st.mask.Empty() {
		return st.mask, nil
	}
	scope := st.keep.Add(st.v)
	n, _ := scope.NrStatesInt()
	p := make([]float64, n)
	for i := range p {
		states := factor.CalcState(scope, i)
		k, err := factor.CalcLinearState(st.keep, states)
		if err != nil {
			return factor.Factor{}, err
		}
		if states[st.v.Label] == st.arg[k] {
			p[i] = 1
		}
	}

	return factor.NewWithValues(scope, p)
}

// completes reports whether the partial assignment fixed extends to an
// assignment that satisfies every constraint. Labels are eliminated in the
// recorded order, so every pass forms the clusters of the original run.
func (t *Traceback) completes(cons []factor.Factor, fixed map[int]int) (bool, error) {
	pool := make([]factor.Factor, 0, len(cons))
	for _, c := range cons {
		for _, l := range c.Vars().Labels() {
			s, ok := fixed[l]
			if !ok {
				continue
			}
			var err error
			if c, err = c.Clamp(l, s); err != nil {
				return false, err
			}
		}
		pool = append(pool, c)
	}

	for _, st := range t.steps {
		var joint factor.Factor
		rest := make([]factor.Factor, 0, len(pool))
		for _, f := range pool {
			if !f.Vars().Contains(st.v.Label) {
				rest = append(rest, f)
				continue
			}
			if joint.Empty() {
				joint = f
				continue
			}
			var err error
			if joint, err = joint.Product(f); err != nil {
				return false, err
			}
		}
		pool = rest
		if !joint.Empty() {
			pool = append(pool, joint.MaxMarginal(joint.Vars().Remove(st.v.Label)))
		}
	}

	for _, f := range pool {
		if f.Max() <= 0 {
			return false, nil
		}
	}

	return true, nil
}
