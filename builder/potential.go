// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// potential.go - table generators for emitted factors.

package builder

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aschroede/vemap/factor"
)

// PotentialFn fills the table of a factor over vs in flat-index order (the
// lowest label changes fastest). It must be deterministic for a given RNG
// state and return exactly vs.NrStates() positive or zero entries.
type PotentialFn func(vs factor.VarSet, rng *rand.Rand) ([]float64, error)

// tableSize returns the entry count of vs or an error if it does not fit.
func tableSize(vs factor.VarSet) (int, error) {
	n, ok := vs.NrStatesInt()
	if !ok || n > factor.MaxTableSize {
		return 0, fmt.Errorf("builder: table over %s: %w", vs, factor.ErrTooLarge)
	}

	return n, nil
}

// UniformPotential returns an all-ones table.
func UniformPotential(vs factor.VarSet, _ *rand.Rand) ([]float64, error) {
	return ConstantPotential(1)(vs, nil)
}

// ConstantPotential returns a PotentialFn filling every entry with v.
// Panics if v < 0.
func ConstantPotential(v float64) PotentialFn {
	if v < 0 {
		panic(fmt.Sprintf("builder: ConstantPotential(%g)", v))
	}

	return func(vs factor.VarSet, _ *rand.Rand) ([]float64, error) {
		n, err := tableSize(vs)
		if err != nil {
			return nil, err
		}
		p := make([]float64, n)
		for i := range p {
			p[i] = v
		}

		return p, nil
	}
}

// RandomPotential returns a PotentialFn drawing every entry uniformly from
// [lo, hi). Panics if lo < 0 or hi < lo. Fails with ErrNeedRandSource
// without an RNG.
func RandomPotential(lo, hi float64) PotentialFn {
	if lo < 0 || hi < lo {
		panic(fmt.Sprintf("builder: RandomPotential(%g, %g)", lo, hi))
	}

	return func(vs factor.VarSet, rng *rand.Rand) ([]float64, error) {
		if rng == nil {
			return nil, fmt.Errorf("RandomPotential: %w", ErrNeedRandSource)
		}
		n, err := tableSize(vs)
		if err != nil {
			return nil, err
		}
		p := make([]float64, n)
		for i := range p {
			p[i] = lo + (hi-lo)*rng.Float64()
		}

		return p, nil
	}
}

// AttractivePotential returns a Potts-style PotentialFn: exp(beta) where all
// variables of the scope agree and 1 elsewhere. Unary tables are constant.
// Negative beta makes disagreement more likely.
func AttractivePotential(beta float64) PotentialFn {
	agree := math.Exp(beta)

	return func(vs factor.VarSet, _ *rand.Rand) ([]float64, error) {
		n, err := tableSize(vs)
		if err != nil {
			return nil, err
		}
		p := make([]float64, n)
		for i := range p {
			p[i] = 1
			states := factor.StatesAt(vs, i)
			same := true
			for _, s := range states[1:] {
				if s != states[0] {
					same = false
					break
				}
			}
			if same {
				p[i] = agree
			}
		}

		return p, nil
	}
}
