package inference_test

import (
	"testing"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/stretchr/testify/require"
)

func bvar(l int) factor.Var { return factor.Var{Label: l, States: 2} }

// chain builds x0 -> ... -> x(n-1) with P(x0=1)=0.4 and P(x_i = x_{i-1}) = 0.7.
func chain(t testing.TB, n int) *factorgraph.Graph {
	t.Helper()
	prior, err := factor.NewWithValues(factor.MustVarSet(bvar(0)), []float64{0.6, 0.4})
	require.NoError(t, err)
	fs := []factor.Factor{prior}
	for i := 1; i < n; i++ {
		cpt, err := factor.NewWithValues(factor.MustVarSet(bvar(i-1), bvar(i)), []float64{0.7, 0.3, 0.3, 0.7})
		require.NoError(t, err)
		fs = append(fs, cpt)
	}
	g, err := factorgraph.New(fs...)
	require.NoError(t, err)

	return g
}

// bruteMarginal returns the joint with the evidence clamped, summed onto
// targets, and the evidence mass P(e).
func bruteMarginal(t testing.TB, g *factorgraph.Graph, targets, ev, vals []int) (factor.Factor, float64) {
	t.Helper()
	j := factor.Scalar(1)
	for _, f := range g.Factors() {
		var err error
		j, err = j.Product(f)
		require.NoError(t, err)
	}
	for i, e := range ev {
		var err error
		j, err = j.Clamp(e, vals[i])
		require.NoError(t, err)
	}
	vs, err := g.VarSet(targets)
	require.NoError(t, err)

	return j.Marginal(vs), j.Sum()
}

// bruteArgMax returns the target states maximizing the summed-out joint
// (in the caller's target order), that maximum, and P(e).
func bruteArgMax(t testing.TB, g *factorgraph.Graph, targets, ev, vals []int) ([]int, float64, float64) {
	t.Helper()
	m, pe := bruteMarginal(t, g, targets, ev, vals)
	best := 0
	for i := 1; i < m.NrStates(); i++ {
		if m.Get(i) > m.Get(best) {
			best = i
		}
	}
	full := factor.CalcState(m.Vars(), best)
	states := make([]int, len(targets))
	for i, l := range targets {
		states[i] = full[l]
	}

	return states, m.Get(best), pe
}
