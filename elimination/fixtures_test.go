package elimination_test

import (
	"math/rand"
	"testing"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/stretchr/testify/require"
)

func bvar(l int) factor.Var { return factor.Var{Label: l, States: 2} }

// chainGraph builds x0 -> x1 -> ... -> x(n-1) with P(x0=1)=0.4 and
// P(x_i = x_{i-1}) = 0.7.
func chainGraph(t testing.TB, n int) *factorgraph.Graph {
	t.Helper()
	prior, err := factor.NewWithValues(factor.MustVarSet(bvar(0)), []float64{0.6, 0.4})
	require.NoError(t, err)
	fs := []factor.Factor{prior}
	for i := 1; i < n; i++ {
		// index = x_{i-1} + 2*x_i
		cpt, err := factor.NewWithValues(factor.MustVarSet(bvar(i-1), bvar(i)), []float64{0.7, 0.3, 0.3, 0.7})
		require.NoError(t, err)
		fs = append(fs, cpt)
	}
	g, err := factorgraph.New(fs...)
	require.NoError(t, err)

	return g
}

// randomGraph builds n variables with cardinalities in [2,3], one unary per
// variable and nf random factors of scope size 2..maxScope, all entries
// drawn from (0.05, 1.05).
func randomGraph(t testing.TB, r *rand.Rand, n, nf, maxScope int) *factorgraph.Graph {
	t.Helper()
	vars := make([]factor.Var, n)
	for i := range vars {
		vars[i] = factor.Var{Label: i, States: 2 + r.Intn(2)}
	}
	fill := func(vs factor.VarSet) factor.Factor {
		size, ok := vs.NrStatesInt()
		require.True(t, ok)
		p := make([]float64, size)
		for i := range p {
			p[i] = 0.05 + r.Float64()
		}
		f, err := factor.NewWithValues(vs, p)
		require.NoError(t, err)
		return f
	}

	fs := make([]factor.Factor, 0, n+nf)
	for _, v := range vars {
		fs = append(fs, fill(factor.MustVarSet(v)))
	}
	for i := 0; i < nf; i++ {
		k := 2 + r.Intn(maxScope-1)
		scope := make([]factor.Var, 0, k)
		for _, j := range r.Perm(n)[:k] {
			scope = append(scope, vars[j])
		}
		fs = append(fs, fill(factor.MustVarSet(scope...)))
	}
	g, err := factorgraph.New(fs...)
	require.NoError(t, err)

	return g
}

// bruteJoint multiplies every factor of g.
func bruteJoint(t testing.TB, g *factorgraph.Graph) factor.Factor {
	t.Helper()
	joint := factor.Scalar(1)
	for _, f := range g.Factors() {
		var err error
		joint, err = joint.Product(f)
		require.NoError(t, err)
	}

	return joint
}

// pickTargets chooses k distinct labels of g, plus up to e evidence labels
// disjoint from them.
func pickTargets(r *rand.Rand, g *factorgraph.Graph, k, e int) (targets, evidence []int) {
	labels := g.Labels()
	perm := r.Perm(len(labels))
	for _, i := range perm[:k] {
		targets = append(targets, labels[i])
	}
	for _, i := range perm[k : k+e] {
		evidence = append(evidence, labels[i])
	}

	return targets, evidence
}
