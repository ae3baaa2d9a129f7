package jtree_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/aschroede/vemap/jtree"
	"github.com/stretchr/testify/assert"
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

// random builds n variables (2 or 3 states) with one unary each and nf
// pairwise or triple factors.
func random(t testing.TB, r *rand.Rand, n, nf int) *factorgraph.Graph {
	t.Helper()
	vars := make([]factor.Var, n)
	for i := range vars {
		vars[i] = factor.Var{Label: i, States: 2 + r.Intn(2)}
	}
	fill := func(vs factor.VarSet) factor.Factor {
		size, _ := vs.NrStatesInt()
		p := make([]float64, size)
		for i := range p {
			p[i] = 0.05 + r.Float64()
		}
		f, err := factor.NewWithValues(vs, p)
		require.NoError(t, err)
		return f
	}
	var fs []factor.Factor
	for _, v := range vars {
		fs = append(fs, fill(factor.MustVarSet(v)))
	}
	for i := 0; i < nf; i++ {
		var scope []factor.Var
		for _, j := range r.Perm(n)[:2+r.Intn(2)] {
			scope = append(scope, vars[j])
		}
		fs = append(fs, fill(factor.MustVarSet(scope...)))
	}
	g, err := factorgraph.New(fs...)
	require.NoError(t, err)

	return g
}

func joint(t testing.TB, g *factorgraph.Graph) factor.Factor {
	t.Helper()
	j := factor.Scalar(1)
	for _, f := range g.Factors() {
		var err error
		j, err = j.Product(f)
		require.NoError(t, err)
	}

	return j
}

func calibrated(t testing.TB, g *factorgraph.Graph, opts ...jtree.Option) *jtree.JTree {
	t.Helper()
	jt, err := jtree.New(g, opts...)
	require.NoError(t, err)
	require.NoError(t, jt.Init())
	require.NoError(t, jt.Run())

	return jt
}

func TestNew_ChainStructure(t *testing.T) {
	for _, method := range []string{jtree.MethodPrim, jtree.MethodKruskal} {
		t.Run(method, func(t *testing.T) {
			jt, err := jtree.New(chain(t, 5), jtree.WithSpanning(method))
			require.NoError(t, err)

			assert.Equal(t, "MINFILL", jt.Heuristic())
			assert.Equal(t, []int{0, 1, 2, 3, 4}, jt.ElimOrder())
			require.Len(t, jt.Cliques(), 4)
			for i, c := range jt.Cliques() {
				assert.Equal(t, []int{i, i + 1}, c.Labels())
			}
			assert.Equal(t, 2, jt.MaxCluster())
			assert.Equal(t, 4, jt.MaxStates())

			edges := jt.Edges()
			require.Len(t, edges, 3)
			for i, e := range edges {
				assert.Equal(t, i, e.From)
				assert.Equal(t, i+1, e.To)
				assert.Equal(t, []int{i + 1}, e.Sep.Labels())
			}
			assert.Equal(t, "JTree(HUGIN, SUMPROD, MINFILL, 4 cliques)", jt.String())
		})
	}
}

// Every variable shared by two cliques must appear in every clique on the
// path between them; equivalently, the cliques holding a variable form a
// connected subtree (one fewer edge than cliques).
func TestNew_RunningIntersection(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 25; trial++ {
		g := random(t, r, 10, 9)
		for _, method := range []string{jtree.MethodPrim, jtree.MethodKruskal} {
			jt, err := jtree.New(g, jtree.WithSpanning(method))
			require.NoError(t, err)
			cliques, edges := jt.Cliques(), jt.Edges()
			require.Len(t, edges, len(cliques)-1)

			for _, l := range g.Labels() {
				nodes, links := 0, 0
				for _, c := range cliques {
					if c.Contains(l) {
						nodes++
					}
				}
				for _, e := range edges {
					if e.Sep.Contains(l) {
						links++
					}
				}
				assert.Positive(t, nodes)
				assert.Equal(t, nodes-1, links, "trial %d %s x%d", trial, method, l)
			}
		}
	}
}

func TestRun_MarginalsMatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for trial := 0; trial < 15; trial++ {
		g := random(t, r, 8, 7)
		full := joint(t, g)
		jt := calibrated(t, g, jtree.WithSpanning([]string{jtree.MethodPrim, jtree.MethodKruskal}[trial%2]))
		assert.InDelta(t, math.Log(full.Sum()), jt.LogZ(), 1e-9)

		// Singletons, and a pair that usually spans cliques.
		queries := [][]int{{0}, {3}, {7}, {0, 7}, {2, 5, 6}}
		for _, q := range queries {
			vs, err := g.VarSet(q)
			require.NoError(t, err)
			want, err := full.Marginal(vs).Normalize()
			require.NoError(t, err)
			got, err := jt.CalcMarginal(vs)
			require.NoError(t, err)
			require.True(t, got.Vars().Equal(vs))
			assert.InDeltaSlice(t, want.Values(), got.Values(), 1e-9, "trial %d %v", trial, q)
		}
	}
}

func TestRun_MaxProduct(t *testing.T) {
	g := chain(t, 4)
	full := joint(t, g)
	jt := calibrated(t, g, jtree.WithInference(jtree.MaxProd))

	for _, q := range [][]int{{1}, {0, 3}} {
		vs, err := g.VarSet(q)
		require.NoError(t, err)
		want, err := full.MaxMarginal(vs).Normalize()
		require.NoError(t, err)
		got, err := jt.CalcMarginal(vs)
		require.NoError(t, err)
		assert.InDeltaSlice(t, want.Values(), got.Values(), 1e-12, "%v", q)
	}
}

func TestRun_WithEvidence(t *testing.T) {
	g := chain(t, 5)
	reduced, err := g.ClampReduce(4, 1)
	require.NoError(t, err)
	jt := calibrated(t, reduced)

	vs := factor.MustVarSet(bvar(0), bvar(1))
	got, err := jt.CalcMarginal(vs)
	require.NoError(t, err)

	clamped, err := g.Clamp(4, 1)
	require.NoError(t, err)
	want, err := joint(t, clamped).Marginal(vs).Normalize()
	require.NoError(t, err)
	assert.InDeltaSlice(t, want.Values(), got.Values(), 1e-12)
}

func TestRun_FullyClamped(t *testing.T) {
	g := chain(t, 2)
	reduced, err := g.ClampReduceAll([]int{0, 1}, []int{1, 1})
	require.NoError(t, err)
	jt := calibrated(t, reduced)

	require.Len(t, jt.Cliques(), 1)
	assert.True(t, jt.Cliques()[0].Empty())
	// P(x0=1, x1=1) = 0.4 * 0.7
	assert.InDelta(t, math.Log(0.28), jt.LogZ(), 1e-12)
}

func TestRun_ImpossibleEvidence(t *testing.T) {
	zero, err := factor.NewWithValues(factor.MustVarSet(bvar(0)), []float64{1, 0})
	require.NoError(t, err)
	pair, err := factor.New(factor.MustVarSet(bvar(0), bvar(1)))
	require.NoError(t, err)
	g, err := factorgraph.New(zero, pair)
	require.NoError(t, err)
	reduced, err := g.ClampReduce(0, 1)
	require.NoError(t, err)

	jt, err := jtree.New(reduced)
	require.NoError(t, err)
	require.NoError(t, jt.Init())
	assert.ErrorIs(t, jt.Run(), factor.ErrNotNormalizable)
}

func TestErrors(t *testing.T) {
	g := chain(t, 3)

	_, err := jtree.New(g, jtree.WithUpdates(jtree.ShaferShenoy))
	assert.ErrorIs(t, err, jtree.ErrUnsupported)

	for name, opt := range map[string]jtree.Option{
		"negative states": jtree.WithMaxStates(-1),
		"spanning":        jtree.WithSpanning("boruvka"),
		"empty heuristic": jtree.WithHeuristic(""),
	} {
		_, err := jtree.New(g, opt)
		assert.ErrorIs(t, err, jtree.ErrOptionViolation, name)
	}

	_, err = jtree.New(g, jtree.WithHeuristic("no-such"))
	assert.Error(t, err)

	_, err = jtree.New(g, jtree.WithMaxStates(2))
	assert.Error(t, err, "cliques need 4 states")

	jt, err := jtree.New(g)
	require.NoError(t, err)
	assert.ErrorIs(t, jt.Run(), jtree.ErrNotReady)
	_, err = jt.CalcMarginal(factor.MustVarSet(bvar(0)))
	assert.ErrorIs(t, err, jtree.ErrNotReady)
	_, err = jt.Belief(0)
	assert.ErrorIs(t, err, jtree.ErrNotReady)
	_, err = jt.Belief(9)
	assert.ErrorIs(t, err, jtree.ErrBadClique)

	require.NoError(t, jt.Init())
	require.NoError(t, jt.Run())
	_, err = jt.CalcMarginal(factor.MustVarSet(bvar(8)))
	assert.ErrorIs(t, err, jtree.ErrUnknownVariable)

	b, err := jt.Belief(0)
	require.NoError(t, err)
	assert.InDelta(t, 1, b.Sum(), 1e-12)
}
