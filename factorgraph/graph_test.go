package factorgraph_test

import (
	"strings"
	"testing"

	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sprinklerGraph(t *testing.T) *factorgraph.Graph {
	t.Helper()
	g, err := factorgraph.Parse(strings.NewReader(sprinkler))
	require.NoError(t, err)

	return g
}

func TestNew_CardinalityConflict(t *testing.T) {
	a, err := factor.New(factor.MustVarSet(factor.Var{Label: 0, States: 2}))
	require.NoError(t, err)
	b, err := factor.New(factor.MustVarSet(factor.Var{Label: 0, States: 3}))
	require.NoError(t, err)

	_, err = factorgraph.New(a, b)
	assert.ErrorIs(t, err, factor.ErrStatesMismatch)

	_, err = factorgraph.New(a, factor.Factor{})
	assert.ErrorIs(t, err, factorgraph.ErrNilFactor)
}

func TestGraph_Lookup(t *testing.T) {
	g := sprinklerGraph(t)

	v, err := g.Var(1)
	require.NoError(t, err)
	assert.Equal(t, factor.Var{Label: 1, States: 2}, v)

	_, err = g.Var(9)
	assert.ErrorIs(t, err, factorgraph.ErrUnknownVariable)
	assert.True(t, g.HasVar(2))
	assert.False(t, g.HasVar(3))

	assert.Equal(t, []int{1, 2}, g.Neighbors(1))
	assert.Empty(t, g.Neighbors(42))

	vs, err := g.VarSet([]int{2, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, vs.Labels())
}

func TestClamp_KeepsDimension(t *testing.T) {
	g := sprinklerGraph(t)
	c, err := g.Clamp(1, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, c.Labels())
	rain := c.Factor(1)
	assert.Equal(t, []int{0, 1}, rain.Vars().Labels())
	// index = x0 + 2*x1, entries with x1=0 zeroed.
	assert.InDeltaSlice(t, []float64{0, 0, 0.2, 0.8}, rain.Values(), 1e-12)

	// Source graph untouched.
	assert.InDeltaSlice(t, []float64{0.8, 0.2, 0.2, 0.8}, g.Factor(1).Values(), 1e-12)
}

func TestClampReduce_DropsVariable(t *testing.T) {
	g := sprinklerGraph(t)
	r, err := g.ClampReduce(1, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, r.Labels())
	for _, f := range r.Factors() {
		assert.False(t, f.Vars().Contains(1))
	}
	assert.InDeltaSlice(t, []float64{0.2, 0.8}, r.Factor(1).Values(), 1e-12)
	assert.InDeltaSlice(t, []float64{0.1, 0.9}, r.Factor(2).Values(), 1e-12)

	// Clamping everything leaves scalars carrying P(evidence) pieces.
	all, err := g.ClampReduceAll([]int{0, 1, 2}, []int{0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, all.NrVars())
	p := 1.0
	for _, f := range all.Factors() {
		require.Equal(t, 1, f.NrStates())
		p *= f.Get(0)
	}
	assert.InDelta(t, 0.5*0.2*0.9, p, 1e-12)

	_, err = g.ClampReduce(7, 0)
	assert.ErrorIs(t, err, factorgraph.ErrUnknownVariable)
	_, err = g.ClampReduce(1, 2)
	assert.ErrorIs(t, err, factor.ErrStateOutOfRange)
	_, err = g.ClampReduceAll([]int{0}, nil)
	assert.Error(t, err)
}
