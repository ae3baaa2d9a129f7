package factor_test

import (
	"math/big"
	"testing"

	"github.com/aschroede/vemap/factor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(label, states int) factor.Var { return factor.Var{Label: label, States: states} }

func TestNewVarSet_SortsAndDedups(t *testing.T) {
	vs, err := factor.NewVarSet(v(3, 2), v(1, 3), v(3, 2), v(0, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, vs.Labels())
	assert.Equal(t, "{x0, x1, x3}", vs.String())
}

func TestNewVarSet_Errors(t *testing.T) {
	_, err := factor.NewVarSet(v(1, 0))
	assert.ErrorIs(t, err, factor.ErrBadStates)

	_, err = factor.NewVarSet(v(1, 2), v(1, 3))
	assert.ErrorIs(t, err, factor.ErrStatesMismatch)
}

func TestVarSet_SetAlgebra(t *testing.T) {
	a := factor.MustVarSet(v(0, 2), v(2, 2), v(4, 2))
	b := factor.MustVarSet(v(1, 2), v(2, 2), v(5, 2))

	assert.Equal(t, []int{0, 1, 2, 4, 5}, a.Union(b).Labels())
	assert.Equal(t, []int{2}, a.Intersect(b).Labels())
	assert.Equal(t, []int{0, 4}, a.Minus(b).Labels())
	assert.Equal(t, []int{0, 4}, a.Remove(2).Labels())
	assert.Equal(t, a.Labels(), a.Remove(9).Labels())
	assert.Equal(t, []int{0, 2, 3, 4}, a.Add(v(3, 2)).Labels())

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(factor.MustVarSet(v(7, 2))))
	assert.True(t, a.ContainsAll(factor.MustVarSet(v(0, 2), v(4, 2))))
	assert.False(t, a.ContainsAll(factor.MustVarSet(v(0, 2), v(1, 2))))
	assert.True(t, a.ContainsAll(factor.VarSet{}))
	assert.True(t, a.Contains(4))
	assert.False(t, a.Contains(3))
	assert.Equal(t, 1, a.IndexOf(2))
	assert.Equal(t, -1, a.IndexOf(3))
}

func TestVarSet_NrStates(t *testing.T) {
	vs := factor.MustVarSet(v(0, 2), v(1, 3), v(2, 5))
	assert.Equal(t, 0, vs.NrStates().Cmp(big.NewInt(30)))
	n, ok := vs.NrStatesInt()
	assert.True(t, ok)
	assert.Equal(t, 30, n)

	assert.Equal(t, 0, factor.VarSet{}.NrStates().Cmp(big.NewInt(1)))

	// 64 binary variables overflow int64 but not big.Int.
	wide := make([]factor.Var, 64)
	for i := range wide {
		wide[i] = v(i, 2)
	}
	big64 := factor.MustVarSet(wide...)
	want := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Equal(t, 0, big64.NrStates().Cmp(want))
	_, ok = big64.NrStatesInt()
	assert.False(t, ok)
}
