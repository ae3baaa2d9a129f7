package elimination_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/elimination"
	"github.com/aschroede/vemap/factor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_Chain(t *testing.T) {
	g := chainGraph(t, 5)

	// {1,2,3} is formed when x2 goes; the final product is {x4}.
	cost, err := elimination.Simulate(g, []int{2, 3, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, cost.Treewidth)
	assert.Equal(t, int64(8), cost.MaxStates.Int64())

	// With x4 clamped away the run ends on the empty scope.
	reduced, err := g.ClampReduce(4, 1)
	require.NoError(t, err)
	cost, err = elimination.Simulate(reduced, []int{2, 3, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, cost.Treewidth)
	assert.Equal(t, int64(8), cost.MaxStates.Int64())

	// The natural order never forms more than a pair.
	cost, err = elimination.Simulate(g, []int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, cost.Treewidth)
	assert.Equal(t, int64(4), cost.MaxStates.Int64())
}

func TestSimulate_EmptyOrder(t *testing.T) {
	g := chainGraph(t, 3)
	cost, err := elimination.Simulate(g, nil)
	require.NoError(t, err)
	// Only the final product of everything.
	assert.Equal(t, 3, cost.Treewidth)
	assert.Equal(t, int64(8), cost.MaxStates.Int64())
}

func TestSimulate_BadOrder(t *testing.T) {
	g := chainGraph(t, 3)

	_, err := elimination.Simulate(g, []int{0, 7})
	assert.ErrorIs(t, err, elimination.ErrUnknownVariable)

	_, err = elimination.Simulate(g, []int{1, 0, 1})
	assert.ErrorIs(t, err, elimination.ErrInvalidOrder)
}

// The simulator must report exactly the largest cluster the executor forms,
// counting the final product.
func TestSimulate_AgreesWithExecute(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for trial := 0; trial < 30; trial++ {
		g := randomGraph(t, r, 8, 7, 3)
		targets, evidence := pickTargets(r, g, 1+r.Intn(3), r.Intn(2))
		reduced := g
		for _, e := range evidence {
			var err error
			reduced, err = reduced.ClampReduce(e, 0)
			require.NoError(t, err)
		}

		mode := elimination.Constrained
		if trial%2 == 1 {
			mode = elimination.Unconstrained
		}
		plan, err := elimination.PlanOrder(reduced, clustergraph.Default(),
			elimination.Partition{Targets: targets, Evidence: evidence}, mode)
		require.NoError(t, err)

		want, err := elimination.Simulate(reduced, plan.Eliminated())
		require.NoError(t, err)

		width, states := 0, big.NewInt(0)
		observe := func(vs factor.VarSet) {
			width = max(width, vs.Len())
			if n := vs.NrStates(); n.Cmp(states) > 0 {
				states = n
			}
		}
		out, err := elimination.Execute(reduced, plan,
			elimination.WithOnCluster(func(_ int, vs factor.VarSet) { observe(vs) }))
		require.NoError(t, err)
		observe(out.Vars())

		assert.Equal(t, want.Treewidth, width, "trial %d order %v", trial, plan.Order)
		assert.Zero(t, want.MaxStates.Cmp(states), "trial %d: %s vs %s", trial, want.MaxStates, states)
	}
}
