package elimination_test

import (
	"fmt"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/elimination"
	"github.com/aschroede/vemap/factor"
	"github.com/aschroede/vemap/factorgraph"
)

// ExamplePlanOrder plans and runs a MAP query on a three-variable chain
// x0 -> x1 -> x2 with x2 observed.
func ExamplePlanOrder() {
	b := func(l int) factor.Var { return factor.Var{Label: l, States: 2} }
	prior, _ := factor.NewWithValues(factor.MustVarSet(b(0)), []float64{0.6, 0.4})
	// index = parent + 2*child
	c1, _ := factor.NewWithValues(factor.MustVarSet(b(0), b(1)), []float64{0.7, 0.3, 0.3, 0.7})
	c2, _ := factor.NewWithValues(factor.MustVarSet(b(1), b(2)), []float64{0.7, 0.3, 0.3, 0.7})
	fg, _ := factorgraph.New(prior, c1, c2)
	fg, _ = fg.ClampReduce(2, 1)

	part := elimination.Partition{Targets: []int{0}, Evidence: []int{2}}
	plan, _ := elimination.PlanOrder(fg, clustergraph.Default(), part, elimination.Constrained)

	var tb elimination.Traceback
	out, _ := elimination.Execute(fg, plan, elimination.WithTraceback(&tb))
	assign, _ := tb.Decode(nil)
	fmt.Println(plan.Order, assign[0])
	fmt.Printf("%.3f\n", out.Get(0))
	// Output:
	// [1 0] 0
	// 0.252
}
