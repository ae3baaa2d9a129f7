package elimination_test

import (
	"math/rand"
	"testing"

	"github.com/aschroede/vemap/clustergraph"
	"github.com/aschroede/vemap/elimination"
)

// BenchmarkPlanOrder plans a constrained query on a random graph with 40 variables.
func BenchmarkPlanOrder(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	g := randomGraph(b, r, 40, 40, 3) // pre-build once
	part := elimination.Partition{Targets: []int{0, 7, 13}}
	h := clustergraph.Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = elimination.PlanOrder(g, h, part, elimination.Constrained)
	}
}

// BenchmarkExecute runs the planned order on the same graph.
func BenchmarkExecute(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	g := randomGraph(b, r, 40, 40, 3)
	plan, err := elimination.PlanOrder(g, clustergraph.Default(), elimination.Partition{Targets: []int{0, 7, 13}}, elimination.Constrained)
	if err != nil {
		b.Fatal(err)
	}
	var tb elimination.Traceback
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = elimination.Execute(g, plan, elimination.WithTraceback(&tb))
	}
}

// BenchmarkSimulate replays the same order on scopes only.
func BenchmarkSimulate(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	g := randomGraph(b, r, 40, 40, 3)
	plan, err := elimination.PlanOrder(g, clustergraph.Default(), elimination.Partition{Targets: []int{0, 7, 13}}, elimination.Constrained)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = elimination.Simulate(g, plan.Eliminated())
	}
}
