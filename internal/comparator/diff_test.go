package comparator

import (
	"testing"

	"github.com/jacobarthurs/sqladvisor/internal/plan"
)

func scanPlan(op plan.OpType, table string, cost float64, rows int64) *plan.ExecutionPlan {
	return &plan.ExecutionPlan{
		TotalCost: cost,
		Operations: []*plan.PlanNode{
			{Type: op, Table: table, TotalCost: cost, HasCost: true, PlanRows: rows},
		},
	}
}

func TestCompareIdenticalPlans(t *testing.T) {
	a := scanPlan(plan.OpSeqScan, "users", 100, 5000)
	b := scanPlan(plan.OpSeqScan, "users", 100, 5000)

	cmp := &Comparator{}
	result := cmp.Compare(a, b)

	if result.Summary.CostDir != Unchanged {
		t.Errorf("cost direction = %v, want unchanged", result.Summary.CostDir)
	}
	if result.Summary.Verdict != "Plans are equivalent" {
		t.Errorf("verdict = %q", result.Summary.Verdict)
	}
	if n := result.Summary.NodesAdded + result.Summary.NodesRemoved +
		result.Summary.NodesModified + result.Summary.NodesTypeChanged; n != 0 {
		t.Errorf("counted %d changes on identical plans", n)
	}
	if len(result.Deltas) != 1 || result.Deltas[0].ChangeType != NoChange {
		t.Errorf("deltas = %+v", result.Deltas)
	}
}

func TestCompareCheaperPlan(t *testing.T) {
	old := scanPlan(plan.OpSeqScan, "users", 200, 10000)
	new := scanPlan(plan.OpIndexScan, "users", 8, 10)

	cmp := &Comparator{}
	result := cmp.Compare(old, new)

	if result.Summary.CostDir != Improved {
		t.Errorf("cost direction = %v, want improved", result.Summary.CostDir)
	}
	if result.Summary.Verdict != "New plan is cheaper" {
		t.Errorf("verdict = %q", result.Summary.Verdict)
	}
	if result.Summary.NodesTypeChanged != 1 {
		t.Errorf("type changes = %d, want 1", result.Summary.NodesTypeChanged)
	}

	d := result.Deltas[0]
	if d.ChangeType != TypeChanged || d.OldOperation != "Seq Scan" || d.NewOperation != "Index Scan" {
		t.Errorf("delta = %+v", d)
	}
}

func TestCompareRegressedPlan(t *testing.T) {
	old := scanPlan(plan.OpIndexScan, "users", 8, 10)
	new := scanPlan(plan.OpIndexScan, "users", 80, 10)

	cmp := &Comparator{}
	result := cmp.Compare(old, new)

	if result.Summary.CostDir != Regressed {
		t.Errorf("cost direction = %v, want regressed", result.Summary.CostDir)
	}
	if result.Summary.Verdict != "New plan is more expensive" {
		t.Errorf("verdict = %q", result.Summary.Verdict)
	}
	if result.Summary.NodesModified != 1 {
		t.Errorf("modified = %d, want 1", result.Summary.NodesModified)
	}
}

func TestCompareAddedAndRemovedNodes(t *testing.T) {
	old := &plan.ExecutionPlan{
		TotalCost: 100,
		Operations: []*plan.PlanNode{{
			Type: plan.OpNestedLoop, TotalCost: 100, HasCost: true,
			Children: []*plan.PlanNode{
				{Type: plan.OpSeqScan, Table: "a", TotalCost: 40, HasCost: true},
			},
		}},
	}
	new := &plan.ExecutionPlan{
		TotalCost: 100,
		Operations: []*plan.PlanNode{{
			Type: plan.OpNestedLoop, TotalCost: 100, HasCost: true,
			Children: []*plan.PlanNode{
				{Type: plan.OpSeqScan, Table: "a", TotalCost: 40, HasCost: true},
				{Type: plan.OpIndexScan, Table: "b", TotalCost: 10, HasCost: true},
			},
		}},
	}

	cmp := &Comparator{}
	result := cmp.Compare(old, new)

	if result.Summary.NodesAdded != 1 {
		t.Errorf("added = %d, want 1", result.Summary.NodesAdded)
	}

	reversed := cmp.Compare(new, old)
	if reversed.Summary.NodesRemoved != 1 {
		t.Errorf("removed = %d, want 1", reversed.Summary.NodesRemoved)
	}
}

func TestCompareShapeChangeWithSameCost(t *testing.T) {
	old := scanPlan(plan.OpSeqScan, "users", 100, 500)
	new := &plan.ExecutionPlan{
		TotalCost: 100,
		Operations: []*plan.PlanNode{
			{Type: plan.OpSeqScan, Table: "users", TotalCost: 100, HasCost: true, PlanRows: 500},
			{Type: plan.OpSort, TotalCost: 10, HasCost: true, PlanRows: 500},
		},
	}

	cmp := &Comparator{}
	result := cmp.Compare(old, new)

	if result.Summary.Verdict != "Plan shape changed with comparable cost" {
		t.Errorf("verdict = %q", result.Summary.Verdict)
	}
}

func TestCustomThreshold(t *testing.T) {
	old := scanPlan(plan.OpSeqScan, "users", 100, 500)
	new := scanPlan(plan.OpSeqScan, "users", 103, 500)

	loose := &Comparator{Threshold: 5}
	if dir := loose.Compare(old, new).Summary.CostDir; dir != Unchanged {
		t.Errorf("3%% under a 5%% threshold should be unchanged, got %v", dir)
	}

	strict := &Comparator{Threshold: 0.5}
	if dir := strict.Compare(old, new).Summary.CostDir; dir != Regressed {
		t.Errorf("3%% over a 0.5%% threshold should be regressed, got %v", dir)
	}
}

func TestPctChange(t *testing.T) {
	if got := pctChange(100, 150); got != 50 {
		t.Errorf("pctChange(100, 150) = %v, want 50", got)
	}
	if got := pctChange(0, 0); got != 0 {
		t.Errorf("pctChange(0, 0) = %v, want 0", got)
	}
	if got := pctChange(0, 10); got != 100 {
		t.Errorf("pctChange(0, 10) = %v, want 100", got)
	}
}
