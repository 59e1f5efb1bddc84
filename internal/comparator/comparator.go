// Package comparator diffs two parsed execution plans node-by-node,
// reporting structural changes and cost movement.
package comparator

import (
	"github.com/jacobarthurs/sqladvisor/internal/plan"
)

type Comparator struct {
	Threshold float64
}

func (c *Comparator) Compare(old, new *plan.ExecutionPlan) ComparisonResult {
	summary := Summary{
		OldTotalCost: old.TotalCost,
		NewTotalCost: new.TotalCost,
		CostDelta:    new.TotalCost - old.TotalCost,
		CostPct:      pctChange(old.TotalCost, new.TotalCost),
		CostDir:      c.direction(old.TotalCost, new.TotalCost),

		OldExecutionTime: old.ExecutionTimeMs,
		NewExecutionTime: new.ExecutionTimeMs,
		TimePct:          pctChange(old.ExecutionTimeMs, new.ExecutionTimeMs),
		TimeDir:          c.direction(old.ExecutionTimeMs, new.ExecutionTimeMs),
	}

	deltas := c.diffChildren(old.Operations, new.Operations)
	for i := range deltas {
		countChanges(&deltas[i], &summary)
	}

	summary.Verdict = verdict(summary)

	return ComparisonResult{
		Deltas:  deltas,
		Summary: summary,
	}
}

func countChanges(delta *NodeDelta, summary *Summary) {
	switch delta.ChangeType {
	case Added:
		summary.NodesAdded++
	case Removed:
		summary.NodesRemoved++
	case Modified:
		summary.NodesModified++
	case TypeChanged:
		summary.NodesTypeChanged++
	}

	for i := range delta.Children {
		countChanges(&delta.Children[i], summary)
	}
}

func verdict(s Summary) string {
	switch {
	case s.CostDir == Improved:
		return "New plan is cheaper"
	case s.CostDir == Regressed:
		return "New plan is more expensive"
	case s.NodesAdded+s.NodesRemoved+s.NodesTypeChanged > 0:
		return "Plan shape changed with comparable cost"
	default:
		return "Plans are equivalent"
	}
}
