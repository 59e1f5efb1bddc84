package comparator

import (
	"math"

	"github.com/jacobarthurs/sqladvisor/internal/plan"
)

func (c *Comparator) diffNodes(old, new *plan.PlanNode) NodeDelta {
	delta := NodeDelta{
		Table: coalesce(old.Table, new.Table),
	}

	if old.Type != new.Type {
		delta.ChangeType = TypeChanged
		delta.OldOperation = string(old.Type)
		delta.NewOperation = string(new.Type)
		delta.Operation = string(new.Type)
	} else {
		delta.ChangeType = Modified
		delta.Operation = string(old.Type)
	}

	delta.OldCost = old.TotalCost
	delta.NewCost = new.TotalCost
	delta.CostDelta = new.TotalCost - old.TotalCost
	delta.CostPct = pctChange(old.TotalCost, new.TotalCost)
	delta.CostDir = c.direction(old.TotalCost, new.TotalCost)

	delta.OldRows = old.PlanRows
	delta.NewRows = new.PlanRows
	delta.RowsDelta = new.PlanRows - old.PlanRows
	delta.RowsPct = pctChange(float64(old.PlanRows), float64(new.PlanRows))

	delta.OldTime = actualTime(old)
	delta.NewTime = actualTime(new)
	delta.TimePct = pctChange(delta.OldTime, delta.NewTime)
	delta.TimeDir = c.direction(delta.OldTime, delta.NewTime)

	if delta.ChangeType == Modified && !c.isSignificant(delta) {
		delta.ChangeType = NoChange
	}

	delta.Children = c.diffChildren(old.Children, new.Children)

	return delta
}

func (c *Comparator) diffChildren(oldKids, newKids []*plan.PlanNode) []NodeDelta {
	var deltas []NodeDelta

	for i := 0; i < max(len(oldKids), len(newKids)); i++ {
		if i >= len(oldKids) {
			deltas = append(deltas, addedNode(newKids[i]))
			continue
		}
		if i >= len(newKids) {
			deltas = append(deltas, removedNode(oldKids[i]))
			continue
		}
		deltas = append(deltas, c.diffNodes(oldKids[i], newKids[i]))
	}

	return deltas
}

func addedNode(node *plan.PlanNode) NodeDelta {
	delta := NodeDelta{
		ChangeType: Added,
		Operation:  string(node.Type),
		Table:      node.Table,
		NewCost:    node.TotalCost,
		NewRows:    node.PlanRows,
		NewTime:    actualTime(node),
	}

	for _, child := range node.Children {
		delta.Children = append(delta.Children, addedNode(child))
	}

	return delta
}

func removedNode(node *plan.PlanNode) NodeDelta {
	delta := NodeDelta{
		ChangeType: Removed,
		Operation:  string(node.Type),
		Table:      node.Table,
		OldCost:    node.TotalCost,
		OldRows:    node.PlanRows,
		OldTime:    actualTime(node),
	}

	for _, child := range node.Children {
		delta.Children = append(delta.Children, removedNode(child))
	}

	return delta
}

func (c *Comparator) isSignificant(d NodeDelta) bool {
	if math.Abs(d.CostPct) > c.threshold() {
		return true
	}
	if math.Abs(d.TimePct) > c.threshold() {
		return true
	}
	if d.OldRows != d.NewRows {
		return true
	}
	return false
}

func (c *Comparator) direction(old, new float64) Direction {
	if math.Abs(pctChange(old, new)) < c.threshold() {
		return Unchanged
	}
	if new < old {
		return Improved
	}
	return Regressed
}

func (c *Comparator) threshold() float64 {
	if c.Threshold > 0 {
		return c.Threshold
	}
	return SignificanceThresholdPct
}

func actualTime(node *plan.PlanNode) float64 {
	if node.Actual == nil {
		return 0
	}
	return node.Actual.TotalTimeMs
}

func pctChange(old, new float64) float64 {
	if old == 0 {
		if new == 0 {
			return 0
		}
		return 100
	}
	return ((new - old) / old) * 100
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
