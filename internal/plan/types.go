package plan

import "github.com/jacobarthurs/sqladvisor/internal/dialect"

// OpType identifies one operator in an execution plan.
type OpType string

const (
	OpSeqScan      OpType = "Seq Scan"
	OpIndexScan    OpType = "Index Scan"
	OpBitmapScan   OpType = "Bitmap Scan"
	OpNestedLoop   OpType = "Nested Loop"
	OpHashJoin     OpType = "Hash Join"
	OpMergeJoin    OpType = "Merge Join"
	OpHash         OpType = "Hash"
	OpSort         OpType = "Sort"
	OpAggregate    OpType = "Aggregate"
	OpLimit        OpType = "Limit"
	OpAppend       OpType = "Append"
	OpFunctionScan OpType = "Function Scan"
	OpCteScan      OpType = "CTE Scan"
	OpUnknown      OpType = "Unknown"
)

// ActualStats holds runtime figures, present only when the plan text
// was produced with an analyze option. Loops is at least 1.
type ActualStats struct {
	StartupTimeMs float64
	TotalTimeMs   float64
	Rows          int64
	Loops         int64
}

// PlanNode is one operator in a parsed plan. Indent records the
// source-text nesting depth used to reconstruct the tree; a node
// exclusively owns its children.
type PlanNode struct {
	Type   OpType
	Table  string
	Indent int

	// Estimates from the (cost=START..END rows=R width=W) fragment.
	StartupCost float64
	TotalCost   float64
	HasCost     bool
	PlanRows    int64
	PlanWidth   int

	Actual *ActualStats

	Children []*PlanNode
}

// ExplainRow is one record of a tabular (MySQL-style) EXPLAIN, keyed
// by header column name.
type ExplainRow map[string]string

// ExecutionPlan is the top-level parse result. PostgreSQL plans
// populate Operations (a forest, almost always a single root); MySQL
// tabular plans populate Rows. The two shapes are not coerced into one.
type ExecutionPlan struct {
	Dialect    dialect.Dialect
	Operations []*PlanNode
	Rows       []ExplainRow

	// Aggregates taken from the first root when derivable.
	TotalCost       float64
	ExecutionTimeMs float64
}
