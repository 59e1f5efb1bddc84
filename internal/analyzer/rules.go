package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacobarthurs/sqladvisor/internal/issue"
	"github.com/jacobarthurs/sqladvisor/internal/plan"
)

// Fixed policy thresholds. Tuning them is a data change, not a logic
// change.
const (
	SeqScanHighRows     = 10000
	ExpensiveSortRows   = 1000
	NestedLoopHighRows  = 1000
	HashJoinCostCeiling = 10000.0
)

type Rule func(node *plan.PlanNode) []issue.Issue

var defaultRules = []Rule{
	checkSeqScan,
	checkExpensiveSort,
	checkNestedLoop,
	checkHashJoin,
}

func checkSeqScan(node *plan.PlanNode) []issue.Issue {
	if node.Type != plan.OpSeqScan {
		return nil
	}

	severity := issue.Medium
	if node.PlanRows > SeqScanHighRows {
		severity = issue.High
	}

	return []issue.Issue{{
		Category:       issue.CategorySeqScan,
		Severity:       severity,
		Message:        fmt.Sprintf("Sequential scan on %s reads every row (estimated %d)", tableLabel(node), node.PlanRows),
		Recommendation: "Add an index covering the scan's filter or join condition",
	}}
}

func checkExpensiveSort(node *plan.PlanNode) []issue.Issue {
	if node.Type != plan.OpSort || node.PlanRows <= ExpensiveSortRows {
		return nil
	}
	return []issue.Issue{{
		Category:       issue.CategoryExpensiveSort,
		Severity:       issue.Medium,
		Message:        fmt.Sprintf("Sort over an estimated %d rows may spill to disk", node.PlanRows),
		Recommendation: "Provide the order through an index, or reduce the row count before sorting",
	}}
}

func checkNestedLoop(node *plan.PlanNode) []issue.Issue {
	if node.Type != plan.OpNestedLoop || node.PlanRows <= NestedLoopHighRows {
		return nil
	}
	return []issue.Issue{{
		Category:       issue.CategoryExpensiveNestedLoop,
		Severity:       issue.Medium,
		Message:        fmt.Sprintf("Nested loop join over an estimated %d rows re-executes its inner side per row", node.PlanRows),
		Recommendation: "Verify the inner side is indexed, or let the planner pick a hash or merge join",
	}}
}

func checkHashJoin(node *plan.PlanNode) []issue.Issue {
	if node.Type != plan.OpHashJoin || !node.HasCost || node.TotalCost <= HashJoinCostCeiling {
		return nil
	}
	return []issue.Issue{{
		Category:       issue.CategoryExpensiveHashJoin,
		Severity:       issue.Low,
		Message:        fmt.Sprintf("Hash join with estimated cost %.2f builds a large in-memory table", node.TotalCost),
		Recommendation: "Reduce the build side with selective predicates, or raise work_mem",
	}}
}

// Tabular (MySQL) plans carry no operator tree; these rules read the
// EXPLAIN columns instead.
func analyzeRow(row plan.ExplainRow) []issue.Issue {
	var issues []issue.Issue

	if strings.EqualFold(row["type"], "ALL") {
		rows, _ := strconv.ParseInt(row["rows"], 10, 64)
		severity := issue.Medium
		if rows > SeqScanHighRows {
			severity = issue.High
		}
		table := row["table"]
		if table == "" {
			table = "unknown table"
		}
		issues = append(issues, issue.Issue{
			Category:       issue.CategorySeqScan,
			Severity:       severity,
			Message:        fmt.Sprintf("Full table scan on %s (access type ALL, estimated %d rows)", table, rows),
			Recommendation: "Add an index covering the scan's filter or join condition",
		})
	}

	extra := row["Extra"]
	if strings.Contains(extra, "Using filesort") {
		issues = append(issues, issue.Issue{
			Category:       issue.CategoryFilesort,
			Severity:       issue.Medium,
			Message:        "Query sorts without an index (Using filesort)",
			Recommendation: "Add an index matching the ORDER BY columns",
		})
	}
	if strings.Contains(extra, "Using temporary") {
		issues = append(issues, issue.Issue{
			Category:       issue.CategoryTemporaryTable,
			Severity:       issue.Low,
			Message:        "Query materializes an intermediate temporary table (Using temporary)",
			Recommendation: "Simplify GROUP BY/ORDER BY combinations that force materialization",
		})
	}

	return issues
}

func tableLabel(node *plan.PlanNode) string {
	if node.Table != "" {
		return node.Table
	}
	return "unknown table"
}
