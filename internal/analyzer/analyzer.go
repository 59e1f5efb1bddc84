// Package analyzer walks a parsed execution plan and reports
// inefficient operators as issues. It never mutates the plan.
package analyzer

import (
	"fmt"

	"github.com/jacobarthurs/sqladvisor/internal/issue"
	"github.com/jacobarthurs/sqladvisor/internal/plan"
)

// Analyze visits every node of the plan exactly once, in discovery
// order, and applies the default rules. When any sequential scans were
// seen it appends one aggregate index-opportunity note.
func Analyze(p *plan.ExecutionPlan) []issue.Issue {
	var issues []issue.Issue
	seqScans := 0

	for _, root := range p.Operations {
		walkTree(root, defaultRules, &issues, &seqScans)
	}

	for _, row := range p.Rows {
		rowIssues := analyzeRow(row)
		for _, iss := range rowIssues {
			if iss.Category == issue.CategorySeqScan {
				seqScans++
			}
		}
		issues = append(issues, rowIssues...)
	}

	if seqScans > 0 {
		issues = append(issues, issue.Issue{
			Category:       issue.CategoryIndexOpportunity,
			Severity:       issue.Info,
			Message:        fmt.Sprintf("%d sequential scan(s) in this plan", seqScans),
			Recommendation: "Review the scanned tables for missing or unused indexes",
		})
	}

	return issues
}

func walkTree(node *plan.PlanNode, rules []Rule, issues *[]issue.Issue, seqScans *int) {
	if node.Type == plan.OpSeqScan {
		*seqScans++
	}
	for _, rule := range rules {
		*issues = append(*issues, rule(node)...)
	}
	for _, child := range node.Children {
		walkTree(child, rules, issues, seqScans)
	}
}
