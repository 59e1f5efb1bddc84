// Package output renders reports for the terminal. Markdown is the
// default; JSON is for piping into other tools.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacobarthurs/sqladvisor/internal/comparator"
	"github.com/jacobarthurs/sqladvisor/internal/issue"
	"github.com/jacobarthurs/sqladvisor/internal/report"
)

// mdWriter wraps an io.Writer and remembers the first write error so
// render code can stay linear.
type mdWriter struct {
	w   io.Writer
	err error
}

func (m *mdWriter) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

func (m *mdWriter) line(s string) {
	m.printf("%s\n", s)
}

// RenderMarkdown writes the full report in Markdown form.
func RenderMarkdown(w io.Writer, r report.Report) error {
	m := &mdWriter{w: w}

	m.line("# SQL Analysis Report")
	m.line("")
	m.printf("**Dialect:** %s\n", r.Dialect)
	m.printf("**Analyzed:** %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if r.Mode == report.ModePlan && r.TotalCost > 0 {
		m.printf("**Total Cost:** %.2f\n", r.TotalCost)
	}
	if r.Mode == report.ModePlan && r.ExecutionTimeMs > 0 {
		m.printf("**Execution Time:** %.3f ms\n", r.ExecutionTimeMs)
	}
	m.line("")

	renderSummary(m, r.Summary)
	renderIssues(m, r.Issues)
	renderSuggestions(m, r.Issues)

	if r.Mode == report.ModeRewrite && r.RewrittenQuery != "" {
		m.line("## Optimized Query")
		m.line("")
		m.line("```sql")
		m.line(strings.TrimRight(r.RewrittenQuery, "\n"))
		m.line("```")
		m.line("")
	}

	return m.err
}

func renderSummary(m *mdWriter, s report.Summary) {
	m.line("## Summary")
	m.line("")
	m.line("| Metric | Count |")
	m.line("| --- | --- |")
	m.printf("| Total Issues | %d |\n", s.TotalIssues)
	m.printf("| High | %d |\n", s.High)
	m.printf("| Medium | %d |\n", s.Medium)
	m.printf("| Low | %d |\n", s.Low)
	m.line("")
}

func renderIssues(m *mdWriter, issues []issue.Issue) {
	m.line("## Issues Found")
	m.line("")

	if len(issues) == 0 {
		m.line("No issues detected.")
		m.line("")
		return
	}

	for i, iss := range issues {
		m.printf("### %d. %s (%s)\n", i+1, iss.Category, strings.ToUpper(iss.Severity.String()))
		m.line("")
		m.line(iss.Message)
		m.line("")
	}
}

func renderSuggestions(m *mdWriter, issues []issue.Issue) {
	var recs []string
	for _, iss := range issues {
		if iss.Recommendation != "" {
			recs = append(recs, iss.Recommendation)
		}
	}
	if len(recs) == 0 {
		return
	}

	m.line("## Suggestions")
	m.line("")
	for i, rec := range recs {
		m.printf("%d. %s\n", i+1, rec)
	}
	m.line("")
}

// RenderComparison writes a plan-to-plan diff below whatever report
// sections preceded it.
func RenderComparison(w io.Writer, result comparator.ComparisonResult) error {
	m := &mdWriter{w: w}

	m.line("## Plan Comparison")
	m.line("")
	m.printf("**Verdict:** %s\n", result.Summary.Verdict)
	m.line("")
	m.line("| Metric | Before | After | Change |")
	m.line("| --- | --- | --- | --- |")
	m.printf("| Total Cost | %.2f | %.2f | %+.1f%% (%s) |\n",
		result.Summary.OldTotalCost, result.Summary.NewTotalCost,
		result.Summary.CostPct, result.Summary.CostDir)
	if result.Summary.OldExecutionTime > 0 || result.Summary.NewExecutionTime > 0 {
		m.printf("| Execution Time | %.3f ms | %.3f ms | %+.1f%% (%s) |\n",
			result.Summary.OldExecutionTime, result.Summary.NewExecutionTime,
			result.Summary.TimePct, result.Summary.TimeDir)
	}
	m.line("")

	if changed := result.Summary.NodesAdded + result.Summary.NodesRemoved +
		result.Summary.NodesModified + result.Summary.NodesTypeChanged; changed > 0 {
		m.line("### Node Changes")
		m.line("")
		for _, delta := range result.Deltas {
			renderDelta(m, delta, 0)
		}
		m.line("")
	}

	return m.err
}

func renderDelta(m *mdWriter, d comparator.NodeDelta, depth int) {
	indent := strings.Repeat("  ", depth)

	switch d.ChangeType {
	case comparator.Added:
		m.printf("%s- **added** %s%s (cost %.2f)\n", indent, d.Operation, tableSuffix(d.Table), d.NewCost)
	case comparator.Removed:
		m.printf("%s- **removed** %s%s (cost %.2f)\n", indent, d.Operation, tableSuffix(d.Table), d.OldCost)
	case comparator.TypeChanged:
		m.printf("%s- **%s → %s**%s (cost %.2f → %.2f)\n", indent,
			d.OldOperation, d.NewOperation, tableSuffix(d.Table), d.OldCost, d.NewCost)
	case comparator.Modified:
		m.printf("%s- %s%s: cost %.2f → %.2f (%+.1f%%), rows %d → %d\n", indent,
			d.Operation, tableSuffix(d.Table), d.OldCost, d.NewCost, d.CostPct, d.OldRows, d.NewRows)
	default:
		m.printf("%s- %s%s: unchanged\n", indent, d.Operation, tableSuffix(d.Table))
	}

	for _, child := range d.Children {
		renderDelta(m, child, depth+1)
	}
}

func tableSuffix(table string) string {
	if table == "" {
		return ""
	}
	return " on " + table
}
