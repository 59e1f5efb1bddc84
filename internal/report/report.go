// Package report aggregates analyzer findings into the final,
// mode-stamped report object.
package report

import (
	"time"

	"github.com/jacobarthurs/sqladvisor/internal/dialect"
	"github.com/jacobarthurs/sqladvisor/internal/issue"
)

// Mode names which analysis path produced the report.
type Mode string

const (
	ModeStatic  Mode = "static"
	ModePlan    Mode = "plan"
	ModeRewrite Mode = "rewrite"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeStatic, ModePlan, ModeRewrite:
		return true
	}
	return false
}

// Summary counts issues by severity. High+Medium+Low+Info always
// equals TotalIssues.
type Summary struct {
	TotalIssues int `json:"total_issues"`
	High        int `json:"high"`
	Medium      int `json:"medium"`
	Low         int `json:"low"`
	Info        int `json:"info"`
}

// Extra carries the mode-specific fields a report may include.
type Extra struct {
	// Rewrite mode; RewrittenQuery equals OriginalQuery when no safe
	// rewrite was found.
	OriginalQuery  string
	RewrittenQuery string

	// Plan mode, when derivable from the top node.
	TotalCost       float64
	ExecutionTimeMs float64
}

// Report is the synthesized output. Issues keep discovery order; the
// core never re-sorts them.
type Report struct {
	Mode        Mode            `json:"mode"`
	Dialect     dialect.Dialect `json:"dialect"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     Summary         `json:"summary"`
	Issues      []issue.Issue   `json:"issues"`

	OriginalQuery  string `json:"original_query,omitempty"`
	RewrittenQuery string `json:"rewritten_query,omitempty"`

	TotalCost       float64 `json:"total_cost,omitempty"`
	ExecutionTimeMs float64 `json:"execution_time_ms,omitempty"`
}

// Build computes the severity summary and stamps the report.
// Deterministic apart from the GeneratedAt timestamp.
func Build(issues []issue.Issue, mode Mode, d dialect.Dialect, extra Extra) Report {
	summary := Summary{TotalIssues: len(issues)}
	for _, iss := range issues {
		switch iss.Severity {
		case issue.High:
			summary.High++
		case issue.Medium:
			summary.Medium++
		case issue.Low:
			summary.Low++
		case issue.Info:
			summary.Info++
		}
	}

	return Report{
		Mode:            mode,
		Dialect:         d,
		GeneratedAt:     time.Now().UTC(),
		Summary:         summary,
		Issues:          issues,
		OriginalQuery:   extra.OriginalQuery,
		RewrittenQuery:  extra.RewrittenQuery,
		TotalCost:       extra.TotalCost,
		ExecutionTimeMs: extra.ExecutionTimeMs,
	}
}
