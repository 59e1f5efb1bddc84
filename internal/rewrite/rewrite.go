// Package rewrite proposes textual rewrites for a SQL query. Every
// suggestion is advisory except the missing-WHERE guard, which is the
// only rewrite that cannot change query meaning: a deliberately false
// predicate fails closed even if the caller ignores the marker.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jacobarthurs/sqladvisor/internal/dialect"
	"github.com/jacobarthurs/sqladvisor/internal/issue"
	"github.com/jacobarthurs/sqladvisor/internal/static"
)

// WhereGuard is the placeholder predicate substituted into UPDATE and
// DELETE statements that have no WHERE clause.
const WhereGuard = "WHERE 1=0 -- ADD CONDITION"

// Change is one rewrite opportunity. Before/After are illustrative
// text fragments; only MISSING_WHERE is actually applied to the
// returned query text.
type Change struct {
	Category issue.Category
	Severity issue.Severity
	Before   string
	After    string
	Reason   string
}

// Issue converts a change into the shared finding shape for reports.
func (c Change) Issue() issue.Issue {
	rec := ""
	if c.Before != "" && c.After != "" {
		rec = fmt.Sprintf("Replace `%s` with `%s`", c.Before, c.After)
	}
	return issue.Issue{
		Category:       c.Category,
		Severity:       c.Severity,
		Message:        c.Reason,
		Recommendation: rec,
	}
}

var (
	updateDeleteRe = regexp.MustCompile(`(?is)^\s*(?:UPDATE|DELETE)\b`)
	whereRe        = regexp.MustCompile(`(?i)\bWHERE\b`)
	selectRe       = regexp.MustCompile(`(?is)^\s*(?:WITH\b.*?\)\s*)?SELECT\b`)
	limitRe        = regexp.MustCompile(`(?i)\bLIMIT\b`)
	joinRe         = regexp.MustCompile(`(?i)\bJOIN\b`)
	asAliasRe      = regexp.MustCompile(`(?i)\bAS\s+[A-Za-z_]\w*`)
	orderByColsRe  = regexp.MustCompile(`(?i)\bORDER\s+BY\s+([\w.]+(?:\s*,\s*[\w.]+)*)`)
	selectStarRe   = regexp.MustCompile(`(?i)\bSELECT\s+\*`)
	orSameColRe    = regexp.MustCompile(`(?i)\b([A-Za-z_][\w.]*)\s*=\s*('[^']*'|\d+)\s+OR\s+([A-Za-z_][\w.]*)\s*=\s*('[^']*'|\d+)`)
	unionRe        = regexp.MustCompile(`(?i)\bUNION\b(\s+ALL\b)?`)
	cteRe          = regexp.MustCompile(`(?i)\bWITH\s+([A-Za-z_]\w*)\s+AS\s*(MATERIALIZED\s*)?\(`)
	notInSubRe     = regexp.MustCompile(`(?i)\bNOT\s+IN\s*\(\s*SELECT\b`)
)

// Suggest scans the query and returns the (possibly rewritten) text
// with the list of change records. Pure function of its inputs; the
// aggressive flag gates a second, riskier tier of suggestions.
func Suggest(sql string, d dialect.Dialect, aggressive bool) (string, []Change) {
	var changes []Change

	rewritten := sql
	if updateDeleteRe.MatchString(sql) && !whereRe.MatchString(sql) {
		rewritten = insertWhereGuard(sql)
		changes = append(changes, Change{
			Category: issue.CategoryMissingWhere,
			Severity: issue.High,
			Before:   strings.TrimSpace(sql),
			After:    strings.TrimSpace(rewritten),
			Reason:   "UPDATE/DELETE without a WHERE clause touches every row; a false guard was inserted so the statement fails closed until a real condition is added",
		})
	}

	// The static analyzer's findings seed the advisory tier.
	for _, iss := range static.Analyze(sql, d) {
		switch iss.Category {
		case issue.CategorySelectStar:
			changes = append(changes, Change{
				Category: issue.CategorySelectStarExpansion,
				Severity: issue.Medium,
				Before:   "SELECT *",
				After:    "SELECT <column list>",
				Reason:   "Naming columns avoids transferring data the caller never reads and keeps the query stable across schema changes",
			})
		case issue.CategoryCorrelatedSubquery:
			changes = append(changes, Change{
				Category: issue.CategoryCorrelatedToJoin,
				Severity: issue.Medium,
				Reason:   "A correlated subquery re-runs once per outer row; an equivalent JOIN evaluates once",
			})
		case issue.CategoryNotInWithNull:
			after := "NOT EXISTS (SELECT 1 ...)"
			if !notInSubRe.MatchString(sql) {
				after = "NOT EXISTS or an explicit NULL-safe list"
			}
			changes = append(changes, Change{
				Category: issue.CategoryNotInToNotExists,
				Severity: issue.High,
				Before:   "NOT IN (...)",
				After:    after,
				Reason:   "NOT EXISTS keeps its meaning when the subquery produces NULLs and usually plans as an anti-join",
			})
		}
	}

	if m := orSameColRe.FindStringSubmatch(sql); m != nil && strings.EqualFold(m[1], m[3]) {
		changes = append(changes, Change{
			Category: issue.CategoryOrToIn,
			Severity: issue.Medium,
			Before:   fmt.Sprintf("%s = %s OR %s = %s", m[1], m[2], m[3], m[4]),
			After:    fmt.Sprintf("%s IN (%s, %s)", m[1], m[2], m[4]),
			Reason:   "An IN list over one column lets the planner use a single index range scan",
		})
	}

	if selectRe.MatchString(sql) && !limitRe.MatchString(sql) {
		changes = append(changes, Change{
			Category: issue.CategoryAddLimit,
			Severity: issue.Low,
			Reason:   "Unbounded SELECT can return an arbitrarily large result set; add a LIMIT when the caller only needs a page",
		})
	}

	if joinRe.MatchString(sql) && !asAliasRe.MatchString(sql) {
		changes = append(changes, Change{
			Category: issue.CategoryExplicitAliases,
			Severity: issue.Info,
			Reason:   "Explicit AS aliases on joined tables keep column references unambiguous",
		})
	}

	if m := orderByColsRe.FindStringSubmatch(sql); m != nil {
		changes = append(changes, Change{
			Category: issue.CategoryOrderByIndex,
			Severity: issue.Info,
			Reason:   fmt.Sprintf("Ensure an index covers the ORDER BY columns (%s) so the sort can be skipped", m[1]),
		})
	}

	if whereRe.MatchString(sql) && selectRe.MatchString(sql) && !selectStarRe.MatchString(sql) {
		changes = append(changes, Change{
			Category: issue.CategoryCoveringIndex,
			Severity: issue.Info,
			Reason:   "The select list is explicit; a covering index over the filtered and selected columns could serve this query without heap access",
		})
	}

	if aggressive {
		changes = append(changes, aggressiveChanges(sql, d)...)
	}

	return rewritten, changes
}

// aggressiveChanges holds the higher-risk tier: correct only under
// assumptions the text alone cannot verify.
func aggressiveChanges(sql string, d dialect.Dialect) []Change {
	var changes []Change

	for _, m := range unionRe.FindAllStringSubmatch(sql, -1) {
		if m[1] != "" {
			continue
		}
		changes = append(changes, Change{
			Category: issue.CategoryUnionToUnionAll,
			Severity: issue.Medium,
			Before:   "UNION",
			After:    "UNION ALL",
			Reason:   "UNION deduplicates with a sort or hash; UNION ALL skips that work when the branches cannot overlap",
		})
		break
	}

	if d == dialect.PostgreSQL {
		if m := cteRe.FindStringSubmatch(sql); m != nil && m[2] == "" {
			changes = append(changes, Change{
				Category: issue.CategoryMaterializedCTE,
				Severity: issue.Info,
				Before:   fmt.Sprintf("WITH %s AS (", m[1]),
				After:    fmt.Sprintf("WITH %s AS MATERIALIZED (", m[1]),
				Reason:   "Forcing materialization can help when the CTE is referenced more than once; measure before keeping it",
			})
		}
	}

	return changes
}

// insertWhereGuard appends the guard ahead of any trailing semicolon.
func insertWhereGuard(sql string) string {
	trimmed := strings.TrimRight(sql, " \t\r\n")
	if body, found := strings.CutSuffix(trimmed, ";"); found {
		return strings.TrimRight(body, " \t\r\n") + " " + WhereGuard + ";"
	}
	return trimmed + " " + WhereGuard
}
