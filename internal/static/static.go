// Package static scans raw SQL text for known anti-patterns. It is a
// pattern matcher, not a SQL parser: malformed input degrades to "no
// match", never to an error. Checks run over the whole input, so a
// multi-statement batch is scored as one query.
package static

import (
	"regexp"
	"strings"

	"github.com/jacobarthurs/sqladvisor/internal/dialect"
	"github.com/jacobarthurs/sqladvisor/internal/issue"
)

// patternCheck is one data-driven check. Each regex match emits one
// issue unless once is set, in which case the first match stands for
// the whole query.
type patternCheck struct {
	re             *regexp.Regexp
	category       issue.Category
	severity       issue.Severity
	message        string
	recommendation string
	once           bool
}

var patternChecks = []patternCheck{
	{
		re:             regexp.MustCompile(`(?i)\bSELECT\s+\*`),
		category:       issue.CategorySelectStar,
		severity:       issue.Medium,
		message:        "SELECT * retrieves every column, including ones the query does not need",
		recommendation: "List only the columns the query actually uses",
	},
	{
		re:             regexp.MustCompile(`(?i)\b(?:LOWER|UPPER|TRIM|DATE|EXTRACT|CAST|CONVERT)\s*\(\s*[A-Za-z_][\w."]*[^()]*\)\s*(?:=|!=|<>|<=|>=|<|>|\s*I?LIKE\b|\s*IN\b)`),
		category:       issue.CategoryFunctionOnColumn,
		severity:       issue.Medium,
		message:        "Function call wraps a column in a predicate, defeating any index on that column",
		recommendation: "Rewrite the predicate so the bare column is compared, or add an expression index",
	},
	{
		re:             regexp.MustCompile(`(?i)\bI?LIKE\s+'[%_]`),
		category:       issue.CategoryLikeLeadingWildcard,
		severity:       issue.High,
		message:        "LIKE pattern starts with a wildcard, which cannot use a B-tree index",
		recommendation: "Anchor the pattern, or use full-text search or a trigram index",
	},
	{
		re:             regexp.MustCompile(`(?is)\bWHERE\b.*?\bOR\b`),
		category:       issue.CategoryOrConditions,
		severity:       issue.Medium,
		message:        "WHERE clause contains OR, which often prevents efficient index use",
		recommendation: "Consider rewriting OR chains as IN lists or UNION of indexed predicates",
		once:           true,
	},
	{
		re:             regexp.MustCompile(`(?is)\bSELECT\s+DISTINCT\b.*\bJOIN\b`),
		category:       issue.CategoryDistinctWithJoin,
		severity:       issue.Low,
		message:        "SELECT DISTINCT combined with JOIN may be hiding a fan-out from the join",
		recommendation: "Verify the join conditions; DISTINCT as deduplication is often a join bug",
		once:           true,
	},
	{
		re:             regexp.MustCompile(`(?i)\bORDER\s+BY\s+RAND(?:OM)?\s*\(`),
		category:       issue.CategoryOrderByRandom,
		severity:       issue.High,
		message:        "ORDER BY RANDOM() sorts the entire result set just to pick random rows",
		recommendation: "Use TABLESAMPLE or an indexed random key instead of sorting by a random value",
		once:           true,
	},
	{
		re:             regexp.MustCompile(`(?i)\bNOT\s+IN\s*\(`),
		category:       issue.CategoryNotInWithNull,
		severity:       issue.High,
		message:        "NOT IN returns no rows if the subquery or list yields a NULL",
		recommendation: "Use NOT EXISTS, which has well-defined NULL semantics and often a better plan",
	},
}

// structuralCheck covers the patterns that need more context than a
// single regex match.
type structuralCheck func(sql string) []issue.Issue

var structuralChecks = []structuralCheck{
	checkCorrelatedSubquery,
	checkPotentialNPlusOne,
	checkLimitWithoutOrder,
	checkImplicitTypeConversion,
}

// Analyze runs every check in order over the raw SQL text. Pure
// function of its inputs; repeated calls yield identical issue lists.
func Analyze(sql string, d dialect.Dialect) []issue.Issue {
	var issues []issue.Issue

	for _, c := range patternChecks {
		locs := c.re.FindAllStringIndex(sql, -1)
		if locs == nil {
			continue
		}
		if c.once {
			locs = locs[:1]
		}
		for _, loc := range locs {
			issues = append(issues, issue.Issue{
				Category:       c.category,
				Severity:       c.severity,
				Message:        c.message,
				Recommendation: c.recommendation,
				Location:       loc[0],
			})
		}
	}

	for _, check := range structuralChecks {
		issues = append(issues, check(sql)...)
	}

	return issues
}

var (
	subqueryRe      = regexp.MustCompile(`(?is)\(\s*SELECT\b[^()]*\)`)
	whereRe         = regexp.MustCompile(`(?i)\bWHERE\b`)
	qualifiedColRe  = regexp.MustCompile(`([A-Za-z_]\w*)\.[A-Za-z_]\w*`)
	selectFromRe    = regexp.MustCompile(`(?is)\bSELECT\b.*?\bFROM\b`)
	joinRe          = regexp.MustCompile(`(?i)\bJOIN\b`)
	limitRe         = regexp.MustCompile(`(?i)\bLIMIT\b`)
	orderByRe       = regexp.MustCompile(`(?i)\bORDER\s+BY\b`)
	quotedNumericRe = regexp.MustCompile(`=\s*'[0-9]+(?:\.[0-9]+)?'`)
)

// A subquery is considered correlated when its WHERE clause references
// a qualified column whose qualifier is not introduced inside the
// subquery but does appear in the outer text. Deliberately heuristic.
func checkCorrelatedSubquery(sql string) []issue.Issue {
	var issues []issue.Issue

	for _, loc := range subqueryRe.FindAllStringIndex(sql, -1) {
		body := sql[loc[0]:loc[1]]
		wIdx := whereRe.FindStringIndex(body)
		if wIdx == nil {
			continue
		}
		outer := sql[:loc[0]] + sql[loc[1]:]

		for _, m := range qualifiedColRe.FindAllStringSubmatch(body[wIdx[1]:], -1) {
			qualifier := m[1]
			if wordInFromClause(body, qualifier) {
				continue
			}
			if containsWord(outer, qualifier) {
				issues = append(issues, issue.Issue{
					Category:       issue.CategoryCorrelatedSubquery,
					Severity:       issue.Medium,
					Message:        "Subquery references a column from the enclosing query, forcing re-evaluation per outer row",
					Recommendation: "Rewrite the correlated subquery as a JOIN or a lateral join",
					Location:       loc[0],
				})
				break
			}
		}
	}

	return issues
}

// Multiple SELECT…FROM pairs without a JOIN usually means the caller
// issues one query per row. Known to false-positive on multi-statement
// batches; the lenient behavior is intentional.
func checkPotentialNPlusOne(sql string) []issue.Issue {
	pairs := selectFromRe.FindAllStringIndex(sql, -1)
	if len(pairs) <= 1 || joinRe.MatchString(sql) {
		return nil
	}
	return []issue.Issue{{
		Category:       issue.CategoryPotentialNPlusOne,
		Severity:       issue.Medium,
		Message:        "Multiple SELECT statements without a JOIN suggest an N+1 query pattern",
		Recommendation: "Combine the lookups into one query with a JOIN or an IN list",
	}}
}

func checkLimitWithoutOrder(sql string) []issue.Issue {
	if !limitRe.MatchString(sql) || orderByRe.MatchString(sql) {
		return nil
	}
	return []issue.Issue{{
		Category:       issue.CategoryLimitWithoutOrder,
		Severity:       issue.Low,
		Message:        "LIMIT without ORDER BY returns an arbitrary subset of rows",
		Recommendation: "Add an ORDER BY so pagination is deterministic",
	}}
}

func checkImplicitTypeConversion(sql string) []issue.Issue {
	wIdx := whereRe.FindStringIndex(sql)
	if wIdx == nil {
		return nil
	}

	var issues []issue.Issue
	for _, loc := range quotedNumericRe.FindAllStringIndex(sql[wIdx[1]:], -1) {
		issues = append(issues, issue.Issue{
			Category:       issue.CategoryImplicitTypeConversion,
			Severity:       issue.Medium,
			Message:        "Numeric value compared as a quoted string may force an implicit type conversion",
			Recommendation: "Match the literal type to the column type so the index stays usable",
			Location:       wIdx[1] + loc[0],
		})
	}
	return issues
}

func wordInFromClause(body, word string) bool {
	fromIdx := strings.Index(strings.ToUpper(body), "FROM")
	if fromIdx < 0 {
		return false
	}
	segment := body[fromIdx:]
	if wIdx := whereRe.FindStringIndex(segment); wIdx != nil {
		segment = segment[:wIdx[0]]
	}
	return containsWord(segment, word)
}

func containsWord(s, word string) bool {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
