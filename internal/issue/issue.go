// Package issue defines the finding model shared by all analyzers.
package issue

import "fmt"

// Severity orders findings by impact: info < low < medium < high.
type Severity int

const (
	Info   Severity = 0
	Low    Severity = 1
	Medium Severity = 2
	High   Severity = 3
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// ParseSeverity rejects anything outside the four defined levels.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return Info, nil
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// Category tags a finding with the check that produced it.
type Category string

const (
	// Static pattern analyzer
	CategorySelectStar             Category = "SELECT_STAR"
	CategoryFunctionOnColumn       Category = "FUNCTION_ON_COLUMN"
	CategoryLikeLeadingWildcard    Category = "LIKE_LEADING_WILDCARD"
	CategoryOrConditions           Category = "OR_CONDITIONS"
	CategoryCorrelatedSubquery     Category = "CORRELATED_SUBQUERY"
	CategoryPotentialNPlusOne      Category = "POTENTIAL_N_PLUS_ONE"
	CategoryDistinctWithJoin       Category = "DISTINCT_WITH_JOIN"
	CategoryOrderByRandom          Category = "ORDER_BY_RANDOM"
	CategoryLimitWithoutOrder      Category = "LIMIT_WITHOUT_ORDER"
	CategoryNotInWithNull          Category = "NOT_IN_WITH_NULL"
	CategoryImplicitTypeConversion Category = "IMPLICIT_TYPE_CONVERSION"

	// Plan analyzer
	CategorySeqScan             Category = "SEQ_SCAN"
	CategoryExpensiveSort       Category = "EXPENSIVE_SORT"
	CategoryExpensiveNestedLoop Category = "EXPENSIVE_NESTED_LOOP"
	CategoryExpensiveHashJoin   Category = "EXPENSIVE_HASH_JOIN"
	CategoryIndexOpportunity    Category = "INDEX_OPPORTUNITY"
	CategoryFilesort            Category = "FILESORT"
	CategoryTemporaryTable      Category = "TEMPORARY_TABLE"

	// Rewrite suggester
	CategorySelectStarExpansion Category = "SELECT_STAR_EXPANSION"
	CategoryCorrelatedToJoin    Category = "CORRELATED_TO_JOIN"
	CategoryNotInToNotExists    Category = "NOT_IN_TO_NOT_EXISTS"
	CategoryMissingWhere        Category = "MISSING_WHERE"
	CategoryOrToIn              Category = "OR_TO_IN"
	CategoryAddLimit            Category = "ADD_LIMIT"
	CategoryExplicitAliases     Category = "EXPLICIT_ALIASES"
	CategoryOrderByIndex        Category = "ORDER_BY_INDEX"
	CategoryCoveringIndex       Category = "COVERING_INDEX"
	CategoryUnionToUnionAll     Category = "UNION_TO_UNION_ALL"
	CategoryMaterializedCTE     Category = "MATERIALIZED_CTE"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySelectStar, CategoryFunctionOnColumn, CategoryLikeLeadingWildcard,
		CategoryOrConditions, CategoryCorrelatedSubquery, CategoryPotentialNPlusOne,
		CategoryDistinctWithJoin, CategoryOrderByRandom, CategoryLimitWithoutOrder,
		CategoryNotInWithNull, CategoryImplicitTypeConversion,
		CategorySeqScan, CategoryExpensiveSort, CategoryExpensiveNestedLoop,
		CategoryExpensiveHashJoin, CategoryIndexOpportunity, CategoryFilesort,
		CategoryTemporaryTable,
		CategorySelectStarExpansion, CategoryCorrelatedToJoin, CategoryNotInToNotExists,
		CategoryMissingWhere, CategoryOrToIn, CategoryAddLimit, CategoryExplicitAliases,
		CategoryOrderByIndex, CategoryCoveringIndex, CategoryUnionToUnionAll,
		CategoryMaterializedCTE:
		return true
	}
	return false
}

// Issue is a single finding. Location is a character offset into the
// original input; 0 means the finding applies to the whole query.
type Issue struct {
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation,omitempty"`
	Location       int      `json:"location,omitempty"`
}
