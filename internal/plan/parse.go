package plan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jacobarthurs/sqladvisor/internal/dialect"
)

// opPattern maps an operator-introduction line to its OpType. The
// order matters: first match wins, so compound names ("Hash Join",
// "Merge Append") sit above their prefixes.
type opPattern struct {
	re *regexp.Regexp
	op OpType
}

var opPatterns = []opPattern{
	{regexp.MustCompile(`^(?:Parallel\s+)?Seq Scan on\s+(\S+)`), OpSeqScan},
	{regexp.MustCompile(`^(?:Parallel\s+)?Index(?: Only)? Scan(?: Backward)?\s+using\s+\S+\s+on\s+(\S+)`), OpIndexScan},
	{regexp.MustCompile(`^(?:Parallel\s+)?Bitmap Heap Scan on\s+(\S+)`), OpBitmapScan},
	{regexp.MustCompile(`^Bitmap Index Scan on\s+(\S+)`), OpBitmapScan},
	{regexp.MustCompile(`^Nested Loop\b`), OpNestedLoop},
	{regexp.MustCompile(`^Hash(?:\s+\w+)? Join\b`), OpHashJoin},
	{regexp.MustCompile(`^Merge(?:\s+\w+)? Join\b`), OpMergeJoin},
	{regexp.MustCompile(`^(?:Merge )?Append\b`), OpAppend},
	{regexp.MustCompile(`^Hash\b`), OpHash},
	{regexp.MustCompile(`^(?:Incremental )?Sort\b`), OpSort},
	{regexp.MustCompile(`^(?:Partial |Finalize |Mixed )?(?:Hash|Group)?Aggregate\b`), OpAggregate},
	{regexp.MustCompile(`^Limit\b`), OpLimit},
	{regexp.MustCompile(`^Function Scan on\s+(\S+)`), OpFunctionScan},
	{regexp.MustCompile(`^CTE Scan on\s+(\S+)`), OpCteScan},
}

var (
	costRe       = regexp.MustCompile(`\(cost=(\d+(?:\.\d+)?)\.\.(\d+(?:\.\d+)?) rows=(\d+) width=(\d+)\)`)
	actualRe     = regexp.MustCompile(`\(actual time=(\d+(?:\.\d+)?)\.\.(\d+(?:\.\d+)?) rows=(\d+) loops=(\d+)\)`)
	actualRowsRe = regexp.MustCompile(`\(actual rows=(\d+) loops=(\d+)\)`)
	execTimeRe   = regexp.MustCompile(`^Execution Time: (\d+(?:\.\d+)?) ms`)
	separatorRe  = regexp.MustCompile(`^[\s\-+]+$`)
)

// ParseText converts raw EXPLAIN text into an ExecutionPlan. Best
// effort by policy: empty input yields a plan with zero operations,
// unrecognized lines become continuation data for the current node,
// and partial plans return whatever was recognized.
func ParseText(text string, d dialect.Dialect) ExecutionPlan {
	if d == dialect.MySQL {
		return parseTabular(text)
	}
	return parseIndented(text, d)
}

func parseIndented(text string, d dialect.Dialect) ExecutionPlan {
	p := ExecutionPlan{Dialect: d}

	var stack []*PlanNode
	var current *PlanNode

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if line == "" || separatorRe.MatchString(line) || strings.TrimSpace(line) == "QUERY PLAN" {
			continue
		}

		indent, content := splitIndent(line)

		if m := execTimeRe.FindStringSubmatch(content); m != nil {
			p.ExecutionTimeMs, _ = strconv.ParseFloat(m[1], 64)
			continue
		}

		op, table, ok := matchOperator(content)
		if !ok {
			// Annotation or continuation line; cost fragments still
			// belong to the node introduced above it.
			if current != nil {
				attachStats(current, content)
			}
			continue
		}

		node := &PlanNode{Type: op, Table: table, Indent: indent}
		attachStats(node, content)

		// A bare Hash at indent 0 is the build side of the enclosing
		// join, not a fresh root: PostgreSQL emits it flush-left when
		// the plan text was reflowed. Keep it nested.
		if op == OpHash && indent == 0 && len(stack) > 0 {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, node)
			stack = append(stack, node)
			current = node
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].Indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			p.Operations = append(p.Operations, node)
		} else {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, node)
		}
		stack = append(stack, node)
		current = node
	}

	if len(p.Operations) > 0 {
		root := p.Operations[0]
		if root.HasCost {
			p.TotalCost = root.TotalCost
		}
		if p.ExecutionTimeMs == 0 && root.Actual != nil {
			p.ExecutionTimeMs = root.Actual.TotalTimeMs
		}
	}

	return p
}

// splitIndent measures leading whitespace (tabs and spaces both count
// one level) and strips the "->" arrow PostgreSQL prints before child
// operators.
func splitIndent(line string) (int, string) {
	indent := 0
	for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
		indent++
	}
	content := line[indent:]
	if rest, found := strings.CutPrefix(content, "->"); found {
		content = strings.TrimLeft(rest, " \t")
	}
	return indent, content
}

func matchOperator(content string) (OpType, string, bool) {
	for _, pat := range opPatterns {
		m := pat.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		table := ""
		if len(m) > 1 {
			table = m[1]
		}
		return pat.op, table, true
	}
	return OpUnknown, "", false
}

func attachStats(node *PlanNode, content string) {
	if m := costRe.FindStringSubmatch(content); m != nil {
		node.StartupCost, _ = strconv.ParseFloat(m[1], 64)
		node.TotalCost, _ = strconv.ParseFloat(m[2], 64)
		node.PlanRows, _ = strconv.ParseInt(m[3], 10, 64)
		width, _ := strconv.Atoi(m[4])
		node.PlanWidth = width
		node.HasCost = true
	}
	if m := actualRe.FindStringSubmatch(content); m != nil {
		actual := &ActualStats{}
		actual.StartupTimeMs, _ = strconv.ParseFloat(m[1], 64)
		actual.TotalTimeMs, _ = strconv.ParseFloat(m[2], 64)
		actual.Rows, _ = strconv.ParseInt(m[3], 10, 64)
		actual.Loops, _ = strconv.ParseInt(m[4], 10, 64)
		if actual.Loops < 1 {
			actual.Loops = 1
		}
		node.Actual = actual
		return
	}
	if m := actualRowsRe.FindStringSubmatch(content); m != nil && node.Actual == nil {
		actual := &ActualStats{}
		actual.Rows, _ = strconv.ParseInt(m[1], 10, 64)
		actual.Loops, _ = strconv.ParseInt(m[2], 10, 64)
		if actual.Loops < 1 {
			actual.Loops = 1
		}
		node.Actual = actual
	}
}

// parseTabular handles MySQL's header-plus-rows EXPLAIN format. Cells
// are pipe- or tab-delimited; each data row becomes a flat record.
func parseTabular(text string) ExecutionPlan {
	p := ExecutionPlan{Dialect: dialect.MySQL}

	var header []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || separatorRe.MatchString(line) {
			continue
		}

		cells := splitCells(line)
		if len(cells) == 0 {
			continue
		}
		if header == nil {
			header = cells
			continue
		}

		row := make(ExplainRow, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		p.Rows = append(p.Rows, row)
	}

	return p
}

func splitCells(line string) []string {
	var parts []string
	if strings.Contains(line, "|") {
		// Outer pipes produce empty edge cells; interior empties are
		// real (NULL columns) and keep their position.
		parts = strings.Split(strings.Trim(line, "|"), "|")
	} else {
		parts = strings.Split(line, "\t")
	}

	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells
}
