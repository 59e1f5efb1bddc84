package plan

import (
	"testing"

	"github.com/jacobarthurs/sqladvisor/internal/dialect"
)

func TestParseSingleSeqScan(t *testing.T) {
	p := ParseText(`Seq Scan on users  (cost=0.00..15.25 rows=1000 width=84)`, dialect.PostgreSQL)

	if len(p.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(p.Operations))
	}

	node := p.Operations[0]
	if node.Type != OpSeqScan {
		t.Errorf("type = %q, want %q", node.Type, OpSeqScan)
	}
	if node.Table != "users" {
		t.Errorf("table = %q, want users", node.Table)
	}
	if node.StartupCost != 0 || node.TotalCost != 15.25 {
		t.Errorf("cost = %v..%v, want 0..15.25", node.StartupCost, node.TotalCost)
	}
	if node.PlanRows != 1000 {
		t.Errorf("rows = %d, want 1000", node.PlanRows)
	}
	if node.PlanWidth != 84 {
		t.Errorf("width = %d, want 84", node.PlanWidth)
	}
	if p.TotalCost != 15.25 {
		t.Errorf("plan total cost = %v, want 15.25", p.TotalCost)
	}
}

func TestParseEmptyInput(t *testing.T) {
	p := ParseText("", dialect.PostgreSQL)
	if len(p.Operations) != 0 || len(p.Rows) != 0 {
		t.Errorf("empty input should yield an empty plan, got %+v", p)
	}

	p = ParseText("   \n\t\n", dialect.PostgreSQL)
	if len(p.Operations) != 0 {
		t.Errorf("whitespace input should yield no operations, got %d", len(p.Operations))
	}
}

func TestParseNestedTree(t *testing.T) {
	text := `Nested Loop  (cost=0.29..42.10 rows=10 width=16)
  ->  Seq Scan on orders  (cost=0.00..20.00 rows=500 width=8)
        Filter: (status = 'open')
  ->  Index Scan using users_pkey on users  (cost=0.29..0.04 rows=1 width=8)
        Index Cond: (id = orders.user_id)`

	p := ParseText(text, dialect.PostgreSQL)

	if len(p.Operations) != 1 {
		t.Fatalf("expected a single root, got %d", len(p.Operations))
	}

	root := p.Operations[0]
	if root.Type != OpNestedLoop {
		t.Errorf("root type = %q, want %q", root.Type, OpNestedLoop)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0].Type != OpSeqScan || root.Children[0].Table != "orders" {
		t.Errorf("first child = %q on %q", root.Children[0].Type, root.Children[0].Table)
	}
	if root.Children[1].Type != OpIndexScan || root.Children[1].Table != "users" {
		t.Errorf("second child = %q on %q", root.Children[1].Type, root.Children[1].Table)
	}
}

func TestParseSiblingAfterDeeperNode(t *testing.T) {
	text := `Sort  (cost=100.00..102.00 rows=800 width=12)
  ->  Hash Join  (cost=10.00..90.00 rows=800 width=12)
        ->  Seq Scan on a  (cost=0.00..30.00 rows=2000 width=8)
        ->  Hash  (cost=5.00..5.00 rows=400 width=4)
              ->  Seq Scan on b  (cost=0.00..5.00 rows=400 width=4)`

	p := ParseText(text, dialect.PostgreSQL)

	if len(p.Operations) != 1 {
		t.Fatalf("expected a single root, got %d", len(p.Operations))
	}

	join := p.Operations[0].Children[0]
	if join.Type != OpHashJoin {
		t.Fatalf("expected Hash Join under Sort, got %q", join.Type)
	}
	if len(join.Children) != 2 {
		t.Fatalf("join children = %d, want 2", len(join.Children))
	}
	hash := join.Children[1]
	if hash.Type != OpHash || len(hash.Children) != 1 || hash.Children[0].Table != "b" {
		t.Errorf("hash side not reconstructed: %+v", hash)
	}
}

func TestParseHashAtZeroIndentStaysNested(t *testing.T) {
	text := `Hash Join  (cost=10.00..90.00 rows=800 width=12)
  ->  Seq Scan on a  (cost=0.00..30.00 rows=2000 width=8)
Hash  (cost=5.00..5.00 rows=400 width=4)
  ->  Seq Scan on b  (cost=0.00..5.00 rows=400 width=4)`

	p := ParseText(text, dialect.PostgreSQL)

	if len(p.Operations) != 1 {
		t.Fatalf("flush-left Hash must not start a new root, got %d roots", len(p.Operations))
	}

	var hash *PlanNode
	var walk func(*PlanNode)
	walk = func(n *PlanNode) {
		if n.Type == OpHash {
			hash = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(p.Operations[0])

	if hash == nil {
		t.Fatal("Hash node missing from tree")
	}
	if len(hash.Children) != 1 || hash.Children[0].Table != "b" {
		t.Errorf("Hash should keep its scan child, got %+v", hash.Children)
	}
}

func TestParseActualStats(t *testing.T) {
	text := `Seq Scan on users  (cost=0.00..15.25 rows=1000 width=84) (actual time=0.010..0.820 rows=950 loops=1)
Execution Time: 1.234 ms`

	p := ParseText(text, dialect.PostgreSQL)

	if len(p.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(p.Operations))
	}
	actual := p.Operations[0].Actual
	if actual == nil {
		t.Fatal("actual stats missing")
	}
	if actual.TotalTimeMs != 0.82 || actual.Rows != 950 || actual.Loops != 1 {
		t.Errorf("actual stats = %+v", actual)
	}
	if p.ExecutionTimeMs != 1.234 {
		t.Errorf("execution time = %v, want 1.234", p.ExecutionTimeMs)
	}
}

func TestParseHeaderAndSeparatorLinesIgnored(t *testing.T) {
	text := `                         QUERY PLAN
---------------------------------------------------------
 Seq Scan on users  (cost=0.00..15.25 rows=1000 width=84)`

	p := ParseText(text, dialect.PostgreSQL)
	if len(p.Operations) != 1 || p.Operations[0].Table != "users" {
		t.Fatalf("header lines should be skipped, got %+v", p.Operations)
	}
}

func TestParseTabWidthIndent(t *testing.T) {
	text := "Nested Loop  (cost=0.00..50.00 rows=10 width=8)\n\t->  Seq Scan on a  (cost=0.00..20.00 rows=100 width=8)\n\t->  Seq Scan on b  (cost=0.00..20.00 rows=100 width=8)"

	p := ParseText(text, dialect.PostgreSQL)
	if len(p.Operations) != 1 {
		t.Fatalf("expected 1 root, got %d", len(p.Operations))
	}
	if len(p.Operations[0].Children) != 2 {
		t.Errorf("tab-indented children = %d, want 2", len(p.Operations[0].Children))
	}
}

func TestParseTabularMySQL(t *testing.T) {
	text := `+----+-------------+-------+------+------+-------------+
| id | select_type | table | type | rows | Extra       |
+----+-------------+-------+------+------+-------------+
|  1 | SIMPLE      | users | ALL  | 5000 | Using where |
+----+-------------+-------+------+------+-------------+`

	p := ParseText(text, dialect.MySQL)

	if len(p.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(p.Rows))
	}
	row := p.Rows[0]
	if row["table"] != "users" || row["type"] != "ALL" || row["rows"] != "5000" {
		t.Errorf("row = %v", row)
	}
	if row["Extra"] != "Using where" {
		t.Errorf("Extra = %q", row["Extra"])
	}
	if len(p.Operations) != 0 {
		t.Errorf("tabular plans must not build an operator tree")
	}
}

func TestParseTabularKeepsEmptyCells(t *testing.T) {
	text := `| id | table | type | key | rows |
|  1 | users | ALL  |     | 9    |`

	p := ParseText(text, dialect.MySQL)
	if len(p.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(p.Rows))
	}
	if p.Rows[0]["key"] != "" {
		t.Errorf("empty cell should stay empty, got %q", p.Rows[0]["key"])
	}
	if p.Rows[0]["rows"] != "9" {
		t.Errorf("rows column misaligned: %v", p.Rows[0])
	}
}

func TestParseUnrecognizedLinesAreContinuations(t *testing.T) {
	text := `Seq Scan on users  (cost=0.00..15.25 rows=1000 width=84)
  Filter: (email IS NOT NULL)
  Rows Removed by Filter: 12`

	p := ParseText(text, dialect.PostgreSQL)
	if len(p.Operations) != 1 {
		t.Fatalf("annotation lines must not create nodes, got %d", len(p.Operations))
	}
	if len(p.Operations[0].Children) != 0 {
		t.Errorf("annotation lines must not create children")
	}
}
