// Package dialect identifies the SQL engine whose textual conventions
// the analyzers follow.
package dialect

import "fmt"

type Dialect string

const (
	PostgreSQL Dialect = "postgresql"
	MySQL      Dialect = "mysql"
	SQLite     Dialect = "sqlite"
	MSSQL      Dialect = "mssql"
	Oracle     Dialect = "oracle"
)

func (d Dialect) Valid() bool {
	switch d {
	case PostgreSQL, MySQL, SQLite, MSSQL, Oracle:
		return true
	}
	return false
}

// Parse normalizes common aliases and rejects unknown dialects.
func Parse(s string) (Dialect, error) {
	switch s {
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mssql", "sqlserver":
		return MSSQL, nil
	case "oracle":
		return Oracle, nil
	}
	return "", fmt.Errorf("unknown dialect %q: expected postgres, mysql, sqlite, mssql, or oracle", s)
}

// ParsePlanDialect restricts to the dialects with a supported EXPLAIN
// text format.
func ParsePlanDialect(s string) (Dialect, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	if d != PostgreSQL && d != MySQL {
		return "", fmt.Errorf("no EXPLAIN parser for dialect %q: expected postgres or mysql", s)
	}
	return d, nil
}
