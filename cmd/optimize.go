/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"os"

	"github.com/jacobarthurs/sqladvisor/internal/input"
	"github.com/jacobarthurs/sqladvisor/internal/issue"
	"github.com/jacobarthurs/sqladvisor/internal/output"
	"github.com/jacobarthurs/sqladvisor/internal/report"
	"github.com/jacobarthurs/sqladvisor/internal/rewrite"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize-sql [file]",
	Short: "Suggest rewrites for a SQL query",
	Long: `Propose rewrites that tend to improve query performance.

Suggestions are advisory: the returned query text only changes when an
UPDATE or DELETE is missing a WHERE clause, in which case a deliberately
false guard predicate is inserted so the statement cannot run as-is.

Use "-" to read from stdin. If no file is provided, enters interactive
mode. The --aggressive flag enables a second tier of riskier suggestions.`,
	Example: `  # Suggest rewrites
  sqladvisor optimize-sql query.sql

  # Include higher-risk suggestions
  sqladvisor optimize-sql query.sql --aggressive

  # Read from stdin
  cat query.sql | sqladvisor optimize-sql -`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}

		var file string
		if len(args) > 0 {
			file = args[0]
		}

		sql, err := input.Read(file, "SQL query")
		if err != nil {
			return err
		}

		rewritten, changes := rewrite.Suggest(sql, opts.Dialect, opts.Aggressive)

		issues := make([]issue.Issue, 0, len(changes))
		for _, c := range changes {
			issues = append(issues, c.Issue())
		}

		r := report.Build(issues, report.ModeRewrite, opts.Dialect, report.Extra{
			OriginalQuery:  sql,
			RewrittenQuery: rewritten,
		})

		if opts.Format == "json" {
			return output.RenderJSON(os.Stdout, r)
		}
		return output.RenderMarkdown(os.Stdout, r)
	},
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().StringP("dialect", "d", "postgresql", "SQL dialect: postgresql, mysql, sqlite, mssql, oracle")
	optimizeCmd.Flags().StringP("profile", "p", "", "Use named profile from config")
	optimizeCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, json")
	optimizeCmd.Flags().BoolP("aggressive", "a", false, "Include higher-risk suggestions")
}
