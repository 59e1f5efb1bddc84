/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"os"

	"github.com/jacobarthurs/sqladvisor/internal/input"
	"github.com/jacobarthurs/sqladvisor/internal/output"
	"github.com/jacobarthurs/sqladvisor/internal/report"
	"github.com/jacobarthurs/sqladvisor/internal/static"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze-query [file]",
	Short: "Flag anti-patterns in a SQL query",
	Long: `Scan a SQL query for known performance anti-patterns without running it.

Input can be a .sql file or raw query text.
Use "-" to read from stdin. If no file is provided, enters interactive mode.`,
	Example: `  # Analyze from file
  sqladvisor analyze-query query.sql

  # Read from stdin
  cat query.sql | sqladvisor analyze-query -

  # MySQL dialect
  sqladvisor analyze-query query.sql --dialect mysql`,
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

		issues := static.Analyze(sql, opts.Dialect)
		r := report.Build(issues, report.ModeStatic, opts.Dialect, report.Extra{})

		if opts.Format == "json" {
			return output.RenderJSON(os.Stdout, r)
		}
		return output.RenderMarkdown(os.Stdout, r)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("dialect", "d", "postgresql", "SQL dialect: postgresql, mysql, sqlite, mssql, oracle")
	analyzeCmd.Flags().StringP("profile", "p", "", "Use named profile from config")
	analyzeCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, json")
}
