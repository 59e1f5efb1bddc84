/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"os"

	"github.com/jacobarthurs/sqladvisor/internal/analyzer"
	"github.com/jacobarthurs/sqladvisor/internal/comparator"
	"github.com/jacobarthurs/sqladvisor/internal/dialect"
	"github.com/jacobarthurs/sqladvisor/internal/input"
	"github.com/jacobarthurs/sqladvisor/internal/output"
	"github.com/jacobarthurs/sqladvisor/internal/plan"
	"github.com/jacobarthurs/sqladvisor/internal/report"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain-plan [file]",
	Short: "Analyze EXPLAIN output for expensive operations",
	Long: `Parse EXPLAIN output and flag expensive operations: sequential scans,
costly sorts, nested loops over large row counts, and oversized hash joins.

PostgreSQL plans use the indented text format; MySQL plans use the tabular
format. Use "-" to read from stdin. If no file is provided, enters
interactive mode.

The --analyze and --buffers flags mark the plan as containing runtime
statistics; timing data is picked up from the plan text itself.`,
	Example: `  # Analyze a PostgreSQL plan
  sqladvisor explain-plan plan.txt

  # MySQL tabular EXPLAIN
  sqladvisor explain-plan plan.txt --dialect mysql

  # Compare two plans
  sqladvisor explain-plan new.txt --compare old.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}

		planDialect, err := dialect.ParsePlanDialect(string(opts.Dialect))
		if err != nil {
			return err
		}

		var file string
		if len(args) > 0 {
			file = args[0]
		}

		text, err := input.Read(file, "EXPLAIN output")
		if err != nil {
			return err
		}

		parsed := plan.ParseText(text, planDialect)

		issues := analyzer.Analyze(&parsed)
		r := report.Build(issues, report.ModePlan, planDialect, report.Extra{
			TotalCost:       parsed.TotalCost,
			ExecutionTimeMs: parsed.ExecutionTimeMs,
		})

		compareFile, _ := cmd.Flags().GetString("compare")
		if compareFile == "" {
			if opts.Format == "json" {
				return output.RenderJSON(os.Stdout, r)
			}
			return output.RenderMarkdown(os.Stdout, r)
		}

		baselineText, err := input.Read(compareFile, "baseline EXPLAIN output")
		if err != nil {
			return err
		}
		baseline := plan.ParseText(baselineText, planDialect)

		cmp := &comparator.Comparator{}
		result := cmp.Compare(&baseline, &parsed)

		if opts.Format == "json" {
			return output.RenderJSON(os.Stdout, struct {
				Report     report.Report               `json:"report"`
				Comparison comparator.ComparisonResult `json:"comparison"`
			}{r, result})
		}

		if err := output.RenderMarkdown(os.Stdout, r); err != nil {
			return err
		}
		return output.RenderComparison(os.Stdout, result)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().StringP("dialect", "d", "postgresql", "Plan dialect: postgresql, mysql")
	explainCmd.Flags().StringP("profile", "p", "", "Use named profile from config")
	explainCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, json")
	explainCmd.Flags().Bool("analyze", false, "Plan was produced with EXPLAIN ANALYZE")
	explainCmd.Flags().Bool("buffers", false, "Plan was produced with the BUFFERS option")
	explainCmd.Flags().StringP("compare", "c", "", "Baseline plan file to compare against")
}
