/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jacobarthurs/sqladvisor/internal/dialect"
	"github.com/jacobarthurs/sqladvisor/internal/profile"

	"github.com/spf13/cobra"
)

var Version = "dev"

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}
	rootCmd.Version = Version
}

var rootCmd = &cobra.Command{
	Use:          "sqladvisor",
	SilenceUsage: true,
	Short:        "Analyze SQL queries and execution plans for performance issues",
	Long: `sqladvisor is a CLI tool that flags SQL anti-patterns, analyzes EXPLAIN
output, and suggests query rewrites.

It works entirely from text: queries and plans are read from files or stdin,
never from a live database.`,
	Example: `  # Flag anti-patterns in a query
  sqladvisor analyze-query query.sql

  # Analyze EXPLAIN output
  sqladvisor explain-plan plan.txt

  # Suggest rewrites
  sqladvisor optimize-sql query.sql --aggressive`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// options are the settings shared by every analysis command, after
// merging the named (or default) profile with explicit flags. Flags
// the user set always win over profile values.
type options struct {
	Dialect    dialect.Dialect
	Format     string
	Aggressive bool
}

func resolveOptions(cmd *cobra.Command) (options, error) {
	profileName, _ := cmd.Flags().GetString("profile")

	p, err := profile.ResolveDefault(profileName)
	if err != nil {
		return options{}, err
	}

	opts := options{
		Dialect: dialect.PostgreSQL,
		Format:  "markdown",
	}

	if p.Dialect != "" {
		opts.Dialect, err = dialect.Parse(p.Dialect)
		if err != nil {
			return options{}, fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	if p.Format != "" {
		opts.Format = p.Format
	}
	opts.Aggressive = p.Aggressive

	if cmd.Flags().Changed("dialect") {
		raw, _ := cmd.Flags().GetString("dialect")
		opts.Dialect, err = dialect.Parse(raw)
		if err != nil {
			return options{}, err
		}
	}
	if cmd.Flags().Changed("format") {
		opts.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("aggressive") {
		opts.Aggressive, _ = cmd.Flags().GetBool("aggressive")
	}

	if opts.Format != "markdown" && opts.Format != "json" {
		return options{}, fmt.Errorf("invalid output format %q: must be \"markdown\" or \"json\"", opts.Format)
	}

	return opts, nil
}
