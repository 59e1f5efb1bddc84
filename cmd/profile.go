/*
Copyright © 2026 JACOB ARTHURS
*/
package cmd

import (
	"fmt"

	"github.com/jacobarthurs/sqladvisor/internal/profile"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved analysis profiles",
	Long:  `Manage saved analysis profiles so you don't have to repeat dialect and format flags every time.`,
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List saved profiles",
	Example: `  sqladvisor profile list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := profile.List()
		if err != nil {
			return err
		}

		if len(profiles) == 0 {
			fmt.Println("No profiles configured. Run 'sqladvisor profile add <name>' to create one.")
			return nil
		}

		for _, p := range profiles {
			fmt.Printf("  %s\tdialect=%s format=%s aggressive=%t\n", p.Name, orDefault(p.Dialect, "postgresql"), orDefault(p.Format, "markdown"), p.Aggressive)
		}
		return nil
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update an analysis profile",
	Example: `  sqladvisor profile add mysql-ci --dialect mysql --format json
  sqladvisor profile add tuning --aggressive`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _ := cmd.Flags().GetString("dialect")
		format, _ := cmd.Flags().GetString("format")
		aggressive, _ := cmd.Flags().GetBool("aggressive")

		if err := profile.Add(profile.Profile{
			Name:       args[0],
			Dialect:    d,
			Format:     format,
			Aggressive: aggressive,
		}); err != nil {
			return err
		}
		fmt.Printf("Profile %q saved.\n", args[0])
		return nil
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an analysis profile",
	Example: `  sqladvisor profile remove mysql-ci`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("Profile %q removed.\n", args[0])
		return nil
	},
}

var profileDefaultCmd = &cobra.Command{
	Use:     "default <name>",
	Short:   "Set the default profile",
	Example: `  sqladvisor profile default mysql-ci`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.SetDefault(args[0]); err != nil {
			return err
		}
		fmt.Printf("Default profile set to %q.\n", args[0])
		return nil
	},
}

var profileClearDefaultCmd = &cobra.Command{
	Use:     "clear-default",
	Short:   "Clear the default profile",
	Example: `  sqladvisor profile clear-default`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.ClearDefault(); err != nil {
			return err
		}
		fmt.Println("Default profile cleared.")
		return nil
	},
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	profileCmd.AddCommand(profileDefaultCmd)
	profileCmd.AddCommand(profileClearDefaultCmd)
	profileAddCmd.Flags().String("dialect", "", "SQL dialect for this profile")
	profileAddCmd.Flags().String("format", "", "Output format for this profile")
	profileAddCmd.Flags().Bool("aggressive", false, "Enable higher-risk rewrite suggestions")
}
