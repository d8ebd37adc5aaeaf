// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-analyzer/internal/patterns"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Print the effective pattern table as YAML",
	Long: `Patterns prints the pattern table an analysis would use: the built-in
patterns with patterns_file (or --patterns) merged over them. The output
is a valid pattern file to start customizing from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := patterns.LoadTable(cfg.PatternsFile)
		if err != nil {
			return err
		}
		if _, err := patterns.NewEngine(table); err != nil {
			return err
		}
		return patterns.WriteTable(cmd.OutOrStdout(), table)
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
