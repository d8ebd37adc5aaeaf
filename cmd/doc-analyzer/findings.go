// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-analyzer/internal/findings"
	"github.com/pdiddy/doc-analyzer/pkg/types"
)

var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "Search and export the findings index",
	Long: `Findings queries the SQLite index that analysis runs populate when
started with --index (or index.enabled: true). The index lives at
<output>/findings.db unless index.path is set.`,
}

// --- search subcommand ---

var findingsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search findings with full-text search and filters",
	Long: `Search finds stored findings using FTS5 full-text search, structured
filters (category, run, file), or both.`,
	RunE: runFindingsSearch,
}

func runFindingsSearch(cmd *cobra.Command, args []string) error {
	store, err := openFindings()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := findingsQueryFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --category, --run, or --file")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFindings(cmd.OutOrStdout(), results, jsonOutput)
}

func formatFindings(w io.Writer, results []findings.Finding, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []findings.Finding{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-50s  %s\n", "Rank", "Category", "Content", "File")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, f := range results {
		fmt.Fprintf(w, "%-4d  %-14s  %-50s  %s\n", i+1, f.Category, truncate(f.Content, 50), f.File)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- runs subcommand ---

var findingsRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List indexed analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openFindings()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Runs(context.Background())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs indexed.")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tGENERATED\tFINDINGS\tROOT")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.GeneratedAt.Format(time.RFC3339), r.Findings, r.Root)
		}
		return tw.Flush()
	},
}

// --- export subcommand ---

var findingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export findings to YAML or JSON",
	Long: `Export writes all findings (or a filtered subset) to
findings_export.yaml or findings_export.json next to the index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openFindings()
		if err != nil {
			return err
		}
		defer store.Close()

		opts := findingsQueryFromFlags(cmd, args)

		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(context.Background(), opts)
		case "json":
			path, err = store.ExportJSON(context.Background(), opts)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

// --- shared helpers ---

func openFindings() (*findings.Store, error) {
	return findings.NewStore(findings.DBPath(cfg.Index, cfg.Output), cfg.Index.MaxResults)
}

func findingsQueryFromFlags(cmd *cobra.Command, args []string) findings.QueryOptions {
	category, _ := cmd.Flags().GetString("category")
	runID, _ := cmd.Flags().GetString("run")
	file, _ := cmd.Flags().GetString("file")
	limit, _ := cmd.Flags().GetInt("limit")

	return findings.QueryOptions{
		Query:      strings.Join(args, " "),
		Category:   types.Category(category),
		RunID:      runID,
		File:       file,
		MaxResults: limit,
	}
}

func init() {
	for _, c := range []*cobra.Command{findingsSearchCmd, findingsExportCmd} {
		c.Flags().String("category", "", "filter by category: apis, workflows, integrations, pain_points, opportunities, data_models")
		c.Flags().String("run", "", "filter by run ID")
		c.Flags().String("file", "", "filter by source file path")
	}
	findingsSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use index.max_results)")
	findingsSearchCmd.Flags().Bool("json", false, "output results as JSON")
	findingsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	findingsCmd.AddCommand(findingsSearchCmd)
	findingsCmd.AddCommand(findingsRunsCmd)
	findingsCmd.AddCommand(findingsExportCmd)

	rootCmd.AddCommand(findingsCmd)
}
