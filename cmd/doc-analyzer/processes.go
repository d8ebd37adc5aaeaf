// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-analyzer/internal/patterns"
	"github.com/pdiddy/doc-analyzer/internal/textextract"
	"github.com/pdiddy/doc-analyzer/pkg/types"
)

var processesCmd = &cobra.Command{
	Use:   "processes <file>",
	Short: "List the business processes a document mentions",
	Long: `Processes extracts a document's text and prints the distinct business
process phrases it mentions (claims processing, member enrollment, prior
authorization, and so on), sorted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return listProcesses(cmd.OutOrStdout(), textextract.Detect(cfg), args[0], jsonOutput)
	},
}

func listProcesses(w io.Writer, caps textextract.Capabilities, path string, jsonOutput bool) error {
	kind := types.KindForPath(path)
	if kind != types.KindPDF && !(kind == types.KindDocx && caps.Supports(kind)) {
		kind = types.KindText
	}
	ext, err := caps.ForKind(kind)
	if err != nil {
		return err
	}
	text, err := ext.Extract(path)
	if err != nil {
		return err
	}

	procs := patterns.BusinessProcesses(text)
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(procs)
	}
	if len(procs) == 0 {
		fmt.Fprintln(w, "No business processes found.")
		return nil
	}
	for _, p := range procs {
		fmt.Fprintln(w, p)
	}
	return nil
}

func init() {
	processesCmd.Flags().Bool("json", false, "output as a JSON array")
	rootCmd.AddCommand(processesCmd)
}
