// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-analyzer/internal/analyze"
	"github.com/pdiddy/doc-analyzer/internal/findings"
	"github.com/pdiddy/doc-analyzer/internal/patterns"
	"github.com/pdiddy/doc-analyzer/internal/textextract"
	"github.com/pdiddy/doc-analyzer/pkg/types"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return analyzePath(ctx, cmd.OutOrStdout(), cfg, args[0])
}

// analyzePath runs one analysis of target and writes every artifact under
// c.Output.
func analyzePath(ctx context.Context, out io.Writer, c types.Config, target string) error {
	table, err := patterns.LoadTable(c.PatternsFile)
	if err != nil {
		return err
	}
	engine, err := patterns.NewEngine(table)
	if err != nil {
		return err
	}

	caps := textextract.Detect(c)
	if caps.PDFErr != nil {
		slog.Warn("PDF files will be skipped", "reason", caps.PDFErr)
	}

	if err := analyze.EnsureOutputDir(c.Output); err != nil {
		return err
	}

	meta := types.RunMeta{
		RunID:       ulid.Make().String(),
		Title:       c.Report.Title,
		GeneratedAt: time.Now().UTC(),
		Root:        target,
	}
	slog.Debug("starting run", "run_id", meta.RunID, "target", target, "workers", c.Workers)

	pipeline := analyze.NewPipeline(engine, caps, analyze.Options{
		Workers:       c.Workers,
		AllCategories: c.Scan.AllCategories,
		Out:           out,
		Logger:        slog.Default(),
	})
	a := analyze.NewAnalyzer()

	var files []*types.ExtractionResult
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		fmt.Fprintf(out, "Analyzing directory: %s\n", target)
		summary, err := pipeline.AnalyzeDirectory(ctx, target, a)
		if err != nil {
			return err
		}
		files = summary.Files
	} else {
		fmt.Fprintf(out, "Analyzing file: %s\n", target)
		r := pipeline.AnalyzeFile(target)
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		a.Record(r)
		a.Finalize()
		files = []*types.ExtractionResult{r}
	}

	written, err := analyze.Save(c.Output, a.Results(), meta, c.Report.Formats)
	if err != nil {
		return err
	}
	for _, path := range written {
		slog.Debug("wrote artifact", "path", path)
	}

	if c.Index.Enabled {
		if err := indexRun(ctx, out, c, meta, files); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Analysis complete. Results saved to %s\n", c.Output)
	return nil
}

func indexRun(ctx context.Context, out io.Writer, c types.Config, meta types.RunMeta, files []*types.ExtractionResult) error {
	store, err := findings.NewStore(findings.DBPath(c.Index, c.Output), c.Index.MaxResults)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.IngestRun(ctx, meta, files)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Indexed %d findings (run %s) in %s\n", n, meta.RunID, store.Path())
	return nil
}
