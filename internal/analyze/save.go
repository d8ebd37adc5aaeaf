// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/doc-analyzer/internal/report"
	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// Artifact file names written into the output directory.
const (
	ResultsFile     = "analysis_results.json"
	ReportFile      = "opportunity_report.md"
	HTMLReportFile  = "opportunity_report.html"
	XLSXResultsFile = "analysis_results.xlsx"
	YAMLResultsFile = "analysis_results.yaml"
)

// EnsureOutputDir creates dir and its parents.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// Save writes the JSON results and the Markdown report into dir, plus any
// extra formats, and returns the written paths. Any failure is fatal to
// the run.
func Save(dir string, results types.AnalysisResults, meta types.RunMeta, formats []types.ReportFormat) ([]string, error) {
	if err := EnsureOutputDir(dir); err != nil {
		return nil, err
	}

	var written []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling results: %w", err)
	}
	if err := write(ResultsFile, data); err != nil {
		return nil, err
	}

	md := report.Markdown(results, meta)
	if err := write(ReportFile, []byte(md)); err != nil {
		return nil, err
	}

	for _, f := range formats {
		switch f {
		case types.FormatHTML:
			title := meta.Title
			if title == "" {
				title = types.DefaultReportTitle
			}
			doc, err := report.HTML(md, title)
			if err != nil {
				return nil, err
			}
			if err := write(HTMLReportFile, doc); err != nil {
				return nil, err
			}
		case types.FormatYAML:
			doc, err := report.YAML(results)
			if err != nil {
				return nil, err
			}
			if err := write(YAMLResultsFile, doc); err != nil {
				return nil, err
			}
		case types.FormatXLSX:
			path := filepath.Join(dir, XLSXResultsFile)
			if err := report.WriteXLSX(path, results); err != nil {
				return nil, err
			}
			written = append(written, path)
		default:
			return nil, fmt.Errorf("unsupported report format %q: use html, xlsx, or yaml", f)
		}
	}

	return written, nil
}
