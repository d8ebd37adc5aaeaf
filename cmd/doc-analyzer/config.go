// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// flagKeys maps CLI flag names to viper keys.
var flagKeys = map[string]string{
	"output":         "output",
	"log-level":      "log.level",
	"workers":        "workers",
	"pdf-backend":    "pdf.backend",
	"docx":           "docx.enabled",
	"format":         "report.formats",
	"patterns":       "patterns_file",
	"all-categories": "scan.all_categories",
	"index":          "index.enabled",
}

// bindFlags binds cmd's local and persistent flags to their viper keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(name)
		}
		if f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// setDefaults registers every config key so environment variables and
// config files can override it.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("output", d.Output)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("patterns_file", d.PatternsFile)
	v.SetDefault("scan.all_categories", d.Scan.AllCategories)
	v.SetDefault("pdf.backend", string(d.PDF.Backend))
	v.SetDefault("docx.enabled", d.Docx.Enabled)
	v.SetDefault("report.title", d.Report.Title)
	v.SetDefault("report.formats", []string{})
	v.SetDefault("index.enabled", d.Index.Enabled)
	v.SetDefault("index.path", d.Index.Path)
	v.SetDefault("index.max_results", d.Index.MaxResults)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// loadConfig resolves defaults, config file, environment, and bound flags
// into a validated Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	setDefaults(v)

	c := types.DefaultConfig()
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := validateConfig(&c); err != nil {
		return types.Config{}, err
	}
	return c, nil
}

func validateConfig(c *types.Config) error {
	if c.Output == "" {
		c.Output = types.DefaultOutputDir
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Report.Title == "" {
		c.Report.Title = types.DefaultReportTitle
	}
	for _, f := range c.Report.Formats {
		switch f {
		case types.FormatHTML, types.FormatXLSX, types.FormatYAML:
		default:
			return fmt.Errorf("unsupported report format %q: use html, xlsx, or yaml", f)
		}
	}
	switch c.PDF.Backend {
	case types.PDFNative, types.PDFPdftotext, types.PDFNone:
	case "":
		c.PDF.Backend = types.PDFNative
	default:
		return fmt.Errorf("unknown pdf backend %q: use native, pdftotext, or none", c.PDF.Backend)
	}
	return nil
}
