// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders finalized analysis results. Markdown is the
// primary artifact; HTML, XLSX and YAML are optional renditions.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// Section pairs an aggregated category with its report heading.
type Section struct {
	Category types.Category
	Heading  string
}

// Sections lists the report subsections in order.
var Sections = []Section{
	{types.CategoryAPIs, "Identified APIs"},
	{types.CategoryWorkflows, "Business Workflows"},
	{types.CategoryIntegrations, "Integration Opportunities"},
	{types.CategoryPainPoints, "Pain Points Identified"},
	{types.CategoryOpportunities, "Product Opportunities"},
}

// NextSteps is the fixed closing list. It does not depend on the results.
var NextSteps = []string{
	"Validate findings with Facets users/administrators",
	"Research competitive solutions in identified areas",
	"Prototype high-impact opportunities",
	"Conduct customer interviews for market validation",
}

// Heading returns the report heading for c, or the category name if c has
// no section.
func Heading(c types.Category) string {
	for _, s := range Sections {
		if s.Category == c {
			return s.Heading
		}
	}
	return string(c)
}

// GeneratedLine formats the generation metadata line.
func GeneratedLine(meta types.RunMeta) string {
	line := "Generated: " + meta.GeneratedAt.UTC().Format(time.RFC3339)
	if meta.RunID != "" {
		line += " (run " + meta.RunID + ")"
	}
	return line
}

// Markdown renders results as the opportunity report. The output depends
// only on its arguments and has no trailing newline.
func Markdown(results types.AnalysisResults, meta types.RunMeta) string {
	title := meta.Title
	if title == "" {
		title = types.DefaultReportTitle
	}

	lines := []string{
		"# " + title,
		GeneratedLine(meta),
		"",
	}

	for _, s := range Sections {
		lines = append(lines, "## "+s.Heading)
		for _, entry := range results.Get(s.Category) {
			lines = append(lines, "- "+entry)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Recommended Next Steps")
	for i, step := range NextSteps {
		lines = append(lines, strconv.Itoa(i+1)+". "+step)
	}

	return strings.Join(lines, "\n")
}

