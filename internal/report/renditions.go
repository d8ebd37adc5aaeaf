// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"html"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// HTML renders a Markdown report as a standalone HTML document.
func HTML(markdown, title string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&doc, "<title>%s</title>\n", html.EscapeString(title))
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.Bytes(), nil
}

// YAML encodes results in the same shape as analysis_results.json.
func YAML(results types.AnalysisResults) ([]byte, error) {
	data, err := yaml.Marshal(&results)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// WriteXLSX saves results as a workbook with one sheet per aggregated
// category: the report heading in A1, then one entry per row. Entries
// longer than a cell allows are truncated.
func WriteXLSX(path string, results types.AnalysisResults) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, c := range types.AggregatedCategories {
		sheet := string(c)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("naming sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet, err)
		}

		if err := f.SetCellValue(sheet, "A1", Heading(c)); err != nil {
			return fmt.Errorf("writing %s header: %w", sheet, err)
		}
		for row, entry := range results.Get(c) {
			cell, err := excelize.CoordinatesToCellName(1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, truncateCell(entry)); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func truncateCell(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	return string([]rune(s)[:excelize.TotalCellChars])
}
