// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the analyzer stages:
// categories, per-file extraction results, aggregated results, and
// configuration.
package types

import (
	"path/filepath"
	"strings"
)

// Category names a result bucket.
type Category string

const (
	CategoryAPIs          Category = "apis"
	CategoryWorkflows     Category = "workflows"
	CategoryIntegrations  Category = "integrations"
	CategoryPainPoints    Category = "pain_points"
	CategoryOpportunities Category = "opportunities"

	// CategoryDataModels is extracted per file but never aggregated.
	CategoryDataModels Category = "data_models"
)

// AggregatedCategories lists the five categories kept in AnalysisResults,
// in serialization and report order.
var AggregatedCategories = []Category{
	CategoryAPIs,
	CategoryWorkflows,
	CategoryIntegrations,
	CategoryPainPoints,
	CategoryOpportunities,
}

// AllCategories lists every category the engine knows how to scan.
var AllCategories = []Category{
	CategoryAPIs,
	CategoryWorkflows,
	CategoryDataModels,
	CategoryIntegrations,
	CategoryPainPoints,
	CategoryOpportunities,
}

// PDFCategories is the structured-field scan profile applied to PDF files.
var PDFCategories = []Category{CategoryAPIs, CategoryWorkflows, CategoryDataModels}

// TextCategories is the indicator-sentence scan profile applied to text files.
var TextCategories = []Category{CategoryPainPoints, CategoryOpportunities}

// Known reports whether c is one of AllCategories.
func (c Category) Known() bool {
	for _, k := range AllCategories {
		if c == k {
			return true
		}
	}
	return false
}

// FileKind identifies which text extractor handles a file.
type FileKind string

const (
	KindPDF         FileKind = "pdf"
	KindText        FileKind = "text"
	KindDocx        FileKind = "docx"
	KindUnsupported FileKind = "unsupported"
)

// textExtensions are the plain-text extensions accepted in directory mode.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".rst": true,
}

// KindForPath classifies a path by its lower-cased extension.
func KindForPath(path string) FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".pdf":
		return KindPDF
	case ext == ".docx":
		return KindDocx
	case textExtensions[ext]:
		return KindText
	default:
		return KindUnsupported
	}
}

// Profile returns the categories scanned for files of this kind.
func (k FileKind) Profile() []Category {
	switch k {
	case KindPDF:
		return PDFCategories
	case KindText, KindDocx:
		return TextCategories
	default:
		return nil
	}
}
