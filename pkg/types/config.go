// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PDFBackend identifies the PDF text extraction tool.
type PDFBackend string

const (
	// PDFNative extracts text in-process with a pure Go PDF reader.
	PDFNative PDFBackend = "native"
	// PDFPdftotext shells out to poppler's pdftotext.
	PDFPdftotext PDFBackend = "pdftotext"
	// PDFNone disables PDF support.
	PDFNone PDFBackend = "none"
)

// ReportFormat names an extra rendition written next to the JSON and
// Markdown artifacts.
type ReportFormat string

const (
	FormatHTML ReportFormat = "html"
	FormatXLSX ReportFormat = "xlsx"
	FormatYAML ReportFormat = "yaml"
)

// DefaultReportTitle is the Markdown report heading.
const DefaultReportTitle = "Trizetto Facets Product Opportunity Report"

// DefaultOutputDir is where artifacts are written when --output is not given.
const DefaultOutputDir = "docs/analysis"

// ScanConfig controls which categories are scanned per file.
type ScanConfig struct {
	// AllCategories scans every category on every file instead of the
	// per-kind profile (PDF: structured fields, text: indicator sentences).
	AllCategories bool `json:"all_categories" yaml:"all_categories" mapstructure:"all_categories"`
}

// PDFConfig holds settings for PDF extraction.
type PDFConfig struct {
	// Backend selects the extraction tool: native, pdftotext, or none.
	Backend PDFBackend `json:"backend" yaml:"backend" mapstructure:"backend"`
}

// DocxConfig holds settings for DOCX extraction.
type DocxConfig struct {
	// Enabled makes .docx files eligible for analysis. Off by default.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// ReportConfig holds settings for report generation.
type ReportConfig struct {
	// Title is the report heading.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// Formats lists extra renditions: html, xlsx, yaml.
	Formats []ReportFormat `json:"formats" yaml:"formats" mapstructure:"formats"`
}

// IndexConfig holds settings for the SQLite findings index.
type IndexConfig struct {
	// Enabled records each run's findings in the index.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the database file. Empty means <output>/findings.db.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// File, when set, receives a copy of every log record.
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// Config groups all settings for an analysis run.
type Config struct {
	// Output is the directory receiving the artifacts.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Workers bounds concurrent extraction in directory mode (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// PatternsFile is an optional YAML pattern table overriding defaults.
	PatternsFile string `json:"patterns_file" yaml:"patterns_file" mapstructure:"patterns_file"`

	Scan   ScanConfig   `json:"scan" yaml:"scan" mapstructure:"scan"`
	PDF    PDFConfig    `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	Docx   DocxConfig   `json:"docx" yaml:"docx" mapstructure:"docx"`
	Report ReportConfig `json:"report" yaml:"report" mapstructure:"report"`
	Index  IndexConfig  `json:"index" yaml:"index" mapstructure:"index"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Output:  DefaultOutputDir,
		Workers: 1,
		PDF:     PDFConfig{Backend: PDFNative},
		Report:  ReportConfig{Title: DefaultReportTitle},
		Index:   IndexConfig{MaxResults: 20},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}
