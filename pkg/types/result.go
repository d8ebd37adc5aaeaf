// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ExtractionResult holds the matches found in one file. Categories keeps
// the scan order so the JSON form lists them the way they were scanned.
type ExtractionResult struct {
	// File is the analyzed path. Empty when the file was never opened
	// because a required capability was unavailable.
	File string

	// Categories lists the scanned categories in scan order.
	Categories []Category

	// Matches maps each scanned category to its matches in order of appearance.
	Matches map[Category][]string

	// Error is the per-file failure message, if any.
	Error string
}

// NewExtractionResult returns an empty result for file with the given
// categories initialized to empty match lists.
func NewExtractionResult(file string, categories ...Category) *ExtractionResult {
	r := &ExtractionResult{
		File:       file,
		Categories: append([]Category(nil), categories...),
		Matches:    make(map[Category][]string, len(categories)),
	}
	for _, c := range categories {
		r.Matches[c] = []string{}
	}
	return r
}

// Failed reports whether the result carries an error.
func (r *ExtractionResult) Failed() bool {
	return r.Error != ""
}

// Count returns the total number of matches across categories.
func (r *ExtractionResult) Count() int {
	n := 0
	for _, m := range r.Matches {
		n += len(m)
	}
	return n
}

// MarshalJSON writes "file", then each category in scan order, then
// "error". Empty fields other than categories are omitted.
func (r ExtractionResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(key string, value any) error {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", key, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if r.File != "" {
		if err := field("file", r.File); err != nil {
			return nil, err
		}
	}
	for _, c := range r.Categories {
		m := r.Matches[c]
		if m == nil {
			m = []string{}
		}
		if err := field(string(c), m); err != nil {
			return nil, err
		}
	}
	if r.Error != "" {
		if err := field("error", r.Error); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnalysisResults is the aggregate across all analyzed files. Field order
// fixes the key order of analysis_results.json.
type AnalysisResults struct {
	APIs          []string `json:"apis" yaml:"apis"`
	Workflows     []string `json:"workflows" yaml:"workflows"`
	Integrations  []string `json:"integrations" yaml:"integrations"`
	PainPoints    []string `json:"pain_points" yaml:"pain_points"`
	Opportunities []string `json:"opportunities" yaml:"opportunities"`
}

// NewAnalysisResults returns results with every category set to an empty
// (non-nil) slice so they serialize as [].
func NewAnalysisResults() AnalysisResults {
	return AnalysisResults{
		APIs:          []string{},
		Workflows:     []string{},
		Integrations:  []string{},
		PainPoints:    []string{},
		Opportunities: []string{},
	}
}

// Slot returns a pointer to the slice for c, or nil if c is not aggregated.
func (a *AnalysisResults) Slot(c Category) *[]string {
	switch c {
	case CategoryAPIs:
		return &a.APIs
	case CategoryWorkflows:
		return &a.Workflows
	case CategoryIntegrations:
		return &a.Integrations
	case CategoryPainPoints:
		return &a.PainPoints
	case CategoryOpportunities:
		return &a.Opportunities
	default:
		return nil
	}
}

// Get returns the entries for c, or nil if c is not aggregated.
func (a AnalysisResults) Get(c Category) []string {
	if s := a.Slot(c); s != nil {
		return *s
	}
	return nil
}

// Clone returns a deep copy.
func (a AnalysisResults) Clone() AnalysisResults {
	out := NewAnalysisResults()
	for _, c := range AggregatedCategories {
		*out.Slot(c) = append([]string{}, a.Get(c)...)
	}
	return out
}

// Total returns the number of entries across all categories.
func (a AnalysisResults) Total() int {
	n := 0
	for _, c := range AggregatedCategories {
		n += len(a.Get(c))
	}
	return n
}

// RunMeta identifies one analysis run for report generation and indexing.
type RunMeta struct {
	// RunID is a ULID assigned at startup.
	RunID string `json:"run_id" yaml:"run_id"`

	// Title is the report heading.
	Title string `json:"title" yaml:"title"`

	// GeneratedAt is the UTC generation time.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Root is the analyzed file or directory.
	Root string `json:"root" yaml:"root"`
}
