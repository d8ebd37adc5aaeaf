// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze drives extraction over files and directories and
// aggregates the per-file results.
package analyze

import (
	"sort"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// Analyzer accumulates per-file results into AnalysisResults. It is owned
// by one caller and is not safe for concurrent use.
type Analyzer struct {
	results types.AnalysisResults
}

// NewAnalyzer returns an analyzer with empty results.
func NewAnalyzer() *Analyzer {
	return &Analyzer{results: types.NewAnalysisResults()}
}

// Record appends the matches of every aggregated category in r. Categories
// outside the aggregated set (data_models, unknown names) and failed
// results contribute nothing.
func (a *Analyzer) Record(r *types.ExtractionResult) {
	if r == nil || r.Failed() {
		return
	}
	for _, c := range r.Categories {
		slot := a.results.Slot(c)
		if slot == nil {
			continue
		}
		*slot = append(*slot, r.Matches[c]...)
	}
}

// Finalize removes exact duplicates from every category and sorts it.
// Calling it again is a no-op.
func (a *Analyzer) Finalize() {
	for _, c := range types.AggregatedCategories {
		slot := a.results.Slot(c)
		*slot = dedupSorted(*slot)
	}
}

// Results returns a copy of the accumulated results.
func (a *Analyzer) Results() types.AnalysisResults {
	return a.results.Clone()
}

func dedupSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
