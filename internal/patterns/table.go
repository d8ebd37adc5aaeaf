// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patterns implements the regex extraction engine. Pattern lists are
// named data tables (category -> PatternSpec list) so each pattern can be
// tested in isolation and replaced from a YAML file.
package patterns

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// PatternSpec is a named regular expression with its capture policy.
type PatternSpec struct {
	// Name identifies the spec in errors and pattern dumps.
	Name string `json:"name" yaml:"name"`

	// Expr is an RE2 expression.
	Expr string `json:"expr" yaml:"expr"`

	// Group selects what is collected: 0 is the whole match, N is capture group N.
	Group int `json:"group" yaml:"group"`
}

// CategorySpec describes one category in a pattern file. Indicators are
// shorthand for indicator-sentence specs and expand after Patterns.
type CategorySpec struct {
	Patterns   []PatternSpec `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Indicators []string      `json:"indicators,omitempty" yaml:"indicators,omitempty"`
}

// Specs returns the expanded PatternSpec list.
func (c CategorySpec) Specs() []PatternSpec {
	specs := make([]PatternSpec, 0, len(c.Patterns)+len(c.Indicators))
	specs = append(specs, c.Patterns...)
	for _, word := range c.Indicators {
		specs = append(specs, IndicatorSpec(word))
	}
	return specs
}

// Table maps categories to their specs.
type Table struct {
	Categories map[types.Category]CategorySpec `json:"categories" yaml:"categories"`
}

// Structured-field specs. One expression per category, applied to the whole
// text in a single pass.
var (
	// APISpec matches a domain keyword followed by the nearest path-like token.
	APISpec = PatternSpec{
		Name: "api-path",
		Expr: `(?i)(?:api|endpoint|service).*?(?:/[a-zA-Z0-9/_-]+)`,
	}

	// WorkflowSpec captures the text after "workflow:", "process:" or
	// "procedure:" up to the next newline or period.
	WorkflowSpec = PatternSpec{
		Name:  "workflow-description",
		Expr:  `(?i)(?:workflow|process|procedure):\s*([^\n.]+)`,
		Group: 1,
	}

	// DataModelSpec captures the identifier after "table:", "entity:",
	// "object:" or "model:".
	DataModelSpec = PatternSpec{
		Name:  "data-model-name",
		Expr:  `(?i)(?:table|entity|object|model):\s*([a-zA-Z][a-zA-Z0-9_]+)`,
		Group: 1,
	}
)

// PainIndicators mark a sentence as a candidate pain point.
var PainIndicators = []string{
	"manual", "manually", "time-consuming", "complex", "difficult",
	"workaround", "limitation", "issue", "problem", "challenge",
	"slow", "inefficient", "error-prone",
}

// OpportunityIndicators mark a sentence as a candidate opportunity.
var OpportunityIndicators = []string{
	"integration", "automation", "streamline", "optimize",
	"enhance", "improve", "simplify", "accelerate",
}

// IndicatorSpec builds the sentence pattern for one indicator word: every
// run of non-period characters containing the word, up to and including the
// closing period. Splitting on "." is naive; "e.g." ends a sentence.
func IndicatorSpec(word string) PatternSpec {
	return PatternSpec{
		Name: "indicator:" + word,
		Expr: `(?i)[^.]*` + regexp.QuoteMeta(word) + `[^.]*\.`,
	}
}

// DefaultTable returns the built-in pattern table. Integrations has no
// default specs.
func DefaultTable() Table {
	return Table{Categories: map[types.Category]CategorySpec{
		types.CategoryAPIs:          {Patterns: []PatternSpec{APISpec}},
		types.CategoryWorkflows:     {Patterns: []PatternSpec{WorkflowSpec}},
		types.CategoryDataModels:    {Patterns: []PatternSpec{DataModelSpec}},
		types.CategoryIntegrations:  {},
		types.CategoryPainPoints:    {Indicators: append([]string(nil), PainIndicators...)},
		types.CategoryOpportunities: {Indicators: append([]string(nil), OpportunityIndicators...)},
	}}
}

// Merge returns a copy of t where every category present in override
// replaces the corresponding category of t.
func (t Table) Merge(override Table) Table {
	out := Table{Categories: make(map[types.Category]CategorySpec, len(t.Categories))}
	for c, spec := range t.Categories {
		out.Categories[c] = spec
	}
	for c, spec := range override.Categories {
		out.Categories[c] = spec
	}
	return out
}

// Validate checks that every category is known.
func (t Table) Validate() error {
	for c := range t.Categories {
		if !c.Known() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	return nil
}
