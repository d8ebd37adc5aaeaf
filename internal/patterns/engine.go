// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

type compiledSpec struct {
	PatternSpec
	re *regexp.Regexp
}

// Engine applies a compiled pattern table to text.
type Engine struct {
	specs map[types.Category][]compiledSpec
}

// NewEngine compiles every spec in t. It fails on unknown categories,
// invalid expressions, or a capture group the expression does not have.
func NewEngine(t Table) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{specs: make(map[types.Category][]compiledSpec, len(t.Categories))}
	for c, cs := range t.Categories {
		for _, spec := range cs.Specs() {
			re, err := regexp.Compile(spec.Expr)
			if err != nil {
				return nil, fmt.Errorf("compiling %s pattern %q: %w", c, spec.Name, err)
			}
			if spec.Group < 0 || spec.Group > re.NumSubexp() {
				return nil, fmt.Errorf("%s pattern %q: group %d out of range (expression has %d)",
					c, spec.Name, spec.Group, re.NumSubexp())
			}
			e.specs[c] = append(e.specs[c], compiledSpec{PatternSpec: spec, re: re})
		}
	}
	return e, nil
}

// MustDefault returns an engine over DefaultTable. It panics if the built-in
// table does not compile.
func MustDefault() *Engine {
	e, err := NewEngine(DefaultTable())
	if err != nil {
		panic(err)
	}
	return e
}

// Scan returns every match for category c in order: specs in table order,
// and within a spec all non-overlapping matches in order of appearance.
// A sentence matched by two indicator specs appears twice.
func (e *Engine) Scan(text string, c types.Category) []string {
	out := []string{}
	for _, spec := range e.specs[c] {
		for _, loc := range spec.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[2*spec.Group], loc[2*spec.Group+1]
			if start < 0 {
				continue
			}
			out = append(out, text[start:end])
		}
	}
	return out
}

// Extract scans text for each category and returns the per-file result.
func (e *Engine) Extract(file, text string, categories ...types.Category) *types.ExtractionResult {
	r := types.NewExtractionResult(file, categories...)
	for _, c := range categories {
		r.Matches[c] = e.Scan(text, c)
	}
	return r
}

// SpecNames lists the spec names for c in table order.
func (e *Engine) SpecNames(c types.Category) []string {
	names := make([]string, len(e.specs[c]))
	for i, s := range e.specs[c] {
		names[i] = s.Name
	}
	return names
}
