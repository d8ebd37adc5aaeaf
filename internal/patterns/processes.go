// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"regexp"
	"sort"
)

// ProcessSpecs are the domain-specific business process phrases recognized
// by BusinessProcesses.
var ProcessSpecs = []PatternSpec{
	{Name: "claims", Expr: `(?i)claims? (?:processing|adjudication|workflow)`},
	{Name: "member", Expr: `(?i)member (?:enrollment|eligibility|management)`},
	{Name: "provider", Expr: `(?i)provider (?:network|credentialing|management)`},
	{Name: "prior-authorization", Expr: `(?i)prior authorization`},
	{Name: "benefit", Expr: `(?i)benefit (?:verification|administration)`},
	{Name: "payment", Expr: `(?i)payment (?:processing|posting)`},
	{Name: "reporting", Expr: `(?i)reporting (?:and analytics|requirements)`},
}

var processRes = compileAll(ProcessSpecs)

func compileAll(specs []PatternSpec) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(specs))
	for i, s := range specs {
		res[i] = regexp.MustCompile(s.Expr)
	}
	return res
}

// BusinessProcesses returns the distinct process phrases found in text,
// as they appear in the text, sorted. Case variants are distinct.
func BusinessProcesses(text string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, re := range processRes {
		for _, m := range re.FindAllString(text, -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
