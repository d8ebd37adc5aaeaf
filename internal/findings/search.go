// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package findings

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// QueryOptions holds parameters for findings queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string.
	Query string

	// Category filters by finding category.
	Category types.Category

	// RunID filters by run.
	RunID string

	// File filters by source file path.
	File string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Category == "" && q.RunID == "" && q.File == ""
}

// Finding is one stored match.
type Finding struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	File     string         `json:"file" yaml:"file"`
	Category types.Category `json:"category" yaml:"category"`
	Content  string         `json:"content" yaml:"content"`
}

// Search queries findings with optional full-text search and structured
// filters. Full-text results are ranked by relevance; structured-only and
// LIKE fallback results are in insertion order.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Finding, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != "" && s.fts
	)

	switch {
	case useFTS:
		qb.WriteString(
			`SELECT f.run_id, f.file, f.category, f.content
			FROM findings_fts
			JOIN findings f ON f.rowid = findings_fts.rowid
			WHERE findings_fts MATCH ?`)
		args = append(args, ftsQuery(opts.Query))
	case opts.Query != "":
		qb.WriteString(
			`SELECT f.run_id, f.file, f.category, f.content
			FROM findings f
			WHERE f.content LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(opts.Query))
	default:
		qb.WriteString(
			`SELECT f.run_id, f.file, f.category, f.content
			FROM findings f
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND f.category = ?`)
		args = append(args, string(opts.Category))
	}
	if opts.RunID != "" {
		qb.WriteString(` AND f.run_id = ?`)
		args = append(args, opts.RunID)
	}
	if opts.File != "" {
		qb.WriteString(` AND f.file = ?`)
		args = append(args, opts.File)
	}

	if useFTS {
		qb.WriteString(` ORDER BY findings_fts.rank, f.rowid`)
	} else {
		qb.WriteString(` ORDER BY f.rowid`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var results []Finding
	for rows.Next() {
		var (
			f   Finding
			cat string
		)
		if err := rows.Scan(&f.RunID, &f.File, &cat, &f.Content); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		f.Category = types.Category(cat)
		results = append(results, f)
	}
	return results, rows.Err()
}

// ftsQuery quotes each whitespace-separated term as an FTS5 string so
// punctuation such as the hyphen in "error-prone" is not read as query
// syntax. Terms are ANDed.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring LIKE pattern with the wildcards in q
// escaped.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
