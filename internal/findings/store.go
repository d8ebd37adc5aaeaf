// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package findings persists analysis runs in a SQLite database with an FTS5
// index over finding text, so findings from many runs can be searched and
// exported.
package findings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// DBFile is the default database name inside the output directory.
const DBFile = "findings.db"

// Store manages the findings database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int

	// fts is false when the sqlite3 build lacks FTS5 (built without the
	// sqlite_fts5 tag); full-text queries then fall back to LIKE.
	fts bool
}

// DBPath resolves the database location for cfg: index.path when set,
// otherwise findings.db inside outputDir.
func DBPath(cfg types.IndexConfig, outputDir string) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return filepath.Join(outputDir, DBFile)
}

// NewStore opens or creates the database at path and creates the schema if
// it does not exist.
func NewStore(path string, maxResults int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening findings index %s: %w", path, err)
	}

	if maxResults <= 0 {
		maxResults = 20
	}
	s := &Store{db: db, path: path, maxResults: maxResults, fts: true}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			title TEXT,
			generated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS findings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			file TEXT NOT NULL,
			category TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_run_id ON findings(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_category ON findings(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='findings_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE findings_fts USING fts5(content, content=findings, content_rowid=rowid)`,
		`CREATE TRIGGER findings_ai AFTER INSERT ON findings BEGIN
			INSERT INTO findings_fts(rowid, content) VALUES (new.rowid, new.content);
		END`,
		`CREATE TRIGGER findings_ad AFTER DELETE ON findings BEGIN
			INSERT INTO findings_fts(findings_fts, rowid, content) VALUES('delete', old.rowid, old.content);
		END`,
	}
	for i, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			if i == 0 && strings.Contains(err.Error(), "no such module: fts5") {
				s.fts = false
				return nil
			}
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// FullText reports whether searches use the FTS5 index.
func (s *Store) FullText() bool {
	return s.fts
}

// IngestRun stores one run and every match of its successful per-file
// results, in file order then category scan order. Re-ingesting a run ID
// replaces its findings. It returns the number of findings stored.
func (s *Store) IngestRun(ctx context.Context, meta types.RunMeta, files []*types.ExtractionResult) (int, error) {
	if meta.RunID == "" {
		return 0, fmt.Errorf("ingesting run: empty run ID")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE run_id = ?`, meta.RunID); err != nil {
		return 0, fmt.Errorf("deleting old findings: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root, title, generated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			root=excluded.root, title=excluded.title, generated_at=excluded.generated_at`,
		meta.RunID, meta.Root, meta.Title, meta.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("upserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, file, category, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, r := range files {
		if r == nil || r.Failed() {
			continue
		}
		for _, c := range r.Categories {
			for _, m := range r.Matches[c] {
				if _, err := stmt.ExecContext(ctx, meta.RunID, r.File, string(c), m); err != nil {
					return 0, fmt.Errorf("inserting finding from %s: %w", r.File, err)
				}
				n++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run %s: %w", meta.RunID, err)
	}
	return n, nil
}

// Run is one stored analysis run with its finding count.
type Run struct {
	ID          string    `json:"id" yaml:"id"`
	Root        string    `json:"root" yaml:"root"`
	Title       string    `json:"title" yaml:"title"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Findings    int       `json:"findings" yaml:"findings"`
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.root, COALESCE(r.title, ''), r.generated_at, COUNT(f.rowid)
		FROM runs r
		LEFT JOIN findings f ON f.run_id = r.id
		GROUP BY r.id
		ORDER BY r.generated_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			generated string
		)
		if err := rows.Scan(&r.ID, &r.Root, &r.Title, &generated, &r.Findings); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, generated); err == nil {
			r.GeneratedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
