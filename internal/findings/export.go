// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package findings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Export file names, written next to the database.
const (
	ExportYAMLFile = "findings_export.yaml"
	ExportJSONFile = "findings_export.json"
)

const exportLimit = 1000000

// ExportYAML writes matching findings to findings_export.yaml beside the
// database and returns the path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport(ExportYAMLFile, data)
}

// ExportJSON writes matching findings to findings_export.json beside the
// database and returns the path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport(ExportJSONFile, data)
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(filepath.Dir(s.path), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]Finding, error) {
	opts.MaxResults = exportLimit
	results, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if results == nil {
		results = []Finding{}
	}
	return results, nil
}
