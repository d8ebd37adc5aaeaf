// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadTable reads a YAML pattern file and merges it over DefaultTable.
// Categories in the file replace the defaults wholesale; absent categories
// keep their defaults. An empty path returns DefaultTable.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading pattern file %s: %w", path, err)
	}

	var override Table
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Table{}, fmt.Errorf("parsing pattern file %s: %w", path, err)
	}
	if err := override.Validate(); err != nil {
		return Table{}, fmt.Errorf("pattern file %s: %w", path, err)
	}

	return DefaultTable().Merge(override), nil
}

// WriteTable encodes t as YAML, in the format LoadTable reads.
func WriteTable(w io.Writer, t Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&t); err != nil {
		return fmt.Errorf("encoding pattern table: %w", err)
	}
	return enc.Close()
}
