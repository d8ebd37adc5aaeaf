// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"os"
	"strings"
)

// PlainText reads .txt, .md and .rst files. Invalid UTF-8 sequences are dropped.
type PlainText struct{}

func (PlainText) Name() string { return "plaintext" }

func (PlainText) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", extractionErr("reading", path, err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
