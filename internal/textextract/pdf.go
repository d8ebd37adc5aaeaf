// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativePDF extracts PDF text in-process with ledongthuc/pdf. Page texts
// are concatenated with no separator; a page without extractable text
// contributes an empty string.
type NativePDF struct{}

func (NativePDF) Name() string { return "native-pdf" }

func (NativePDF) Extract(path string) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = extractionErr("parsing PDF", path, fmt.Errorf("%v", r))
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", extractionErr("opening PDF", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}
