// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textextract turns documentation files into plain text. Backends
// are resolved once at startup into a Capabilities value; a backend that
// cannot run is reported as a CapabilityError instead of failing the run.
package textextract

import (
	"errors"
	"fmt"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

var (
	// ErrCapabilityUnavailable marks an optional extraction capability
	// that is disabled or missing.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrExtraction marks a file that could not be read or parsed.
	ErrExtraction = errors.New("extraction failed")

	// ErrUnsupportedKind is returned for file kinds with no extractor.
	ErrUnsupportedKind = errors.New("unsupported file kind")
)

// CapabilityError describes why an optional capability cannot be used.
type CapabilityError struct {
	// Capability is the human name, e.g. "PDF".
	Capability string
	// Reason says what is missing and how to enable it.
	Reason string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s support not available: %s", e.Capability, e.Reason)
}

func (e *CapabilityError) Unwrap() error { return ErrCapabilityUnavailable }

// Extractor reads a file and returns its full text.
type Extractor interface {
	// Name identifies the backend in logs.
	Name() string

	// Extract returns the text of the file at path. Failures wrap ErrExtraction.
	Extract(path string) (string, error)
}

func extractionErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrExtraction, op, path, err)
}

// Capabilities holds the extractors resolved for this run. A nil extractor
// comes with the CapabilityError explaining its absence.
type Capabilities struct {
	Text Extractor

	PDF    Extractor
	PDFErr error

	Docx    Extractor
	DocxErr error
}

// ForKind returns the extractor for k, or the reason there is none.
func (c Capabilities) ForKind(k types.FileKind) (Extractor, error) {
	switch k {
	case types.KindText:
		return c.Text, nil
	case types.KindPDF:
		if c.PDF == nil {
			return nil, c.PDFErr
		}
		return c.PDF, nil
	case types.KindDocx:
		if c.Docx == nil {
			return nil, c.DocxErr
		}
		return c.Docx, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
	}
}

// Supports reports whether files of kind k can be extracted.
func (c Capabilities) Supports(k types.FileKind) bool {
	e, err := c.ForKind(k)
	return err == nil && e != nil
}
