// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"fmt"
	"os/exec"

	"github.com/pdiddy/doc-analyzer/pkg/types"
)

const binPdftotext = "pdftotext"

// pathLooker abstracts binary lookup for testing.
type pathLooker interface {
	LookPath(file string) (string, error)
}

// osLooker is the production pathLooker backed by os/exec.
type osLooker struct{}

func (osLooker) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

var defaultLooker pathLooker = osLooker{}

// Detect resolves the extractors available under cfg. Plain text is always
// available; PDF depends on the configured backend; DOCX is opt-in.
func Detect(cfg types.Config) Capabilities {
	return detect(cfg, defaultLooker)
}

func detect(cfg types.Config, look pathLooker) Capabilities {
	caps := Capabilities{Text: PlainText{}}

	switch cfg.PDF.Backend {
	case types.PDFNative, "":
		caps.PDF = NativePDF{}
	case types.PDFPdftotext:
		if _, err := look.LookPath(binPdftotext); err != nil {
			caps.PDFErr = &CapabilityError{
				Capability: "PDF",
				Reason:     fmt.Sprintf("%s not found on PATH (install poppler-utils or set pdf.backend: native)", binPdftotext),
			}
		} else {
			caps.PDF = PdftotextPDF{}
		}
	case types.PDFNone:
		caps.PDFErr = &CapabilityError{
			Capability: "PDF",
			Reason:     "PDF backend disabled (set pdf.backend: native)",
		}
	default:
		caps.PDFErr = &CapabilityError{
			Capability: "PDF",
			Reason:     fmt.Sprintf("unknown backend %q (use native, pdftotext, or none)", cfg.PDF.Backend),
		}
	}

	if cfg.Docx.Enabled {
		caps.Docx = Docx{}
	} else {
		caps.DocxErr = &CapabilityError{
			Capability: "DOCX",
			Reason:     "DOCX extraction not enabled (set docx.enabled: true)",
		}
	}

	return caps
}
