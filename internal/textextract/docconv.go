// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"os"

	"code.sajari.com/docconv"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// PdftotextPDF extracts PDF text through docconv, which runs poppler's
// pdftotext with page breaks suppressed.
type PdftotextPDF struct{}

func (PdftotextPDF) Name() string { return "pdftotext" }

func (PdftotextPDF) Extract(path string) (string, error) {
	return convertFile(path, mimePDF)
}

// Docx extracts the body text of Word documents through docconv.
type Docx struct{}

func (Docx) Name() string { return "docx" }

func (Docx) Extract(path string) (string, error) {
	return convertFile(path, mimeDocx)
}

func convertFile(path, mimeType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", extractionErr("opening", path, err)
	}
	defer f.Close()

	res, err := docconv.Convert(f, mimeType, false)
	if err != nil {
		return "", extractionErr("converting", path, err)
	}
	return res.Body, nil
}
