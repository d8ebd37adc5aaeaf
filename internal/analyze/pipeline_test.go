// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-analyzer/internal/patterns"
	"github.com/pdiddy/doc-analyzer/internal/textextract"
	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// fakeExtractor returns canned text or errors keyed by file base name.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f fakeExtractor) Name() string { return "fake" }

func (f fakeExtractor) Extract(path string) (string, error) {
	base := filepath.Base(path)
	if err, ok := f.errs[base]; ok {
		return "", fmt.Errorf("%w: parsing PDF %s: %w", textextract.ErrExtraction, path, err)
	}
	if text, ok := f.texts[base]; ok {
		return text, nil
	}
	return "", errors.New("unexpected path: " + path)
}

func writeDoc(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func pdfUnavailable() textextract.Capabilities {
	return textextract.Capabilities{
		Text:    textextract.PlainText{},
		PDFErr:  &textextract.CapabilityError{Capability: "PDF", Reason: "PDF backend disabled (set pdf.backend: native)"},
		DocxErr: &textextract.CapabilityError{Capability: "DOCX", Reason: "DOCX extraction not enabled"},
	}
}

// setupMixedDir builds a docs tree with PDFs handled by a fake backend,
// text files, and an unsupported file.
func setupMixedDir(t *testing.T) (string, textextract.Capabilities) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "docs")
	writeDoc(t, root, "system.pdf", "%PDF")
	writeDoc(t, root, "corrupt.pdf", "%PDF")
	writeDoc(t, root, "notes/guide.md", "Claims entry is manual. Automation would streamline intake.")
	writeDoc(t, root, "readme.rst", "Claims entry is manual.")
	writeDoc(t, root, "image.png", "binary")

	caps := pdfUnavailable()
	caps.PDF = fakeExtractor{
		texts: map[string]string{
			"system.pdf": "API: /v1/claims\nWorkflow: adjudicate claim. Table: CLCL_CLAIM",
		},
		errs: map[string]error{
			"corrupt.pdf": errors.New("malformed xref"),
		},
	}
	caps.PDFErr = nil
	return root, caps
}

func TestAnalyzeDirectory_Mixed(t *testing.T) {
	root, caps := setupMixedDir(t)
	var out bytes.Buffer
	p := NewPipeline(patterns.MustDefault(), caps, Options{Out: &out})
	a := NewAnalyzer()

	summary, err := p.AnalyzeDirectory(context.Background(), root, a)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Analyzed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 4, summary.Total())
	assert.True(t, summary.HasFailures())

	var files []string
	for _, f := range summary.Files {
		files = append(files, filepath.Base(f.File))
	}
	assert.Equal(t, []string{"corrupt.pdf", "guide.md", "readme.rst", "system.pdf"}, files)

	got := a.Results()
	assert.Equal(t, []string{"API: /v1/claims"}, got.APIs)
	assert.Equal(t, []string{"adjudicate claim"}, got.Workflows)
	assert.Equal(t, []string{}, got.Integrations)
	assert.Equal(t, []string{"Claims entry is manual."}, got.PainPoints)
	assert.Equal(t, []string{" Automation would streamline intake."}, got.Opportunities)

	log := out.String()
	assert.Contains(t, log, "failed:   "+filepath.Join(root, "corrupt.pdf")+" (extraction failed: parsing PDF")
	assert.Contains(t, log, "analyzed: "+filepath.Join(root, "system.pdf")+" (3 matches)")
	assert.Contains(t, log, "Directory summary: 3 analyzed, 1 failed (total: 4)")
	assert.NotContains(t, log, "image.png")
}

func TestAnalyzeDirectory_WorkersMatchSequential(t *testing.T) {
	root, caps := setupMixedDir(t)

	run := func(workers int) (types.AnalysisResults, Summary, string) {
		var out bytes.Buffer
		p := NewPipeline(patterns.MustDefault(), caps, Options{Workers: workers, Out: &out})
		a := NewAnalyzer()
		summary, err := p.AnalyzeDirectory(context.Background(), root, a)
		require.NoError(t, err)
		return a.Results(), summary, out.String()
	}

	seqResults, seqSummary, seqOut := run(1)
	parResults, parSummary, parOut := run(4)

	assert.Equal(t, seqResults, parResults)
	assert.Equal(t, seqSummary, parSummary)
	assert.Equal(t, seqOut, parOut)
}

func TestAnalyzeDirectory_SkipsDocx(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "design.docx", "Manual steps are slow.")
	writeDoc(t, root, "notes.txt", "Integration would help.")

	p := NewPipeline(patterns.MustDefault(), textextract.Detect(types.DefaultConfig()), Options{})
	a := NewAnalyzer()

	summary, err := p.AnalyzeDirectory(context.Background(), root, a)
	require.NoError(t, err)

	require.Len(t, summary.Files, 1)
	assert.Equal(t, filepath.Join(root, "notes.txt"), summary.Files[0].File)
	got := a.Results()
	assert.Empty(t, got.PainPoints)
	assert.Equal(t, []string{"Integration would help."}, got.Opportunities)
}

func TestAnalyzeDirectory_SkipsPDFWhenUnavailable(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "guide.pdf", "%PDF")
	writeDoc(t, root, "notes.txt", "Nothing to see here.")

	p := NewPipeline(patterns.MustDefault(), pdfUnavailable(), Options{})
	summary, err := p.AnalyzeDirectory(context.Background(), root, NewAnalyzer())
	require.NoError(t, err)

	require.Len(t, summary.Files, 1)
	assert.Equal(t, filepath.Join(root, "notes.txt"), summary.Files[0].File)
}

func TestAnalyzeDirectory_Missing(t *testing.T) {
	var out bytes.Buffer
	p := NewPipeline(patterns.MustDefault(), pdfUnavailable(), Options{Out: &out})
	missing := filepath.Join(t.TempDir(), "nope")

	summary, err := p.AnalyzeDirectory(context.Background(), missing, NewAnalyzer())
	require.NoError(t, err)
	assert.Zero(t, summary.Total())
	assert.Equal(t, "Directory "+missing+" does not exist\n", out.String())
}

func TestAnalyzeDirectory_Cancelled(t *testing.T) {
	root, caps := setupMixedDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(patterns.MustDefault(), caps, Options{})
	_, err := p.AnalyzeDirectory(ctx, root, NewAnalyzer())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeFile_PDFCapabilityUnavailable(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "manual.pdf", "%PDF")

	p := NewPipeline(patterns.MustDefault(), pdfUnavailable(), Options{})
	r := p.AnalyzeFile(path)

	require.True(t, r.Failed())
	assert.Empty(t, r.File)

	data, err := json.MarshalIndent(r, "", "  ")
	require.NoError(t, err)
	assert.Equal(t,
		"{\n  \"error\": \"PDF support not available: PDF backend disabled (set pdf.backend: native)\"\n}",
		string(data))

	a := NewAnalyzer()
	a.Record(r)
	a.Finalize()
	assert.Zero(t, a.Results().Total())
}

func TestAnalyzeFile_ReadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	p := NewPipeline(patterns.MustDefault(), pdfUnavailable(), Options{})

	r := p.AnalyzeFile(missing)
	require.True(t, r.Failed())
	assert.Contains(t, r.Error, "extraction failed: reading "+missing)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"file":".*missing.txt","pain_points":\[\],"opportunities":\[\],"error":"extraction failed`, string(data))
}

func TestAnalyzeFile_AnyExtensionReadAsText(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "notes.docx", "This is slow.")
	p := NewPipeline(patterns.MustDefault(), pdfUnavailable(), Options{})

	r := p.AnalyzeFile(path)
	require.False(t, r.Failed())
	assert.Equal(t, []string{"This is slow."}, r.Matches[types.CategoryPainPoints])
}

func TestAnalyzeFile_AllCategories(t *testing.T) {
	text := "The claims process: manual review of each submission is time-consuming."
	path := writeDoc(t, t.TempDir(), "claims.txt", text)
	p := NewPipeline(patterns.MustDefault(), pdfUnavailable(), Options{AllCategories: true})

	r := p.AnalyzeFile(path)
	assert.Equal(t, types.AllCategories, r.Categories)
	assert.Equal(t, []string{"manual review of each submission is time-consuming"}, r.Matches[types.CategoryWorkflows])
	assert.Equal(t, []string{text, text}, r.Matches[types.CategoryPainPoints])
}

func TestExtract_UnsupportedKind(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "image.png", "binary")
	p := NewPipeline(patterns.MustDefault(), pdfUnavailable(), Options{})

	r := p.extract(path, types.KindUnsupported)
	require.True(t, r.Failed())
	assert.Equal(t, path, r.File)
	assert.Contains(t, r.Error, "unsupported file kind")
	assert.Empty(t, r.Categories)
	assert.Zero(t, r.Count())
}
