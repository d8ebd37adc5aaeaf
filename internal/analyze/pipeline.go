// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/doc-analyzer/internal/patterns"
	"github.com/pdiddy/doc-analyzer/internal/textextract"
	"github.com/pdiddy/doc-analyzer/pkg/types"
)

// Options tunes a Pipeline.
type Options struct {
	// Workers bounds concurrent extraction in directory mode. Values below
	// 2 extract sequentially.
	Workers int

	// AllCategories scans every category regardless of file kind.
	AllCategories bool

	// Out receives progress lines. Nil discards them.
	Out io.Writer

	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Pipeline extracts text from files and scans it with the pattern engine.
type Pipeline struct {
	engine *patterns.Engine
	caps   textextract.Capabilities
	opts   Options
	out    io.Writer
	log    *slog.Logger
}

// NewPipeline wires an engine and resolved capabilities.
func NewPipeline(engine *patterns.Engine, caps textextract.Capabilities, opts Options) *Pipeline {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{engine: engine, caps: caps, opts: opts, out: out, log: log}
}

// Summary holds the outcome of a directory run.
type Summary struct {
	Analyzed int
	Failed   int

	// Files holds every per-file result in walk order.
	Files []*types.ExtractionResult
}

// Total returns the number of files attempted.
func (s Summary) Total() int {
	return s.Analyzed + s.Failed
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// AnalyzeFile analyzes a single path. A .pdf goes to the PDF backend, a
// .docx to the DOCX backend when enabled, and anything else is read as
// plain text. Failures are captured in the result's Error field.
func (p *Pipeline) AnalyzeFile(path string) *types.ExtractionResult {
	kind := types.KindForPath(path)
	if kind != types.KindPDF && !(kind == types.KindDocx && p.caps.Supports(kind)) {
		kind = types.KindText
	}
	return p.extract(path, kind)
}

// AnalyzeDirectory walks root in lexical order, analyzes every supported
// file, records the results into a in walk order, and finalizes a.
// Unsupported extensions are skipped silently; per-file failures are
// reported and counted but never stop the walk.
func (p *Pipeline) AnalyzeDirectory(ctx context.Context, root string, a *Analyzer) (Summary, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(p.out, "Directory %s does not exist\n", root)
		return Summary{}, nil
	}

	type job struct {
		path string
		kind types.FileKind
	}
	var jobs []job

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			p.log.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		kind := types.KindForPath(path)
		if !p.eligible(kind) {
			p.log.Debug("skipping file", "path", path, "kind", kind)
			return nil
		}
		jobs = append(jobs, job{path: path, kind: kind})
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("walking %s: %w", root, err)
	}

	results := make([]*types.ExtractionResult, len(jobs))
	if p.opts.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.opts.Workers)
		for i, j := range jobs {
			i, j := i, j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = p.extract(j.path, j.kind)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Summary{}, err
		}
	} else {
		for i, j := range jobs {
			if err := ctx.Err(); err != nil {
				return Summary{}, err
			}
			results[i] = p.extract(j.path, j.kind)
		}
	}

	var summary Summary
	for i, r := range results {
		if r.Failed() {
			fmt.Fprintf(p.out, "failed:   %s (%s)\n", jobs[i].path, r.Error)
			summary.Failed++
		} else {
			fmt.Fprintf(p.out, "analyzed: %s (%d matches)\n", jobs[i].path, r.Count())
			summary.Analyzed++
		}
		a.Record(r)
		summary.Files = append(summary.Files, r)
	}
	a.Finalize()

	fmt.Fprintf(p.out, "\nDirectory summary: %d analyzed, %d failed (total: %d)\n",
		summary.Analyzed, summary.Failed, summary.Total())
	return summary, nil
}

// eligible reports whether directory mode picks up files of kind k.
func (p *Pipeline) eligible(k types.FileKind) bool {
	switch k {
	case types.KindText:
		return true
	case types.KindPDF, types.KindDocx:
		return p.caps.Supports(k)
	default:
		return false
	}
}

func (p *Pipeline) categories(kind types.FileKind) []types.Category {
	if p.opts.AllCategories {
		return types.AllCategories
	}
	return kind.Profile()
}

// extract runs one file through its extractor and the engine. It is safe
// for concurrent use.
func (p *Pipeline) extract(path string, kind types.FileKind) *types.ExtractionResult {
	cats := p.categories(kind)

	ext, err := p.caps.ForKind(kind)
	switch {
	case errors.Is(err, textextract.ErrCapabilityUnavailable):
		p.log.Warn("capability unavailable", "path", path, "kind", kind, "error", err)
		return &types.ExtractionResult{Error: err.Error()}
	case errors.Is(err, textextract.ErrUnsupportedKind):
		p.log.Warn("no extractor for file", "path", path, "kind", kind)
		r := types.NewExtractionResult(path, cats...)
		r.Error = err.Error()
		return r
	case err != nil:
		return &types.ExtractionResult{File: path, Error: err.Error()}
	}

	text, err := ext.Extract(path)
	if err != nil {
		p.log.Warn("extraction failed", "path", path, "backend", ext.Name(), "error", err)
		r := types.NewExtractionResult(path, cats...)
		r.Error = err.Error()
		return r
	}

	r := p.engine.Extract(path, text, cats...)
	p.log.Debug("extracted file", "path", path, "backend", ext.Name(), "chars", len(text), "matches", r.Count())
	return r
}
