// Package batch processes directories of scanned documents through the
// inference pipeline: classification, page-number inference, and the
// fallback chain.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/foliocite/foliocite/internal/citation"
	"github.com/foliocite/foliocite/internal/classify"
	"github.com/foliocite/foliocite/internal/engine"
	"github.com/foliocite/foliocite/internal/fallback"
	"github.com/foliocite/foliocite/internal/pagetext"
)

// probeRange is the page window used when classification asks for the
// document's first printed page number.
const probeRange = "1-3"

// Document is one open source document. *pagetext.PDFSource satisfies
// it.
type Document interface {
	pagetext.Source
	PlainText(ctx context.Context, pageIndex int) (string, error)
	MarginText(ctx context.Context, pageIndex int) (string, error)
	Close() error
}

// Opener opens a document by path. The default opens PDFs through
// pagetext; tests substitute fakes.
type Opener func(path string) (Document, error)

// Runner executes the pipeline over many documents with a bounded worker
// pool. Engines are stateless, so one Runner handles all workers.
type Runner struct {
	Engine     *engine.Engine
	RangeExpr  string        // page window expression, e.g. "1-5, -3"
	Workers    int           // concurrent documents (default 4)
	DocTimeout time.Duration // wall-clock budget per document (default 2m)
	StripFrac  float64       // margin strip height, 0 for the default
	Classify   bool          // include document-type classification
	FooterScan bool          // enable the footer-scan fallback
	LLM        fallback.Estimator
	Open       Opener
	Logger     *slog.Logger
}

// Run processes every PDF in dir and returns one record per file, in
// sorted filename order. Per-document failures land in Record.Error;
// only listing the directory can fail the run as a whole.
func (r *Runner) Run(ctx context.Context, dir string) ([]citation.Record, error) {
	log := r.logger()

	files, err := listPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files in %s", dir)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 4
	}
	log.Info("starting batch", "dir", dir, "files", len(files), "workers", workers)

	records := make([]citation.Record, len(files))
	sem := make(chan struct{}, workers)
	done := make(chan int, len(files))

	for i, path := range files {
		sem <- struct{}{} // acquire
		go func(idx int, path string) {
			defer func() { <-sem }() // release
			records[idx] = r.processOne(ctx, path)
			done <- idx
		}(i, path)
	}
	for range files {
		<-done
	}

	log.Info("batch complete", "files", len(files))
	return records, nil
}

// RunFile processes a single document through the same pipeline Run
// applies to each directory entry.
func (r *Runner) RunFile(ctx context.Context, path string) citation.Record {
	return r.processOne(ctx, path)
}

// processOne runs the full pipeline for a single document.
func (r *Runner) processOne(ctx context.Context, path string) citation.Record {
	log := r.logger().With("file", filepath.Base(path))

	timeout := r.DocTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	doc, err := r.open(path)
	if err != nil {
		log.Warn("failed to open document", "error", err)
		rec := citation.NewRecord(path, 0)
		rec.Error = err.Error()
		return rec
	}
	defer doc.Close()

	rec := citation.NewRecord(path, doc.PageCount())

	if r.Classify {
		rec.DocumentType = string(classify.DetermineType(ctx, doc, r.probe(doc), log))
	}

	res, err := r.Engine.Infer(ctx, doc, r.RangeExpr, doc.PageCount())
	if err != nil {
		// A bad range expression is a configuration fault, not a
		// property of this document; surface it and stop here.
		rec.Error = err.Error()
		return rec
	}
	rec.MergePageNumbers(res.PageNumbers, citation.MethodEngine)
	rec.TotalPagesHint = res.TotalPagesHint

	if rec.PageNumbers == "" && r.FooterScan {
		est, err := (&fallback.FooterScan{Logger: log}).Estimate(ctx, doc, doc.PageCount())
		if err != nil {
			log.Debug("footer scan failed", "error", err)
		} else {
			rec.MergePageNumbers(est.PageNumbers, citation.MethodFooterScan)
		}
	}

	if rec.PageNumbers == "" && r.LLM != nil {
		est, err := r.LLM.Estimate(ctx, doc, doc.PageCount())
		if err != nil {
			log.Debug("llm fallback failed", "error", err)
		} else {
			rec.MergePageNumbers(est.PageNumbers, citation.MethodLLM)
		}
	}

	log.Info("document processed",
		"pages", rec.PageCount,
		"type", rec.DocumentType,
		"page_numbers", rec.PageNumbers,
		"method", rec.PageNumberMethod)
	return rec
}

// probe adapts the engine into the classifier's first-page-number probe.
func (r *Runner) probe(doc Document) classify.PageNumberProbe {
	return func(ctx context.Context) (int, bool) {
		res, err := r.Engine.Infer(ctx, doc, probeRange, doc.PageCount())
		if err != nil || res.Empty() {
			return 0, false
		}
		min := 0
		for _, v := range res.Assignment {
			if min == 0 || v < min {
				min = v
			}
		}
		return min, min > 0
	}
}

func (r *Runner) open(path string) (Document, error) {
	if r.Open != nil {
		return r.Open(path)
	}
	return pagetext.OpenPDF(path, r.StripFrac, r.logger())
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// listPDFs returns the PDF files in dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
