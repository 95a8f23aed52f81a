package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/foliocite/foliocite/internal/citation"
	"github.com/foliocite/foliocite/internal/engine"
	"github.com/foliocite/foliocite/internal/fallback"
	"github.com/foliocite/foliocite/internal/pagetext"
)

// fakeDoc is an in-memory Document whose footers carry a clean numbering
// sequence starting at first.
type fakeDoc struct {
	count int
	first int
	mute  bool // no margin numbers at all
}

func (d *fakeDoc) PageCount() int { return d.count }

func (d *fakeDoc) Fragments(_ context.Context, page int, region pagetext.Region) ([]pagetext.Fragment, error) {
	if d.mute || region != pagetext.RegionFooter {
		return []pagetext.Fragment{}, nil
	}
	return []pagetext.Fragment{
		{Text: fmt.Sprintf("%d", d.first+page), X: 300, PageWidth: 600},
	}, nil
}

func (d *fakeDoc) PlainText(context.Context, int) (string, error)  { return "Journal of Tests", nil }
func (d *fakeDoc) MarginText(context.Context, int) (string, error) { return "", nil }
func (d *fakeDoc) Close() error                                    { return nil }

func writePlaceholders(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	writePlaceholders(t, dir, "b.pdf", "a.pdf", "notes.txt")

	docs := map[string]*fakeDoc{
		"a.pdf": {count: 10, first: 186},
		"b.pdf": {count: 10, first: 51},
	}

	r := &Runner{
		Engine:    engine.New(engine.DefaultOptions()),
		RangeExpr: "1-3, -2",
		Workers:   2,
		Classify:  true,
		Open: func(path string) (Document, error) {
			return docs[filepath.Base(path)], nil
		},
	}

	records, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (txt file skipped)", len(records))
	}

	// Records come back in sorted filename order.
	if filepath.Base(records[0].SourcePath) != "a.pdf" {
		t.Errorf("first record = %s, want a.pdf", records[0].SourcePath)
	}
	if records[0].PageNumbers != "186-195" {
		t.Errorf("a.pdf page numbers = %q, want \"186-195\"", records[0].PageNumbers)
	}
	if records[0].PageNumberMethod != citation.MethodEngine {
		t.Errorf("a.pdf method = %q, want engine", records[0].PageNumberMethod)
	}
	if records[1].PageNumbers != "51-60" {
		t.Errorf("b.pdf page numbers = %q, want \"51-60\"", records[1].PageNumbers)
	}
	if records[0].DocumentType != "journal" {
		t.Errorf("a.pdf type = %q, want journal", records[0].DocumentType)
	}
}

func TestRunnerOpenFailure(t *testing.T) {
	dir := t.TempDir()
	writePlaceholders(t, dir, "broken.pdf")

	r := &Runner{
		Engine:    engine.New(engine.DefaultOptions()),
		RangeExpr: "1-3",
		Open: func(string) (Document, error) {
			return nil, errors.New("corrupt file")
		},
	}

	records, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if records[0].Error == "" {
		t.Error("expected per-document error to be recorded")
	}
	if records[0].PageNumbers != "" {
		t.Errorf("page numbers = %q, want empty", records[0].PageNumbers)
	}
}

func TestRunnerFallbackChain(t *testing.T) {
	dir := t.TempDir()
	writePlaceholders(t, dir, "quiet.pdf")

	// The document has footer numbers only on its very first and last
	// pages, outside any window the searcher could validate, so the
	// engine abstains and the footer scan answers.
	doc := &edgeOnlyDoc{count: 30, first: 100}

	r := &Runner{
		Engine:     engine.New(engine.DefaultOptions()),
		RangeExpr:  "2-4",
		FooterScan: true,
		Open: func(string) (Document, error) {
			return doc, nil
		},
	}

	records, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if records[0].PageNumberMethod != citation.MethodFooterScan {
		t.Errorf("method = %q, want footer-scan (record: %+v)",
			records[0].PageNumberMethod, records[0])
	}
	if records[0].PageNumbers != "100-129" {
		t.Errorf("page numbers = %q, want \"100-129\"", records[0].PageNumbers)
	}
}

func TestRunnerLLMLastResort(t *testing.T) {
	dir := t.TempDir()
	writePlaceholders(t, dir, "silent.pdf")

	llm := &stubEstimator{result: "77-99"}
	r := &Runner{
		Engine:     engine.New(engine.DefaultOptions()),
		RangeExpr:  "1-3",
		FooterScan: true,
		LLM:        llm,
		Open: func(string) (Document, error) {
			return &fakeDoc{count: 10, mute: true}, nil
		},
	}

	records, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if records[0].PageNumbers != "77-99" || records[0].PageNumberMethod != citation.MethodLLM {
		t.Errorf("record = %+v, want llm result 77-99", records[0])
	}
}

func TestRunnerEmptyDir(t *testing.T) {
	r := &Runner{Engine: engine.New(engine.DefaultOptions()), RangeExpr: "1-3"}
	if _, err := r.Run(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error for directory without PDFs")
	}
}

// edgeOnlyDoc numbers only its first and last physical pages.
type edgeOnlyDoc struct {
	count int
	first int
}

func (d *edgeOnlyDoc) PageCount() int { return d.count }

func (d *edgeOnlyDoc) Fragments(_ context.Context, page int, region pagetext.Region) ([]pagetext.Fragment, error) {
	if region != pagetext.RegionFooter || (page != 0 && page != d.count-1) {
		return []pagetext.Fragment{}, nil
	}
	return []pagetext.Fragment{
		{Text: fmt.Sprintf("%d", d.first+page), X: 300, PageWidth: 600},
	}, nil
}

func (d *edgeOnlyDoc) PlainText(context.Context, int) (string, error)  { return "", nil }
func (d *edgeOnlyDoc) MarginText(context.Context, int) (string, error) { return "", nil }
func (d *edgeOnlyDoc) Close() error                                    { return nil }

type stubEstimator struct {
	result string
}

func (s *stubEstimator) Estimate(context.Context, pagetext.Source, int) (fallback.Estimate, error) {
	return fallback.Estimate{PageNumbers: s.result}, nil
}
