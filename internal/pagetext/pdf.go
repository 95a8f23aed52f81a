package pagetext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfcpuapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultStripFraction is the share of page height treated as header or
// footer when no layout-aware override is supplied.
const DefaultStripFraction = 0.10

// lineYTolerance groups text runs onto the same visual line.
const lineYTolerance = 2.0

// PDFSource reads positioned margin text directly from a PDF's text
// layer. Scanned documents without a text layer yield empty fragment
// lists; OCR sits upstream of this package.
type PDFSource struct {
	path      string
	file      *os.File
	reader    *pdf.Reader
	pageCount int
	strip     float64
	log       *slog.Logger
}

// OpenPDF opens a PDF as a positioned text source. stripFraction selects
// the margin strip height (DefaultStripFraction when <= 0). The page
// count reported by the text-layer reader is cross-checked against
// pdfcpu; a mismatch is logged and the reader's count wins.
func OpenPDF(path string, stripFraction float64, log *slog.Logger) (*PDFSource, error) {
	if stripFraction <= 0 {
		stripFraction = DefaultStripFraction
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	count := reader.NumPage()

	if f, err := os.Open(path); err == nil {
		if cpuCount, err := pdfcpuapi.PageCount(f, nil); err == nil && cpuCount != count {
			log.Warn("page count mismatch between readers",
				"path", path, "text_layer", count, "pdfcpu", cpuCount)
		}
		f.Close()
	}

	return &PDFSource{
		path:      path,
		file:      file,
		reader:    reader,
		pageCount: count,
		strip:     stripFraction,
		log:       log,
	}, nil
}

// Close releases the underlying file handle.
func (s *PDFSource) Close() error {
	return s.file.Close()
}

// PageCount returns the number of physical pages.
func (s *PDFSource) PageCount() int {
	return s.pageCount
}

// Fragments returns the positioned text runs found in the requested
// margin strip of the page. Pages outside the document, pages without a
// text layer, and empty strips all yield an empty list.
func (s *PDFSource) Fragments(ctx context.Context, pageIndex int, region Region) ([]Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pageIndex < 0 || pageIndex >= s.pageCount {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", pageIndex, s.pageCount)
	}

	page := s.reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return []Fragment{}, nil
	}

	width, height := pageSize(page)
	if width <= 0 || height <= 0 {
		return []Fragment{}, nil
	}

	var lo, hi float64
	switch region {
	case RegionHeader:
		// PDF coordinates grow upward from the bottom of the page.
		lo, hi = height*(1-s.strip), height
	case RegionFooter:
		lo, hi = 0, height*s.strip
	default:
		return nil, fmt.Errorf("unknown region %q", region)
	}

	var runs []pdf.Text
	for _, txt := range page.Content().Text {
		if txt.Y >= lo && txt.Y <= hi {
			runs = append(runs, txt)
		}
	}

	return groupRuns(runs, width), nil
}

// PlainText returns the full text of a page. Used by the document-type
// classifier, not by the inference engine.
func (s *PDFSource) PlainText(ctx context.Context, pageIndex int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if pageIndex < 0 || pageIndex >= s.pageCount {
		return "", fmt.Errorf("page index %d out of range [0, %d)", pageIndex, s.pageCount)
	}

	page := s.reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", pageIndex, err)
	}
	return text, nil
}

// MarginText returns the header and footer strip text of a page joined
// with newlines, ignoring per-strip failures.
func (s *PDFSource) MarginText(ctx context.Context, pageIndex int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var parts []string
	for _, region := range Regions {
		frags, err := s.Fragments(ctx, pageIndex, region)
		if err != nil {
			s.log.Debug("margin strip read failed",
				"page", pageIndex, "region", string(region), "error", err)
			continue
		}
		for _, f := range frags {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// pageSize resolves the page's MediaBox, following the Parent chain for
// inherited values. Returns zeros when no MediaBox can be found.
func pageSize(page pdf.Page) (width, height float64) {
	node := page.V
	for i := 0; i < 16 && !node.IsNull(); i++ {
		box := node.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			x0 := box.Index(0).Float64()
			y0 := box.Index(1).Float64()
			x1 := box.Index(2).Float64()
			y1 := box.Index(3).Float64()
			return x1 - x0, y1 - y0
		}
		node = node.Key("Parent")
	}
	return 0, 0
}

// groupRuns assembles raw text runs into line fragments. Runs are placed
// on the same line when their baselines are within tolerance, then split
// into separate fragments at large horizontal gaps so that a left-hand
// page number and a centered running head stay distinct.
func groupRuns(runs []pdf.Text, pageWidth float64) []Fragment {
	if len(runs) == 0 {
		return []Fragment{}
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y > runs[j].Y // top of page first
		}
		return runs[i].X < runs[j].X
	})

	var frags []Fragment
	var b strings.Builder
	var startX, endX, lineY float64

	flush := func() {
		text := strings.TrimSpace(b.String())
		if text != "" {
			frags = append(frags, Fragment{
				Text:      text,
				X:         (startX + endX) / 2,
				PageWidth: pageWidth,
			})
		}
		b.Reset()
	}

	for i, run := range runs {
		gap := gapThreshold(run)
		newLine := i > 0 && absFloat(run.Y-lineY) > lineYTolerance
		newCluster := i > 0 && !newLine && run.X-endX > gap

		if newLine || newCluster {
			flush()
		}
		if b.Len() == 0 {
			startX = run.X
			lineY = run.Y
		}
		b.WriteString(run.S)
		endX = run.X + run.W
	}
	flush()

	return frags
}

// gapThreshold is the horizontal distance that separates clusters on a
// line. Scaled to the font so dense CJK footers and wide display faces
// both split sensibly.
func gapThreshold(t pdf.Text) float64 {
	if t.FontSize > 0 {
		return 2 * t.FontSize
	}
	return 20
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
