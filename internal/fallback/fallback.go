// Package fallback provides page-range estimators used when the
// inference engine yields no result. These are deliberately cruder than
// the engine: no positional gating, no combinatorial search. The
// orchestration layer decides whether and when to invoke them.
package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/foliocite/foliocite/internal/pagetext"
)

// Estimate is the result shape shared with the engine's external output.
type Estimate struct {
	PageNumbers string `json:"page_numbers,omitempty" yaml:"page_numbers,omitempty"`
}

// Estimator produces a page-range estimate for the document behind src.
// An empty Estimate is a valid outcome.
type Estimator interface {
	Estimate(ctx context.Context, src pagetext.Source, pageCount int) (Estimate, error)
}

// edgeScanPages is how many pages are scanned at each end of the
// document.
const edgeScanPages = 3

const (
	minPageValue = 1
	maxPageValue = 9999
)

var reNumber = regexp.MustCompile(`\b(\d{1,4})\b`)

// FooterScan estimates the page range by scanning footer text at both
// ends of the document: the first in-range number near the front, offset
// back by its page index, and the largest in-range number near the back.
type FooterScan struct {
	Logger *slog.Logger
}

// Estimate implements Estimator.
func (f *FooterScan) Estimate(ctx context.Context, src pagetext.Source, pageCount int) (Estimate, error) {
	log := f.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if pageCount <= 0 {
		return Estimate{}, nil
	}

	first, firstOK := f.scanFront(ctx, src, pageCount, log)
	last, lastOK := f.scanBack(ctx, src, pageCount, log)

	if !firstOK || !lastOK || last < first {
		log.Debug("footer scan inconclusive",
			"first_found", firstOK, "last_found", lastOK)
		return Estimate{}, nil
	}
	if first == last {
		return Estimate{PageNumbers: strconv.Itoa(first)}, nil
	}
	return Estimate{PageNumbers: fmt.Sprintf("%d-%d", first, last)}, nil
}

// scanFront finds the first plausible number in the opening footers and
// offsets it back to physical page zero.
func (f *FooterScan) scanFront(ctx context.Context, src pagetext.Source, pageCount int, log *slog.Logger) (int, bool) {
	limit := pageCount
	if limit > edgeScanPages {
		limit = edgeScanPages
	}
	for page := 0; page < limit; page++ {
		for _, n := range footerNumbers(ctx, src, page, log) {
			if candidate := n - page; candidate >= minPageValue {
				return candidate, true
			}
		}
	}
	return 0, false
}

// scanBack takes the largest plausible number found in the closing
// footers.
func (f *FooterScan) scanBack(ctx context.Context, src pagetext.Source, pageCount int, log *slog.Logger) (int, bool) {
	for i := 0; i < edgeScanPages; i++ {
		page := pageCount - 1 - i
		if page < 0 {
			break
		}
		best := 0
		for _, n := range footerNumbers(ctx, src, page, log) {
			if n > best {
				best = n
			}
		}
		if best > 0 {
			return best, true
		}
	}
	return 0, false
}

// footerNumbers extracts every in-range number from a page's footer
// strip. Fetch failures degrade to an empty list.
func footerNumbers(ctx context.Context, src pagetext.Source, page int, log *slog.Logger) []int {
	frags, err := src.Fragments(ctx, page, pagetext.RegionFooter)
	if err != nil {
		log.Debug("footer fetch failed", "page", page, "error", err)
		return nil
	}
	var nums []int
	for _, frag := range frags {
		for _, m := range reNumber.FindAllStringSubmatch(frag.Text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < minPageValue || n > maxPageValue {
				continue
			}
			nums = append(nums, n)
		}
	}
	return nums
}
