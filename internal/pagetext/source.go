// Package pagetext provides positioned text retrieval from document margins.
package pagetext

import "context"

// Region identifies the margin strip of a page.
type Region string

const (
	RegionHeader Region = "header"
	RegionFooter Region = "footer"
)

// Regions lists the margin strips sampled by default.
var Regions = []Region{RegionHeader, RegionFooter}

// Fragment is one positioned text run from a margin strip.
// X is the horizontal midpoint of the run and PageWidth the width of the
// page it came from, both in the same units (PDF points).
type Fragment struct {
	Text      string
	X         float64
	PageWidth float64
}

// Source retrieves positioned margin text for pages of one document.
// Implementations are assumed synchronous; callers impose wall-clock
// budgets through ctx.
type Source interface {
	// PageCount returns the number of physical pages in the document.
	PageCount() int

	// Fragments returns the text fragments found in the given margin
	// strip of the page. pageIndex is zero-based. A page with no margin
	// text returns an empty slice, not an error.
	Fragments(ctx context.Context, pageIndex int, region Region) ([]Fragment, error)
}
