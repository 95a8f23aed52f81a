package engine

import (
	"context"

	"github.com/foliocite/foliocite/internal/pagetext"
)

// collectCandidates gathers numeric readings for the given page indices.
// Every successful parse is kept as an independent candidate; header and
// footer numbers may both be present on a page and are only reconciled by
// the search. A page that yields nothing is recorded with an explicit
// empty list, distinct from a page outside the window.
//
// Failures fetching or parsing any single fragment or page degrade to
// "no candidate for that unit" and never abort the collection.
//
// The second return value is the total-page-count hint recovered from
// "page N of M" markers, 0 if none was seen.
func (e *Engine) collectCandidates(ctx context.Context, src pagetext.Source, pages []int) (map[int][]Candidate, int) {
	candidates := make(map[int][]Candidate, len(pages))
	totalHint := 0

	for _, page := range pages {
		candidates[page] = []Candidate{}

		for _, region := range pagetext.Regions {
			frags, err := src.Fragments(ctx, page, region)
			if err != nil {
				e.log.Debug("fragment fetch failed",
					"page", page, "region", string(region), "error", err)
				continue
			}
			for _, frag := range frags {
				if total, ok := e.parser.ParseTotalPages(frag.Text); ok && total > totalHint {
					totalHint = total
				}
				value, ok := e.parser.ParsePageNumber(frag.Text)
				if !ok {
					continue
				}
				candidates[page] = append(candidates[page], Candidate{
					Value:     value,
					Region:    region,
					Bucket:    classifyBucket(frag.X, frag.PageWidth),
					RawText:   frag.Text,
					PageIndex: page,
				})
			}
		}
	}

	return candidates, totalHint
}
