package engine

import "sort"

// searchSequence finds the highest-scoring self-consistent numbering over
// one contiguous window of pages. It enumerates the full Cartesian
// product of the per-page candidate lists, rejects combinations whose
// candidates are not positionally consistent, and scores the survivors on
// arithmetic continuity plus positional agreement. Returns nil when no
// combination passes the gate, when fewer than two pages carry
// candidates, or when the enumeration would exceed the configured
// ceiling.
//
// Ties keep the first combination encountered, making the search
// deterministic for identical inputs.
func (e *Engine) searchSequence(candidates map[int][]Candidate) Assignment {
	// Pages with no readings contribute nothing to the product.
	pages := make([]int, 0, len(candidates))
	for page, list := range candidates {
		if len(list) > 0 {
			pages = append(pages, page)
		}
	}
	// A single observation cannot validate continuity.
	if len(pages) < 2 {
		return nil
	}
	sort.Ints(pages)

	// Bound the enumeration before starting it. Candidate counts are
	// small by construction (0-4 per page over a handful of pages), so
	// the ceiling only trips on pathological inputs.
	product := 1
	for _, page := range pages {
		product *= len(candidates[page])
		if product > e.opts.MaxCombinations {
			e.log.Debug("combination ceiling exceeded", "pages", len(pages))
			return nil
		}
	}

	choice := make([]int, len(pages))
	combo := make([]Candidate, len(pages))

	var best Assignment
	bestScore := 0.0

	for {
		for i, page := range pages {
			combo[i] = candidates[page][choice[i]]
		}

		if score, ok := e.scoreCombination(pages, combo); ok {
			if best == nil || score > bestScore {
				best = make(Assignment, len(combo))
				for _, c := range combo {
					best[c.PageIndex] = c.Value
				}
				bestScore = score
			}
		}

		// Odometer increment, last page fastest.
		i := len(choice) - 1
		for i >= 0 {
			choice[i]++
			if choice[i] < len(candidates[pages[i]]) {
				break
			}
			choice[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}

	if best != nil {
		e.log.Debug("sequence selected", "pages", len(best), "score", bestScore)
	}
	return best
}

// scoreCombination applies the position-consistency gate and, for
// survivors, returns continuity score plus position score.
func (e *Engine) scoreCombination(pages []int, combo []Candidate) (float64, bool) {
	regionFrac := majorityFraction(len(combo), func(i int) string { return string(combo[i].Region) })
	bucketFrac := majorityFraction(len(combo), func(i int) string { return string(combo[i].Bucket) })

	// Hard filter: a real page number stays in one place. Combinations
	// with no positional majority are never scored, regardless of how
	// well their values line up.
	if regionFrac < e.opts.ConsistencyThreshold && bucketFrac < e.opts.ConsistencyThreshold {
		return 0, false
	}

	positionScore := 50*regionFrac + 50*bucketFrac

	continuity := 0.0
	pairs := 0
	for i := 1; i < len(combo); i++ {
		expected := pages[i] - pages[i-1]
		actual := combo[i].Value - combo[i-1].Value
		switch {
		case actual == expected && actual > 0:
			// Perfect stride: accounts for unanalyzed pages in between.
			continuity += e.opts.PerfectStride
		case actual == 1:
			continuity += e.opts.Sequential
		case abs(actual-expected) <= 1:
			// Tolerates a single misread digit.
			continuity += e.opts.NearMiss
		default:
			continuity += e.opts.BreakPenalty
		}
		pairs++
	}
	if pairs > 0 {
		continuity /= float64(pairs)
	}

	return continuity + positionScore, true
}

// majorityFraction returns the share of items carrying the most common
// key.
func majorityFraction(n int, key func(i int) string) float64 {
	if n == 0 {
		return 0
	}
	counts := make(map[string]int, 3)
	most := 0
	for i := 0; i < n; i++ {
		counts[key(i)]++
		if counts[key(i)] > most {
			most = counts[key(i)]
		}
	}
	return float64(most) / float64(n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
