package engine

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrBadRange reports a page-range expression from which no part could be
// used at all. This is a configuration fault of the caller, distinct from
// the engine finding no sequence on valid pages.
var ErrBadRange = errors.New("unusable page range expression")

// SplitRange resolves a page-range expression into disjoint head and tail
// index sets against the document's true page count.
//
// The expression is comma-separated parts, each a single page number
// ("3"), an inclusive one-based range ("1-5"), or a negative count ("-2",
// the last two pages). Resolved indices are zero-based and clipped to
// [0, pageCount-1]; head collects the non-negative parts and tail the
// negative ones, each sorted and deduplicated. Malformed parts are
// skipped individually; only an expression with no usable part is an
// error.
func SplitRange(expr string, pageCount int) (head, tail []int, err error) {
	if pageCount <= 0 {
		return nil, nil, ErrBadRange
	}

	headSet := make(map[int]struct{})
	tailSet := make(map[int]struct{})
	usable := false

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.HasPrefix(part, "-") {
			// "-N": the last N pages.
			n, convErr := strconv.Atoi(part[1:])
			if convErr != nil || n <= 0 {
				continue
			}
			start := pageCount - n
			if start < 0 {
				start = 0
			}
			for i := start; i < pageCount; i++ {
				tailSet[i] = struct{}{}
			}
			usable = true
			continue
		}

		if start, end, ok := strings.Cut(part, "-"); ok {
			a, errA := strconv.Atoi(strings.TrimSpace(start))
			b, errB := strconv.Atoi(strings.TrimSpace(end))
			if errA != nil || errB != nil || a <= 0 || b < a {
				continue
			}
			for page := a; page <= b; page++ {
				if idx := page - 1; idx < pageCount {
					headSet[idx] = struct{}{}
				}
			}
			usable = true
			continue
		}

		n, convErr := strconv.Atoi(part)
		if convErr != nil || n <= 0 {
			continue
		}
		if idx := n - 1; idx < pageCount {
			headSet[idx] = struct{}{}
		}
		usable = true
	}

	if !usable {
		return nil, nil, ErrBadRange
	}

	return sortedKeys(headSet), sortedKeys(tailSet), nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
