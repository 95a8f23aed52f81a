package engine

import (
	"github.com/foliocite/foliocite/internal/pagetext"
)

// Bucket is the horizontal placement category of a fragment within a page.
type Bucket string

const (
	BucketLeft   Bucket = "left"
	BucketCenter Bucket = "center"
	BucketRight  Bucket = "right"
)

// classifyBucket maps a fragment midpoint to its horizontal bucket.
// Fragments in the left third are "left", the right third "right",
// everything else "center".
func classifyBucket(x, pageWidth float64) Bucket {
	if pageWidth <= 0 {
		return BucketCenter
	}
	frac := x / pageWidth
	switch {
	case frac < 0.33:
		return BucketLeft
	case frac > 0.67:
		return BucketRight
	default:
		return BucketCenter
	}
}

// Candidate is one numeric reading of a margin fragment. A page may own
// zero, one, or several candidates; they are independent readings and are
// only reconciled by the sequence search.
type Candidate struct {
	Value     int
	Region    pagetext.Region
	Bucket    Bucket
	RawText   string
	PageIndex int
}

// Assignment maps a physical (zero-based) page index to the printed page
// value chosen for it. Pages with no accepted candidate are absent.
type Assignment map[int]int

// minValue returns the smallest assigned value.
func (a Assignment) minValue() int {
	first := true
	min := 0
	for _, v := range a {
		if first || v < min {
			min = v
			first = false
		}
	}
	return min
}

// maxValue returns the largest assigned value.
func (a Assignment) maxValue() int {
	max := 0
	for _, v := range a {
		if v > max {
			max = v
		}
	}
	return max
}

// minIndex returns the smallest page index carrying a value.
func (a Assignment) minIndex() int {
	first := true
	min := 0
	for i := range a {
		if first || i < min {
			min = i
			first = false
		}
	}
	return min
}

// maxIndex returns the largest page index carrying a value.
func (a Assignment) maxIndex() int {
	first := true
	max := 0
	for i := range a {
		if first || i > max {
			max = i
			first = false
		}
	}
	return max
}
