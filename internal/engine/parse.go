package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Margin fragments carry far more noise than signal: running heads, dates,
// volume numbers, decorative rules. The patterns below are ordered most
// specific first and the first match wins, so an unambiguous marker like
// "·190·" is never shadowed by the bare-number fallback.
var (
	rePageOfEnglish = regexp.MustCompile(`(?i)\bpage\s*(\d{1,4})\s*of\s*(\d{1,4})\b`)
	rePageOfCJK     = regexp.MustCompile(`第\s*(\d{1,4})\s*[页頁]\s*[，,、]?\s*共\s*(\d{1,4})\s*[页頁]`)
	reDecorated     = regexp.MustCompile(`^\s*[·•∙．.\-–—=~*]+\s*(\d{1,4})\s*[·•∙．.\-–—=~*]+\s*$`)
	reNumberedCJK   = regexp.MustCompile(`第\s*(\d{1,4})\s*[页頁]`)
	reSuffixCJK     = regexp.MustCompile(`^\s*(\d{1,4})\s*[页頁]\s*$`)
	rePrefixCJK     = regexp.MustCompile(`^\s*[页頁]\s*(\d{1,4})\s*$`)
	rePageEnglish   = regexp.MustCompile(`(?i)^\s*(?:page|p\.)\s*(\d{1,4})\s*$`)
	rePageJapanese  = regexp.MustCompile(`^\s*(\d{1,4})\s*ページ\s*$`)
	reBracketed     = regexp.MustCompile(`^\s*[\[(]\s*(\d{1,4})\s*[\])]\s*$`)
	reBareNumber    = regexp.MustCompile(`^\s*(\d{1,4})\s*$`)
	reBareRoman     = regexp.MustCompile(`^\s*([IVXLCDMivxlcdm]+)\s*$`)
	reTotalCJK      = regexp.MustCompile(`共\s*(\d{1,4})\s*[页頁]`)
)

// pagePatterns are tried in order; the first capture that yields an
// in-range value is the result.
var pagePatterns = []*regexp.Regexp{
	rePageOfEnglish,
	rePageOfCJK,
	reDecorated,
	reNumberedCJK,
	reSuffixCJK,
	rePrefixCJK,
	rePageEnglish,
	rePageJapanese,
	reBracketed,
	reBareNumber,
}

// TokenParser extracts page-number readings from raw margin text.
// The zero value is not usable; construct through NewTokenParser.
type TokenParser struct {
	minValue    int
	maxValue    int
	strictRoman bool
}

// NewTokenParser returns a parser accepting values in [minValue, maxValue].
func NewTokenParser(minValue, maxValue int, strictRoman bool) *TokenParser {
	return &TokenParser{
		minValue:    minValue,
		maxValue:    maxValue,
		strictRoman: strictRoman,
	}
}

// ParsePageNumber extracts a printed page number from one fragment's text.
// Missing page numbers are the common case, so failure is an absent value,
// not an error.
func (p *TokenParser) ParsePageNumber(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}

	for _, re := range pagePatterns {
		m := re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || !p.inRange(n) {
			continue
		}
		return n, true
	}

	// Lowest priority: a fragment that is nothing but a roman numeral.
	if m := reBareRoman.FindStringSubmatch(trimmed); m != nil {
		if n, ok := DecodeRoman(m[1], p.strictRoman); ok && p.inRange(n) {
			return n, true
		}
	}

	return 0, false
}

// ParseTotalPages extracts the document total from combined "page N of M"
// style markers. Used only as a diagnostic hint for total-page-count
// estimation, never as a numbering candidate.
func (p *TokenParser) ParseTotalPages(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	for _, re := range []*regexp.Regexp{rePageOfEnglish, rePageOfCJK} {
		if m := re.FindStringSubmatch(trimmed); m != nil {
			if n, err := strconv.Atoi(m[2]); err == nil && p.inRange(n) {
				return n, true
			}
		}
	}
	if m := reTotalCJK.FindStringSubmatch(trimmed); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && p.inRange(n) {
			return n, true
		}
	}
	return 0, false
}

func (p *TokenParser) inRange(n int) bool {
	return n >= p.minValue && n <= p.maxValue
}
