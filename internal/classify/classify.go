// Package classify determines the citation type of a scanned document
// from its length and the vocabulary of its opening pages.
package classify

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// DocumentType is the citation category of a document.
type DocumentType string

const (
	TypeBook        DocumentType = "book"
	TypeThesis      DocumentType = "thesis"
	TypeJournal     DocumentType = "journal"
	TypeBookChapter DocumentType = "bookchapter"
)

// bookPageThreshold separates monographs from articles and chapters.
const bookPageThreshold = 70

// thesisScanLimit caps how many pages are searched for thesis keywords.
const thesisScanLimit = 30

// frontMatterPages is how many opening pages feed the journal/chapter
// differentiation.
const frontMatterPages = 5

// Sampler provides page text for classification. *pagetext.PDFSource
// satisfies it.
type Sampler interface {
	PageCount() int
	PlainText(ctx context.Context, pageIndex int) (string, error)
	MarginText(ctx context.Context, pageIndex int) (string, error)
}

// PageNumberProbe reports the document's first printed page number when
// one could be inferred. Wired to the inference engine by the caller so
// this package stays decoupled from it.
type PageNumberProbe func(ctx context.Context) (int, bool)

var (
	reThesisEnglish = regexp.MustCompile(`(?i)\b(thesis|dissertation|phd|master)\b`)
	reVolume        = regexp.MustCompile(`(?i)\b(volume|vol\.)`)
	reIssue         = regexp.MustCompile(`(?i)\b(issue|no\.)`)
)

var thesisKeywordsCJK = []string{"论文", "博士", "硕士"}

// Knockout keywords decide immediately when present in the front matter.
var chapterKnockouts = []string{
	"edited by", "editor", "isbn", "press", "herausgeber", "éditeur", "主编", "出版社",
}

var journalKnockouts = []string{
	"issn", "journal", "proceedings", "zeitschrift", "revue", "学报", "期刊",
}

// DetermineType classifies the document behind s. probe may be nil, in
// which case the high-starting-page-number rule is skipped.
func DetermineType(ctx context.Context, s Sampler, probe PageNumberProbe, log *slog.Logger) DocumentType {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if s.PageCount() >= bookPageThreshold {
		if hasThesisKeywords(ctx, s, log) {
			return TypeThesis
		}
		return TypeBook
	}
	return differentiate(ctx, s, probe, log)
}

// hasThesisKeywords searches page text for thesis vocabulary in English
// and Chinese.
func hasThesisKeywords(ctx context.Context, s Sampler, log *slog.Logger) bool {
	limit := s.PageCount()
	if limit > thesisScanLimit {
		limit = thesisScanLimit
	}
	for i := 0; i < limit; i++ {
		text, err := s.PlainText(ctx, i)
		if err != nil {
			log.Debug("page text unavailable", "page", i, "error", err)
			continue
		}
		if reThesisEnglish.MatchString(text) {
			log.Debug("thesis keyword found", "page", i)
			return true
		}
		for _, kw := range thesisKeywordsCJK {
			if strings.Contains(text, kw) {
				log.Debug("thesis keyword found", "page", i, "keyword", kw)
				return true
			}
		}
	}
	return false
}

// differentiate separates journal articles from book chapters with a
// rule hierarchy, defaulting to journal when nothing is definitive.
func differentiate(ctx context.Context, s Sampler, probe PageNumberProbe, log *slog.Logger) DocumentType {
	text := frontMatterText(ctx, s, log)

	// Rule 1: chapter knockouts.
	for _, kw := range chapterKnockouts {
		if strings.Contains(text, kw) {
			log.Debug("classified by knockout keyword", "type", TypeBookChapter, "keyword", kw)
			return TypeBookChapter
		}
	}

	// Rule 2: journal knockouts.
	for _, kw := range journalKnockouts {
		if strings.Contains(text, kw) {
			log.Debug("classified by knockout keyword", "type", TypeJournal, "keyword", kw)
			return TypeJournal
		}
	}

	// Rule 3: volume + issue markers together.
	if reVolume.MatchString(text) && reIssue.MatchString(text) {
		log.Debug("classified by volume and issue markers", "type", TypeJournal)
		return TypeJournal
	}

	// Rule 4: an article starting deep into a volume is a journal
	// offprint, not a chapter scan.
	if probe != nil {
		if first, ok := probe(ctx); ok && first > 100 {
			log.Debug("classified by high starting page number",
				"type", TypeJournal, "first_page", first)
			return TypeJournal
		}
	}

	log.Debug("no definitive indicators, defaulting", "type", TypeJournal)
	return TypeJournal
}

// frontMatterText gathers the lowercased full text of the first page plus
// the margin strips of the next few pages.
func frontMatterText(ctx context.Context, s Sampler, log *slog.Logger) string {
	limit := s.PageCount()
	if limit > frontMatterPages {
		limit = frontMatterPages
	}

	var b strings.Builder
	for i := 0; i < limit; i++ {
		var text string
		var err error
		if i == 0 {
			text, err = s.PlainText(ctx, i)
		} else {
			text, err = s.MarginText(ctx, i)
		}
		if err != nil {
			log.Debug("front matter sample failed", "page", i, "error", err)
			continue
		}
		b.WriteString(strings.ToLower(text))
		b.WriteString("\n")
	}
	return b.String()
}
