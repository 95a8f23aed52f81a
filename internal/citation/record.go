// Package citation defines the citation-field record that inference
// results are merged into. The inference engine itself only ever touches
// the page_numbers field; everything else is passthrough for the
// orchestration layer.
package citation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one document's citation-field record.
type Record struct {
	ID         string `json:"id" yaml:"id"`
	SourcePath string `json:"source_path" yaml:"source_path"`
	PageCount  int    `json:"page_count" yaml:"page_count"`

	// DocumentType is the classifier outcome (book, thesis, journal,
	// bookchapter), empty when classification was skipped.
	DocumentType string `json:"document_type,omitempty" yaml:"document_type,omitempty"`

	// PageNumbers is the inferred printed page range: "start-end", a
	// single number, or empty when no confident answer exists.
	PageNumbers string `json:"page_numbers,omitempty" yaml:"page_numbers,omitempty"`

	// PageNumberMethod records which estimator produced PageNumbers:
	// "engine", "footer-scan", or "llm".
	PageNumberMethod string `json:"page_number_method,omitempty" yaml:"page_number_method,omitempty"`

	// TotalPagesHint is the document total recovered from "page N of M"
	// margin markers, 0 when absent.
	TotalPagesHint int `json:"total_pages_hint,omitempty" yaml:"total_pages_hint,omitempty"`

	// Error carries a per-document processing failure in batch runs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Estimator method names recorded in PageNumberMethod.
const (
	MethodEngine     = "engine"
	MethodFooterScan = "footer-scan"
	MethodLLM        = "llm"
)

// NewRecord creates a record for one source document.
func NewRecord(sourcePath string, pageCount int) Record {
	return Record{
		ID:         uuid.New().String(),
		SourcePath: sourcePath,
		PageCount:  pageCount,
		CreatedAt:  time.Now().UTC(),
	}
}

// MergePageNumbers sets the page-number fields when the result is
// non-empty. An empty result leaves the record untouched so a later
// estimator may still fill it.
func (r *Record) MergePageNumbers(pageNumbers, method string) {
	if pageNumbers == "" {
		return
	}
	r.PageNumbers = pageNumbers
	r.PageNumberMethod = method
}

// FormatPages renders a page-number value for display: "pp. 186-205",
// "p. 42", or "" for no result.
func FormatPages(pageNumbers string) string {
	switch {
	case pageNumbers == "":
		return ""
	case strings.Contains(pageNumbers, "-"):
		return fmt.Sprintf("pp. %s", pageNumbers)
	default:
		return fmt.Sprintf("p. %s", pageNumbers)
	}
}
