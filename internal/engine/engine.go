// Package engine infers the true printed page-numbering sequence of a
// scanned document from noisy margin text. Given a window of physical
// pages it collects numeric readings from header and footer strips,
// searches for the highest-scoring self-consistent numbering hypothesis,
// and reconciles partial results from disjoint head and tail windows.
//
// The engine is stateless across invocations; independent documents may
// be processed concurrently with separate calls on the same Engine.
// Returning no result is a normal outcome and signals the caller to try
// a fallback estimator.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foliocite/foliocite/internal/pagetext"
)

// Options holds the tunable knobs of the inference engine. The scoring
// constants are empirically chosen; the defaults are the values the
// heuristics were tuned with.
type Options struct {
	// Continuity scoring awards per consecutive page pair.
	PerfectStride float64 // actual delta matches the physical stride
	Sequential    float64 // actual delta is exactly 1
	NearMiss      float64 // off by at most one from the expected stride
	BreakPenalty  float64 // anything else

	// ConsistencyThreshold is the minimum majority fraction (region or
	// bucket) a combination must reach to be scored at all.
	ConsistencyThreshold float64

	// MaxCombinations caps the brute-force enumeration. Exceeding it
	// aborts the search with no sequence.
	MaxCombinations int

	// Parser bounds and roman-numeral strictness.
	MinValue    int
	MaxValue    int
	StrictRoman bool

	// Logger receives debug diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the empirical defaults.
func DefaultOptions() Options {
	return Options{
		PerfectStride:        100,
		Sequential:           90,
		NearMiss:             50,
		BreakPenalty:         -30,
		ConsistencyThreshold: 0.70,
		MaxCombinations:      10000,
		MinValue:             1,
		MaxValue:             9999,
	}
}

// Result is the externally visible outcome of an inference run.
type Result struct {
	// PageNumbers is "" (no result), a single number, or "start-end".
	PageNumbers string `json:"page_numbers,omitempty" yaml:"page_numbers,omitempty"`

	// Assignment maps physical page index to printed page value for the
	// pages the accepted hypothesis covers.
	Assignment Assignment `json:"-" yaml:"-"`

	// TotalPagesHint is the document total recovered from "page N of M"
	// markers, or 0. Diagnostic only.
	TotalPagesHint int `json:"-" yaml:"-"`
}

// Empty reports whether the run produced no sequence.
func (r Result) Empty() bool {
	return len(r.Assignment) == 0
}

// Engine runs page-number sequence inference. Safe for concurrent use.
type Engine struct {
	opts   Options
	parser *TokenParser
	log    *slog.Logger
}

// New creates an engine. Zero-valued scoring fields in opts are replaced
// with the defaults so a partially filled Options is usable.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.PerfectStride == 0 {
		opts.PerfectStride = def.PerfectStride
	}
	if opts.Sequential == 0 {
		opts.Sequential = def.Sequential
	}
	if opts.NearMiss == 0 {
		opts.NearMiss = def.NearMiss
	}
	if opts.BreakPenalty == 0 {
		opts.BreakPenalty = def.BreakPenalty
	}
	if opts.ConsistencyThreshold == 0 {
		opts.ConsistencyThreshold = def.ConsistencyThreshold
	}
	if opts.MaxCombinations == 0 {
		opts.MaxCombinations = def.MaxCombinations
	}
	if opts.MinValue == 0 {
		opts.MinValue = def.MinValue
	}
	if opts.MaxValue == 0 {
		opts.MaxValue = def.MaxValue
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		opts:   opts,
		parser: NewTokenParser(opts.MinValue, opts.MaxValue, opts.StrictRoman),
		log:    log,
	}
}

// Parser exposes the engine's token parser for collaborators that need
// to interpret individual fragments (e.g. fallback estimators).
func (e *Engine) Parser() *TokenParser {
	return e.parser
}

// Infer determines the printed page range of the document behind src.
// rangeExpr selects the physical pages to analyze (e.g. "1-5, -3");
// pageCount is the document's true page count. An unusable range
// expression returns ErrBadRange; the engine finding no sequence is not
// an error and yields an empty Result.
func (e *Engine) Infer(ctx context.Context, src pagetext.Source, rangeExpr string, pageCount int) (Result, error) {
	head, tail, err := SplitRange(rangeExpr, pageCount)
	if err != nil {
		return Result{}, fmt.Errorf("resolving page range %q: %w", rangeExpr, err)
	}

	headCands, headTotal := e.collectCandidates(ctx, src, head)
	tailCands, tailTotal := e.collectCandidates(ctx, src, tail)

	headSeq := e.searchSequence(headCands)
	tailSeq := e.searchSequence(tailCands)

	combined := e.combine(headSeq, tailSeq, pageCount)

	res := Result{
		Assignment:     combined,
		PageNumbers:    formatRange(combined),
		TotalPagesHint: maxInt(headTotal, tailTotal),
	}
	e.log.Debug("inference complete",
		"range", rangeExpr,
		"head_pages", len(head),
		"tail_pages", len(tail),
		"assigned", len(combined),
		"page_numbers", res.PageNumbers)
	return res, nil
}

// formatRange renders the external shape of an assignment: two or more
// values report "{min}-{max}", exactly one reports the bare value, none
// reports nothing.
func formatRange(a Assignment) string {
	switch len(a) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%d", a.minValue())
	default:
		return fmt.Sprintf("%d-%d", a.minValue(), a.maxValue())
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
