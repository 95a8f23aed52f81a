package main

import (
	"fmt"

	"github.com/foliocite/foliocite/internal/batch"
	"github.com/foliocite/foliocite/internal/engine"
	"github.com/foliocite/foliocite/internal/fallback"
	"github.com/foliocite/foliocite/internal/svcctx"
)

// buildRunner assembles the processing pipeline from configuration and
// command flags. llm forces the LLM fallback on regardless of config.
func buildRunner(svc *svcctx.Services, eng *engine.Engine, rangeExpr string, classify, llm bool) (*batch.Runner, error) {
	cfg := svc.Config
	if rangeExpr == "" {
		rangeExpr = cfg.Batch.PageRange
	}

	r := &batch.Runner{
		Engine:     eng,
		RangeExpr:  rangeExpr,
		Workers:    cfg.Batch.MaxWorkers,
		DocTimeout: cfg.Batch.DocTimeout(),
		StripFrac:  cfg.Regions.StripFraction,
		Classify:   classify,
		FooterScan: cfg.Fallback.FooterScan,
		Logger:     svc.Logger,
	}

	if llm || cfg.Fallback.LLMEnabled {
		est, err := fallback.NewLLMEstimator(fallback.LLMConfig{
			APIKey:     cfg.Fallback.ResolveAPIKey(),
			Model:      cfg.Fallback.LLMModel,
			BaseURL:    cfg.Fallback.LLMBaseURL,
			Timeout:    cfg.Fallback.LLMTimeout(),
			MaxRetries: cfg.Fallback.LLMMaxRetries,
			Logger:     svc.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring llm fallback: %w", err)
		}
		r.LLM = est
	}

	return r, nil
}
