package config

import "time"

// Config holds foliocite configuration.
// Loaded from ./config.yaml or ~/.foliocite/config.yaml.
type Config struct {
	Scoring  ScoringCfg  `mapstructure:"scoring" yaml:"scoring"`
	Parser   ParserCfg   `mapstructure:"parser" yaml:"parser"`
	Regions  RegionsCfg  `mapstructure:"regions" yaml:"regions"`
	Fallback FallbackCfg `mapstructure:"fallback" yaml:"fallback"`
	Batch    BatchCfg    `mapstructure:"batch" yaml:"batch"`
}

// ScoringCfg holds the sequence-search tuning constants. They are
// calibrated against a corpus of scanned journal articles; change them
// together, not one at a time.
type ScoringCfg struct {
	PerfectStride        float64 `mapstructure:"perfect_stride" yaml:"perfect_stride"`                 // award for a gap matching the page distance
	Sequential           float64 `mapstructure:"sequential" yaml:"sequential"`                         // award for consecutive values
	NearMiss             float64 `mapstructure:"near_miss" yaml:"near_miss"`                           // award for a gap off by one
	BreakPenalty         float64 `mapstructure:"break_penalty" yaml:"break_penalty"`                   // penalty for a broken progression
	ConsistencyThreshold float64 `mapstructure:"consistency_threshold" yaml:"consistency_threshold"`   // minimum position-agreement fraction
	MaxCombinations      int     `mapstructure:"max_combinations" yaml:"max_combinations"`             // search ceiling before giving up
}

// ParserCfg configures numeric token recognition.
type ParserCfg struct {
	MinValue    int  `mapstructure:"min_value" yaml:"min_value"`
	MaxValue    int  `mapstructure:"max_value" yaml:"max_value"`
	StrictRoman bool `mapstructure:"strict_roman" yaml:"strict_roman"` // reject non-canonical roman numerals
}

// RegionsCfg configures margin extraction geometry.
type RegionsCfg struct {
	// StripFraction is the share of page height treated as header or
	// footer when collecting margin text.
	StripFraction float64 `mapstructure:"strip_fraction" yaml:"strip_fraction"`
}

// FallbackCfg configures the estimators consulted when the sequence
// search abstains.
type FallbackCfg struct {
	FooterScan        bool   `mapstructure:"footer_scan" yaml:"footer_scan"`
	LLMEnabled        bool   `mapstructure:"llm_enabled" yaml:"llm_enabled"`
	LLMModel          string `mapstructure:"llm_model" yaml:"llm_model"`
	LLMAPIKey         string `mapstructure:"llm_api_key" yaml:"llm_api_key"` // supports ${ENV_VAR} syntax
	LLMBaseURL        string `mapstructure:"llm_base_url" yaml:"llm_base_url"`
	LLMTimeoutSeconds int    `mapstructure:"llm_timeout_seconds" yaml:"llm_timeout_seconds"`
	LLMMaxRetries     int    `mapstructure:"llm_max_retries" yaml:"llm_max_retries"`
}

// BatchCfg configures directory runs.
type BatchCfg struct {
	MaxWorkers        int    `mapstructure:"max_workers" yaml:"max_workers"`
	PageRange         string `mapstructure:"page_range" yaml:"page_range"`
	DocTimeoutSeconds int    `mapstructure:"doc_timeout_seconds" yaml:"doc_timeout_seconds"`
}

// LLMTimeout returns the configured LLM request budget.
func (f FallbackCfg) LLMTimeout() time.Duration {
	return time.Duration(f.LLMTimeoutSeconds) * time.Second
}

// ResolveAPIKey returns the LLM API key with ${ENV_VAR} references
// expanded.
func (f FallbackCfg) ResolveAPIKey() string {
	return ResolveEnvVars(f.LLMAPIKey)
}

// DocTimeout returns the per-document wall-clock budget.
func (b BatchCfg) DocTimeout() time.Duration {
	return time.Duration(b.DocTimeoutSeconds) * time.Second
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringCfg{
			PerfectStride:        100,
			Sequential:           90,
			NearMiss:             50,
			BreakPenalty:         -30,
			ConsistencyThreshold: 0.70,
			MaxCombinations:      10000,
		},
		Parser: ParserCfg{
			MinValue: 1,
			MaxValue: 9999,
		},
		Regions: RegionsCfg{
			StripFraction: 0.10,
		},
		Fallback: FallbackCfg{
			FooterScan:        true,
			LLMModel:          "gpt-4o-mini",
			LLMAPIKey:         "${OPENAI_API_KEY}",
			LLMTimeoutSeconds: 60,
			LLMMaxRetries:     3,
		},
		Batch: BatchCfg{
			MaxWorkers:        4,
			PageRange:         "1-5, -3",
			DocTimeoutSeconds: 120,
		},
	}
}
