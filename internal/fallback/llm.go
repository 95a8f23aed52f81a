package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/foliocite/foliocite/internal/pagetext"
)

const llmDefaultModel = "gpt-4o-mini"

// resultSchema constrains and validates the model's reply. start/end of 0
// means the model could not tell.
const resultSchema = `{
	"type": "object",
	"properties": {
		"page_start": {"type": "integer"},
		"page_end": {"type": "integer"}
	},
	"required": ["page_start", "page_end"],
	"additionalProperties": false
}`

const llmSystemPrompt = `You are given text found in the header and footer margins of the first and last pages of a scanned document. Determine the printed page range of the document (the page numbers printed on the paper, which rarely start at 1 for journal articles and book chapters). Respond with JSON {"page_start": N, "page_end": M}. Use 0 for both fields if the margins contain no usable page numbers.`

// LLMConfig configures the LLM-backed estimator.
type LLMConfig struct {
	APIKey     string
	Model      string        // default: gpt-4o-mini
	BaseURL    string        // optional (tests)
	Timeout    time.Duration // per-attempt HTTP timeout
	MaxRetries int           // attempts across transient failures
	RetryDelay time.Duration // base backoff delay
	Logger     *slog.Logger
}

// LLMEstimator asks a language model to read the margin text the engine
// could not reconcile. Last resort: it runs only after both the engine
// and the footer scan came up empty, and only when configured with a key.
type LLMEstimator struct {
	client     openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	schema     *jsonschema.Schema
	log        *slog.Logger
}

// NewLLMEstimator builds the estimator. Fails only on schema compilation,
// never on network access.
func NewLLMEstimator(cfg LLMConfig) (*LLMEstimator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = llmDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("result.json", strings.NewReader(resultSchema)); err != nil {
		return nil, fmt.Errorf("loading result schema: %w", err)
	}
	schema, err := compiler.Compile("result.json")
	if err != nil {
		return nil, fmt.Errorf("compiling result schema: %w", err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &LLMEstimator{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		schema:     schema,
		log:        log,
	}, nil
}

// Estimate implements Estimator.
func (e *LLMEstimator) Estimate(ctx context.Context, src pagetext.Source, pageCount int) (Estimate, error) {
	prompt := marginDigest(ctx, src, pageCount, e.log)
	if prompt == "" {
		return Estimate{}, nil
	}

	var content string
	err := retry.Do(
		func() error {
			resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(e.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(llmSystemPrompt),
					openai.UserMessage(prompt),
				},
				ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
					OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
				},
			})
			if err != nil {
				return err
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("empty completion")
			}
			content = resp.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries)),
		retry.Delay(e.retryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return Estimate{}, fmt.Errorf("llm estimate failed: %w", err)
	}

	return e.parseReply(content)
}

// parseReply validates the model output against the schema before
// trusting it.
func (e *LLMEstimator) parseReply(content string) (Estimate, error) {
	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return Estimate{}, fmt.Errorf("llm reply is not JSON: %w", err)
	}
	if err := e.schema.Validate(doc); err != nil {
		return Estimate{}, fmt.Errorf("llm reply does not match schema: %w", err)
	}

	var reply struct {
		PageStart int `json:"page_start"`
		PageEnd   int `json:"page_end"`
	}
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return Estimate{}, fmt.Errorf("decoding llm reply: %w", err)
	}

	if reply.PageStart < minPageValue || reply.PageEnd > maxPageValue ||
		reply.PageEnd < reply.PageStart {
		e.log.Debug("llm reply out of range",
			"page_start", reply.PageStart, "page_end", reply.PageEnd)
		return Estimate{}, nil
	}
	if reply.PageStart == reply.PageEnd {
		return Estimate{PageNumbers: strconv.Itoa(reply.PageStart)}, nil
	}
	return Estimate{PageNumbers: fmt.Sprintf("%d-%d", reply.PageStart, reply.PageEnd)}, nil
}

// marginDigest renders the margin text of the document's edges into a
// prompt body. Returns "" when there is nothing to show the model.
func marginDigest(ctx context.Context, src pagetext.Source, pageCount int, log *slog.Logger) string {
	var b strings.Builder

	describe := func(page int) {
		for _, region := range pagetext.Regions {
			frags, err := src.Fragments(ctx, page, region)
			if err != nil {
				log.Debug("margin fetch failed for prompt",
					"page", page, "region", string(region), "error", err)
				continue
			}
			for _, frag := range frags {
				text := strings.TrimSpace(frag.Text)
				if text == "" {
					continue
				}
				fmt.Fprintf(&b, "physical page %d, %s: %s\n", page+1, region, text)
			}
		}
	}

	limit := pageCount
	if limit > edgeScanPages {
		limit = edgeScanPages
	}
	for page := 0; page < limit; page++ {
		describe(page)
	}
	for i := edgeScanPages; i >= 1; i-- {
		page := pageCount - i
		if page < edgeScanPages || page >= pageCount {
			continue
		}
		describe(page)
	}

	return b.String()
}
