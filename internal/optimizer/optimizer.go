// Package optimizer assembles the full request-side cost reduction:
// compress the message, pick a strategy from its length, build the
// matching system prompt and sampling parameters, and estimate what
// the call will cost before it is made.
package optimizer

import (
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tokenfold/tokenfold/internal/compress"
	"github.com/tokenfold/tokenfold/internal/strategy"
)

// DefaultModel is the completion model requests target unless
// configured otherwise.
const DefaultModel = openai.GPT4oMini

// gpt-4o-mini pricing, USD per million tokens.
const (
	InputPricePerMillion  = 0.150
	OutputPricePerMillion = 0.600
)

// Pricing holds the per-million-token rates used for cost estimates.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// DefaultPricing is the gpt-4o-mini rate card.
var DefaultPricing = Pricing{
	InputPerMillion:  InputPricePerMillion,
	OutputPerMillion: OutputPricePerMillion,
}

// Cost prices a call in USD.
func (p Pricing) Cost(inputTokens, outputTokens int) float64 {
	in := float64(inputTokens) / 1_000_000 * p.InputPerMillion
	out := float64(outputTokens) / 1_000_000 * p.OutputPerMillion
	return in + out
}

// TokenCounter counts completion tokens for a piece of text.
type TokenCounter interface {
	Count(text string) int
}

// Options control a single optimization run. The zero value compresses
// the input, lets the strategy be picked automatically, and applies no
// output schema.
type Options struct {
	Strategy        strategy.Strategy
	SkipCompression bool
	Schema          SchemaType
	SystemPrompt    string
	Model           string

	// FreePlan caps the strategy at Starter regardless of what was
	// requested or what the input length suggests. Premium and
	// unlicensed library use leave it false.
	FreePlan bool
}

// Request is a ready-to-send completion request plus the metadata
// explaining how it was shaped.
type Request struct {
	Model            string                               `json:"model"`
	UserMessage      string                               `json:"user_message"`
	SystemPrompt     string                               `json:"system_prompt"`
	MaxTokens        int                                  `json:"max_tokens"`
	Temperature      float32                              `json:"temperature"`
	TopP             *float32                             `json:"top_p,omitempty"`
	FrequencyPenalty *float32                             `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float32                             `json:"presence_penalty,omitempty"`
	ResponseFormat   *openai.ChatCompletionResponseFormat `json:"response_format,omitempty"`

	Strategy              strategy.Strategy `json:"strategy"`
	Tier                  string            `json:"tier"`
	InputTokens           int               `json:"input_tokens"`
	EstimatedOutputTokens int               `json:"estimated_output_tokens"`
	EstimatedCost         float64           `json:"estimated_cost_usd"`
	UsesAbbreviations     bool              `json:"uses_abbreviations"`
	Compression           *compress.Outcome `json:"compression,omitempty"`
	Elapsed               time.Duration     `json:"elapsed_ns"`
}

// ChatCompletionRequest converts the optimized request into the wire
// form the OpenAI client sends.
func (r *Request) ChatCompletionRequest() openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model: r.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: r.UserMessage},
		},
		MaxTokens:      r.MaxTokens,
		Temperature:    r.Temperature,
		ResponseFormat: r.ResponseFormat,
	}
	if r.TopP != nil {
		req.TopP = *r.TopP
	}
	if r.FrequencyPenalty != nil {
		req.FrequencyPenalty = *r.FrequencyPenalty
	}
	if r.PresencePenalty != nil {
		req.PresencePenalty = *r.PresencePenalty
	}
	return req
}

// Optimizer shapes completion requests.
type Optimizer struct {
	counter  TokenCounter
	pipeline *compress.Pipeline
	pricing  Pricing
}

func New(counter TokenCounter) *Optimizer {
	return NewWithPricing(counter, DefaultPricing)
}

// NewWithPricing uses a custom rate card for cost estimates.
func NewWithPricing(counter TokenCounter, pricing Pricing) *Optimizer {
	return &Optimizer{
		counter:  counter,
		pipeline: compress.NewPipeline(counter),
		pricing:  pricing,
	}
}

// Optimize builds the request for message. Abbreviation detection runs
// on the original text so the user's own style decides it, while
// strategy selection uses the compressed token count, which is what
// the model will actually see.
func (o *Optimizer) Optimize(message string, opts Options) *Request {
	start := time.Now()

	processed := message
	var outcome *compress.Outcome
	if !opts.SkipCompression {
		outcome = o.pipeline.Compress(message)
		processed = outcome.CompressedText
	}

	inputTokens := o.counter.Count(processed)

	selected := strategy.SelectForPlan(opts.Strategy, inputTokens, !opts.FreePlan)
	cfg := strategy.ConfigFor(selected)

	useAbbrev := strategy.AllowAbbreviations(selected, message)

	// A schema constrains the response format either way; its prompt
	// instruction only joins the generated prompt, a custom one is
	// taken verbatim.
	schema, hasSchema := LookupSchema(opts.Schema)
	var responseFormat *openai.ChatCompletionResponseFormat
	if hasSchema {
		responseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	systemPrompt := opts.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = SystemPrompt(selected, useAbbrev)
		if hasSchema {
			systemPrompt += "\n\n" + schema.Instruction
		}
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	estimatedOutput := EstimateOutputTokens(inputTokens, cfg.MaxTokens)

	req := &Request{
		Model:            model,
		UserMessage:      processed,
		SystemPrompt:     systemPrompt,
		MaxTokens:        cfg.MaxTokens,
		Temperature:      cfg.Temperature,
		TopP:             cfg.TopP,
		FrequencyPenalty: cfg.FrequencyPenalty,
		PresencePenalty:  cfg.PresencePenalty,
		ResponseFormat:   responseFormat,

		Strategy:              selected,
		Tier:                  cfg.Tier,
		InputTokens:           inputTokens,
		EstimatedOutputTokens: estimatedOutput,
		EstimatedCost:         o.pricing.Cost(inputTokens, estimatedOutput),
		UsesAbbreviations:     useAbbrev,
		Compression:           outcome,
	}
	req.Elapsed = time.Since(start)
	return req
}

// EstimateOutputTokens predicts response length from input length.
// Short questions get short answers; past 200 input tokens the guess
// is half the output cap.
func EstimateOutputTokens(inputTokens, maxTokens int) int {
	var estimate int
	switch {
	case inputTokens < 30:
		estimate = 50
	case inputTokens < 100:
		estimate = 150
	case inputTokens < 200:
		estimate = 300
	default:
		estimate = maxTokens / 2
	}
	if estimate > maxTokens {
		return maxTokens
	}
	return estimate
}

// EstimateCost prices a call in USD at gpt-4o-mini rates.
func EstimateCost(inputTokens, outputTokens int) float64 {
	return DefaultPricing.Cost(inputTokens, outputTokens)
}

// Savings compares token counts before and after optimization, priced
// at output rates since output dominates the bill.
type Savings struct {
	OriginalTokens   int     `json:"original_tokens"`
	OptimizedTokens  int     `json:"optimized_tokens"`
	TokensSaved      int     `json:"tokens_saved"`
	SavingsPercent   float64 `json:"savings_percent"`
	OriginalCostUSD  float64 `json:"original_cost_usd"`
	OptimizedCostUSD float64 `json:"optimized_cost_usd"`
	CostSavedUSD     float64 `json:"cost_saved_usd"`
}

// CalculateSavings reports what optimization saved between the two
// token counts.
func CalculateSavings(originalTokens, optimizedTokens int) Savings {
	s := Savings{
		OriginalTokens:   originalTokens,
		OptimizedTokens:  optimizedTokens,
		TokensSaved:      originalTokens - optimizedTokens,
		OriginalCostUSD:  float64(originalTokens) / 1_000_000 * OutputPricePerMillion,
		OptimizedCostUSD: float64(optimizedTokens) / 1_000_000 * OutputPricePerMillion,
	}
	s.CostSavedUSD = s.OriginalCostUSD - s.OptimizedCostUSD
	if originalTokens > 0 {
		s.SavingsPercent = float64(s.TokensSaved) / float64(originalTokens) * 100
	}
	return s
}
