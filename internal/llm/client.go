// Package llm sends optimized requests to the OpenAI API, serving
// repeats from the response cache and recording usage statistics.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tokenfold/tokenfold/internal/cache"
	"github.com/tokenfold/tokenfold/internal/errors"
	"github.com/tokenfold/tokenfold/internal/optimizer"
	"github.com/tokenfold/tokenfold/internal/stats"
)

// ChatCompleter is the part of the OpenAI client the package uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps an OpenAI client with caching and stats. Cache and
// tracker are optional; nil disables the concern.
type Client struct {
	api     ChatCompleter
	cache   *cache.Store
	tracker *stats.Tracker
	pricing optimizer.Pricing
}

// Option adjusts Client construction.
type Option func(*Client)

// WithPricing prices actual usage with a custom rate card instead of
// the gpt-4o-mini defaults.
func WithPricing(p optimizer.Pricing) Option { return func(c *Client) { c.pricing = p } }

// New builds a client for the given API key.
func New(apiKey string, cacheStore *cache.Store, tracker *stats.Tracker, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.APIKeyMissing()
	}
	return NewWithCompleter(openai.NewClient(apiKey), cacheStore, tracker, opts...), nil
}

// NewWithCompleter builds a client around any completer. Used by tests
// and by callers with a preconfigured OpenAI client.
func NewWithCompleter(api ChatCompleter, cacheStore *cache.Store, tracker *stats.Tracker, opts ...Option) *Client {
	c := &Client{api: api, cache: cacheStore, tracker: tracker, pricing: optimizer.DefaultPricing}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a completion answer plus where it came from and what it
// cost.
type Result struct {
	Response     openai.ChatCompletionResponse
	FromCache    bool
	CostUSD      float64
	CostSavedUSD float64
}

// Content returns the text of the first choice, or empty.
func (r *Result) Content() string {
	if len(r.Response.Choices) == 0 {
		return ""
	}
	return r.Response.Choices[0].Message.Content
}

// Complete answers req, consulting the cache first. A cache hit saves
// the whole estimated call cost; a miss goes to the API and the
// response is cached for next time.
func (c *Client) Complete(ctx context.Context, req *optimizer.Request) (*Result, error) {
	wire := req.ChatCompletionRequest()

	if c.cache != nil {
		if resp, ok := c.cache.Get(wire); ok {
			c.record(req, resp, 0, req.EstimatedCost)
			return &Result{
				Response:     resp,
				FromCache:    true,
				CostSavedUSD: req.EstimatedCost,
			}, nil
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, wire)
	if err != nil {
		return nil, errors.CompletionFailed(req.Model, err)
	}

	if c.cache != nil {
		c.cache.Set(wire, resp, req.EstimatedCost)
	}

	cost := c.pricing.Cost(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	saved := c.compressionValue(req)
	c.record(req, resp, cost, saved)
	return &Result{Response: resp, CostUSD: cost, CostSavedUSD: saved}, nil
}

func (c *Client) record(req *optimizer.Request, resp openai.ChatCompletionResponse, cost, saved float64) {
	if c.tracker == nil {
		return
	}
	tokensSaved := 0
	if req.Compression != nil {
		tokensSaved = req.Compression.TokensSaved
	}
	c.tracker.Record(stats.Request{
		TokensInput:  resp.Usage.PromptTokens,
		TokensOutput: resp.Usage.CompletionTokens,
		TokensSaved:  tokensSaved,
		CostWithout:  cost + saved,
		CostWith:     cost,
		Strategy:     string(req.Strategy),
	})
}

// compressionValue is what input compression saved on this call, in
// input-token dollars. Output-side savings from the strategy prompt
// are real but unmeasurable per call, so only the input side counts.
func (c *Client) compressionValue(req *optimizer.Request) float64 {
	if req.Compression == nil {
		return 0
	}
	return c.pricing.Cost(req.Compression.TokensSaved, 0)
}
