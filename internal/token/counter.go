// Package token wraps tiktoken to count tokens for arbitrary text.
package token

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/tokenfold/tokenfold/internal/errors"
)

// FallbackEncoding is used when a model has no registered encoding.
// cl100k_base is the GPT-4 tokenizer and a reasonable approximation
// for other modern models.
const FallbackEncoding = "cl100k_base"

// Counter counts tokens with a fixed subword encoding. Counts are
// deterministic for the same input and encoding.
type Counter struct {
	enc      *tiktoken.Tiktoken
	model    string
	fallback bool
}

// NewCounter creates a counter for the given model. If the model has no
// registered encoding, the counter falls back to FallbackEncoding; the
// fallback is recorded on the counter rather than surfaced as an error,
// so callers can distinguish the two outcomes.
func NewCounter(model string) (*Counter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err == nil {
		return &Counter{enc: enc, model: model}, nil
	}

	enc, ferr := tiktoken.GetEncoding(FallbackEncoding)
	if ferr != nil {
		return nil, errors.EncodingUnavailable(model, ferr)
	}
	return &Counter{enc: enc, model: model, fallback: true}, nil
}

// Count returns the token count for text. Empty text counts as zero.
// Special-token sequences like "<|endoftext|>" are counted as ordinary
// tokens rather than rejected.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, []string{"all"}, nil))
}

// Model returns the model the counter was configured for.
func (c *Counter) Model() string {
	return c.model
}

// UsedFallback reports whether the counter fell back to FallbackEncoding
// because the model had no registered encoding.
func (c *Counter) UsedFallback() bool {
	return c.fallback
}
