// Package strategy maps an input message to a response-shaping tier.
// Starter keeps replies natural, pro trims them to the point, premium
// goes for the shortest answer the question allows.
package strategy

import "github.com/tokenfold/tokenfold/internal/abbrev"

// Strategy identifies a response-shaping tier.
type Strategy string

const (
	Auto    Strategy = "auto"
	Starter Strategy = "starter"
	Pro     Strategy = "pro"
	Premium Strategy = "premium"
)

// Auto selection boundaries, in input tokens.
const (
	starterMaxTokens = 18
	proMaxTokens     = 60
)

// Config carries the sampling parameters and limits for a strategy.
// Optional penalties are pointers so unset ones stay off the request.
type Config struct {
	Strategy          Strategy
	MaxTokens         int
	Temperature       float32
	TopP              *float32
	FrequencyPenalty  *float32
	PresencePenalty   *float32
	Tier              string
	ExpectedReduction string
}

// Valid reports whether s names a concrete strategy (auto excluded).
func (s Strategy) Valid() bool {
	return s == Starter || s == Pro || s == Premium
}

// Select resolves a requested strategy. Auto and anything unrecognized
// fall back to length-based selection over inputTokens.
func Select(requested Strategy, inputTokens int) Strategy {
	if requested.Valid() {
		return requested
	}
	switch {
	case inputTokens < starterMaxTokens:
		return Starter
	case inputTokens < proMaxTokens:
		return Pro
	default:
		return Premium
	}
}

// SelectForPlan resolves requested under the plan's limits. The free
// plan always answers with Starter, even when a higher strategy was
// asked for; a premium plan selects normally.
func SelectForPlan(requested Strategy, inputTokens int, premium bool) Strategy {
	if !premium {
		return Starter
	}
	return Select(requested, inputTokens)
}

func f32(v float32) *float32 { return &v }

// ConfigFor returns the tuned parameter set for a concrete strategy.
// Temperatures fall as the tier gets more aggressive; the output cap
// keeps a safety margin above the observed response lengths so answers
// are shortened by instruction, not truncation.
func ConfigFor(s Strategy) Config {
	switch s {
	case Premium:
		return Config{
			Strategy:          Premium,
			MaxTokens:         700,
			Temperature:       0.3,
			TopP:              f32(0.8),
			FrequencyPenalty:  f32(0.5),
			PresencePenalty:   f32(0.3),
			Tier:              "paid",
			ExpectedReduction: "65-75%",
		}
	case Pro:
		return Config{
			Strategy:          Pro,
			MaxTokens:         1300,
			Temperature:       0.5,
			TopP:              f32(0.9),
			FrequencyPenalty:  f32(0.3),
			Tier:              "paid",
			ExpectedReduction: "50-60%",
		}
	default:
		return Config{
			Strategy:          Starter,
			MaxTokens:         2000,
			Temperature:       0.7,
			Tier:              "free",
			ExpectedReduction: "15-25%",
		}
	}
}

// AllowAbbreviations decides whether replies may use shorthand.
// Starter never does, premium always does, pro mirrors the user:
// shorthand comes back only when the message already contains it.
func AllowAbbreviations(s Strategy, message string) bool {
	switch s {
	case Starter:
		return false
	case Premium:
		return true
	default:
		return abbrev.Detect(message)
	}
}
