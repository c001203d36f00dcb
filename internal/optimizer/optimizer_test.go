package optimizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenfold/tokenfold/internal/strategy"
)

type runeCounter struct{}

func (runeCounter) Count(text string) int { return utf8.RuneCountInString(text) }

func TestOptimizeShortMessage(t *testing.T) {
	o := New(runeCounter{})

	req := o.Optimize("어 그래", Options{})

	assert.Equal(t, strategy.Starter, req.Strategy)
	assert.Equal(t, 2000, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 0.001)
	assert.Nil(t, req.TopP)
	assert.Equal(t, "free", req.Tier)
	assert.False(t, req.UsesAbbreviations)
	assert.Equal(t, openai.GPT4oMini, req.Model)
	assert.NotContains(t, req.SystemPrompt, "약어")
}

func TestOptimizeLongMessageGetsPremium(t *testing.T) {
	o := New(runeCounter{})

	req := o.Optimize(strings.Repeat("긴 질문입니다 ", 20), Options{})

	assert.Equal(t, strategy.Premium, req.Strategy)
	assert.Equal(t, 700, req.MaxTokens)
	require.NotNil(t, req.TopP)
	assert.InDelta(t, 0.8, *req.TopP, 0.001)
	assert.True(t, req.UsesAbbreviations, "premium always allows shorthand")
}

func TestOptimizeExplicitStrategy(t *testing.T) {
	o := New(runeCounter{})

	req := o.Optimize(strings.Repeat("긴 질문입니다 ", 20), Options{Strategy: strategy.Starter})
	assert.Equal(t, strategy.Starter, req.Strategy)
}

func TestOptimizeFreePlanForcesStarter(t *testing.T) {
	o := New(runeCounter{})
	long := strings.Repeat("긴 질문입니다 ", 20)

	req := o.Optimize(long, Options{Strategy: strategy.Premium, FreePlan: true})
	assert.Equal(t, strategy.Starter, req.Strategy)
	assert.Equal(t, "free", req.Tier)
}

func TestOptimizeCustomPricing(t *testing.T) {
	cheap := NewWithPricing(runeCounter{}, Pricing{InputPerMillion: 0, OutputPerMillion: 0})

	req := cheap.Optimize(strings.Repeat("긴 질문입니다 ", 20), Options{})
	assert.Zero(t, req.EstimatedCost)

	standard := New(runeCounter{}).Optimize(strings.Repeat("긴 질문입니다 ", 20), Options{})
	assert.Greater(t, standard.EstimatedCost, 0.0)
}

func TestOptimizeCompression(t *testing.T) {
	o := New(runeCounter{})

	msg := "안녕하세요, 오늘 날씨가 어때요????"

	compressed := o.Optimize(msg, Options{})
	require.NotNil(t, compressed.Compression)
	assert.NotEqual(t, msg, compressed.UserMessage)
	assert.Positive(t, compressed.Compression.TokensSaved)

	plain := o.Optimize(msg, Options{SkipCompression: true})
	assert.Nil(t, plain.Compression)
	assert.Equal(t, msg, plain.UserMessage)
}

func TestOptimizeSchema(t *testing.T) {
	o := New(runeCounter{})

	req := o.Optimize("서울 맛집 다섯 곳만 추천해 주세요", Options{Schema: SchemaList})
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
	assert.Contains(t, req.SystemPrompt, "items")

	noSchema := o.Optimize("서울 맛집 다섯 곳만 추천해 주세요", Options{})
	assert.Nil(t, noSchema.ResponseFormat)
}

func TestOptimizeCustomSystemPrompt(t *testing.T) {
	o := New(runeCounter{})

	req := o.Optimize("안녕", Options{SystemPrompt: "You are a pirate."})
	assert.Equal(t, "You are a pirate.", req.SystemPrompt)
	assert.Nil(t, req.ResponseFormat)
}

func TestOptimizeCustomSystemPromptKeepsSchemaFormat(t *testing.T) {
	o := New(runeCounter{})

	// A custom prompt replaces the generated instruction verbatim, but
	// the schema still constrains the response format.
	req := o.Optimize("안녕", Options{SystemPrompt: "You are a pirate.", Schema: SchemaChat})
	assert.Equal(t, "You are a pirate.", req.SystemPrompt)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
}

func TestOptimizeAbbreviationMirroring(t *testing.T) {
	o := New(runeCounter{})

	// 18..59 tokens of input selects pro, which mirrors the user.
	base := strings.Repeat("내용 설명 부탁해 ", 4)

	with := o.Optimize(base+"WiFi 연결이 자꾸 끊겨요", Options{})
	require.Equal(t, strategy.Pro, with.Strategy)
	assert.True(t, with.UsesAbbreviations)
	assert.Contains(t, with.SystemPrompt, "약어 사용(AI, PC, WiFi 등)")

	without := o.Optimize(base+"무선 연결이 자꾸 끊겨요", Options{})
	require.Equal(t, strategy.Pro, without.Strategy)
	assert.False(t, without.UsesAbbreviations)
	assert.Contains(t, without.SystemPrompt, "약어 사용하지 마세요")
}

func TestChatCompletionRequest(t *testing.T) {
	o := New(runeCounter{})

	req := o.Optimize(strings.Repeat("긴 질문입니다 ", 20), Options{})
	wire := req.ChatCompletionRequest()

	require.Len(t, wire.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, wire.Messages[0].Role)
	assert.Equal(t, req.SystemPrompt, wire.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, wire.Messages[1].Role)
	assert.Equal(t, req.MaxTokens, wire.MaxTokens)
	assert.InDelta(t, float64(req.Temperature), float64(wire.Temperature), 0.001)
	assert.InDelta(t, 0.8, float64(wire.TopP), 0.001)
	assert.InDelta(t, 0.5, float64(wire.FrequencyPenalty), 0.001)
}

func TestEstimateOutputTokens(t *testing.T) {
	tests := []struct {
		name        string
		inputTokens int
		maxTokens   int
		want        int
	}{
		{name: "very short", inputTokens: 10, maxTokens: 2000, want: 50},
		{name: "medium", inputTokens: 50, maxTokens: 1300, want: 150},
		{name: "long", inputTokens: 150, maxTokens: 700, want: 300},
		{name: "very long uses half cap", inputTokens: 400, maxTokens: 700, want: 350},
		{name: "capped at max", inputTokens: 150, maxTokens: 200, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateOutputTokens(tt.inputTokens, tt.maxTokens))
		})
	}
}

func TestEstimateCost(t *testing.T) {
	// 1M input + 1M output at gpt-4o-mini rates.
	assert.InDelta(t, 0.75, EstimateCost(1_000_000, 1_000_000), 1e-9)
	assert.Zero(t, EstimateCost(0, 0))
}

func TestCalculateSavings(t *testing.T) {
	s := CalculateSavings(500, 150)
	assert.Equal(t, 350, s.TokensSaved)
	assert.InDelta(t, 70.0, s.SavingsPercent, 0.001)
	assert.InDelta(t, s.OriginalCostUSD-s.OptimizedCostUSD, s.CostSavedUSD, 1e-12)

	empty := CalculateSavings(0, 0)
	assert.Zero(t, empty.SavingsPercent)
}
