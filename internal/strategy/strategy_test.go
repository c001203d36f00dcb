package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		requested   Strategy
		inputTokens int
		want        Strategy
	}{
		{name: "auto short input", requested: Auto, inputTokens: 5, want: Starter},
		{name: "auto starter upper bound", requested: Auto, inputTokens: 17, want: Starter},
		{name: "auto pro lower bound", requested: Auto, inputTokens: 18, want: Pro},
		{name: "auto pro upper bound", requested: Auto, inputTokens: 59, want: Pro},
		{name: "auto premium lower bound", requested: Auto, inputTokens: 60, want: Premium},
		{name: "auto long input", requested: Auto, inputTokens: 500, want: Premium},
		{name: "explicit starter wins", requested: Starter, inputTokens: 500, want: Starter},
		{name: "explicit premium wins", requested: Premium, inputTokens: 3, want: Premium},
		{name: "unknown falls back to auto", requested: Strategy("turbo"), inputTokens: 5, want: Starter},
		{name: "empty falls back to auto", requested: Strategy(""), inputTokens: 100, want: Premium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.requested, tt.inputTokens))
		})
	}
}

func TestSelectForPlan(t *testing.T) {
	// Free plan pins everything to starter.
	assert.Equal(t, Starter, SelectForPlan(Auto, 500, false))
	assert.Equal(t, Starter, SelectForPlan(Premium, 500, false))

	// Premium selects normally.
	assert.Equal(t, Pro, SelectForPlan(Auto, 30, true))
	assert.Equal(t, Premium, SelectForPlan(Premium, 3, true))
}

func TestConfigFor(t *testing.T) {
	starter := ConfigFor(Starter)
	assert.Equal(t, 2000, starter.MaxTokens)
	assert.InDelta(t, 0.7, starter.Temperature, 0.001)
	assert.Nil(t, starter.TopP)
	assert.Nil(t, starter.FrequencyPenalty)
	assert.Nil(t, starter.PresencePenalty)
	assert.Equal(t, "free", starter.Tier)

	pro := ConfigFor(Pro)
	assert.Equal(t, 1300, pro.MaxTokens)
	assert.InDelta(t, 0.5, pro.Temperature, 0.001)
	require.NotNil(t, pro.TopP)
	assert.InDelta(t, 0.9, *pro.TopP, 0.001)
	require.NotNil(t, pro.FrequencyPenalty)
	assert.Nil(t, pro.PresencePenalty)
	assert.Equal(t, "paid", pro.Tier)

	premium := ConfigFor(Premium)
	assert.Equal(t, 700, premium.MaxTokens)
	assert.InDelta(t, 0.3, premium.Temperature, 0.001)
	require.NotNil(t, premium.TopP)
	require.NotNil(t, premium.FrequencyPenalty)
	require.NotNil(t, premium.PresencePenalty)
	assert.Equal(t, "paid", premium.Tier)
}

func TestAllowAbbreviations(t *testing.T) {
	withAbbrev := "AI 추천 좀 해줘"
	without := "인공지능 추천 좀 해줘"

	assert.False(t, AllowAbbreviations(Starter, withAbbrev))
	assert.True(t, AllowAbbreviations(Premium, without))
	assert.True(t, AllowAbbreviations(Pro, withAbbrev))
	assert.False(t, AllowAbbreviations(Pro, without))
}
