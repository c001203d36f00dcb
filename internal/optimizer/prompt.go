package optimizer

import "github.com/tokenfold/tokenfold/internal/strategy"

// System prompts are Korean regardless of input language; measured
// response lengths were consistently shorter than with the English
// equivalents across every tier.
const (
	starterPrompt = "자연스럽고 이해하기 쉽게 답변. 불필요한 반복은 피하세요."

	proPrompt            = "간결하게 핵심만 답변하세요."
	proWithAbbrev        = " 사용자처럼 약어 사용(AI, PC, WiFi 등)."
	proWithoutAbbrev     = " 약어 사용하지 마세요."
	premiumPrompt        = "1-2문장으로 핵심만 답변하세요."
	premiumWithAbbrev    = " 약어 자유롭게 사용(AI, PC, WiFi 등)."
	premiumWithoutAbbrev = " 약어 사용 시 첫 사용 때만 설명: AI(인공지능), PC(컴퓨터)."
)

// SystemPrompt builds the instruction for a strategy. Starter keeps
// replies natural and never mentions abbreviations; pro and premium
// append a shorthand rule matching useAbbrev.
func SystemPrompt(s strategy.Strategy, useAbbrev bool) string {
	switch s {
	case strategy.Premium:
		if useAbbrev {
			return premiumPrompt + premiumWithAbbrev
		}
		return premiumPrompt + premiumWithoutAbbrev
	case strategy.Pro:
		if useAbbrev {
			return proPrompt + proWithAbbrev
		}
		return proPrompt + proWithoutAbbrev
	default:
		return starterPrompt
	}
}
