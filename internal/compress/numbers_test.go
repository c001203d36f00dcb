package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericStageApply(t *testing.T) {
	stage := NewNumericStage()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Korean magnitude units.
		{name: "man unit", input: "150만 다운로드", want: "150w 다운로드"},
		{name: "eok unit", input: "10억 조회수", want: "10e 조회수"},
		{name: "jo unit", input: "5조 규모", want: "5t 규모"},
		{name: "decimal unit", input: "1.5억 사용자", want: "1.5e 사용자"},

		// Plain large numbers.
		{name: "thousands", input: "총 5000 중에서", want: "총 5k 중에서"},
		{name: "counter word blocks scaling", input: "총 5000개 중에서", want: "총 5000개 중에서"},
		{name: "ten thousands", input: "무려 50000 이상", want: "무려 5w 이상"},
		{name: "millions", input: "조회수 1500000 달성", want: "조회수 150w 달성"},
		{name: "digits inside year untouched", input: "2024년 기준", want: "'24 기준"},
		{name: "decimal neighbor untouched", input: "버전 1.2024 입니다", want: "버전 1.2024 입니다"},

		// Currency.
		{name: "scaled currency", input: "1500000원 결제", want: "150w 결제"},
		{name: "unit currency drops won", input: "10억원 벌었다", want: "10e 벌었다"},
		{name: "small currency untouched", input: "500원 동전", want: "500원 동전"},

		// Years and months.
		{name: "year month", input: "2024년 1월 출시", want: "'24.1 출시"},
		{name: "year month no space", input: "2024년12월 마감", want: "'24.12 마감"},
		{name: "year with suffix", input: "2023년도 예산", want: "'23 예산"},
		{name: "nineties year", input: "1999년 겨울", want: "'99 겨울"},

		// Durations.
		{name: "months duration", input: "12개월 할부", want: "12mo 할부"},
		{name: "days duration", input: "30일 환불 보장", want: "30d 환불 보장"},
		{name: "weekday untouched", input: "3일요일에 만나요", want: "3일요일에 만나요"},
		{name: "years duration", input: "5년 경력", want: "5y 경력"},
		{name: "plain year suffix untouched", input: "5년도 넘게", want: "5년도 넘게"},

		// Percent spellings.
		{name: "percent word", input: "35퍼센트 할인", want: "35% 할인"},
		{name: "peuro word", input: "수익률 7.5프로", want: "수익률 7.5%"},
		{name: "program word untouched", input: "프로그램 업데이트", want: "프로그램 업데이트"},

		// Full-width digits fold to ASCII first.
		{name: "full width digits", input: "１５０만 판매", want: "150w 판매"},

		{name: "nothing numeric", input: "숫자가 하나도 없어요", want: "숫자가 하나도 없어요"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := stage.Apply(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericStageCountsReplacements(t *testing.T) {
	stage := NewNumericStage()

	got, n := stage.Apply("2024년 1월에 10억원으로 시작해 35퍼센트 성장")
	assert.Equal(t, "'24.1에 10e으로 시작해 35% 성장", got)
	// year-month, eok unit, dropped won, percent
	assert.Equal(t, 4, n)

	_, n = stage.Apply("바꿀 숫자가 없는 문장")
	assert.Zero(t, n)
}
