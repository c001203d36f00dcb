package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternStageApply(t *testing.T) {
	stage := NewPatternStage()

	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{name: "laughter run", input: "대박 ㅋㅋㅋㅋㅋ", want: "대박 ㅋ*5", wantCount: 1},
		{name: "crying run", input: "슬퍼요 ㅠㅠㅠㅠ", want: "슬퍼요 ㅠ*4", wantCount: 1},
		{name: "three stays", input: "재밌다 ㅋㅋㅋ", want: "재밌다 ㅋㅋㅋ", wantCount: 0},
		{name: "exclamation run", input: "진짜!!!!!", want: "진짜!*5", wantCount: 1},
		{name: "tilde run", input: "좋아요~~~~", want: "좋아요~*4", wantCount: 1},
		{name: "two runs", input: "ㅋㅋㅋㅋ 웃기고 ㅠㅠㅠㅠㅠ 슬퍼", want: "ㅋ*4 웃기고 ㅠ*5 슬퍼", wantCount: 2},
		{name: "mixed marks not one run", input: "뭐?!?!", want: "뭐?!?!", wantCount: 0},
		{name: "plain text", input: "반복이 없는 문장", want: "반복이 없는 문장", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := stage.Apply(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestPunctuationStageApply(t *testing.T) {
	stage := NewPunctuationStage()

	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{name: "double question", input: "정말??", want: "정말?", wantCount: 1},
		{name: "long question run", input: "왜????", want: "왜?", wantCount: 1},
		{name: "double bang", input: "좋아!!", want: "좋아!", wantCount: 1},
		{name: "tilde run", input: "그래~~~", want: "그래~", wantCount: 1},
		{name: "single marks untouched", input: "왜? 몰라!", want: "왜? 몰라!", wantCount: 0},
		{name: "two separate runs", input: "뭐?? 진짜!!", want: "뭐? 진짜!", wantCount: 2},
		{name: "period untouched", input: "끝...", want: "끝...", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := stage.Apply(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}
