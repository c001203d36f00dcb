package compress

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	require.NotEmpty(t, v.Entries)

	// Longest keys first so "정말 감사합니다" wins over "감사합니다".
	for i := 1; i < len(v.Entries); i++ {
		prev := utf8.RuneCountInString(v.Entries[i-1].From)
		cur := utf8.RuneCountInString(v.Entries[i].From)
		assert.GreaterOrEqual(t, prev, cur, "entry %d out of order", i)
	}

	// Every replacement must actually shorten the text.
	for _, e := range v.Entries {
		assert.Less(t, utf8.RuneCountInString(e.To), utf8.RuneCountInString(e.From),
			"%q -> %q does not shorten", e.From, e.To)
	}
}

func TestParseVocabularyValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty table", yaml: "version: 1\nentries: []\n"},
		{name: "empty key", yaml: "version: 1\nentries:\n  - {from: \"\", to: \"x\"}\n"},
		{
			name: "duplicate key",
			yaml: "version: 1\nentries:\n  - {from: \"감사합니다\", to: \"감사\"}\n  - {from: \"감사합니다\", to: \"ㄱㅅ\"}\n",
		},
		{
			name: "replacement is also a key",
			yaml: "version: 1\nentries:\n  - {from: \"괜찮습니까\", to: \"괜찮나요\"}\n  - {from: \"괜찮나요\", to: \"ㄱㅊ\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVocabulary([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDictionaryStageApply(t *testing.T) {
	stage := NewDictionaryStage(nil)

	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{name: "greeting", input: "안녕하세요 여러분", want: "안녕 여러분", wantCount: 1},
		{name: "longest match wins", input: "정말 감사합니다 선생님", want: "감사 선생님", wantCount: 1},
		{name: "multiple entries", input: "안녕하세요 감사합니다", want: "안녕 감사", wantCount: 2},
		{name: "repeated entry", input: "감사합니다 감사합니다", want: "감사 감사", wantCount: 2},
		{name: "question ending", input: "요즘 지내기 어떠세요", want: "요즘 지내기 어때", wantCount: 1},
		{name: "polite request", input: "개념 설명해주실 수 있나요", want: "개념 설명", wantCount: 1},
		{name: "request softener", input: "혹시 시간 되시면 한번 보세요", want: "시간 되면 한번 보세요", wantCount: 1},
		{name: "acknowledgement", input: "네, 그렇게 하겠습니다", want: "네, 그러겠습니다", wantCount: 1},
		{name: "desire", input: "배우고 싶습니다", want: "배우고 싶어", wantCount: 1},
		{name: "no match", input: "사전에 없는 문장", want: "사전에 없는 문장", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := stage.Apply(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestDictionaryStageCustomVocabulary(t *testing.T) {
	v := &Vocabulary{Entries: []VocabEntry{{From: "부탁드리겠습니다", To: "부탁"}}}
	require.NoError(t, v.Validate())

	stage := NewDictionaryStage(v)
	got, n := stage.Apply("확인 부탁드리겠습니다")
	assert.Equal(t, "확인 부탁", got)
	assert.Equal(t, 1, n)
}
