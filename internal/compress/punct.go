package compress

import "regexp"

// PunctuationStage collapses stacked terminal punctuation to a single
// mark: "진짜??" -> "진짜?". It runs last, after the pattern stage has
// had its chance at the longer runs.
type PunctuationStage struct{}

func NewPunctuationStage() *PunctuationStage { return &PunctuationStage{} }

func (s *PunctuationStage) Name() string { return "punctuation" }

var rePunctRuns = []*regexp.Regexp{
	regexp.MustCompile(`\?{2,}`),
	regexp.MustCompile(`!{2,}`),
	regexp.MustCompile(`~{2,}`),
	regexp.MustCompile(`-{2,}`),
	regexp.MustCompile(`={2,}`),
}

func (s *PunctuationStage) Apply(text string) (string, int) {
	count := 0
	for _, re := range rePunctRuns {
		text = re.ReplaceAllStringFunc(text, func(m string) string {
			count++
			return m[:1]
		})
	}
	return text, count
}
