package compress

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// patternRunes are the characters whose long repetitions get collapsed
// to count notation. Laughter and crying runs (ㅋㅋㅋㅋ, ㅠㅠㅠㅠ) are the
// common case in chat input.
var patternRunes = map[rune]bool{
	'ㅋ': true,
	'ㅎ': true,
	'ㅠ': true,
	'ㅜ': true,
	'!': true,
	'?': true,
	'.': true,
	'~': true,
	'-': true,
	'=': true,
}

// minPatternRun is the shortest repetition worth collapsing. Three in a
// row reads as emphasis and stays; four or more becomes "c*n".
const minPatternRun = 4

// PatternStage collapses runs of repeated emphasis characters into
// count notation: ㅋㅋㅋㅋㅋ -> ㅋ*5.
type PatternStage struct{}

func NewPatternStage() *PatternStage { return &PatternStage{} }

func (s *PatternStage) Name() string { return "pattern" }

// Apply scans the text rune by rune. Backreferences would express this
// as (.)\1{3,}, but RE2 has none, so the run detection is manual.
func (s *PatternStage) Apply(text string) (string, int) {
	count := 0
	var b strings.Builder
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !patternRunes[r] {
			b.WriteRune(r)
			i += size
			continue
		}
		run := 1
		j := i + size
		for j < len(text) {
			next, nsize := utf8.DecodeRuneInString(text[j:])
			if next != r {
				break
			}
			run++
			j += nsize
		}
		if run >= minPatternRun {
			fmt.Fprintf(&b, "%c*%d", r, run)
			count++
		} else {
			for k := 0; k < run; k++ {
				b.WriteRune(r)
			}
		}
		i = j
	}
	if count == 0 {
		return text, 0
	}
	return b.String(), count
}
