package compress

import "strings"

// DictionaryStage replaces long-form phrases with shorter canonical forms
// from a static vocabulary table.
type DictionaryStage struct {
	vocab *Vocabulary
}

// NewDictionaryStage creates the stage over the given table, or the
// embedded default when vocab is nil.
func NewDictionaryStage(vocab *Vocabulary) *DictionaryStage {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &DictionaryStage{vocab: vocab}
}

func (s *DictionaryStage) Name() string { return "dictionary" }

// Apply substitutes every vocabulary entry present in the text, longest
// key first. The replacement count is the number of occurrences rewritten.
func (s *DictionaryStage) Apply(text string) (string, int) {
	replaced := 0
	for _, e := range s.vocab.Entries {
		n := strings.Count(text, e.From)
		if n == 0 {
			continue
		}
		text = strings.ReplaceAll(text, e.From, e.To)
		replaced += n
	}
	return text, replaced
}
