package compress

import (
	_ "embed"
	"fmt"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/tokenfold/tokenfold/internal/errors"
)

//go:embed vocab.yaml
var vocabYAML []byte

// VocabEntry maps a long form to its shorter canonical form.
type VocabEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Vocabulary is an ordered substitution table. Entries are applied
// longest-key first so specific phrases win over their prefixes.
type Vocabulary struct {
	Version int          `yaml:"version"`
	Entries []VocabEntry `yaml:"entries"`
}

// ParseVocabulary parses and validates a YAML vocabulary table.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.VocabularyInvalid(err.Error())
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	// Stable sort keeps the table order among equal-length keys.
	sort.SliceStable(v.Entries, func(i, j int) bool {
		return utf8.RuneCountInString(v.Entries[i].From) > utf8.RuneCountInString(v.Entries[j].From)
	})
	return &v, nil
}

// Validate checks the table for duplicate keys, empty forms, and
// substitution chains (a replacement that is itself a key, which would
// let one entry's output match another entry in the same pass).
func (v *Vocabulary) Validate() error {
	if len(v.Entries) == 0 {
		return errors.VocabularyInvalid("no entries")
	}
	keys := make(map[string]bool, len(v.Entries))
	for _, e := range v.Entries {
		if e.From == "" || e.To == "" {
			return errors.VocabularyInvalid(fmt.Sprintf("empty form in entry %q -> %q", e.From, e.To))
		}
		if keys[e.From] {
			return errors.VocabularyInvalid(fmt.Sprintf("duplicate key %q", e.From))
		}
		keys[e.From] = true
	}
	for _, e := range v.Entries {
		if keys[e.To] {
			return errors.VocabularyInvalid(fmt.Sprintf("replacement %q for key %q is itself a key", e.To, e.From))
		}
	}
	return nil
}

// DefaultVocabulary returns the embedded substitution table. The embedded
// table is validated by tests, so a parse failure here is a build defect.
func DefaultVocabulary() *Vocabulary {
	v, err := ParseVocabulary(vocabYAML)
	if err != nil {
		panic(err)
	}
	return v
}
