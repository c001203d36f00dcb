package compress

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinLength is the shortest input, in runes, that the pipeline will
// touch. Shorter messages have nothing worth compressing and the stage
// overhead is not worth a token or two.
const MinLength = 15

// StageResult records what a single stage did to the text. A stage that
// was rolled back keeps its name in the trace with zero replacements.
type StageResult struct {
	Name         string        `json:"name"`
	Text         string        `json:"text"`
	Tokens       int           `json:"tokens"`
	TokensSaved  int           `json:"tokens_saved"`
	Replacements int           `json:"replacements"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Outcome is the full result of a pipeline run.
type Outcome struct {
	OriginalText   string        `json:"original_text"`
	CompressedText string        `json:"compressed_text"`
	OriginalTokens int           `json:"original_tokens"`
	FinalTokens    int           `json:"final_tokens"`
	TokensSaved    int           `json:"tokens_saved"`
	SavingsPercent float64       `json:"savings_percent"`
	Elapsed        time.Duration `json:"elapsed"`
	Stages         []StageResult `json:"stages"`
}

// Pipeline runs the compression stages in a fixed order and validates
// each one against the token counter. A stage whose output costs more
// tokens than its input is rolled back.
type Pipeline struct {
	counter TokenCounter
	stages  []Stage
}

// NewPipeline builds a pipeline with the default stage order:
// dictionary, numeric, pattern, punctuation.
func NewPipeline(counter TokenCounter) *Pipeline {
	return &Pipeline{
		counter: counter,
		stages: []Stage{
			NewDictionaryStage(nil),
			NewNumericStage(),
			NewPatternStage(),
			NewPunctuationStage(),
		},
	}
}

// NewPipelineWithStages is the injection point for tests and callers
// that want a custom stage set.
func NewPipelineWithStages(counter TokenCounter, stages ...Stage) *Pipeline {
	return &Pipeline{counter: counter, stages: stages}
}

// Compress runs every stage over text. The compressed form is never
// allowed to cost more tokens than the original: stages that regress
// are rolled back individually, and if the final tally still loses the
// original text is returned untouched.
func (p *Pipeline) Compress(text string) *Outcome {
	start := time.Now()
	originalTokens := p.counter.Count(text)

	out := &Outcome{
		OriginalText:   text,
		CompressedText: text,
		OriginalTokens: originalTokens,
		FinalTokens:    originalTokens,
	}

	if strings.TrimSpace(text) == "" || utf8.RuneCountInString(text) < MinLength {
		out.Elapsed = time.Since(start)
		return out
	}

	current := text
	currentTokens := originalTokens
	for _, stage := range p.stages {
		stageStart := time.Now()
		candidate, replacements := stage.Apply(current)

		result := StageResult{Name: stage.Name()}
		if replacements == 0 || candidate == current {
			result.Text = current
			result.Tokens = currentTokens
			result.Elapsed = time.Since(stageStart)
			out.Stages = append(out.Stages, result)
			continue
		}

		candidateTokens := p.counter.Count(candidate)
		if candidateTokens > currentTokens {
			// Rollback: the rewrite cost tokens instead of saving them.
			result.Text = current
			result.Tokens = currentTokens
			result.Elapsed = time.Since(stageStart)
			out.Stages = append(out.Stages, result)
			continue
		}

		result.Text = candidate
		result.Tokens = candidateTokens
		result.TokensSaved = currentTokens - candidateTokens
		result.Replacements = replacements
		result.Elapsed = time.Since(stageStart)
		out.Stages = append(out.Stages, result)

		current = candidate
		currentTokens = candidateTokens
	}

	if currentTokens <= originalTokens {
		out.CompressedText = current
		out.FinalTokens = currentTokens
		out.TokensSaved = originalTokens - currentTokens
		if originalTokens > 0 && out.TokensSaved > 0 {
			out.SavingsPercent = float64(out.TokensSaved) / float64(originalTokens) * 100
		}
	}
	out.Elapsed = time.Since(start)
	return out
}
