// Package compress implements the staged, safety-validated text compressor.
//
// Four stages run in fixed order: dictionary substitution, numeric/unit
// compression, repeated-pattern compression, punctuation compression.
// The pipeline re-counts tokens after every stage and rolls a stage back
// if it made the text more expensive, so compression never increases
// token count.
package compress

// Stage is one self-contained text transformation in the pipeline.
// Apply is a pure function: it returns the rewritten text and the number
// of replacements made, and mutates no shared state.
type Stage interface {
	Name() string
	Apply(text string) (string, int)
}

// TokenCounter counts tokens for a piece of text. The pipeline uses it
// to validate every stage against the non-regression guarantee.
type TokenCounter interface {
	Count(text string) int
}
