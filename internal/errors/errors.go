// Package errors provides typed errors for tokenfold.
package errors

import "fmt"

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrConfigInvalid       ErrorCode = "CONFIG_INVALID"
	ErrEncodingUnavailable ErrorCode = "ENCODING_UNAVAILABLE"
	ErrAPIKeyMissing       ErrorCode = "API_KEY_MISSING"
	ErrCompletionFailed    ErrorCode = "COMPLETION_FAILED"
	ErrInvalidPattern      ErrorCode = "INVALID_PATTERN"
	ErrCacheUnavailable    ErrorCode = "CACHE_UNAVAILABLE"
	ErrVocabularyInvalid   ErrorCode = "VOCABULARY_INVALID"
	ErrLicenseInvalid      ErrorCode = "LICENSE_INVALID"
)

// FoldError represents a typed error with user-friendly hints.
type FoldError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *FoldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FoldError) Unwrap() error {
	return e.Cause
}

// HintText returns the hint for CLI display.
func (e *FoldError) HintText() string {
	return e.Hint
}

// New creates a new FoldError.
func New(code ErrorCode, message, hint string) *FoldError {
	return &FoldError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new FoldError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *FoldError {
	return &FoldError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *FoldError {
	return &FoldError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/tokenfold/config.yaml",
	}
}

// EncodingUnavailable returns an error when no tokenizer encoding could be loaded.
func EncodingUnavailable(model string, cause error) *FoldError {
	return &FoldError{
		Code:    ErrEncodingUnavailable,
		Message: fmt.Sprintf("no tokenizer encoding available for model %q", model),
		Hint:    "Check network access; encodings are fetched on first use",
		Cause:   cause,
	}
}

// APIKeyMissing returns an error for a missing OpenAI API key.
func APIKeyMissing() *FoldError {
	return &FoldError{
		Code:    ErrAPIKeyMissing,
		Message: "OPENAI_API_KEY not set",
		Hint:    "Set OPENAI_API_KEY in your environment or a .env file",
	}
}

// CompletionFailed returns an error for a failed completion call.
func CompletionFailed(model string, cause error) *FoldError {
	return &FoldError{
		Code:    ErrCompletionFailed,
		Message: fmt.Sprintf("completion call to %s failed", model),
		Hint:    "Check your API key and network connection",
		Cause:   cause,
	}
}

// InvalidPattern returns an error for a malformed cache-clear pattern.
func InvalidPattern(pattern string, cause error) *FoldError {
	return &FoldError{
		Code:    ErrInvalidPattern,
		Message: fmt.Sprintf("invalid pattern: %s", pattern),
		Hint:    "Patterns are Go regular expressions, e.g. 'weather|날씨'",
		Cause:   cause,
	}
}

// CacheUnavailable returns an error when the cache file cannot be used.
func CacheUnavailable(path string, cause error) *FoldError {
	return &FoldError{
		Code:    ErrCacheUnavailable,
		Message: fmt.Sprintf("cannot use cache at %s", path),
		Hint:    "Check directory permissions, or point cache_dir at a writable location",
		Cause:   cause,
	}
}

// VocabularyInvalid returns an error for a broken substitution table.
func VocabularyInvalid(reason string) *FoldError {
	return &FoldError{
		Code:    ErrVocabularyInvalid,
		Message: fmt.Sprintf("invalid vocabulary table: %s", reason),
		Hint:    "The embedded vocabulary failed validation; this is a build defect",
	}
}

// LicenseInvalid returns an error for an unusable license key.
func LicenseInvalid(reason string) *FoldError {
	return &FoldError{
		Code:    ErrLicenseInvalid,
		Message: fmt.Sprintf("invalid license key: %s", reason),
		Hint:    "Expected format: FOLD-PREMIUM-YYYYMMDD-SIGNATURE",
	}
}
