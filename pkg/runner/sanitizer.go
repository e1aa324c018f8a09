package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "RECHAT_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer cleans raw chat lines before they reach the engine.
// A zero MaxSize falls back to MaxInputSize().
type Sanitizer struct {
	MaxSize int
}

// SanitizeInput cleans input with the size limit taken from the environment.
func SanitizeInput(input string) (string, error) {
	return Sanitizer{}.Clean(input)
}

// Clean enforces the size limit, validates UTF-8 and strips control
// characters. A chat line is a single line, so tab is the only control
// character that survives.
func (s Sanitizer) Clean(input string) (string, error) {
	limit := s.MaxSize
	if limit <= 0 {
		limit = MaxInputSize()
	}
	// Reject rather than truncate: a truncated message is a different message.
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: nothing to strip.
	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t'
}

// MaxInputSize returns the limit from RECHAT_MAX_INPUT_SIZE, or the default.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
